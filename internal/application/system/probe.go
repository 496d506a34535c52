package system

import (
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// GroundHit is the result of a ground probe
type GroundHit struct {
	Grounded bool
	Distance float64 // from the probe origin, valid when Grounded
}

// GroundProbe casts a short ray from just above the feet along -up
type GroundProbe struct {
	caster RayCaster
	offset float64
	length float64
}

// NewGroundProbe creates a probe over caster. A nil caster never reports ground.
func NewGroundProbe(cfg config.ProbeConfig, caster RayCaster) *GroundProbe {
	return &GroundProbe{
		caster: caster,
		offset: cfg.Offset,
		length: cfg.Length,
	}
}

// SetConfig replaces the probe geometry
func (p *GroundProbe) SetConfig(cfg config.ProbeConfig) {
	p.offset = cfg.Offset
	p.length = cfg.Length
}

// Probe samples ground support under body
func (p *GroundProbe) Probe(body PhysicsBody) GroundHit {
	if p.caster == nil {
		return GroundHit{}
	}
	up := geom.Up(body.Rotation())
	origin := body.Position().Add(up.Mul(p.offset))

	dist, hit := p.caster.Raycast(origin, up.Mul(-1), p.length)
	if !hit {
		return GroundHit{}
	}
	return GroundHit{Grounded: true, Distance: dist}
}

package system

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/domain/entity"
)

const (
	maxSubstep = 0.05 // world units moved per collision check
	pushStep   = 0.05
	maxPushOut = 0.5 // furthest a body is pushed out of a block per axis
)

// Contacts records which faces of the body hit blocks during a step
type Contacts struct {
	Blocked [3]bool // per world axis
	Stuck   bool    // overlap could not be resolved and the body was respawned
}

// PhysicsSystem integrates the character body and collides it with the stage
type PhysicsSystem struct {
	stage  *entity.Stage
	logger *slog.Logger
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(stage *entity.Stage, logger *slog.Logger) *PhysicsSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhysicsSystem{
		stage:  stage,
		logger: logger,
	}
}

// SetStage swaps the collision world
func (s *PhysicsSystem) SetStage(stage *entity.Stage) {
	s.stage = stage
}

// Step applies accumulated forces and moves the body by velocity*dt
func (s *PhysicsSystem) Step(body *entity.Body, dt float64) Contacts {
	var c Contacts

	body.ApplyForces(dt)

	// First, resolve any existing overlaps (push-out)
	if !s.resolveOverlap(body, &c) {
		return c
	}

	d := body.Velocity().Mul(dt)
	for axis := 0; axis < 3; axis++ {
		s.moveAxis(body, axis, d[axis], &c)
	}

	// Final overlap resolution after movement
	s.resolveOverlap(body, &c)
	return c
}

// moveAxis moves along one world axis in substeps, stopping at the first block
func (s *PhysicsSystem) moveAxis(body *entity.Body, axis int, dist float64, c *Contacts) {
	if dist == 0 {
		return
	}

	steps := int(math.Ceil(math.Abs(dist) / maxSubstep))
	var delta mgl64.Vec3
	delta[axis] = dist / float64(steps)

	for i := 0; i < steps; i++ {
		if s.collides(body, delta) {
			v := body.Velocity()
			v[axis] = 0
			body.SetVelocity(v)
			c.Blocked[axis] = true
			return
		}
		body.SetPosition(body.Position().Add(delta))
	}
}

func (s *PhysicsSystem) collides(body *entity.Body, offset mgl64.Vec3) bool {
	if s.stage == nil {
		return false
	}
	return s.stage.CollidesAABB(body.Bounds().Translate(offset))
}

// resolveOverlap pushes the body out of any solid blocks it overlaps.
// Returns false if the body was stuck and had to be reset to spawn.
func (s *PhysicsSystem) resolveOverlap(body *entity.Body, c *Contacts) bool {
	if !s.collides(body, mgl64.Vec3{}) {
		return true
	}

	type pushOption struct {
		offset   mgl64.Vec3
		axis     int
		distance float64
	}
	var options []pushOption

	// Try each of the six directions, keep the first free offset of each
	for axis := 0; axis < 3; axis++ {
		for _, sign := range []float64{-1, 1} {
			for d := pushStep; d <= maxPushOut+1e-9; d += pushStep {
				var off mgl64.Vec3
				off[axis] = sign * d
				if !s.collides(body, off) {
					options = append(options, pushOption{off, axis, d})
					break
				}
			}
		}
	}

	if len(options) == 0 {
		s.logger.Warn("body stuck in stage, resetting to spawn", "position", body.Position())
		body.SetPosition(s.stage.Spawn)
		body.SetVelocity(mgl64.Vec3{})
		c.Stuck = true
		return false
	}

	// Pick the smallest push-out
	best := options[0]
	for _, opt := range options[1:] {
		if opt.distance < best.distance {
			best = opt
		}
	}

	body.SetPosition(body.Position().Add(best.offset))
	v := body.Velocity()
	v[best.axis] = 0
	body.SetVelocity(v)
	c.Blocked[best.axis] = true
	return true
}

package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/domain/geom"
)

// Body is the character's physical body: a mutable register of pose and
// velocity that the locomotion core reads and pushes forces into.
//
// Position is the support point (the feet). The collision box extends
// HalfExtents.Y along the local up axis from there.
type Body struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
	rotation mgl64.Quat
	accel    mgl64.Vec3 // mass-normalized force accumulated until ApplyForces

	HalfExtents mgl64.Vec3 // local-frame half size of the collision box
}

// NewBody creates an upright body at position with the given local half extents.
func NewBody(position, halfExtents mgl64.Vec3) *Body {
	return &Body{
		position:    position,
		rotation:    mgl64.QuatIdent(),
		HalfExtents: halfExtents,
	}
}

// Position returns the support point in world space.
func (b *Body) Position() mgl64.Vec3 { return b.position }

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec3) { b.position = p }

// Velocity returns the world-space velocity.
func (b *Body) Velocity() mgl64.Vec3 { return b.velocity }

// SetVelocity overwrites the world-space velocity.
func (b *Body) SetVelocity(v mgl64.Vec3) { b.velocity = v }

// Rotation returns the body orientation.
func (b *Body) Rotation() mgl64.Quat { return b.rotation }

// SetRotation sets the body orientation. Degenerate quaternions are ignored.
func (b *Body) SetRotation(q mgl64.Quat) {
	if q.Len() < geom.Epsilon {
		return
	}
	b.rotation = q.Normalize()
}

// AddAcceleration accumulates a mass-normalized force. It is integrated into
// velocity by the next ApplyForces call.
func (b *Body) AddAcceleration(a mgl64.Vec3) {
	b.accel = b.accel.Add(a)
}

// PendingAcceleration returns the acceleration accumulated since the last step.
func (b *Body) PendingAcceleration() mgl64.Vec3 { return b.accel }

// ApplyForces integrates the accumulated acceleration over dt and clears it.
func (b *Body) ApplyForces(dt float64) {
	b.velocity = b.velocity.Add(b.accel.Mul(dt))
	b.accel = mgl64.Vec3{}
}

// Up returns the body's local up axis in world space.
func (b *Body) Up() mgl64.Vec3 { return geom.Up(b.rotation) }

// Forward returns the body's local forward axis in world space.
func (b *Body) Forward() mgl64.Vec3 { return geom.Forward(b.rotation) }

// Right returns the body's local right axis in world space.
func (b *Body) Right() mgl64.Vec3 { return geom.Right(b.rotation) }

// WorldHalfExtents returns the half size of the axis-aligned box enclosing
// the rotated collision box.
func (b *Body) WorldHalfExtents() mgl64.Vec3 {
	r, u, f := b.Right(), b.Up(), b.Forward()
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = math.Abs(r[i])*b.HalfExtents[0] +
			math.Abs(u[i])*b.HalfExtents[1] +
			math.Abs(f[i])*b.HalfExtents[2]
	}
	return out
}

// Center returns the middle of the collision box.
func (b *Body) Center() mgl64.Vec3 {
	return b.position.Add(b.Up().Mul(b.HalfExtents[1]))
}

// Bounds returns the world-space AABB of the collision box.
func (b *Body) Bounds() AABB {
	return AABBAround(b.Center(), b.WorldHalfExtents())
}

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 { return b.velocity.Len() }

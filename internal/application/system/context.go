package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/domain/geom"
	"github.com/younwookim/gravshift/internal/infrastructure/config"
)

// PhysicsBody is the rigid body the locomotion core drives
type PhysicsBody interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddAcceleration(a mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
}

// Camera supplies the view axes movement input is relative to
type Camera interface {
	Forward() mgl64.Vec3
	Right() mgl64.Vec3
}

// FallTimeoutHandler receives the loss notification when a fall lasts too long
type FallTimeoutHandler interface {
	OnFallTimeout()
}

// RayCaster is the ground probe backend
type RayCaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (dist float64, hit bool)
}

// Context is the shared locomotion data of one character. States read and
// write it; they hold nothing themselves.
type Context struct {
	Body    PhysicsBody
	Gravity *GravityController
	Camera  Camera
	Flow    FallTimeoutHandler
	Config  *config.LocomotionConfig

	// Refreshed at the start of every Tick
	Input          InputState
	Grounded       bool
	GroundDistance float64
	Dt             float64

	// Fall only
	AirTimeRemaining float64
	fallTimedOut     bool

	// Jump only
	jumpElapsed float64
}

// Up returns the body's current up axis
func (c *Context) Up() mgl64.Vec3 {
	return geom.Up(c.Body.Rotation())
}

// CameraForwardInPlane returns the camera forward axis projected onto the
// body's horizontal plane
func (c *Context) CameraForwardInPlane() mgl64.Vec3 {
	if c.Camera == nil {
		return geom.ProjectOnPlane(geom.Forward(c.Body.Rotation()), c.Up())
	}
	return geom.ProjectOnPlane(c.Camera.Forward(), c.Up())
}

// CameraRightInPlane returns the camera right axis projected onto the body's
// horizontal plane
func (c *Context) CameraRightInPlane() mgl64.Vec3 {
	if c.Camera == nil {
		return geom.ProjectOnPlane(geom.Right(c.Body.Rotation()), c.Up())
	}
	return geom.ProjectOnPlane(c.Camera.Right(), c.Up())
}

// PlaneDirection maps 2-axis input onto the body plane: y is camera forward,
// x is camera right
func (c *Context) PlaneDirection(in mgl64.Vec2) mgl64.Vec3 {
	return c.CameraForwardInPlane().Mul(in[1]).Add(c.CameraRightInPlane().Mul(in[0]))
}

// MoveDirection is the world-space walking direction for the current input
func (c *Context) MoveDirection() mgl64.Vec3 {
	return c.PlaneDirection(c.Input.Move)
}

// HasMoveInput reports whether the move stick is off center
func (c *Context) HasMoveInput() bool {
	return c.Input.Move.Len() > 0
}

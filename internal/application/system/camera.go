package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/gravshift/internal/domain/geom"
)

// OrbitCamera looks along the body's forward axis turned by a yaw angle
// around the body's up axis. It follows every gravity change.
type OrbitCamera struct {
	body PhysicsBody
	yaw  float64 // radians
}

// NewOrbitCamera creates a camera behind body
func NewOrbitCamera(body PhysicsBody) *OrbitCamera {
	return &OrbitCamera{body: body}
}

// Yaw returns the current yaw in radians, in [-π, π]
func (c *OrbitCamera) Yaw() float64 { return c.yaw }

// AddYaw turns the camera around the body's up axis
func (c *OrbitCamera) AddYaw(delta float64) {
	c.yaw = math.Remainder(c.yaw+delta, 2*math.Pi)
}

func (c *OrbitCamera) frame() mgl64.Quat {
	return c.body.Rotation().Mul(mgl64.QuatRotate(c.yaw, geom.WorldUp))
}

// Forward implements Camera
func (c *OrbitCamera) Forward() mgl64.Vec3 { return geom.Forward(c.frame()) }

// Right implements Camera
func (c *OrbitCamera) Right() mgl64.Vec3 { return geom.Right(c.frame()) }

package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOrbitCamera(t *testing.T) {
	body := createTestBody()
	cam := NewOrbitCamera(body)

	assertVecInDelta(t, mgl64.Vec3{0, 0, 1}, cam.Forward(), 1e-12)
	assertVecInDelta(t, mgl64.Vec3{1, 0, 0}, cam.Right(), 1e-12)

	cam.AddYaw(math.Pi / 2)
	assertVecInDelta(t, mgl64.Vec3{1, 0, 0}, cam.Forward(), 1e-9)
	assertVecInDelta(t, mgl64.Vec3{0, 0, -1}, cam.Right(), 1e-9)

	t.Run("follows the body frame", func(t *testing.T) {
		body.SetRotation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})) // up = -X
		assert.InDelta(t, 0.0, cam.Forward().Dot(mgl64.Vec3{-1, 0, 0}), 1e-9, "forward stays in the body plane")
		assert.InDelta(t, 0.0, cam.Right().Dot(mgl64.Vec3{-1, 0, 0}), 1e-9)
	})

	t.Run("yaw wraps", func(t *testing.T) {
		cam.AddYaw(4 * math.Pi)
		assert.InDelta(t, math.Pi/2, cam.Yaw(), 1e-9)
	})
}

func TestCharacter_CameraYawInput(t *testing.T) {
	rig := createTestRig(true)
	cam := NewOrbitCamera(rig.body)
	char := NewCharacter(createTestConfig(), rig.body, rig.ground, cam, rig.flow, nil)

	char.Tick(InputState{CameraYaw: 1}, 0.5)
	assert.InDelta(t, 1.0, cam.Yaw(), 1e-12, "yaw speed 2 rad/s for half a second")
	assert.Same(t, cam, char.Camera())
}

func TestNewCharacter_DefaultsToOrbitCamera(t *testing.T) {
	body := createTestBody()
	char := NewCharacter(createTestConfig(), body, nil, nil, nil, nil)
	_, ok := char.Camera().(*OrbitCamera)
	assert.True(t, ok)
}

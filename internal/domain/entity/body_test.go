package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBody() *Body {
	return NewBody(mgl64.Vec3{2, 1, 3}, mgl64.Vec3{0.3, 0.9, 0.3})
}

func TestNewBody(t *testing.T) {
	b := createTestBody()

	assert.Equal(t, mgl64.Vec3{2, 1, 3}, b.Position())
	assert.Equal(t, mgl64.Vec3{}, b.Velocity())
	assert.Equal(t, mgl64.QuatIdent(), b.Rotation())
	assert.InDelta(t, 1.0, b.Up()[1], 1e-12)
}

func TestBody_SetRotation(t *testing.T) {
	b := createTestBody()

	t.Run("normalizes", func(t *testing.T) {
		b.SetRotation(mgl64.Quat{W: 2})
		assert.InDelta(t, 1.0, b.Rotation().Len(), 1e-12)
	})

	t.Run("ignores degenerate quaternion", func(t *testing.T) {
		want := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
		b.SetRotation(want)
		b.SetRotation(mgl64.Quat{})
		assert.Equal(t, want.Normalize(), b.Rotation())
	})
}

func TestBody_ApplyForces(t *testing.T) {
	b := createTestBody()
	b.SetVelocity(mgl64.Vec3{1, 0, 0})

	b.AddAcceleration(mgl64.Vec3{0, -10, 0})
	b.AddAcceleration(mgl64.Vec3{0, 0, 4})
	assert.Equal(t, mgl64.Vec3{0, -10, 4}, b.PendingAcceleration())

	b.ApplyForces(0.5)
	assert.InDelta(t, 1.0, b.Velocity()[0], 1e-12)
	assert.InDelta(t, -5.0, b.Velocity()[1], 1e-12)
	assert.InDelta(t, 2.0, b.Velocity()[2], 1e-12)
	assert.Equal(t, mgl64.Vec3{}, b.PendingAcceleration(), "accumulator cleared")
}

func TestBody_Bounds(t *testing.T) {
	t.Run("upright", func(t *testing.T) {
		b := createTestBody()
		box := b.Bounds()

		assert.InDelta(t, 1.7, box.Min[0], 1e-9)
		assert.InDelta(t, 1.0, box.Min[1], 1e-9)
		assert.InDelta(t, 2.7, box.Min[2], 1e-9)
		assert.InDelta(t, 2.3, box.Max[0], 1e-9)
		assert.InDelta(t, 2.8, box.Max[1], 1e-9)
		assert.InDelta(t, 3.3, box.Max[2], 1e-9)
	})

	t.Run("rolled onto a wall", func(t *testing.T) {
		b := createTestBody()
		// up now points along -X, so the tall axis of the box lies on X
		b.SetRotation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))

		half := b.WorldHalfExtents()
		assert.InDelta(t, 0.9, half[0], 1e-9)
		assert.InDelta(t, 0.3, half[1], 1e-9)
		assert.InDelta(t, 0.3, half[2], 1e-9)

		c := b.Center()
		assert.InDelta(t, 1.1, c[0], 1e-9)
		assert.InDelta(t, 1.0, c[1], 1e-9)
	})
}

func TestBody_Speed(t *testing.T) {
	b := createTestBody()
	b.SetVelocity(mgl64.Vec3{3, 0, 4})
	require.InDelta(t, 5.0, b.Speed(), 1e-12)
}

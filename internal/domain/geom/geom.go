// Package geom holds the vector and quaternion helpers shared by the
// locomotion core.
//
// Every helper is total: zero-length inputs produce a zero vector or the
// identity rotation instead of NaN.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// World basis. Body frames are expressed as rotations of these axes.
var (
	WorldRight   = mgl64.Vec3{1, 0, 0}
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
)

// IsZero reports whether v has (near) zero length.
func IsZero(v mgl64.Vec3) bool {
	return v.Dot(v) < Epsilon*Epsilon
}

// SafeNormalize returns v scaled to unit length, or the zero vector.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along normal.
// A zero normal leaves v unchanged.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	n := SafeNormalize(normal)
	if IsZero(n) {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n)))
}

// ClampMagnitude renormalizes v and clamps its length to [0, max].
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	if max < 0 {
		max = 0
	}
	return v.Mul(1 / l).Mul(mgl64.Clamp(l, 0, max))
}

// SnapToAxis returns the signed unit axis of v's dominant component.
// Ties resolve X first, then Y, then Z. A zero vector has no dominant
// axis: the result is the zero vector and ok is false.
func SnapToAxis(v mgl64.Vec3) (axis mgl64.Vec3, ok bool) {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	if ax < Epsilon && ay < Epsilon && az < Epsilon {
		return mgl64.Vec3{}, false
	}

	i := 2
	switch {
	case ax >= ay && ax >= az:
		i = 0
	case ay >= az:
		i = 1
	}

	if v[i] < 0 {
		axis[i] = -1
	} else {
		axis[i] = 1
	}
	return axis, true
}

// IsAxisAligned reports whether v is exactly one of the six unit axes.
func IsAxisAligned(v mgl64.Vec3) bool {
	nonZero := 0
	for _, c := range v {
		switch c {
		case 0:
		case 1, -1:
			nonZero++
		default:
			return false
		}
	}
	return nonZero == 1
}

// FromToRotation returns the shortest rotation taking direction from onto
// direction to. Opposite directions rotate half a turn about an axis
// perpendicular to from. Zero inputs yield the identity.
func FromToRotation(from, to mgl64.Vec3) mgl64.Quat {
	f, t := SafeNormalize(from), SafeNormalize(to)
	if IsZero(f) || IsZero(t) {
		return mgl64.QuatIdent()
	}

	cosTheta := mgl64.Clamp(f.Dot(t), -1, 1)
	if cosTheta < -1+1e-6 {
		axis := WorldRight.Cross(f)
		if IsZero(axis) {
			axis = WorldUp.Cross(f)
		}
		return mgl64.QuatRotate(math.Pi, SafeNormalize(axis))
	}

	axis := f.Cross(t)
	s := math.Sqrt((1 + cosTheta) * 2)
	return mgl64.Quat{W: s * 0.5, V: axis.Mul(1 / s)}.Normalize()
}

// Slerp interpolates along the shorter arc between a and b.
// t is clamped to [0, 1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = mgl64.Clamp(t, 0, 1)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// SameOrientation reports whether a and b describe the same rotation
// within tolerance (q and -q are the same orientation).
func SameOrientation(a, b mgl64.Quat, tolerance float64) bool {
	return math.Abs(a.Normalize().Dot(b.Normalize())) >= 1-tolerance
}

// Up returns the local up axis of a frame rotated by q.
func Up(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldUp) }

// Forward returns the local forward axis of a frame rotated by q.
func Forward(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldForward) }

// Right returns the local right axis of a frame rotated by q.
func Right(q mgl64.Quat) mgl64.Vec3 { return q.Rotate(WorldRight) }

package common

import (
	"github.com/chewxy/math32"
)

// Scalar is the set of machine types a vector component may be converted into when a value
// leaves the animation system and is written into a typed property.
type Scalar interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Float is the set of floating point component types usable for rotations.
type Float interface {
	~float32 | ~float64
}

// Vector2 is a two-component vector of any scalar machine type.
type Vector2[T Scalar] struct {
	X, Y T
}

// Vector3 is a three-component vector of any scalar machine type.
type Vector3[T Scalar] struct {
	X, Y, Z T
}

// Vector4 is a four-component vector of any scalar machine type.
type Vector4[T Scalar] struct {
	X, Y, Z, W T
}

// Quaternion is a rotation quaternion stored as (x, y, z, w).
type Quaternion[T Float] struct {
	X, Y, Z, W T
}

// Vec2, Vec3, Vec4 and Quat are the float32 instantiations used throughout the engine.
type (
	Vec2 = Vector2[float32]
	Vec3 = Vector3[float32]
	Vec4 = Vector4[float32]
	Quat = Quaternion[float32]
)

// NewVec3 constructs a float32 Vector3.
//
// Parameters:
//   - x, y, z: the vector components
//
// Returns:
//   - Vec3: the constructed vector
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// IdentityQuat returns the quaternion representing no rotation.
//
// Returns:
//   - Quat: the identity rotation (0, 0, 0, 1)
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a unit quaternion rotating by angle radians around axis.
// The axis is normalized before use; a zero axis yields the identity rotation.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the rotation angle in radians
//
// Returns:
//   - Quat: the resulting unit quaternion
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	l := math32.Sqrt(axis.X*axis.X + axis.Y*axis.Y + axis.Z*axis.Z)
	if l == 0 {
		return IdentityQuat()
	}
	s := math32.Sin(angle/2) / l
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(angle / 2)}
}

// QuatLength returns the 4D euclidean norm of q.
func QuatLength(q Quat) float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// NormalizeQuat scales q to unit length. A zero quaternion is returned as the identity.
//
// Parameters:
//   - q: the quaternion to normalize
//
// Returns:
//   - Quat: the normalized quaternion
func NormalizeQuat(q Quat) Quat {
	l := QuatLength(q)
	if l == 0 {
		return IdentityQuat()
	}
	inv := 1 / l
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// NlerpQuat performs normalized linear interpolation between two rotations: the component-wise
// lerp of a and b, renormalized. No hemisphere correction is applied, so callers wanting the
// shortest arc must align the signs of a and b first.
//
// Parameters:
//   - a: the rotation at t = 0
//   - b: the rotation at t = 1
//   - t: the interpolation coefficient
//
// Returns:
//   - Quat: the normalized interpolated rotation
func NlerpQuat(a, b Quat, t float32) Quat {
	return NormalizeQuat(Quat{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
		W: Lerp(a.W, b.W, t),
	})
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

package animation

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// TrackValue is the output of an animation track at a point in time. Whatever the target machine
// type, components are always carried as float32; NumericTypeCast converts on the way out.
type TrackValue struct {
	shape Shape
	v     [4]float32
}

// Real creates a scalar value.
func Real(f float32) TrackValue {
	return TrackValue{shape: ShapeScalar, v: [4]float32{f}}
}

// Vector2 creates a two-component value.
func Vector2(v common.Vec2) TrackValue {
	return TrackValue{shape: ShapeVector2, v: [4]float32{v.X, v.Y}}
}

// Vector3 creates a three-component value.
func Vector3(v common.Vec3) TrackValue {
	return TrackValue{shape: ShapeVector3, v: [4]float32{v.X, v.Y, v.Z}}
}

// Vector4 creates a four-component value.
func Vector4(v common.Vec4) TrackValue {
	return TrackValue{shape: ShapeVector4, v: [4]float32{v.X, v.Y, v.Z, v.W}}
}

// UnitQuaternion creates a rotation value.
func UnitQuaternion(q common.Quat) TrackValue {
	return TrackValue{shape: ShapeQuaternion, v: [4]float32{q.X, q.Y, q.Z, q.W}}
}

// Shape returns the variant of the value.
func (tv TrackValue) Shape() Shape {
	return tv.shape
}

// AsReal returns the scalar, or false when the value is not a scalar.
func (tv TrackValue) AsReal() (float32, bool) {
	return tv.v[0], tv.shape == ShapeScalar
}

// AsVector2 returns the vector, or false when the value is not a Vector2.
func (tv TrackValue) AsVector2() (common.Vec2, bool) {
	return common.Vec2{X: tv.v[0], Y: tv.v[1]}, tv.shape == ShapeVector2
}

// AsVector3 returns the vector, or false when the value is not a Vector3.
func (tv TrackValue) AsVector3() (common.Vec3, bool) {
	return common.Vec3{X: tv.v[0], Y: tv.v[1], Z: tv.v[2]}, tv.shape == ShapeVector3
}

// AsVector4 returns the vector, or false when the value is not a Vector4.
func (tv TrackValue) AsVector4() (common.Vec4, bool) {
	return common.Vec4{X: tv.v[0], Y: tv.v[1], Z: tv.v[2], W: tv.v[3]}, tv.shape == ShapeVector4
}

// AsQuaternion returns the rotation, or false when the value is not a UnitQuaternion.
func (tv TrackValue) AsQuaternion() (common.Quat, bool) {
	return tv.quat(), tv.shape == ShapeQuaternion
}

// String implements fmt.Stringer.
func (tv TrackValue) String() string {
	switch tv.shape {
	case ShapeScalar:
		return fmt.Sprintf("Real(%g)", tv.v[0])
	case ShapeVector2:
		return fmt.Sprintf("Vector2(%g, %g)", tv.v[0], tv.v[1])
	case ShapeVector3:
		return fmt.Sprintf("Vector3(%g, %g, %g)", tv.v[0], tv.v[1], tv.v[2])
	}
	return fmt.Sprintf("%s(%g, %g, %g, %g)", tv.shape, tv.v[0], tv.v[1], tv.v[2], tv.v[3])
}

func (tv TrackValue) quat() common.Quat {
	return common.Quat{X: tv.v[0], Y: tv.v[1], Z: tv.v[2], W: tv.v[3]}
}

func (tv TrackValue) width() int {
	switch tv.shape {
	case ShapeScalar:
		return 1
	case ShapeVector2:
		return 2
	case ShapeVector3:
		return 3
	}
	return 4
}

// WeightedClone returns the value scaled by weight. Rotations are returned unchanged: weighting a
// single rotation is meaningless and is handled by BlendWith instead.
//
// Parameters:
//   - weight: the scale factor
//
// Returns:
//   - TrackValue: the weighted copy
func (tv TrackValue) WeightedClone(weight float32) TrackValue {
	if tv.shape == ShapeQuaternion {
		return tv
	}
	out := tv
	for i := 0; i < tv.width(); i++ {
		out.v[i] *= weight
	}
	return out
}

// BlendWith accumulates other into tv in place: tv += other * weight for scalars and vectors,
// tv = nlerp(tv, other, weight) for rotations. Values of different variants leave tv unchanged.
//
// Parameters:
//   - other: the value to blend in
//   - weight: the contribution of other
func (tv *TrackValue) BlendWith(other TrackValue, weight float32) {
	if tv.shape != other.shape {
		return
	}
	if tv.shape == ShapeQuaternion {
		*tv = UnitQuaternion(common.NlerpQuat(tv.quat(), other.quat(), weight))
		return
	}
	for i := 0; i < tv.width(); i++ {
		tv.v[i] += other.v[i] * weight
	}
}

// Interpolate returns lerp(tv, other, t) for scalars and vectors, nlerp for rotations.
//
// Parameters:
//   - other: the value at t = 1
//   - t: the interpolation coefficient
//
// Returns:
//   - TrackValue: the interpolated value
//   - bool: false when the two values are of different variants; the caller should drop the value
func (tv TrackValue) Interpolate(other TrackValue, t float32) (TrackValue, bool) {
	if tv.shape != other.shape {
		return TrackValue{}, false
	}
	if tv.shape == ShapeQuaternion {
		return UnitQuaternion(common.NlerpQuat(tv.quat(), other.quat(), t)), true
	}
	out := tv
	for i := 0; i < tv.width(); i++ {
		out.v[i] = common.Lerp(tv.v[i], other.v[i], t)
	}
	return out, true
}

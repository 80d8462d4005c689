package animation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

// NumericTypeCast converts the value into the Go type named by target:
//   - scalars become bool, float32, float64 or a sized integer;
//   - vectors become common.Vector2/3/4 of the target component type;
//   - rotations become common.Quaternion[float32] or common.Quaternion[float64].
//
// Booleans are "component != 0". Float to integer conversions truncate toward zero and saturate at
// the bounds of the target type; NaN converts to zero.
//
// Parameters:
//   - target: the requested machine representation
//
// Returns:
//   - any: the converted value
//   - bool: false when target's shape differs from the value's shape
func (tv TrackValue) NumericTypeCast(target ValueType) (any, bool) {
	if !target.Valid() || target.Shape() != tv.shape {
		return nil, false
	}

	if tv.shape == ShapeQuaternion {
		if target == UnitQuaternionF64 {
			return common.Quaternion[float64]{
				X: float64(tv.v[0]), Y: float64(tv.v[1]), Z: float64(tv.v[2]), W: float64(tv.v[3]),
			}, true
		}
		return tv.quat(), true
	}

	switch target.elem() {
	case Bool:
		return shaped(tv, func(f float32) bool { return f != 0 }), true
	case F32:
		return shaped(tv, func(f float32) float32 { return f }), true
	case F64:
		return shaped(tv, func(f float32) float64 { return float64(f) }), true
	case U64:
		return shaped(tv, saturate[uint64](0, math.MaxUint64)), true
	case I64:
		return shaped(tv, saturate[int64](math.MinInt64, math.MaxInt64)), true
	case U32:
		return shaped(tv, saturate[uint32](0, math.MaxUint32)), true
	case I32:
		return shaped(tv, saturate[int32](math.MinInt32, math.MaxInt32)), true
	case U16:
		return shaped(tv, saturate[uint16](0, math.MaxUint16)), true
	case I16:
		return shaped(tv, saturate[int16](math.MinInt16, math.MaxInt16)), true
	case U8:
		return shaped(tv, saturate[uint8](0, math.MaxUint8)), true
	case I8:
		return shaped(tv, saturate[int8](math.MinInt8, math.MaxInt8)), true
	}
	return nil, false
}

// shaped applies conv to every component and packs the result in the value's own shape.
func shaped[T common.Scalar](tv TrackValue, conv func(float32) T) any {
	switch tv.shape {
	case ShapeVector2:
		return common.Vector2[T]{X: conv(tv.v[0]), Y: conv(tv.v[1])}
	case ShapeVector3:
		return common.Vector3[T]{X: conv(tv.v[0]), Y: conv(tv.v[1]), Z: conv(tv.v[2])}
	case ShapeVector4:
		return common.Vector4[T]{X: conv(tv.v[0]), Y: conv(tv.v[1]), Z: conv(tv.v[2]), W: conv(tv.v[3])}
	}
	return conv(tv.v[0])
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// saturate returns a truncating float to integer conversion clamped to [lo, hi].
func saturate[T integer](lo, hi T) func(float32) T {
	return func(f float32) T {
		switch {
		case math32.IsNaN(f):
			return 0
		case float64(f) <= float64(lo):
			return lo
		case float64(f) >= float64(hi):
			return hi
		}
		return T(f)
	}
}

package animation

// ValueType names the concrete machine representation a track value is converted into before it is
// written to a node property.
type ValueType uint8

// Scalars, then the same eleven component kinds for each vector width, then the two rotation
// precisions. The layout is relied on by Shape and elem.
const (
	Bool ValueType = iota
	F32
	F64
	U64
	I64
	U32
	I32
	U16
	I16
	U8
	I8

	Vector2Bool
	Vector2F32
	Vector2F64
	Vector2U64
	Vector2I64
	Vector2U32
	Vector2I32
	Vector2U16
	Vector2I16
	Vector2U8
	Vector2I8

	Vector3Bool
	Vector3F32
	Vector3F64
	Vector3U64
	Vector3I64
	Vector3U32
	Vector3I32
	Vector3U16
	Vector3I16
	Vector3U8
	Vector3I8

	Vector4Bool
	Vector4F32
	Vector4F64
	Vector4U64
	Vector4I64
	Vector4U32
	Vector4I32
	Vector4U16
	Vector4I16
	Vector4U8
	Vector4I8

	UnitQuaternionF32
	UnitQuaternionF64

	valueTypeCount
)

// DefaultValueType is used when a property binding does not specify a type.
const DefaultValueType = F32

const scalarKinds = 11

var scalarNames = [scalarKinds]string{"Bool", "F32", "F64", "U64", "I64", "U32", "I32", "U16", "I16", "U8", "I8"}

// Shape is the component layout of a value: a scalar, an N-wide vector or a rotation.
type Shape uint8

const (
	ShapeScalar Shape = iota
	ShapeVector2
	ShapeVector3
	ShapeVector4
	ShapeQuaternion
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "Scalar"
	case ShapeVector2:
		return "Vector2"
	case ShapeVector3:
		return "Vector3"
	case ShapeVector4:
		return "Vector4"
	case ShapeQuaternion:
		return "UnitQuaternion"
	}
	return "Unknown"
}

// Valid reports whether t is one of the declared value types.
func (t ValueType) Valid() bool {
	return t < valueTypeCount
}

// Shape returns the component layout of t.
func (t ValueType) Shape() Shape {
	if t >= UnitQuaternionF32 {
		return ShapeQuaternion
	}
	return Shape(t / scalarKinds)
}

// elem returns the scalar kind of each component of t (Bool..I8). Quaternions map to F32 or F64.
func (t ValueType) elem() ValueType {
	switch t {
	case UnitQuaternionF32:
		return F32
	case UnitQuaternionF64:
		return F64
	}
	return t % scalarKinds
}

// String implements fmt.Stringer.
func (t ValueType) String() string {
	if !t.Valid() {
		return "Invalid"
	}
	switch t.Shape() {
	case ShapeScalar:
		return scalarNames[t.elem()]
	case ShapeQuaternion:
		return "UnitQuaternion" + scalarNames[t.elem()]
	}
	return t.Shape().String() + scalarNames[t.elem()]
}

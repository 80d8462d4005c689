package animation

import (
	"fmt"
)

// BindingKind selects which node property a ValueBinding targets.
type BindingKind uint8

const (
	BindingPosition BindingKind = iota
	BindingScale
	BindingRotation
	BindingProperty
)

// ValueBinding identifies where a TrackValue is written on a node: one of the transform fast paths,
// or a named property path with the machine type the value must be converted to.
// Bindings are comparable; two bindings target the same slot iff they are ==.
type ValueBinding struct {
	kind      BindingKind
	path      string
	valueType ValueType
}

// Position targets the node's local position.
func Position() ValueBinding {
	return ValueBinding{kind: BindingPosition}
}

// Scale targets the node's local scale.
func Scale() ValueBinding {
	return ValueBinding{kind: BindingScale}
}

// Rotation targets the node's local rotation.
func Rotation() ValueBinding {
	return ValueBinding{kind: BindingRotation}
}

// Property targets the field addressed by path. Values are cast to valueType before being written.
//
// Parameters:
//   - path: a property path such as "light.intensity"
//   - valueType: the Go type of the addressed field
//
// Returns:
//   - ValueBinding: the binding
func Property(path string, valueType ValueType) ValueBinding {
	return ValueBinding{kind: BindingProperty, path: path, valueType: valueType}
}

// Kind returns the binding kind.
func (b ValueBinding) Kind() BindingKind {
	return b.kind
}

// Path returns the property path, empty for transform bindings.
func (b ValueBinding) Path() string {
	return b.path
}

// ValueType returns the declared machine type of a property binding.
func (b ValueBinding) ValueType() ValueType {
	return b.valueType
}

// String implements fmt.Stringer.
func (b ValueBinding) String() string {
	switch b.kind {
	case BindingPosition:
		return "Position"
	case BindingScale:
		return "Scale"
	case BindingRotation:
		return "Rotation"
	}
	return fmt.Sprintf("Property(%s: %s)", b.path, b.valueType)
}

package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// PropertyValue is a value stored in a material property. The set of implementations is closed.
type PropertyValue interface {
	// Kind returns the name of the value's variant, used in error messages.
	Kind() string

	// Raw returns the value as the plain Go type animation and property paths work with.
	Raw() any

	isPropertyValue()
}

// Float is a 32-bit real property.
type Float float32

// Int is a signed integer property.
type Int int32

// UInt is an unsigned integer property.
type UInt uint32

// Bool is a boolean property.
type Bool bool

// Vector2 is a two-component property.
type Vector2 common.Vec2

// Vector3 is a three-component property.
type Vector3 common.Vec3

// Vector4 is a four-component property.
type Vector4 common.Vec4

// Color is an sRGB color with alpha.
type Color struct {
	R, G, B, A uint8
}

// White is opaque white.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// SamplerFallback is the value a sampler reads when no texture is bound.
type SamplerFallback uint8

const (
	FallbackWhite SamplerFallback = iota
	FallbackNormal
	FallbackBlack
)

// Sampler binds a texture, or a fallback when Texture is nil.
type Sampler struct {
	Texture  *Texture
	Fallback SamplerFallback
}

func (Float) Kind() string   { return "Float" }
func (Int) Kind() string     { return "Int" }
func (UInt) Kind() string    { return "UInt" }
func (Bool) Kind() string    { return "Bool" }
func (Vector2) Kind() string { return "Vector2" }
func (Vector3) Kind() string { return "Vector3" }
func (Vector4) Kind() string { return "Vector4" }
func (Color) Kind() string   { return "Color" }
func (Sampler) Kind() string { return "Sampler" }

func (v Float) Raw() any   { return float32(v) }
func (v Int) Raw() any     { return int32(v) }
func (v UInt) Raw() any    { return uint32(v) }
func (v Bool) Raw() any    { return bool(v) }
func (v Vector2) Raw() any { return common.Vec2(v) }
func (v Vector3) Raw() any { return common.Vec3(v) }
func (v Vector4) Raw() any { return common.Vec4(v) }
func (v Color) Raw() any   { return v }
func (v Sampler) Raw() any { return v }

func (Float) isPropertyValue()   {}
func (Int) isPropertyValue()     {}
func (UInt) isPropertyValue()    {}
func (Bool) isPropertyValue()    {}
func (Vector2) isPropertyValue() {}
func (Vector3) isPropertyValue() {}
func (Vector4) isPropertyValue() {}
func (Color) isPropertyValue()   {}
func (Sampler) isPropertyValue() {}

// ToPropertyValue wraps a plain Go value in the matching PropertyValue. PropertyValues are returned
// unchanged.
//
// Parameters:
//   - v: a PropertyValue, or a float32, int32, uint32, bool, common.Vec2/3/4
//
// Returns:
//   - PropertyValue: the wrapped value
//   - bool: false when v has no property representation
func ToPropertyValue(v any) (PropertyValue, bool) {
	switch t := v.(type) {
	case PropertyValue:
		return t, true
	case float32:
		return Float(t), true
	case int32:
		return Int(t), true
	case uint32:
		return UInt(t), true
	case bool:
		return Bool(t), true
	case common.Vec2:
		return Vector2(t), true
	case common.Vec3:
		return Vector3(t), true
	case common.Vec4:
		return Vector4(t), true
	}
	return nil, false
}

// NoSuchPropertyError is returned when a material has no property with the requested name.
type NoSuchPropertyError struct {
	Name string
}

func (e *NoSuchPropertyError) Error() string {
	return fmt.Sprintf("unable to find material property %s", e.Name)
}

// TypeMismatchError is returned when a property is set to a value of a different variant.
type TypeMismatchError struct {
	Name     string
	Expected PropertyValue
	Given    PropertyValue
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attempt to set a value of wrong type to %s property: expected %s, given %s",
		e.Name, e.Expected.Kind(), e.Given.Kind())
}

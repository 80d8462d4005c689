package material

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/engine/property"
)

// material is the implementation of the Material interface.
type material struct {
	name        string
	pipelineKey string
	properties  map[string]PropertyValue
}

// Material is a named set of typed shader properties. The set of property names is fixed when the
// material is built; SetProperty may only change the values, never the variant of a property.
type Material interface {
	property.Reflector

	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PipelineKey retrieves the key identifying the render pipeline this material is drawn with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Property looks up a property value by name.
	//
	// Parameters:
	//   - name: the property name
	//
	// Returns:
	//   - PropertyValue: the current value
	//   - bool: false when the material has no such property
	Property(name string) (PropertyValue, bool)

	// SetProperty replaces the value of an existing property.
	//
	// Parameters:
	//   - name: the property name
	//   - value: the new value, of the same variant as the current one
	//
	// Returns:
	//   - error: *NoSuchPropertyError or *TypeMismatchError
	SetProperty(name string, value PropertyValue) error

	// PropertyNames returns the property names in lexical order.
	//
	// Returns:
	//   - []string: the sorted names
	PropertyNames() []string

	// Clone returns an independent copy. Textures referenced by samplers are shared, not copied.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		properties: make(map[string]PropertyValue),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Standard returns the default surface material: white diffuse color, no textures, fully rough.
func Standard() Material {
	return NewMaterial(
		WithName("Standard"),
		WithPipelineKey("standard"),
		WithProperty("diffuseColor", White),
		WithProperty("diffuseTexture", Sampler{Fallback: FallbackWhite}),
		WithProperty("normalTexture", Sampler{Fallback: FallbackNormal}),
		WithProperty("metallic", Float(0)),
		WithProperty("roughness", Float(1)),
		WithProperty("texCoordScale", Vector2{X: 1, Y: 1}),
	)
}

// StandardTerrainLayer returns the material a terrain layer is drawn with. The layer's per-chunk
// blend mask is bound to the "maskTexture" sampler.
func StandardTerrainLayer() Material {
	return NewMaterial(
		WithName("StandardTerrainLayer"),
		WithPipelineKey("terrain"),
		WithProperty("diffuseTexture", Sampler{Fallback: FallbackWhite}),
		WithProperty("normalTexture", Sampler{Fallback: FallbackNormal}),
		WithProperty("maskTexture", Sampler{Fallback: FallbackBlack}),
		WithProperty("texCoordScale", Vector2{X: 10, Y: 10}),
	)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) Property(name string) (PropertyValue, bool) {
	v, ok := m.properties[name]
	return v, ok
}

func (m *material) SetProperty(name string, value PropertyValue) error {
	old, ok := m.properties[name]
	if !ok {
		return &NoSuchPropertyError{Name: name}
	}
	if old.Kind() != value.Kind() {
		return &TypeMismatchError{Name: name, Expected: old, Given: value}
	}
	m.properties[name] = value
	return nil
}

func (m *material) PropertyNames() []string {
	return slices.Sorted(maps.Keys(m.properties))
}

func (m *material) Clone() Material {
	return &material{
		name:        m.name,
		pipelineKey: m.pipelineKey,
		properties:  maps.Clone(m.properties),
	}
}

// Fields exposes every property by name. Reads return the plain Go value (see PropertyValue.Raw);
// writes accept either a PropertyValue or the plain Go value of the property's variant.
func (m *material) Fields() []property.Field {
	names := m.PropertyNames()
	fields := make([]property.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, property.Field{
			Name: name,
			Get:  func() any { return m.properties[name].Raw() },
			Set: func(v any) error {
				pv, ok := ToPropertyValue(v)
				if !ok {
					return fmt.Errorf("material property %s cannot hold %T: %w", name, v, property.ErrInvalidValue)
				}
				if err := m.SetProperty(name, pv); err != nil {
					return fmt.Errorf("%v: %w", err, property.ErrInvalidValue)
				}
				return nil
			},
		})
	}
	return fields
}

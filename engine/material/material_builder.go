package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key of the material.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithProperty is an option builder that declares a property and its initial value. Declaring the
// same name twice keeps the last value.
//
// Parameters:
//   - name: the property name
//   - value: the initial value; its variant is fixed for the lifetime of the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the property option to a material
func WithProperty(name string, value PropertyValue) MaterialBuilderOption {
	return func(m *material) {
		m.properties[name] = value
	}
}

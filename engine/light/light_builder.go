package light

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

// LightBuilderOption is a function that configures the shared light properties during construction.
type LightBuilderOption func(*BaseLight)

func applyOptions(l *BaseLight, opts []LightBuilderOption) {
	for _, opt := range opts {
		opt(l)
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *BaseLight) {
		l.Color = common.NewVec3(r, g, b)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *BaseLight) {
		l.Intensity = intensity
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *BaseLight) {
		l.Enabled = enabled
	}
}

// WithCastsShadows is an option builder that sets whether the light is eligible for
// shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *BaseLight) {
		l.CastsShadows = castsShadows
	}
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) common.Vec3 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return common.Vec3{}
	}
	inv := 1.0 / length
	return common.NewVec3(x*inv, y*inv, z*inv)
}

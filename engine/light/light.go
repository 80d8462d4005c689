// Package light implements the directional, point and spot light nodes.
package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position
	// and attenuates with distance up to its radius.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone along the node's -Z axis.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "Directional"
	case LightTypePoint:
		return "Point"
	case LightTypeSpot:
		return "Spot"
	default:
		return fmt.Sprintf("LightType(%d)", int(t))
	}
}

// Type identifiers of the light variants.
var (
	DirectionalTypeUUID = uuid.MustParse("1f6a3e0c-5d2b-4a8e-b7c9-2e4d6f8a0b1c")
	PointTypeUUID       = uuid.MustParse("2a7b4f1d-6e3c-4b9f-8d0a-3f5e7a9b1c2d")
	SpotTypeUUID        = uuid.MustParse("3b8c5a2e-7f4d-4c0a-9e1b-4a6f8b0c2d3e")
)

// BaseLight holds the properties shared by every light kind. Each light variant exposes a pointer
// to its BaseLight through Components, so callers can reach it without knowing the concrete kind.
type BaseLight struct {
	// Color is the linear RGB color of the light.
	Color        common.Vec3
	Intensity    float32
	CastsShadows bool
	Enabled      bool
}

func defaultBaseLight() BaseLight {
	return BaseLight{
		Color:     common.NewVec3(1, 1, 1),
		Intensity: 1.0,
		Enabled:   true,
	}
}

// Fields exposes the shared light properties to property paths.
func (l *BaseLight) Fields() []property.Field {
	return []property.Field{
		property.Value("color", &l.Color),
		property.Value("intensity", &l.Intensity),
		property.Value("castsShadows", &l.CastsShadows),
		property.Value("enabled", &l.Enabled),
	}
}

func (l *BaseLight) validate() []string {
	if l.Intensity < 0 {
		return []string{fmt.Sprintf("light intensity must not be negative, got %g", l.Intensity)}
	}
	return nil
}

// DirectionalLight lights the whole scene from the direction of its -Z axis.
type DirectionalLight struct {
	node.Base
	Light BaseLight
}

// PointLight emits in every direction up to Radius.
type PointLight struct {
	node.Base
	Light  BaseLight
	Radius float32
}

// SpotLight emits in a cone along its -Z axis. HotspotCone is the full angle in radians that
// receives full intensity; the cone fades to zero over a further FalloffAngleDelta radians.
type SpotLight struct {
	node.Base
	Light             BaseLight
	HotspotCone       float32
	FalloffAngleDelta float32
	Distance          float32
}

var (
	_ node.Variant   = &DirectionalLight{}
	_ node.Variant   = &PointLight{}
	_ node.Variant   = &SpotLight{}
	_ node.Validator = &DirectionalLight{}
	_ node.Validator = &PointLight{}
	_ node.Validator = &SpotLight{}
)

// NewDirectionalLight creates a directional light.
//
// Parameters:
//   - name: the node name
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - *DirectionalLight: a new light
func NewDirectionalLight(name string, opts ...LightBuilderOption) *DirectionalLight {
	l := &DirectionalLight{Base: node.NewBase(name), Light: defaultBaseLight()}
	applyOptions(&l.Light, opts)
	return l
}

// NewPointLight creates a point light.
//
// Parameters:
//   - name: the node name
//   - radius: the attenuation radius
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - *PointLight: a new light
func NewPointLight(name string, radius float32, opts ...LightBuilderOption) *PointLight {
	l := &PointLight{Base: node.NewBase(name), Light: defaultBaseLight(), Radius: radius}
	applyOptions(&l.Light, opts)
	return l
}

// NewSpotLight creates a spot light. Angles are given in degrees and stored in radians.
//
// Parameters:
//   - name: the node name
//   - hotspotDeg: full hotspot cone angle in degrees
//   - falloffDeltaDeg: additional angle in degrees over which the light fades out
//   - distance: the attenuation distance
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - *SpotLight: a new light
func NewSpotLight(name string, hotspotDeg, falloffDeltaDeg, distance float32, opts ...LightBuilderOption) *SpotLight {
	l := &SpotLight{
		Base:              node.NewBase(name),
		Light:             defaultBaseLight(),
		HotspotCone:       hotspotDeg * math32.Pi / 180.0,
		FalloffAngleDelta: falloffDeltaDeg * math32.Pi / 180.0,
		Distance:          distance,
	}
	applyOptions(&l.Light, opts)
	return l
}

func (l *DirectionalLight) TypeUUID() uuid.UUID { return DirectionalTypeUUID }
func (l *DirectionalLight) TypeName() string    { return "DirectionalLight" }
func (l *DirectionalLight) Type() LightType     { return LightTypeDirectional }
func (l *DirectionalLight) Components() []any   { return []any{&l.Light} }

func (l *DirectionalLight) Fields() []property.Field {
	return append(l.Base.Fields(), property.Nested("light", &l.Light))
}

func (l *DirectionalLight) Validate(node.GraphView) []string {
	return l.Light.validate()
}

// Direction returns the normalized world-space direction the light travels in.
//
// Returns:
//   - common.Vec3: the light direction
func (l *DirectionalLight) Direction() common.Vec3 {
	return forward(l.GlobalTransform())
}

func (l *PointLight) TypeUUID() uuid.UUID { return PointTypeUUID }
func (l *PointLight) TypeName() string    { return "PointLight" }
func (l *PointLight) Type() LightType     { return LightTypePoint }
func (l *PointLight) Components() []any   { return []any{&l.Light} }

func (l *PointLight) Fields() []property.Field {
	return append(l.Base.Fields(),
		property.Nested("light", &l.Light),
		property.Value("radius", &l.Radius),
	)
}

// LocalBoundingBox returns the cube enclosing the light's sphere of influence.
func (l *PointLight) LocalBoundingBox() common.AABB {
	r := l.Radius
	return common.AABB{Min: common.NewVec3(-r, -r, -r), Max: common.NewVec3(r, r, r)}
}

func (l *PointLight) Validate(node.GraphView) []string {
	problems := l.Light.validate()
	if l.Radius < 0 {
		problems = append(problems, fmt.Sprintf("point light radius must not be negative, got %g", l.Radius))
	}
	return problems
}

func (l *SpotLight) TypeUUID() uuid.UUID { return SpotTypeUUID }
func (l *SpotLight) TypeName() string    { return "SpotLight" }
func (l *SpotLight) Type() LightType     { return LightTypeSpot }
func (l *SpotLight) Components() []any   { return []any{&l.Light} }

func (l *SpotLight) Fields() []property.Field {
	return append(l.Base.Fields(),
		property.Nested("light", &l.Light),
		property.Value("hotspotCone", &l.HotspotCone),
		property.Value("falloffAngleDelta", &l.FalloffAngleDelta),
		property.Value("distance", &l.Distance),
	)
}

// LocalBoundingBox returns the box enclosing the cone, which points down -Z.
func (l *SpotLight) LocalBoundingBox() common.AABB {
	half := (l.HotspotCone + l.FalloffAngleDelta) / 2
	r := l.Distance
	if half < math32.Pi/2 {
		r = l.Distance * math32.Tan(half)
	}
	return common.AABB{Min: common.NewVec3(-r, -r, -l.Distance), Max: common.NewVec3(r, r, 0)}
}

// InnerCone returns the cosine of the hotspot half-angle.
func (l *SpotLight) InnerCone() float32 {
	return math32.Cos(l.HotspotCone / 2)
}

// OuterCone returns the cosine of the half-angle past which the light contributes nothing.
func (l *SpotLight) OuterCone() float32 {
	return math32.Cos((l.HotspotCone + l.FalloffAngleDelta) / 2)
}

// Direction returns the normalized world-space cone axis.
func (l *SpotLight) Direction() common.Vec3 {
	return forward(l.GlobalTransform())
}

func (l *SpotLight) Validate(node.GraphView) []string {
	problems := l.Light.validate()
	if l.Distance < 0 {
		problems = append(problems, fmt.Sprintf("spot light distance must not be negative, got %g", l.Distance))
	}
	if l.HotspotCone <= 0 || l.HotspotCone+l.FalloffAngleDelta >= math32.Pi {
		problems = append(problems, fmt.Sprintf("spot light cone %g (+%g) is outside (0, pi)", l.HotspotCone, l.FalloffAngleDelta))
	}
	if l.FalloffAngleDelta < 0 {
		problems = append(problems, fmt.Sprintf("spot light falloff must not be negative, got %g", l.FalloffAngleDelta))
	}
	return problems
}

// forward returns the normalized -Z axis of a column-major transform.
func forward(m common.Matrix4) common.Vec3 {
	return normalize3(-m[8], -m[9], -m[10])
}

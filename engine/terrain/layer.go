package terrain

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
)

// DefaultMaskPropertyName is the material property a layer's mask is bound to unless configured otherwise.
const DefaultMaskPropertyName = "maskTexture"

// Layer is one material painted over the terrain. Where it shows is decided per chunk by the mask
// stored at the layer's index in Chunk.LayerMasks.
type Layer struct {
	Material *material.SharedMaterial
	// MaskPropertyName is the sampler property of Material the chunk mask is bound to when drawing.
	MaskPropertyName string
}

var _ property.Reflector = &Layer{}

// NewLayer creates a layer drawn with m.
func NewLayer(m *material.SharedMaterial) *Layer {
	return &Layer{Material: m, MaskPropertyName: DefaultMaskPropertyName}
}

// Fields exposes the layer to property paths; the material's properties are reachable as "material.<name>".
func (l *Layer) Fields() []property.Field {
	return []property.Field{
		material.NestedField("material", l.Material),
		property.Value("maskPropertyName", &l.MaskPropertyName),
	}
}

func (l *Layer) clone() *Layer {
	c := &Layer{MaskPropertyName: l.MaskPropertyName}
	if l.Material != nil {
		c.Material = l.Material.DeepCopy()
	}
	return c
}

// Package terrain implements the terrain node: a grid of heightmap chunks painted with blend layers.
package terrain

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// TypeUUID identifies the Terrain variant.
var TypeUUID = uuid.MustParse("4b0c1f9a-8f5e-4e57-9d42-6c3b7a1e2d10")

// Terrain is a node variant made of Chunks laid out on a grid in the XZ plane. Every chunk holds
// exactly one mask per entry of Layers.
type Terrain struct {
	node.Base
	Width               float32
	Length              float32
	HeightmapResolution int
	MaskResolution      int
	// MaskPropertyName is the sampler property layers created by NewLayer bind their masks to.
	MaskPropertyName string
	Chunks           []*Chunk
	Layers           []*Layer
}

var (
	_ node.Variant   = &Terrain{}
	_ node.Validator = &Terrain{}
	_ node.Cloner    = &Terrain{}
)

// NewTerrain creates a flat terrain with no layers configured by the provided options.
//
// Parameters:
//   - options: variadic list of TerrainBuilderOption functions
//
// Returns:
//   - *Terrain: the terrain
func NewTerrain(options ...TerrainBuilderOption) *Terrain {
	b := &terrainBuilder{
		name:                "Terrain",
		width:               64,
		length:              64,
		chunkSize:           16,
		heightmapResolution: 33,
		maskResolution:      64,
		maskPropertyName:    DefaultMaskPropertyName,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.chunkSize <= 0 || b.heightmapResolution < 2 || b.maskResolution < 1 {
		panic("terrain: chunk size, heightmap resolution and mask resolution must be positive")
	}

	t := &Terrain{
		Base:                node.NewBase(b.name),
		Width:               b.width,
		Length:              b.length,
		HeightmapResolution: b.heightmapResolution,
		MaskResolution:      b.maskResolution,
		MaskPropertyName:    b.maskPropertyName,
	}
	for z := float32(0); z < b.length; z += b.chunkSize {
		for x := float32(0); x < b.width; x += b.chunkSize {
			size := common.Vec2{X: min(b.chunkSize, b.width-x), Y: min(b.chunkSize, b.length-z)}
			t.Chunks = append(t.Chunks, newChunk(common.Vec2{X: x, Y: z}, size, b.heightmapResolution))
		}
	}
	return t
}

func (t *Terrain) TypeUUID() uuid.UUID {
	return TypeUUID
}

func (t *Terrain) TypeName() string {
	return "Terrain"
}

// LocalBoundingBox is the union of every chunk's bounds.
func (t *Terrain) LocalBoundingBox() common.AABB {
	box := common.EmptyAABB()
	for _, c := range t.Chunks {
		box = box.Union(c.LocalBoundingBox())
	}
	return box
}

// Fields exposes the terrain to property paths, e.g. "layers[0].material.texCoordScale".
func (t *Terrain) Fields() []property.Field {
	return append(t.Base.Fields(),
		property.ReadOnly("width", func() any { return t.Width }),
		property.ReadOnly("length", func() any { return t.Length }),
		property.Slice("chunks", &t.Chunks),
		property.Slice("layers", &t.Layers),
	)
}

// NewLayer creates a layer drawn with m whose masks bind to the terrain's mask property.
//
// Parameters:
//   - m: the layer material
//
// Returns:
//   - *Layer: the layer, not yet added to the terrain
func (t *Terrain) NewLayer(m *material.SharedMaterial) *Layer {
	l := NewLayer(m)
	l.MaskPropertyName = common.Coalesce(t.MaskPropertyName, DefaultMaskPropertyName)
	return l
}

// NewBlankMasks creates one mask per chunk filled with fill.
//
// Parameters:
//   - fill: the initial mask value
//
// Returns:
//   - []*material.Texture: the masks in chunk order
func (t *Terrain) NewBlankMasks(fill byte) []*material.Texture {
	masks := make([]*material.Texture, len(t.Chunks))
	for i := range masks {
		masks[i] = material.NewMaskTexture(uint32(t.MaskResolution), uint32(t.MaskResolution), fill)
	}
	return masks
}

// AddLayer appends a layer. masks holds the new layer's mask for every chunk, in chunk order; when
// it is empty, blank masks are created (fully opaque for the first layer, transparent otherwise).
//
// Parameters:
//   - layer: the layer to append
//   - masks: the per-chunk masks, or nil
func (t *Terrain) AddLayer(layer *Layer, masks []*material.Texture) {
	t.InsertLayer(layer, masks, len(t.Layers))
}

// InsertLayer inserts a layer at index, shifting later layers up. Mask handling is as in AddLayer.
//
// Parameters:
//   - layer: the layer to insert
//   - masks: the per-chunk masks, or nil
//   - index: the position, 0 <= index <= len(Layers)
func (t *Terrain) InsertLayer(layer *Layer, masks []*material.Texture, index int) {
	if index < 0 || index > len(t.Layers) {
		panic(fmt.Sprintf("terrain: cannot insert layer at %d, terrain has %d layers", index, len(t.Layers)))
	}
	if len(masks) == 0 {
		fill := byte(0)
		if len(t.Layers) == 0 {
			fill = 255
		}
		masks = t.NewBlankMasks(fill)
	}
	if len(masks) != len(t.Chunks) {
		panic(fmt.Sprintf("terrain: got %d layer masks for %d chunks", len(masks), len(t.Chunks)))
	}

	for i, c := range t.Chunks {
		c.LayerMasks = slices.Insert(c.LayerMasks, index, masks[i])
	}
	t.Layers = slices.Insert(t.Layers, index, layer)
}

// PopLayer removes the last layer.
//
// Returns:
//   - *Layer: the removed layer
//   - []*material.Texture: its masks in chunk order
//   - bool: false when the terrain has no layers
func (t *Terrain) PopLayer() (*Layer, []*material.Texture, bool) {
	if len(t.Layers) == 0 {
		return nil, nil, false
	}
	layer, masks := t.RemoveLayer(len(t.Layers) - 1)
	return layer, masks, true
}

// RemoveLayer removes the layer at index. An out of range index is a programming error and panics.
//
// Parameters:
//   - index: the layer to remove
//
// Returns:
//   - *Layer: the removed layer
//   - []*material.Texture: its masks in chunk order
func (t *Terrain) RemoveLayer(index int) (*Layer, []*material.Texture) {
	if index < 0 || index >= len(t.Layers) {
		panic(fmt.Sprintf("terrain: layer index %d out of range, terrain has %d layers", index, len(t.Layers)))
	}
	layer := t.Layers[index]
	t.Layers = slices.Delete(t.Layers, index, index+1)

	masks := make([]*material.Texture, len(t.Chunks))
	for i, c := range t.Chunks {
		masks[i] = c.LayerMasks[index]
		c.LayerMasks = slices.Delete(c.LayerMasks, index, index+1)
	}
	return layer, masks
}

// HeightmapSnapshots copies every chunk's heightmap, in chunk order.
func (t *Terrain) HeightmapSnapshots() [][]float32 {
	out := make([][]float32, len(t.Chunks))
	for i, c := range t.Chunks {
		out[i] = c.Heightmap()
	}
	return out
}

// MaskSnapshots copies the mask of one layer from every chunk, in chunk order.
//
// Parameters:
//   - layer: the layer index
//
// Returns:
//   - [][]byte: the mask pixels per chunk
func (t *Terrain) MaskSnapshots(layer int) [][]byte {
	out := make([][]byte, len(t.Chunks))
	for i, c := range t.Chunks {
		out[i] = c.LayerMasks[layer].Data()
	}
	return out
}

// Validate checks that every chunk carries one correctly sized mask per layer and a heightmap of
// the configured resolution.
func (t *Terrain) Validate(node.GraphView) []string {
	var problems []string
	wantHeights := t.HeightmapResolution * t.HeightmapResolution
	wantMask := t.MaskResolution * t.MaskResolution
	for i, c := range t.Chunks {
		if len(c.heightmap) != wantHeights {
			problems = append(problems, fmt.Sprintf("chunk %d has %d height samples, expected %d", i, len(c.heightmap), wantHeights))
		}
		if len(c.LayerMasks) != len(t.Layers) {
			problems = append(problems, fmt.Sprintf("chunk %d has %d layer masks for %d layers", i, len(c.LayerMasks), len(t.Layers)))
		}
		for j, m := range c.LayerMasks {
			if m.Len() != wantMask {
				problems = append(problems, fmt.Sprintf("chunk %d mask %d has %d texels, expected %d", i, j, m.Len(), wantMask))
			}
		}
	}
	for i, l := range t.Layers {
		if l.Material == nil {
			problems = append(problems, fmt.Sprintf("layer %d has no material", i))
		}
	}
	return problems
}

// CloneVariant deep copies the terrain: heightmaps, masks and layer materials are all duplicated.
func (t *Terrain) CloneVariant() node.Variant {
	out := *t
	out.Chunks = make([]*Chunk, len(t.Chunks))
	for i, c := range t.Chunks {
		out.Chunks[i] = c.clone()
	}
	out.Layers = make([]*Layer, len(t.Layers))
	for i, l := range t.Layers {
		out.Layers[i] = l.clone()
	}
	return &out
}

package terrain

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/cogentcore/webgpu/wgpu"
)

// Chunk is a square patch of terrain. It owns a heightmap of resolution x resolution samples and one
// blend mask per terrain layer, in layer order.
type Chunk struct {
	// Position is the offset of the chunk's corner from the terrain origin, in the XZ plane.
	Position common.Vec2
	// Size is the extent of the chunk along X and Z.
	Size       common.Vec2
	LayerMasks []*material.Texture

	resolution int
	heightmap  []float32
}

var _ property.Reflector = &Chunk{}

func newChunk(position, size common.Vec2, resolution int) *Chunk {
	return &Chunk{
		Position:   position,
		Size:       size,
		resolution: resolution,
		heightmap:  make([]float32, resolution*resolution),
	}
}

// Resolution returns the number of height samples along each side.
func (c *Chunk) Resolution() int {
	return c.resolution
}

// Heightmap returns a copy of the height samples, row-major.
func (c *Chunk) Heightmap() []float32 {
	return slices.Clone(c.heightmap)
}

// SetHeightmap installs heights as the chunk's heightmap. The chunk takes ownership of the slice.
//
// Parameters:
//   - heights: resolution*resolution samples, row-major
func (c *Chunk) SetHeightmap(heights []float32) {
	if len(heights) != c.resolution*c.resolution {
		panic(fmt.Sprintf("terrain: heightmap has %d samples, chunk expects %d", len(heights), c.resolution*c.resolution))
	}
	c.heightmap = heights
}

// HeightAt returns the sample at column x, row z.
func (c *Chunk) HeightAt(x, z int) float32 {
	return c.heightmap[z*c.resolution+x]
}

// HeightmapStaging returns the heightmap encoded as a single-channel float texture for upload.
//
// Returns:
//   - common.TextureStagingData: an R32Float texture of resolution x resolution texels
func (c *Chunk) HeightmapStaging() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: slices.Clone(common.SliceToBytes(c.heightmap)),
		Width:  uint32(c.resolution),
		Height: uint32(c.resolution),
		Format: wgpu.TextureFormatR32Float,
	}
}

// LocalBoundingBox returns the chunk's bounds relative to the terrain origin.
func (c *Chunk) LocalBoundingBox() common.AABB {
	box := common.EmptyAABB()
	if len(c.heightmap) == 0 {
		return box
	}
	lo, hi := slices.Min(c.heightmap), slices.Max(c.heightmap)
	box.AddPoint(common.NewVec3(c.Position.X, lo, c.Position.Y))
	box.AddPoint(common.NewVec3(c.Position.X+c.Size.X, hi, c.Position.Y+c.Size.Y))
	return box
}

// Fields exposes the chunk placement and masks to property paths.
func (c *Chunk) Fields() []property.Field {
	return []property.Field{
		property.Value("position", &c.Position),
		property.Value("size", &c.Size),
		property.ReadOnly("resolution", func() any { return c.resolution }),
		property.Slice("layerMasks", &c.LayerMasks),
	}
}

func (c *Chunk) clone() *Chunk {
	out := &Chunk{
		Position:   c.Position,
		Size:       c.Size,
		resolution: c.resolution,
		heightmap:  slices.Clone(c.heightmap),
		LayerMasks: make([]*material.Texture, len(c.LayerMasks)),
	}
	for i, m := range c.LayerMasks {
		out.LayerMasks[i] = m.DeepCopy()
	}
	return out
}

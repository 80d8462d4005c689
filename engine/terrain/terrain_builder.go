package terrain

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/config"
)

type terrainBuilder struct {
	name                string
	width, length       float32
	chunkSize           float32
	heightmapResolution int
	maskResolution      int
	maskPropertyName    string
}

// TerrainBuilderOption is a function that configures a terrain during construction.
type TerrainBuilderOption func(*terrainBuilder)

// WithName is an option builder that sets the node name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - TerrainBuilderOption: a function that applies the name option
func WithName(name string) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.name = name
	}
}

// WithSize is an option builder that sets the extent of the terrain along X and Z.
//
// Parameters:
//   - width: the extent along X
//   - length: the extent along Z
//
// Returns:
//   - TerrainBuilderOption: a function that applies the size option
func WithSize(width, length float32) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.width = width
		b.length = length
	}
}

// WithChunkSize is an option builder that sets the side length of a chunk.
//
// Parameters:
//   - size: the chunk side length
//
// Returns:
//   - TerrainBuilderOption: a function that applies the chunk size option
func WithChunkSize(size float32) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.chunkSize = size
	}
}

// WithHeightmapResolution is an option builder that sets the number of height samples per chunk side.
//
// Parameters:
//   - resolution: samples per side, at least 2
//
// Returns:
//   - TerrainBuilderOption: a function that applies the resolution option
func WithHeightmapResolution(resolution int) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.heightmapResolution = resolution
	}
}

// WithMaskResolution is an option builder that sets the number of mask texels per chunk side.
//
// Parameters:
//   - resolution: texels per side
//
// Returns:
//   - TerrainBuilderOption: a function that applies the resolution option
func WithMaskResolution(resolution int) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.maskResolution = resolution
	}
}

// WithConfig is an option builder that applies the chunk size, resolutions and mask property name
// from cfg.
//
// Parameters:
//   - cfg: the terrain section of the engine configuration
//
// Returns:
//   - TerrainBuilderOption: a function that applies the configuration
func WithConfig(cfg config.TerrainConfig) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.chunkSize = cfg.ChunkSize
		b.heightmapResolution = cfg.HeightmapResolution
		b.maskResolution = cfg.MaskResolution
		b.maskPropertyName = common.Coalesce(cfg.MaskPropertyName, b.maskPropertyName)
	}
}

// WithMaskPropertyName is an option builder that sets the material property new layers bind their
// chunk masks to.
//
// Parameters:
//   - name: the sampler property name
//
// Returns:
//   - TerrainBuilderOption: a function that applies the property name
func WithMaskPropertyName(name string) TerrainBuilderOption {
	return func(b *terrainBuilder) {
		b.maskPropertyName = name
	}
}

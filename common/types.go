// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds CPU-side pixel data for a texture pending GPU upload.
// Terrain masks and heightmaps keep their authoritative copy here; the renderer only ever reads it.
type TextureStagingData struct {
	// Pixels is the raw pixel buffer laid out row-major, BytesPerPixel bytes per texel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the GPU format the pixels are encoded in.
	Format wgpu.TextureFormat
}

// BytesPerPixel returns the texel size of the staging format. Unknown formats are treated as RGBA8.
//
// Returns:
//   - int: the number of bytes occupied by one texel
func (t TextureStagingData) BytesPerPixel() int {
	if t.Format == wgpu.TextureFormatR8Unorm {
		return 1
	}
	return 4
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// ClampedLinearSampler returns the sampler configuration used for terrain masks: bilinear filtering,
// clamped at the chunk edges so neighbouring chunks do not bleed into each other.
//
// Returns:
//   - SamplerStagingData: the sampler description
func ClampedLinearSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

package material

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a CPU-side pixel buffer that may be read by a renderer while an editor mutates it.
// All access goes through Read or Modify, which hold the buffer's lock for the duration of the
// callback; the buffer slice itself is never replaced, so handles to the texture stay valid.
type Texture struct {
	mu       *sync.RWMutex
	staging  common.TextureStagingData
	sampler  common.SamplerStagingData
	revision uint64
}

// NewTexture creates a texture that takes ownership of pixels.
//
// Parameters:
//   - width, height: the dimensions in texels
//   - format: the pixel format
//   - pixels: the initial pixel data, width*height*bytesPerPixel bytes long; nil allocates a zeroed buffer
//
// Returns:
//   - *Texture: the texture
func NewTexture(width, height uint32, format wgpu.TextureFormat, pixels []byte) *Texture {
	staging := common.TextureStagingData{Width: width, Height: height, Format: format}
	size := int(width) * int(height) * staging.BytesPerPixel()
	if pixels == nil {
		pixels = make([]byte, size)
	}
	if len(pixels) != size {
		panic("material: texture pixel buffer does not match its dimensions")
	}
	staging.Pixels = pixels
	return &Texture{
		mu:      &sync.RWMutex{},
		staging: staging,
		sampler: common.ClampedLinearSampler(),
	}
}

// NewMaskTexture creates a single-channel blend mask with every texel set to fill.
//
// Parameters:
//   - width, height: the dimensions in texels
//   - fill: the initial mask value
//
// Returns:
//   - *Texture: the mask
func NewMaskTexture(width, height uint32, fill byte) *Texture {
	pixels := make([]byte, int(width)*int(height))
	if fill != 0 {
		for i := range pixels {
			pixels[i] = fill
		}
	}
	return NewTexture(width, height, wgpu.TextureFormatR8Unorm, pixels)
}

// Width returns the width in texels.
func (t *Texture) Width() uint32 {
	return t.staging.Width
}

// Height returns the height in texels.
func (t *Texture) Height() uint32 {
	return t.staging.Height
}

// Format returns the pixel format.
func (t *Texture) Format() wgpu.TextureFormat {
	return t.staging.Format
}

// Sampler returns the sampler configuration the texture is bound with.
func (t *Texture) Sampler() common.SamplerStagingData {
	return t.sampler
}

// Len returns the size of the pixel buffer in bytes.
func (t *Texture) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.staging.Pixels)
}

// Revision returns a counter incremented by every Modify call. Renderers compare it to decide
// whether the GPU copy is stale.
func (t *Texture) Revision() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revision
}

// Read runs fn with shared access to the pixel buffer. fn must not retain or modify the slice.
//
// Parameters:
//   - fn: the callback receiving the pixels
func (t *Texture) Read(fn func(pixels []byte)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.staging.Pixels)
}

// Modify runs fn with exclusive access to the pixel buffer, so readers observe the edit as a
// single replacement. fn must not retain the slice.
//
// Parameters:
//   - fn: the callback mutating the pixels in place
func (t *Texture) Modify(fn func(pixels []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.staging.Pixels)
	t.revision++
}

// Data returns a copy of the pixel buffer.
func (t *Texture) Data() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.staging.Pixels)
}

// Staging returns a copy of the staging description suitable for handing to an uploader.
func (t *Texture) Staging() common.TextureStagingData {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := t.staging
	s.Pixels = slices.Clone(s.Pixels)
	return s
}

// DeepCopy returns an independent texture with the same contents.
func (t *Texture) DeepCopy() *Texture {
	s := t.Staging()
	c := NewTexture(s.Width, s.Height, s.Format, s.Pixels)
	c.sampler = t.sampler
	return c
}

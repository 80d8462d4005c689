package terrain

import (
	"image"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/anthonynsimon/bild/blur"
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
)

// Brushes compute the "after" snapshots of an edit without touching the terrain; the result is
// handed to an edit command together with the matching "before" snapshots.

// NoiseParams configures NoiseHeightmaps.
type NoiseParams struct {
	Seed int64
	// Amplitude is the maximum height added or removed.
	Amplitude float32
	// Frequency scales world coordinates before sampling; smaller values give broader hills.
	Frequency float64
	// Octaves is the number of noise layers summed together.
	Octaves int32
}

// NoiseHeightmaps returns every chunk's heightmap displaced by Perlin noise sampled in terrain
// space, so neighbouring chunks share their edge heights.
//
// Parameters:
//   - t: the terrain to read
//   - p: the noise parameters
//
// Returns:
//   - [][]float32: the displaced heightmaps in chunk order
func NoiseHeightmaps(t *Terrain, p NoiseParams) [][]float32 {
	noise := perlin.NewPerlin(2, 2, max(p.Octaves, 1), p.Seed)
	out := t.HeightmapSnapshots()
	for ci, c := range t.Chunks {
		forEachSample(c, func(i int, pos common.Vec2) {
			n := noise.Noise2D(float64(pos.X)*p.Frequency, float64(pos.Y)*p.Frequency)
			out[ci][i] += float32(n) * p.Amplitude
		})
	}
	return out
}

// RaiseHeightmaps returns every chunk's heightmap with delta added inside a circle, fading linearly
// to zero at the rim.
//
// Parameters:
//   - t: the terrain to read
//   - center: the brush center in terrain space (X, Z)
//   - radius: the brush radius
//   - delta: the height added at the center; negative values lower the terrain
//
// Returns:
//   - [][]float32: the edited heightmaps in chunk order
func RaiseHeightmaps(t *Terrain, center common.Vec2, radius, delta float32) [][]float32 {
	out := t.HeightmapSnapshots()
	for ci, c := range t.Chunks {
		forEachSample(c, func(i int, pos common.Vec2) {
			if k := falloff(pos, center, radius); k > 0 {
				out[ci][i] += delta * k
			}
		})
	}
	return out
}

// PaintMasks returns one layer's masks with value written inside a circle.
//
// Parameters:
//   - t: the terrain to read
//   - layer: the layer index
//   - center: the brush center in terrain space (X, Z)
//   - radius: the brush radius
//   - value: the mask value to paint
//
// Returns:
//   - [][]byte: the edited masks in chunk order
func PaintMasks(t *Terrain, layer int, center common.Vec2, radius float32, value byte) [][]byte {
	out := t.MaskSnapshots(layer)
	res := t.MaskResolution
	for ci, c := range t.Chunks {
		for z := 0; z < res; z++ {
			for x := 0; x < res; x++ {
				pos := common.Vec2{
					X: c.Position.X + (float32(x)+0.5)/float32(res)*c.Size.X,
					Y: c.Position.Y + (float32(z)+0.5)/float32(res)*c.Size.Y,
				}
				if falloff(pos, center, radius) > 0 {
					out[ci][z*res+x] = value
				}
			}
		}
	}
	return out
}

// SmoothMasks returns one layer's masks blurred with a gaussian kernel. Chunks are blurred
// independently.
//
// Parameters:
//   - t: the terrain to read
//   - layer: the layer index
//   - radius: the gaussian radius in texels
//
// Returns:
//   - [][]byte: the smoothed masks in chunk order
func SmoothMasks(t *Terrain, layer int, radius float64) [][]byte {
	out := t.MaskSnapshots(layer)
	res := t.MaskResolution
	for ci := range out {
		src := &image.Gray{Pix: out[ci], Stride: res, Rect: image.Rect(0, 0, res, res)}
		blurred := blur.Gaussian(src, radius)
		for i := range out[ci] {
			out[ci][i] = blurred.Pix[i*4]
		}
	}
	return out
}

// forEachSample visits every height sample of c with its position in terrain space.
func forEachSample(c *Chunk, fn func(i int, pos common.Vec2)) {
	res := c.resolution
	step := common.Vec2{X: c.Size.X / float32(res-1), Y: c.Size.Y / float32(res-1)}
	for z := 0; z < res; z++ {
		for x := 0; x < res; x++ {
			fn(z*res+x, common.Vec2{X: c.Position.X + float32(x)*step.X, Y: c.Position.Y + float32(z)*step.Y})
		}
	}
}

// falloff returns 1 at center, decreasing linearly to 0 at radius and beyond.
func falloff(pos, center common.Vec2, radius float32) float32 {
	if radius <= 0 {
		return 0
	}
	dx, dz := pos.X-center.X, pos.Y-center.Y
	d := math32.Sqrt(dx*dx + dz*dz)
	if d >= radius {
		return 0
	}
	return 1 - d/radius
}

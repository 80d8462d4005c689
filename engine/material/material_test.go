package material

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetProperty(t *testing.T) {
	m := Standard()

	require.NoError(t, m.SetProperty("roughness", Float(0.25)))
	v, ok := m.Property("roughness")
	require.True(t, ok)
	assert.Equal(t, Float(0.25), v)

	var missing *NoSuchPropertyError
	assert.True(t, errors.As(m.SetProperty("missing", Float(1)), &missing))
	assert.Equal(t, "missing", missing.Name)

	var mismatch *TypeMismatchError
	require.True(t, errors.As(m.SetProperty("roughness", Int(1)), &mismatch))
	assert.Equal(t, "Float", mismatch.Expected.Kind())
	assert.Equal(t, "Int", mismatch.Given.Kind())
}

func TestPropertyNamesSorted(t *testing.T) {
	assert.Equal(t,
		[]string{"diffuseTexture", "maskTexture", "normalTexture", "texCoordScale"},
		StandardTerrainLayer().PropertyNames())
}

func TestMaterialFieldsByPath(t *testing.T) {
	m := Standard()

	require.NoError(t, property.SetByPath(m, "metallic", float32(0.5)))
	require.NoError(t, property.SetByPath(m, "texCoordScale", common.Vec2{X: 2, Y: 3}))
	require.NoError(t, property.SetByPath(m, "diffuseColor", Color{R: 1, A: 255}))

	v, err := property.GetByPath(m, "metallic")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)

	v, _ = m.Property("texCoordScale")
	assert.Equal(t, Vector2{X: 2, Y: 3}, v)

	assert.ErrorIs(t, property.SetByPath(m, "metallic", int32(1)), property.ErrInvalidValue)
	assert.ErrorIs(t, property.SetByPath(m, "metallic", "x"), property.ErrInvalidValue)
}

func TestCloneIsIndependent(t *testing.T) {
	m := Standard()
	c := m.Clone()

	require.NoError(t, c.SetProperty("roughness", Float(0)))

	v, _ := m.Property("roughness")
	assert.Equal(t, Float(1), v)
}

func TestSharedMaterial(t *testing.T) {
	s := NewSharedMaterial(Standard())
	assert.Equal(t, 1, s.UseCount())

	same := s.Share()
	assert.Same(t, s, same)
	assert.Equal(t, 2, s.UseCount())
	assert.Equal(t, 1, same.Release())

	cp := s.DeepCopy()
	assert.NotEqual(t, s.Key(), cp.Key())
	assert.Equal(t, 1, cp.UseCount())

	cp.With(func(m Material) { require.NoError(t, m.SetProperty("metallic", Float(1))) })
	s.With(func(m Material) {
		v, _ := m.Property("metallic")
		assert.Equal(t, Float(0), v)
	})

	require.NoError(t, property.SetByPath(s, "roughness", float32(0.1)))
	v, err := property.GetByPath(s, "roughness")
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), v)
}

func TestSharedMaterialReleasesLockOnPanic(t *testing.T) {
	s := NewSharedMaterial(Standard())

	assert.Panics(t, func() { s.With(func(Material) { panic("boom") }) })
	assert.NotPanics(t, func() { s.With(func(Material) {}) })
}

func TestTexture(t *testing.T) {
	tex := NewMaskTexture(4, 2, 7)
	assert.Equal(t, wgpu.TextureFormatR8Unorm, tex.Format())
	assert.Equal(t, 8, tex.Len())
	assert.Equal(t, []byte{7, 7, 7, 7, 7, 7, 7, 7}, tex.Data())

	tex.Modify(func(p []byte) { p[3] = 200 })
	assert.Equal(t, uint64(1), tex.Revision())

	cp := tex.DeepCopy()
	cp.Modify(func(p []byte) { p[3] = 0 })
	tex.Read(func(p []byte) { assert.Equal(t, byte(200), p[3]) })

	data := tex.Data()
	data[0] = 99
	assert.Equal(t, byte(7), tex.Data()[0])

	f := NewTexture(2, 2, wgpu.TextureFormatR32Float, nil)
	assert.Equal(t, 16, f.Len())
	assert.Panics(t, func() { NewTexture(2, 2, wgpu.TextureFormatR8Unorm, []byte{1}) })
}

func TestTextureConcurrentAccess(t *testing.T) {
	tex := NewMaskTexture(16, 16, 0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tex.Modify(func(p []byte) {
				for j := range p {
					p[j]++
				}
			})
		}()
		go func() {
			defer wg.Done()
			tex.Read(func(p []byte) {
				first := p[0]
				for _, b := range p {
					assert.Equal(t, first, b, "readers never observe a partial edit")
				}
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, byte(8), tex.Data()[0])
}

func TestToPropertyValue(t *testing.T) {
	v, ok := ToPropertyValue(common.Vec3{X: 1})
	require.True(t, ok)
	assert.Equal(t, Vector3{X: 1}, v)

	_, ok = ToPropertyValue(1.0)
	assert.False(t, ok)

	assert.Equal(t, float32(2), Float(2).Raw())
}

func TestDefaultFactory(t *testing.T) {
	s := DefaultFactory{}.TerrainLayerMaterial()
	s.With(func(m Material) {
		v, ok := m.Property("maskTexture")
		require.True(t, ok)
		assert.Equal(t, "Sampler", v.Kind())
	})
}

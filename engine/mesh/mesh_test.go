package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/animation"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMesh() (*Mesh, *material.SharedMaterial) {
	mat := material.NewSharedMaterial(material.Standard())
	m := NewMesh(
		WithName("crate"),
		WithSurface(mat, common.NewVec3(-1, 0, -1), common.NewVec3(1, 1, 1)),
		WithSurface(mat.Share(), common.NewVec3(0, 1, 0), common.NewVec3(1, 3, 1)),
	)
	return m, mat
}

func TestLocalBoundingBoxIsSurfaceUnion(t *testing.T) {
	m, _ := newTestMesh()
	box := m.LocalBoundingBox()
	assert.Equal(t, common.NewVec3(-1, 0, -1), box.Min)
	assert.Equal(t, common.NewVec3(1, 3, 1), box.Max)
}

func TestCloneSharesMaterials(t *testing.T) {
	m, mat := newTestMesh()
	require.Equal(t, 2, mat.UseCount())

	n := node.New(m)
	clone := node.MustCast[*Mesh](n.Clone())
	assert.Equal(t, 4, mat.UseCount())
	assert.Same(t, mat, clone.Surfaces[0].Material)
	assert.NotSame(t, m.Surfaces[0], clone.Surfaces[0])

	clone.OnRemovedFromGraph(node.None, nil)
	assert.Equal(t, 2, mat.UseCount())
}

func TestMaterialPropertyByPath(t *testing.T) {
	m, mat := newTestMesh()
	n := node.New(m)

	require.NoError(t, n.SetFieldByPath("surfaces[1].material.metallic", float32(0.5)))

	got, err := n.FieldByPath("surfaces[0].material.metallic")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), got)

	mat.With(func(mm material.Material) {
		v, ok := mm.Property("metallic")
		require.True(t, ok)
		assert.Equal(t, material.Float(0.5), v)
	})
}

func TestValidateSurfaces(t *testing.T) {
	m := NewMesh(WithSurface(nil, common.NewVec3(1, 1, 1), common.NewVec3(0, 0, 0)))
	problems := m.Validate(nil)
	assert.Equal(t, []string{"surface 0 has no material", "surface 0 has inverted bounds"}, problems)
}

func TestMissingMaterialPathIsAnError(t *testing.T) {
	m := NewMesh(WithSurface(nil, common.NewVec3(0, 0, 0), common.NewVec3(1, 1, 1)))
	n := node.New(m)

	var pathErr *property.InvalidPathError
	_, err := n.FieldByPath("surfaces[0].material.diffuseColor")
	assert.ErrorAs(t, err, &pathErr)
	err = n.SetFieldByPath("surfaces[0].material.metallic", float32(1))
	assert.ErrorAs(t, err, &pathErr)
}

func TestApplySkipsMissingMaterial(t *testing.T) {
	l, hook := test.NewNullLogger()
	common.SetLogger(l)
	t.Cleanup(func() { common.SetLogger(nil) })

	m := NewMesh(WithSurface(nil, common.NewVec3(0, 0, 0), common.NewVec3(1, 1, 1)))
	n := node.New(m)
	pose := animation.NewBoundValueCollection(
		animation.BoundValue{
			Binding: animation.Property("surfaces[0].material.metallic", animation.F32),
			Value:   animation.Real(0.25),
		},
		animation.BoundValue{Binding: animation.Position(), Value: animation.Vector3(common.NewVec3(1, 2, 3))},
	)

	require.NotPanics(t, func() { pose.Apply(n) })

	assert.Equal(t, common.NewVec3(1, 2, 3), m.LocalTransform.Position)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "surfaces[0].material.metallic")
}

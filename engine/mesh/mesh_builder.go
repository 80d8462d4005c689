package mesh

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
)

// MeshBuilderOption is a functional option for configuring a Mesh.
type MeshBuilderOption func(m *Mesh)

// WithName sets the node name.
func WithName(name string) MeshBuilderOption {
	return func(m *Mesh) {
		m.Name = name
	}
}

// WithSurface appends a surface drawn with mat. The mesh takes over the caller's reference.
//
// Parameters:
//   - mat: the surface material
//   - min, max: the surface bounds in local space
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithSurface(mat *material.SharedMaterial, min, max common.Vec3) MeshBuilderOption {
	return func(m *Mesh) {
		m.Surfaces = append(m.Surfaces, &Surface{Material: mat, BoundsMin: min, BoundsMax: max})
	}
}

// WithCastShadows sets whether the mesh is drawn into shadow maps.
func WithCastShadows(cast bool) MeshBuilderOption {
	return func(m *Mesh) {
		m.CastShadows = cast
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Package mesh implements the static mesh node: a list of surfaces, each drawn with a shared material.
package mesh

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// TypeUUID identifies the Mesh variant.
var TypeUUID = uuid.MustParse("5c9d6b3f-8a5e-4d1b-a02c-5b7a9c1d3e4f")

// Surface is one drawable part of a mesh. Geometry lives with the renderer; the scene only keeps
// the bounds and the material.
type Surface struct {
	Material  *material.SharedMaterial
	BoundsMin common.Vec3
	BoundsMax common.Vec3
}

// Fields exposes the surface material to property paths, e.g. "surfaces[0].material.diffuseColor".
func (s *Surface) Fields() []property.Field {
	return []property.Field{
		material.NestedField("material", s.Material),
		property.ReadOnly("boundsMin", func() any { return s.BoundsMin }),
		property.ReadOnly("boundsMax", func() any { return s.BoundsMax }),
	}
}

// Bounds returns the surface bounds as a box.
func (s *Surface) Bounds() common.AABB {
	return common.AABB{Min: s.BoundsMin, Max: s.BoundsMax}
}

// Mesh is a node made of surfaces. Surfaces sharing a material hold one reference each.
type Mesh struct {
	node.Base
	Surfaces    []*Surface
	CastShadows bool
}

var (
	_ node.Variant   = &Mesh{}
	_ node.Cloner    = &Mesh{}
	_ node.Detacher  = &Mesh{}
	_ node.Validator = &Mesh{}
)

// NewMesh creates a mesh configured by the provided options.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(options ...MeshBuilderOption) *Mesh {
	m := &Mesh{Base: node.NewBase("Mesh"), CastShadows: true}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Mesh) TypeUUID() uuid.UUID { return TypeUUID }

func (m *Mesh) TypeName() string { return "Mesh" }

func (m *Mesh) Fields() []property.Field {
	return append(m.Base.Fields(),
		property.Slice("surfaces", &m.Surfaces),
		property.Value("castShadows", &m.CastShadows),
	)
}

// LocalBoundingBox returns the union of the surface bounds.
func (m *Mesh) LocalBoundingBox() common.AABB {
	box := common.EmptyAABB()
	for _, s := range m.Surfaces {
		box = box.Union(s.Bounds())
	}
	return box
}

// Validate reports surfaces without a material or with inverted bounds.
func (m *Mesh) Validate(node.GraphView) []string {
	var problems []string
	for i, s := range m.Surfaces {
		if s.Material == nil {
			problems = append(problems, "surface "+itoa(i)+" has no material")
		}
		if !s.Bounds().IsValid() {
			problems = append(problems, "surface "+itoa(i)+" has inverted bounds")
		}
	}
	return problems
}

// CloneVariant copies the mesh. Surfaces are duplicated but their materials are shared with the
// original, each gaining one owner.
func (m *Mesh) CloneVariant() node.Variant {
	out := *m
	out.Surfaces = make([]*Surface, len(m.Surfaces))
	for i, s := range m.Surfaces {
		cp := *s
		if cp.Material != nil {
			cp.Material = cp.Material.Share()
		}
		out.Surfaces[i] = &cp
	}
	return &out
}

// OnRemovedFromGraph releases the surface materials.
func (m *Mesh) OnRemovedFromGraph(node.Handle, *node.SyncContext) {
	for _, s := range m.Surfaces {
		if s.Material != nil {
			s.Material.Release()
		}
	}
}

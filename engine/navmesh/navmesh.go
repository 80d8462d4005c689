// Package navmesh implements the navigational mesh node used for path finding.
package navmesh

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// TypeUUID identifies the NavigationalMesh variant.
var TypeUUID = uuid.MustParse("4f8a5e2c-7d4b-4a0e-b3fb-4e6d8f0a2b3c")

// Triangle indexes three vertices of a navigational mesh.
type Triangle [3]uint32

// NavigationalMesh is a walkable surface made of triangles in local space.
type NavigationalMesh struct {
	node.Base
	Vertices  []common.Vec3
	Triangles []Triangle
}

var (
	_ node.Variant   = &NavigationalMesh{}
	_ node.Validator = &NavigationalMesh{}
)

// NewNavigationalMesh creates a navigational mesh from raw geometry.
//
// Parameters:
//   - name: the node name
//   - vertices: the vertex positions
//   - triangles: the triangle index triples
//
// Returns:
//   - *NavigationalMesh: the mesh
func NewNavigationalMesh(name string, vertices []common.Vec3, triangles []Triangle) *NavigationalMesh {
	return &NavigationalMesh{Base: node.NewBase(name), Vertices: vertices, Triangles: triangles}
}

func (m *NavigationalMesh) TypeUUID() uuid.UUID { return TypeUUID }
func (m *NavigationalMesh) TypeName() string    { return "NavigationalMesh" }

func (m *NavigationalMesh) Fields() []property.Field {
	return append(m.Base.Fields(),
		property.Slice("vertices", &m.Vertices),
		property.ReadOnly("triangleCount", func() any { return len(m.Triangles) }),
	)
}

func (m *NavigationalMesh) LocalBoundingBox() common.AABB {
	box := common.EmptyAABB()
	for _, v := range m.Vertices {
		box.AddPoint(v)
	}
	return box
}

// Validate reports triangles that reference missing vertices or repeat a vertex.
func (m *NavigationalMesh) Validate(node.GraphView) []string {
	var problems []string
	n := uint32(len(m.Vertices))
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx >= n {
				problems = append(problems, fmt.Sprintf("triangle %d references vertex %d, but the mesh has %d vertices", i, idx, n))
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			problems = append(problems, fmt.Sprintf("triangle %d is degenerate", i))
		}
	}
	return problems
}

// TriangleCentroid returns the local-space centre of triangle i.
//
// Parameters:
//   - i: the triangle index
//
// Returns:
//   - common.Vec3: the centroid
func (m *NavigationalMesh) TriangleCentroid(i int) common.Vec3 {
	tri := m.Triangles[i]
	a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
	return common.NewVec3((a.X+b.X+c.X)/3, (a.Y+b.Y+c.Y)/3, (a.Z+b.Z+c.Z)/3)
}

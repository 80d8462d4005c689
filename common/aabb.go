package common

import (
	"github.com/chewxy/math32"
)

// AABB is an axis-aligned bounding box. A box whose Min exceeds its Max on any axis is empty.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an inverted box that any point or box can be added to.
//
// Returns:
//   - AABB: the empty box
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsValid reports whether the box encloses at least one point.
func (b AABB) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// AddPoint grows the box to enclose p.
//
// Parameters:
//   - p: the point to include
func (b *AABB) AddPoint(p Vec3) {
	b.Min.X = math32.Min(b.Min.X, p.X)
	b.Min.Y = math32.Min(b.Min.Y, p.Y)
	b.Min.Z = math32.Min(b.Min.Z, p.Z)
	b.Max.X = math32.Max(b.Max.X, p.X)
	b.Max.Y = math32.Max(b.Max.Y, p.Y)
	b.Max.Z = math32.Max(b.Max.Z, p.Z)
}

// Union returns the smallest box enclosing both b and other. Invalid operands are ignored.
//
// Parameters:
//   - other: the box to merge with
//
// Returns:
//   - AABB: the merged box
func (b AABB) Union(other AABB) AABB {
	if !other.IsValid() {
		return b
	}
	if !b.IsValid() {
		return other
	}
	out := b
	out.AddPoint(other.Min)
	out.AddPoint(other.Max)
	return out
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return Vec3{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2, Z: (b.Min.Z + b.Max.Z) / 2}
}

// Transform returns the axis-aligned box enclosing all eight corners of b after transformation by m.
//
// Parameters:
//   - m: a column-major 4x4 matrix
//
// Returns:
//   - AABB: the transformed bounds, or b unchanged when b is invalid
func (b AABB) Transform(m []float32) AABB {
	if !b.IsValid() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out.AddPoint(TransformPoint(m, corner))
	}
	return out
}

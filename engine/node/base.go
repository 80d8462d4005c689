package node

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Base holds the state shared by every node variant. Variants embed it by value.
// Exported fields are plain data and are copied on clone; the graph links are owned by the graph
// and are never copied.
type Base struct {
	Name           string
	Tag            string
	Visible        bool
	LocalTransform Transform
	// InstanceID is unique per node instance; clones receive a fresh one.
	InstanceID uuid.UUID

	parent     Handle
	children   []Handle
	global     common.Matrix4
	propagated bool
}

// NewBase creates a visible Base with an identity transform.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - Base: the initialized base
func NewBase(name string) Base {
	return Base{
		Name:           name,
		Visible:        true,
		LocalTransform: IdentityTransform(),
		InstanceID:     uuid.New(),
		global:         common.IdentityMatrix(),
	}
}

// AsBase returns b itself; it lets every embedding variant satisfy Variant.AsBase.
func (b *Base) AsBase() *Base {
	return b
}

// LocalBoundingBox returns an empty box. Variants with geometry override it.
func (b *Base) LocalBoundingBox() common.AABB {
	return common.EmptyAABB()
}

// Components returns no components. Variants exposing shared components override it.
func (b *Base) Components() []any {
	return nil
}

// Fields exposes the base properties to property paths.
//
// Returns:
//   - []property.Field: name, tag, visible, position, scale and rotation
func (b *Base) Fields() []property.Field {
	return []property.Field{
		property.Value("name", &b.Name),
		property.Value("tag", &b.Tag),
		property.Value("visible", &b.Visible),
		property.Value("position", &b.LocalTransform.Position),
		property.Value("scale", &b.LocalTransform.Scale),
		property.Value("rotation", &b.LocalTransform.Rotation),
	}
}

// Parent returns the handle of the parent node, or None for roots.
func (b *Base) Parent() Handle {
	return b.parent
}

// Children returns a copy of the child handles in insertion order.
func (b *Base) Children() []Handle {
	return slices.Clone(b.children)
}

// GlobalTransform returns the world matrix computed by the last propagation pass.
func (b *Base) GlobalTransform() common.Matrix4 {
	return b.global
}

// GlobalPosition returns the translation part of the global transform.
func (b *Base) GlobalPosition() common.Vec3 {
	return common.NewVec3(b.global[12], b.global[13], b.global[14])
}

// Propagated reports whether the global transform has been computed at least once since the node
// entered a graph. World-space queries are stale until it returns true.
func (b *Base) Propagated() bool {
	return b.propagated
}

// SetParent records the parent link. Only the owning graph should call it.
func (b *Base) SetParent(h Handle) {
	b.parent = h
}

// AddChild appends a child link. Only the owning graph should call it.
func (b *Base) AddChild(h Handle) {
	b.children = append(b.children, h)
}

// RemoveChild drops a child link. Only the owning graph should call it.
func (b *Base) RemoveChild(h Handle) {
	b.children = slices.DeleteFunc(b.children, func(c Handle) bool { return c == h })
}

// SetGlobalTransform stores the result of a propagation pass and reports whether it changed.
// Only the owning graph should call it.
//
// Parameters:
//   - m: the new world matrix
//
// Returns:
//   - bool: true when m differs from the previous global transform or this is the first pass
func (b *Base) SetGlobalTransform(m common.Matrix4) bool {
	changed := !b.propagated || b.global != m
	b.global = m
	b.propagated = true
	return changed
}

// ResetLinks clears every graph-owned field so the base can enter a graph as a fresh node.
func (b *Base) ResetLinks() {
	b.parent = None
	b.children = nil
	b.global = common.IdentityMatrix()
	b.propagated = false
}

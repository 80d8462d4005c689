// Package node implements the polymorphic scene node: an owning container for exactly one concrete
// variant (mesh, light, terrain, rigid body, ...) behind the Variant capability interface.
package node

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Node owns one variant payload and dispatches the optional lifecycle hooks to it.
type Node struct {
	variant Variant
}

var _ property.Reflector = &Node{}

// New wraps a variant in a Node. The variant must be a non-nil pointer.
//
// Parameters:
//   - v: the concrete variant payload
//
// Returns:
//   - *Node: the owning node
func New(v Variant) *Node {
	if v == nil {
		panic("node: cannot create a node without a variant")
	}
	return &Node{variant: v}
}

// Variant returns the type-erased payload.
func (n *Node) Variant() Variant {
	return n.variant
}

// AsBase returns the shared base state of the payload.
func (n *Node) AsBase() *Base {
	return n.variant.AsBase()
}

// TypeUUID returns the stable identifier of the payload's concrete type.
func (n *Node) TypeUUID() uuid.UUID {
	return n.variant.TypeUUID()
}

// TypeName returns the human-readable name of the payload's concrete type.
func (n *Node) TypeName() string {
	return n.variant.TypeName()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.variant.TypeName(), n.AsBase().Name)
}

// LocalBoundingBox returns the payload's bounds in local space.
func (n *Node) LocalBoundingBox() common.AABB {
	return n.variant.LocalBoundingBox()
}

// WorldBoundingBox returns the local bounds transformed by the global transform. Until the owning
// graph has run a propagation pass the global transform is the identity, so the result is the
// untransformed local box; see Base.Propagated.
//
// Returns:
//   - common.AABB: the world-space bounds
func (n *Node) WorldBoundingBox() common.AABB {
	global := n.AsBase().GlobalTransform()
	return n.variant.LocalBoundingBox().Transform(global[:])
}

// Fields delegates to the payload so a *Node can be used as the root of a property path.
func (n *Node) Fields() []property.Field {
	return n.variant.Fields()
}

// SetFieldByPath writes value into the property addressed by path.
//
// Parameters:
//   - path: a dotted/indexed property path, e.g. "surfaces[0].material.diffuseColor"
//   - value: the boxed value; its type must match the field's declared type
//
// Returns:
//   - error: a *property.InvalidPathError or an error wrapping property.ErrInvalidValue
func (n *Node) SetFieldByPath(path string, value any) error {
	return property.SetByPath(n.variant, path, value)
}

// FieldByPath reads the property addressed by path.
func (n *Node) FieldByPath(path string) (any, error) {
	return property.GetByPath(n.variant, path)
}

// OnRemovedFromGraph runs the Detacher hook if the payload has one.
func (n *Node) OnRemovedFromGraph(self Handle, ctx *SyncContext) {
	if d, ok := n.variant.(Detacher); ok {
		d.OnRemovedFromGraph(self, ctx)
	}
}

// SyncNative runs the NativeSyncer hook if the payload has one.
func (n *Node) SyncNative(self Handle, ctx *SyncContext) {
	if s, ok := n.variant.(NativeSyncer); ok {
		s.SyncNative(self, ctx)
	}
}

// SyncTransform runs the TransformSyncer hook if the payload has one.
func (n *Node) SyncTransform(self Handle, global common.Matrix4, ctx *SyncContext) {
	if s, ok := n.variant.(TransformSyncer); ok {
		s.SyncTransform(self, global, ctx)
	}
}

// Update runs the Updater hook if the payload has one.
func (n *Node) Update(ctx *UpdateContext) {
	if u, ok := n.variant.(Updater); ok {
		u.Update(ctx)
	}
}

// Validate runs the Validator hook if the payload has one.
//
// Parameters:
//   - nodes: the graph the node lives in
//
// Returns:
//   - []string: the problems found, nil when the node is consistent
func (n *Node) Validate(nodes GraphView) []string {
	if v, ok := n.variant.(Validator); ok {
		return v.Validate(nodes)
	}
	return nil
}

// IsAlive reports whether the node should stay in the graph. Payloads without a Mortal hook live forever.
func (n *Node) IsAlive() bool {
	if m, ok := n.variant.(Mortal); ok {
		return m.IsAlive()
	}
	return true
}

// Clone returns a deep copy of the node. Handles to other nodes stored inside the payload are
// copied verbatim; the clone has no graph links and a fresh InstanceID.
//
// Returns:
//   - *Node: the independent copy
func (n *Node) Clone() *Node {
	var v Variant
	if c, ok := n.variant.(Cloner); ok {
		v = c.CloneVariant()
	} else {
		v = copyVariant(n.variant)
	}

	b := v.AsBase()
	b.ResetLinks()
	b.InstanceID = uuid.New()
	return &Node{variant: v}
}

package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Handle identifies a node inside its owning graph. The zero Handle refers to no node.
type Handle uint64

// None is the handle that refers to no node.
const None Handle = 0

// IsSome reports whether h refers to a node.
func (h Handle) IsSome() bool {
	return h != None
}

// GraphView is the read-only view of the owning graph handed to node hooks.
type GraphView interface {
	// Contains reports whether h refers to a live node.
	Contains(h Handle) bool

	// Get returns the node stored under h.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - *Node: the node, or nil
	//   - bool: false when h does not refer to a live node
	Get(h Handle) (*Node, bool)
}

// NativeWorld mirrors node state into an external subsystem such as a physics or audio backend.
type NativeWorld interface {
	// SyncNative pushes the variant's current properties into the backing native object.
	SyncNative(h Handle, v Variant)

	// SyncTransform pushes a new global transform into the backing native object.
	SyncTransform(h Handle, global common.Matrix4)

	// Remove destroys the backing native object, if any.
	Remove(h Handle)
}

// SyncContext is passed to hooks that mirror node state into external subsystems.
type SyncContext struct {
	Nodes   GraphView
	Physics NativeWorld
	Sound   NativeWorld
}

// UpdateContext is passed to per-frame update hooks.
type UpdateContext struct {
	// FrameSize is the size of the client area the scene is rendered into.
	FrameSize common.Vec2
	// DeltaTime is the time in seconds since the previous update.
	DeltaTime float32
	Nodes     GraphView
}

// Variant is the capability set every concrete node payload implements. Most methods are provided
// by embedding Base; variants override LocalBoundingBox, Components and Fields as needed.
type Variant interface {
	property.Reflector

	// AsBase returns the shared node state embedded in the variant.
	//
	// Returns:
	//   - *Base: the embedded base
	AsBase() *Base

	// TypeUUID returns the stable identifier of the concrete variant type.
	//
	// Returns:
	//   - uuid.UUID: the type identifier
	TypeUUID() uuid.UUID

	// TypeName returns a human-readable name of the concrete variant type.
	TypeName() string

	// LocalBoundingBox returns the variant's bounds in its own coordinate space.
	//
	// Returns:
	//   - common.AABB: the local bounds, invalid when the variant has no extent
	LocalBoundingBox() common.AABB

	// Components lists the sub-components the variant exposes to QueryComponent.
	//
	// Returns:
	//   - []any: pointers to the exposed components
	Components() []any
}

// Detacher is implemented by variants that clean up after leaving the graph.
type Detacher interface {
	OnRemovedFromGraph(self Handle, ctx *SyncContext)
}

// NativeSyncer is implemented by variants backed by a native object in an external subsystem.
type NativeSyncer interface {
	SyncNative(self Handle, ctx *SyncContext)
}

// TransformSyncer is implemented by variants that must react to a change of their global transform.
type TransformSyncer interface {
	SyncTransform(self Handle, global common.Matrix4, ctx *SyncContext)
}

// Updater is implemented by variants with per-frame logic.
type Updater interface {
	Update(ctx *UpdateContext)
}

// Validator is implemented by variants that can diagnose their own configuration.
type Validator interface {
	// Validate returns human-readable descriptions of every problem found, or nil.
	Validate(nodes GraphView) []string
}

// Mortal is implemented by variants that can decide to be removed from the graph.
type Mortal interface {
	IsAlive() bool
}

// Cloner is implemented by variants that need custom deep copy logic, typically because they hold
// shared resources.
type Cloner interface {
	CloneVariant() Variant
}

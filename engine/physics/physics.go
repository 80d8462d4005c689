// Package physics implements the rigid body, collider and joint nodes. The simulation itself lives
// in a native backend reached through node.NativeWorld; these nodes only mirror their state into it.
package physics

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
)

// Type identifiers of the physics variants.
var (
	RigidBodyTypeUUID = uuid.MustParse("6d0e7c4a-9b6f-4e2c-b13d-6c8b0d2e4f5a")
	ColliderTypeUUID  = uuid.MustParse("7e1f8d5b-0c7a-4f3d-8c4e-7d9c1e3f5a6b")
	JointTypeUUID     = uuid.MustParse("8f2a9e6c-1d8b-4a4e-9d5f-8e0d2f4a6b7c")
)

// RigidBodyKind selects how the backend integrates a body.
type RigidBodyKind uint8

const (
	// Dynamic bodies are moved by forces and collisions.
	Dynamic RigidBodyKind = iota
	// Static bodies never move.
	Static
	// Kinematic bodies are moved only by their node transform.
	Kinematic
)

// ShapeKind selects the collider geometry.
type ShapeKind uint8

const (
	// Cuboid uses Size as half extents.
	Cuboid ShapeKind = iota
	// Ball uses Size.X as radius.
	Ball
	// Capsule uses Size.X as radius and Size.Y as half height.
	Capsule
)

// JointKind selects the constraint between two bodies.
type JointKind uint8

const (
	FixedJoint JointKind = iota
	BallJoint
	RevoluteJoint
	PrismaticJoint
)

// RigidBody is a simulated body. Colliders attached as direct children give it a shape.
type RigidBody struct {
	node.Base
	Kind            RigidBodyKind
	Mass            float32
	LinearVelocity  common.Vec3
	AngularVelocity common.Vec3
	GravityScale    float32
}

// Collider describes the contact geometry of its parent rigid body.
type Collider struct {
	node.Base
	Shape       ShapeKind
	Size        common.Vec3
	Friction    float32
	Restitution float32
	IsSensor    bool
}

// Joint constrains Body1 relative to Body2. Both handles refer to rigid bodies in the same graph.
type Joint struct {
	node.Base
	Kind  JointKind
	Body1 node.Handle
	Body2 node.Handle
}

var (
	_ node.Variant         = &RigidBody{}
	_ node.NativeSyncer    = &RigidBody{}
	_ node.TransformSyncer = &RigidBody{}
	_ node.Detacher        = &RigidBody{}
	_ node.Variant         = &Collider{}
	_ node.NativeSyncer    = &Collider{}
	_ node.Detacher        = &Collider{}
	_ node.Validator       = &Collider{}
	_ node.Variant         = &Joint{}
	_ node.NativeSyncer    = &Joint{}
	_ node.Detacher        = &Joint{}
	_ node.Validator       = &Joint{}
)

// NewRigidBody creates a dynamic body of unit mass.
func NewRigidBody(name string, kind RigidBodyKind) *RigidBody {
	return &RigidBody{Base: node.NewBase(name), Kind: kind, Mass: 1, GravityScale: 1}
}

// NewCollider creates a collider with default friction.
func NewCollider(name string, shape ShapeKind, size common.Vec3) *Collider {
	return &Collider{Base: node.NewBase(name), Shape: shape, Size: size, Friction: 0.5}
}

// NewJoint creates a joint between two rigid bodies.
func NewJoint(name string, kind JointKind, body1, body2 node.Handle) *Joint {
	return &Joint{Base: node.NewBase(name), Kind: kind, Body1: body1, Body2: body2}
}

func (b *RigidBody) TypeUUID() uuid.UUID { return RigidBodyTypeUUID }
func (b *RigidBody) TypeName() string    { return "RigidBody" }

func (b *RigidBody) Fields() []property.Field {
	return append(b.Base.Fields(),
		property.Value("kind", &b.Kind),
		property.Value("mass", &b.Mass),
		property.Value("linearVelocity", &b.LinearVelocity),
		property.Value("angularVelocity", &b.AngularVelocity),
		property.Value("gravityScale", &b.GravityScale),
	)
}

func (b *RigidBody) SyncNative(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.SyncNative(self, b)
	}
}

func (b *RigidBody) SyncTransform(self node.Handle, global common.Matrix4, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.SyncTransform(self, global)
	}
}

func (b *RigidBody) OnRemovedFromGraph(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.Remove(self)
	}
}

func (c *Collider) TypeUUID() uuid.UUID { return ColliderTypeUUID }
func (c *Collider) TypeName() string    { return "Collider" }

func (c *Collider) Fields() []property.Field {
	return append(c.Base.Fields(),
		property.Value("shape", &c.Shape),
		property.Value("size", &c.Size),
		property.Value("friction", &c.Friction),
		property.Value("restitution", &c.Restitution),
		property.Value("isSensor", &c.IsSensor),
	)
}

// LocalBoundingBox returns the box enclosing the collider shape.
func (c *Collider) LocalBoundingBox() common.AABB {
	var h common.Vec3
	switch c.Shape {
	case Ball:
		h = common.NewVec3(c.Size.X, c.Size.X, c.Size.X)
	case Capsule:
		h = common.NewVec3(c.Size.X, c.Size.Y+c.Size.X, c.Size.X)
	default:
		h = c.Size
	}
	return common.AABB{Min: common.NewVec3(-h.X, -h.Y, -h.Z), Max: h}
}

func (c *Collider) SyncNative(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.SyncNative(self, c)
	}
}

func (c *Collider) OnRemovedFromGraph(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.Remove(self)
	}
}

// Validate reports a collider that is not a direct child of a rigid body.
func (c *Collider) Validate(nodes node.GraphView) []string {
	parent, ok := nodes.Get(c.Parent())
	if !ok || !node.Is[*RigidBody](parent) {
		return []string{"collider must be a direct child of a rigid body"}
	}
	if c.Friction < 0 {
		return []string{fmt.Sprintf("collider friction must not be negative, got %g", c.Friction)}
	}
	return nil
}

func (j *Joint) TypeUUID() uuid.UUID { return JointTypeUUID }
func (j *Joint) TypeName() string    { return "Joint" }

func (j *Joint) Fields() []property.Field {
	return append(j.Base.Fields(),
		property.Value("kind", &j.Kind),
		property.Value("body1", &j.Body1),
		property.Value("body2", &j.Body2),
	)
}

func (j *Joint) SyncNative(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.SyncNative(self, j)
	}
}

func (j *Joint) OnRemovedFromGraph(self node.Handle, ctx *node.SyncContext) {
	if ctx.Physics != nil {
		ctx.Physics.Remove(self)
	}
}

// Validate reports bodies that are unset, missing from the graph or not rigid bodies.
func (j *Joint) Validate(nodes node.GraphView) []string {
	var problems []string
	for i, h := range []node.Handle{j.Body1, j.Body2} {
		n, ok := nodes.Get(h)
		switch {
		case !h.IsSome():
			problems = append(problems, fmt.Sprintf("joint body %d is not set", i+1))
		case !ok:
			problems = append(problems, fmt.Sprintf("joint body %d refers to a missing node %d", i+1, h))
		case !node.Is[*RigidBody](n):
			problems = append(problems, fmt.Sprintf("joint body %d (%s) is not a rigid body", i+1, n))
		}
	}
	if j.Body1.IsSome() && j.Body1 == j.Body2 {
		problems = append(problems, "joint connects a body to itself")
	}
	return problems
}

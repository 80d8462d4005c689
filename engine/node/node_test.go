package node

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gadgetTypeUUID = uuid.MustParse("8b1a4d0e-3c47-4a8f-9f55-7f3ad8b0c001")
	plainTypeUUID  = uuid.MustParse("8b1a4d0e-3c47-4a8f-9f55-7f3ad8b0c002")
)

type marker struct {
	Strength float32
}

type gadget struct {
	Base
	Marker   marker
	Target   Handle
	Weights  []float32
	detached []Handle
	updates  int
	alive    bool
}

func newGadget(name string) *gadget {
	return &gadget{Base: NewBase(name), alive: true}
}

func (p *gadget) TypeUUID() uuid.UUID { return gadgetTypeUUID }
func (p *gadget) TypeName() string    { return "Gadget" }

func (p *gadget) LocalBoundingBox() common.AABB {
	return common.AABB{Min: common.NewVec3(-1, -1, -1), Max: common.NewVec3(1, 1, 1)}
}

func (p *gadget) Components() []any { return []any{&p.Marker} }

func (p *gadget) Fields() []property.Field {
	return append(p.Base.Fields(),
		property.Value("strength", &p.Marker.Strength),
		property.Slice("weights", &p.Weights),
	)
}

func (p *gadget) OnRemovedFromGraph(self Handle, _ *SyncContext) {
	p.detached = append(p.detached, self)
}
func (p *gadget) Update(*UpdateContext) { p.updates++ }
func (p *gadget) IsAlive() bool         { return p.alive }

func (p *gadget) Validate(nodes GraphView) []string {
	if p.Target.IsSome() && !nodes.Contains(p.Target) {
		return []string{"target does not exist"}
	}
	return nil
}

type plain struct {
	Base
	Values []int
}

func (p *plain) TypeUUID() uuid.UUID { return plainTypeUUID }
func (p *plain) TypeName() string    { return "Plain" }

type emptyView struct{}

func (emptyView) Contains(Handle) bool     { return false }
func (emptyView) Get(Handle) (*Node, bool) { return nil, false }

func TestNewPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestCast(t *testing.T) {
	n := New(newGadget("a"))

	p, ok := Cast[*gadget](n)
	require.True(t, ok)
	assert.Equal(t, "a", p.Name)

	_, ok = Cast[*plain](n)
	assert.False(t, ok)
	assert.True(t, Is[*gadget](n))
	assert.False(t, Is[*plain](n))

	assert.NotPanics(t, func() { MustCast[*gadget](n) })
	assert.Panics(t, func() { MustCast[*plain](n) })
}

func TestQueryComponent(t *testing.T) {
	p := newGadget("a")
	p.Marker.Strength = 3
	n := New(p)

	m, ok := QueryComponent[*marker](n)
	require.True(t, ok)
	assert.Equal(t, float32(3), m.Strength)

	self, ok := QueryComponent[*gadget](n)
	require.True(t, ok)
	assert.Same(t, p, self)

	_, ok = QueryComponent[*plain](n)
	assert.False(t, ok, "an unrelated request is not present")
}

func TestHooksDispatch(t *testing.T) {
	p := newGadget("a")
	n := New(p)

	n.Update(&UpdateContext{DeltaTime: 0.1})
	n.OnRemovedFromGraph(7, &SyncContext{})
	assert.Equal(t, 1, p.updates)
	assert.Equal(t, []Handle{7}, p.detached)

	assert.True(t, n.IsAlive())
	p.alive = false
	assert.False(t, n.IsAlive())

	p.Target = 3
	assert.Equal(t, []string{"target does not exist"}, n.Validate(emptyView{}))

	other := New(&plain{Base: NewBase("b")})
	assert.True(t, other.IsAlive())
	assert.Nil(t, other.Validate(emptyView{}))
	assert.NotPanics(t, func() {
		other.Update(&UpdateContext{})
		other.SyncNative(1, &SyncContext{})
		other.SyncTransform(1, common.IdentityMatrix(), &SyncContext{})
		other.OnRemovedFromGraph(1, &SyncContext{})
	})
}

func TestSetFieldByPath(t *testing.T) {
	p := newGadget("a")
	p.Weights = []float32{0, 0}
	n := New(p)

	require.NoError(t, n.SetFieldByPath("position", common.NewVec3(1, 2, 3)))
	require.NoError(t, n.SetFieldByPath("weights[1]", float32(0.5)))
	require.NoError(t, n.SetFieldByPath("strength", float32(2)))

	assert.Equal(t, common.NewVec3(1, 2, 3), p.LocalTransform.Position)
	assert.Equal(t, float32(0.5), p.Weights[1])
	assert.Equal(t, float32(2), p.Marker.Strength)

	v, err := n.FieldByPath("name")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	assert.ErrorIs(t, n.SetFieldByPath("strength", 2.0), property.ErrInvalidValue)
}

func TestWorldBoundingBoxFollowsGlobalTransform(t *testing.T) {
	p := newGadget("a")
	n := New(p)
	assert.False(t, p.Propagated())

	// Before the first pass the global transform is the identity, so the world box is the local one.
	local, world := n.LocalBoundingBox(), n.WorldBoundingBox()
	assert.InDelta(t, local.Min.X, world.Min.X, 1e-5)
	assert.InDelta(t, local.Max.X, world.Max.X, 1e-5)

	tr := IdentityTransform()
	tr.Position = common.NewVec3(5, 0, 0)
	assert.True(t, p.SetGlobalTransform(tr.Matrix()))
	assert.False(t, p.SetGlobalTransform(tr.Matrix()))
	assert.True(t, p.Propagated())

	box := n.WorldBoundingBox()
	assert.InDelta(t, 4, box.Min.X, 1e-5)
	assert.InDelta(t, 6, box.Max.X, 1e-5)
	assert.Equal(t, common.NewVec3(5, 0, 0), p.GlobalPosition())
}

func TestCloneIsIndependent(t *testing.T) {
	p := newGadget("a")
	p.Target = 42
	p.Weights = []float32{1, 2}
	p.SetParent(3)
	p.AddChild(9)
	n := New(p)

	c := n.Clone()
	cp := MustCast[*gadget](c)

	assert.Equal(t, Handle(42), cp.Target, "handles are copied verbatim")
	assert.Equal(t, "a", cp.Name)
	assert.Equal(t, []float32{1, 2}, cp.Weights)
	assert.Equal(t, None, cp.Parent())
	assert.Empty(t, cp.Children())
	assert.NotEqual(t, p.InstanceID, cp.InstanceID)

	cp.Weights[0] = 100
	cp.Name = "b"
	assert.Equal(t, float32(1), p.Weights[0])
	assert.Equal(t, "a", p.Name)
	assert.Equal(t, Handle(3), p.Parent())
}

func TestCloneFallbackWithoutCloner(t *testing.T) {
	orig := &plain{Base: NewBase("p"), Values: []int{1, 2, 3}}
	c := New(orig).Clone()

	cp := MustCast[*plain](c)
	cp.Values[0] = 9
	assert.Equal(t, []int{1, 2, 3}, orig.Values)
	assert.Equal(t, "p", cp.Name)
}

func TestBaseChildren(t *testing.T) {
	b := NewBase("root")
	b.AddChild(1)
	b.AddChild(2)
	b.AddChild(3)
	b.RemoveChild(2)

	children := b.Children()
	assert.Equal(t, []Handle{1, 3}, children)
	children[0] = 99
	assert.Equal(t, []Handle{1, 3}, b.Children())
}

package scene

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/animation"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/config"
	"github.com/Carmen-Shannon/oxy-scene/engine/effects"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/mesh"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/physics"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recorderTypeUUID = uuid.MustParse("b1b2c3d4-0000-4000-8000-000000000001")

// recorder logs every hook the graph invokes on it into a shared journal.
type recorder struct {
	node.Base
	journal *journal
}

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
}

func (j *journal) take() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.entries
	j.entries = nil
	return out
}

func newRecorder(name string, j *journal) *node.Node {
	return node.New(&recorder{Base: node.NewBase(name), journal: j})
}

func (r *recorder) TypeUUID() uuid.UUID { return recorderTypeUUID }
func (r *recorder) TypeName() string    { return "Recorder" }

func (r *recorder) Fields() []property.Field { return r.Base.Fields() }

func (r *recorder) SyncNative(node.Handle, *node.SyncContext) { r.journal.add("native " + r.Name) }

func (r *recorder) SyncTransform(node.Handle, common.Matrix4, *node.SyncContext) {
	r.journal.add("transform " + r.Name)
}

func (r *recorder) Update(*node.UpdateContext) { r.journal.add("update " + r.Name) }

func (r *recorder) OnRemovedFromGraph(node.Handle, *node.SyncContext) {
	r.journal.add("removed " + r.Name)
}

func cube(name string, at common.Vec3) *node.Node {
	m := mesh.NewMesh(
		mesh.WithName(name),
		mesh.WithSurface(material.NewSharedMaterial(material.Standard()), common.NewVec3(-1, -1, -1), common.NewVec3(1, 1, 1)),
	)
	m.LocalTransform.Position = at
	return node.New(m)
}

func TestAddAndQuery(t *testing.T) {
	g := NewGraph("main", WithApplyWorkers(2))
	j := &journal{}

	root := g.Add(newRecorder("root", j), node.None)
	child := g.Add(newRecorder("child", j), root)

	assert.Equal(t, "main", g.Name())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []node.Handle{root, child}, g.Handles())
	assert.Equal(t, []node.Handle{root}, g.Roots())
	assert.True(t, g.Contains(child))
	assert.False(t, g.Contains(node.None))

	n, ok := g.Get(root)
	require.True(t, ok)
	assert.Equal(t, []node.Handle{child}, n.AsBase().Children())
	cn, _ := g.Get(child)
	assert.Equal(t, root, cn.AsBase().Parent())
}

func TestAddContractViolations(t *testing.T) {
	g := NewGraph("main")
	n := newRecorder("a", &journal{})
	g.Add(n, node.None)

	assert.Panics(t, func() { g.Add(nil, node.None) })
	assert.Panics(t, func() { g.Add(n, node.None) })
	assert.Panics(t, func() { g.Add(newRecorder("b", &journal{}), 99) })
}

func TestModify(t *testing.T) {
	g := NewGraph("main")
	h := g.Add(newRecorder("a", &journal{}), node.None)

	assert.True(t, g.Modify(h, func(n *node.Node) { n.AsBase().Name = "renamed" }))
	n, _ := g.Get(h)
	assert.Equal(t, "renamed", n.AsBase().Name)

	assert.False(t, g.Modify(99, func(*node.Node) { t.Fatal("called for a missing node") }))

	assert.Panics(t, func() { g.Modify(h, func(*node.Node) { panic("boom") }) })
	assert.True(t, g.Contains(h), "lock released after panic")
}

func TestRemoveIsRecursive(t *testing.T) {
	g := NewGraph("main")
	j := &journal{}
	root := g.Add(newRecorder("root", j), node.None)
	mid := g.Add(newRecorder("mid", j), root)
	g.Add(newRecorder("leaf", j), mid)
	other := g.Add(newRecorder("other", j), root)

	assert.Equal(t, 2, g.Remove(mid))
	assert.ElementsMatch(t, []string{"removed mid", "removed leaf"}, j.take())
	assert.Equal(t, []node.Handle{root, other}, g.Handles())

	r, _ := g.Get(root)
	assert.Equal(t, []node.Handle{other}, r.AsBase().Children())
	assert.Zero(t, g.Remove(mid))
}

func TestRemovedNodeCanBeAddedAgain(t *testing.T) {
	g := NewGraph("main")
	n := newRecorder("a", &journal{})
	removed := g.Remove(g.Add(n, node.None))
	require.Equal(t, 1, removed)
	assert.NotPanics(t, func() { g.Add(n, node.None) })
}

func TestLink(t *testing.T) {
	g := NewGraph("main")
	j := &journal{}
	a := g.Add(newRecorder("a", j), node.None)
	b := g.Add(newRecorder("b", j), a)
	c := g.Add(newRecorder("c", j), node.None)

	require.NoError(t, g.Link(b, c))
	an, _ := g.Get(a)
	cn, _ := g.Get(c)
	assert.Empty(t, an.AsBase().Children())
	assert.Equal(t, []node.Handle{b}, cn.AsBase().Children())

	assert.Error(t, g.Link(c, b), "cycle")
	assert.Error(t, g.Link(c, c), "self cycle")
	assert.Error(t, g.Link(42, a))
	assert.Error(t, g.Link(a, 42))

	require.NoError(t, g.Link(b, node.None))
	assert.Equal(t, []node.Handle{a, b, c}, g.Roots())
}

func TestUpdateOrderAndTransformPropagation(t *testing.T) {
	g := NewGraph("main")
	j := &journal{}
	pn := newRecorder("parent", j)
	pn.AsBase().LocalTransform.Position = common.NewVec3(1, 0, 0)
	parent := g.Add(pn, node.None)
	cn := newRecorder("child", j)
	cn.AsBase().LocalTransform.Position = common.NewVec3(0, 2, 0)
	g.Add(cn, parent)

	g.Update(0.016)
	assert.Equal(t, []string{
		"native parent", "native child",
		"transform parent", "transform child",
		"update parent", "update child",
	}, j.take())
	assert.Equal(t, common.NewVec3(1, 2, 0), cn.AsBase().GlobalPosition())
	assert.True(t, cn.AsBase().Propagated())

	// Nothing moved, so no transform sync.
	g.Update(0.016)
	assert.Equal(t, []string{"native parent", "native child", "update parent", "update child"}, j.take())

	pn.AsBase().LocalTransform.Position = common.NewVec3(5, 0, 0)
	g.Update(0.016)
	assert.Contains(t, j.take(), "transform child")
	assert.Equal(t, common.NewVec3(5, 2, 0), cn.AsBase().GlobalPosition())
}

func TestUpdateRemovesDeadNodes(t *testing.T) {
	g := NewGraph("main")
	ps := effects.NewParticleSystem("burst", 10, 0.5, 10)
	ps.Lifetime = 1
	h := g.Add(node.New(ps), node.None)

	g.Update(0.6)
	assert.True(t, g.Contains(h))
	g.Update(0.6)
	assert.False(t, g.Contains(h))
}

func TestUpdateHandsFrameSizeToCameras(t *testing.T) {
	g := NewGraph("main", WithFrameSize(common.Vec2{X: 200, Y: 100}))
	cam := camera.NewCamera()
	g.Add(node.New(cam), node.None)

	g.Update(0)
	assert.Equal(t, float32(2), cam.Aspect)

	g.SetFrameSize(common.Vec2{X: 100, Y: 100})
	g.Update(0)
	assert.Equal(t, float32(1), cam.Aspect)
}

func TestApply(t *testing.T) {
	g := NewGraph("main")
	h := g.Add(newRecorder("a", &journal{}), node.None)
	pose := animation.NewBoundValueCollection(animation.BoundValue{
		Binding: animation.Position(),
		Value:   animation.Vector3(common.NewVec3(1, 2, 3)),
	})

	require.True(t, g.Apply(h, pose))
	n, _ := g.Get(h)
	assert.Equal(t, common.NewVec3(1, 2, 3), n.AsBase().LocalTransform.Position)
	assert.False(t, g.Apply(99, pose))
}

func TestApplyAll(t *testing.T) {
	g := NewGraph("main", WithApplyWorkers(4))
	poses := make(map[node.Handle]*animation.BoundValueCollection)
	for i := range 32 {
		h := g.Add(newRecorder("n", &journal{}), node.None)
		poses[h] = animation.NewBoundValueCollection(
			animation.BoundValue{Binding: animation.Position(), Value: animation.Vector3(common.NewVec3(float32(i), 0, 0))},
			animation.BoundValue{Binding: animation.Property("visible", animation.Bool), Value: animation.Real(0)},
		)
	}
	poses[1000] = animation.NewBoundValueCollection()

	g.ApplyAll(poses)

	for h, pose := range poses {
		n, ok := g.Get(h)
		if !ok {
			continue
		}
		want, _ := pose.Find(animation.Position())
		pos, _ := want.Value.AsVector3()
		assert.Equal(t, pos, n.AsBase().LocalTransform.Position)
		assert.False(t, n.AsBase().Visible)
	}
}

func TestValidate(t *testing.T) {
	g := NewGraph("main")
	body := g.Add(node.New(physics.NewRigidBody("body", physics.Dynamic)), node.None)
	collider := g.Add(node.New(physics.NewCollider("shape", physics.Ball, common.NewVec3(1, 0, 0))), body)
	joint := g.Add(node.New(physics.NewJoint("hinge", physics.RevoluteJoint, body, 77)), node.None)

	problems := g.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[joint][0], "missing node 77")
	assert.NotContains(t, problems, collider)

	require.NoError(t, g.Link(collider, node.None))
	assert.Contains(t, g.Validate(), collider)
}

func TestCopyNode(t *testing.T) {
	g := NewGraph("main")
	parent := g.Add(newRecorder("parent", &journal{}), node.None)
	src := cube("crate", common.NewVec3(0, 0, -5))
	h := g.Add(src, parent)
	g.Add(newRecorder("grandchild", &journal{}), h)

	cp, ok := g.CopyNode(h)
	require.True(t, ok)
	copied, _ := g.Get(cp)
	assert.Equal(t, parent, copied.AsBase().Parent())
	assert.Empty(t, copied.AsBase().Children())
	assert.NotEqual(t, src.AsBase().InstanceID, copied.AsBase().InstanceID)

	orig := node.MustCast[*mesh.Mesh](src)
	clone := node.MustCast[*mesh.Mesh](copied)
	assert.Same(t, orig.Surfaces[0].Material, clone.Surfaces[0].Material)
	assert.Equal(t, 2, orig.Surfaces[0].Material.UseCount())

	g.Remove(cp)
	assert.Equal(t, 1, orig.Surfaces[0].Material.UseCount())

	_, ok = g.CopyNode(999)
	assert.False(t, ok)
}

func TestVisible(t *testing.T) {
	g := NewGraph("main")
	cam := g.Add(node.New(camera.NewCamera()), node.None)
	front := g.Add(cube("front", common.NewVec3(0, 0, -10)), node.None)
	g.Add(cube("behind", common.NewVec3(0, 0, 10)), node.None)
	hiddenParent := cube("hidden", common.NewVec3(0, 0, -10))
	hiddenParent.AsBase().Visible = false
	hp := g.Add(hiddenParent, node.None)
	g.Add(cube("under hidden", common.NewVec3(0, 0, 0)), hp)
	g.Add(newRecorder("no bounds", &journal{}), node.None)

	g.Update(0)
	visible, err := g.Visible(cam)
	require.NoError(t, err)
	assert.Equal(t, []node.Handle{front}, visible)

	_, err = g.Visible(front)
	assert.Error(t, err)
	_, err = g.Visible(1234)
	assert.Error(t, err)
}

func TestPhysicsMirroring(t *testing.T) {
	backend := node.NewMirror()
	g := NewGraph("main", WithPhysics(backend))
	bn := node.New(physics.NewRigidBody("body", physics.Dynamic))
	bn.AsBase().LocalTransform.Position = common.NewVec3(0, 4, 0)
	body := g.Add(bn, node.None)

	g.Update(0.016)
	_, ok := backend.Object(body)
	assert.True(t, ok)
	m, ok := backend.Transform(body)
	require.True(t, ok)
	assert.Equal(t, float32(4), m[13])

	g.Remove(body)
	assert.Empty(t, backend.Handles())
}

func TestProfilerTicksOnUpdate(t *testing.T) {
	l, hook := test.NewNullLogger()
	common.SetLogger(l)
	t.Cleanup(func() { common.SetLogger(nil) })

	g := NewGraph("main", WithProfiler(time.Nanosecond))
	g.Add(newRecorder("a", &journal{}), node.None)
	time.Sleep(time.Millisecond)
	g.Update(0.016)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Data["component"] == "profiler" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWithConfig(t *testing.T) {
	g := NewGraph("main", WithConfig(config.SceneConfig{ApplyWorkers: 3, ProfilerEnabled: true})).(*graph)
	assert.Equal(t, 3, g.applyWorkers)
	assert.NotNil(t, g.profiler)
}

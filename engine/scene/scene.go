// Package scene implements the graph that owns every node of a scene and drives the per-frame
// synchronisation, transform propagation and update of its nodes.
package scene

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/animation"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/profiler"
	"github.com/sirupsen/logrus"
)

// Graph owns the nodes of a scene and the parent/child links between them.
// Every method is safe for concurrent use. Node hooks run while the graph lock is held and
// receive a node.GraphView that reads the graph without locking; they must not call back into
// the Graph itself.
type Graph interface {
	node.GraphView

	// Name returns the name of the graph.
	Name() string

	// Add inserts n under parent and returns its handle. Passing node.None adds a root.
	// Panics when n is nil, already in this graph, or parent does not exist.
	//
	// Parameters:
	//   - n: the node to insert
	//   - parent: the parent handle, or node.None
	//
	// Returns:
	//   - node.Handle: the handle of the inserted node
	Add(n *node.Node, parent node.Handle) node.Handle

	// Remove deletes the node stored under h together with all of its descendants. Every removed
	// node is notified through its OnRemovedFromGraph hook before it is dropped.
	//
	// Parameters:
	//   - h: the handle of the subtree root
	//
	// Returns:
	//   - int: the number of nodes removed, 0 when h does not exist
	Remove(h node.Handle) int

	// Link moves child under parent. Passing node.None as parent turns child into a root.
	//
	// Parameters:
	//   - child: the node to move
	//   - parent: the new parent
	//
	// Returns:
	//   - error: when either handle does not exist or the move would create a cycle
	Link(child, parent node.Handle) error

	// Modify runs fn with exclusive access to the node stored under h. The graph lock is released
	// when fn returns or panics.
	//
	// Parameters:
	//   - h: the node handle
	//   - fn: the callback receiving the node
	//
	// Returns:
	//   - bool: false when h does not exist, in which case fn is not called
	Modify(h node.Handle, fn func(n *node.Node)) bool

	// Len returns the number of nodes in the graph.
	Len() int

	// Handles returns the handles of every node in ascending order.
	Handles() []node.Handle

	// Roots returns the handles of every node without a parent in ascending order.
	Roots() []node.Handle

	// SetFrameSize sets the frame size handed to update hooks.
	SetFrameSize(size common.Vec2)

	// Update runs one frame: native sync of every node, transform propagation from the roots,
	// per-node update hooks, then removal of nodes that report they are no longer alive.
	//
	// Parameters:
	//   - dt: the time in seconds since the previous update
	Update(dt float32)

	// Apply writes an animation pose into the node stored under h.
	//
	// Parameters:
	//   - h: the target node
	//   - values: the pose to apply
	//
	// Returns:
	//   - bool: false when h does not exist
	Apply(h node.Handle, values *animation.BoundValueCollection) bool

	// ApplyAll writes one pose per node, spreading the nodes across the apply worker pool.
	// Handles that do not exist are skipped.
	//
	// Parameters:
	//   - poses: the pose to apply to each node
	ApplyAll(poses map[node.Handle]*animation.BoundValueCollection)

	// Validate collects the problems reported by every node's Validate hook.
	//
	// Returns:
	//   - map[node.Handle][]string: the problems per node, only for nodes that reported any
	Validate() map[node.Handle][]string

	// CopyNode clones the node stored under h and adds the copy next to it, under the same
	// parent. Children are not copied; handles stored inside the node are copied verbatim.
	//
	// Parameters:
	//   - h: the node to copy
	//
	// Returns:
	//   - node.Handle: the handle of the copy
	//   - bool: false when h does not exist
	CopyNode(h node.Handle) (node.Handle, bool)

	// Visible returns the handles of every visible node whose world bounding box intersects the
	// frustum of the camera stored under cam.
	//
	// Parameters:
	//   - cam: the handle of a camera node
	//
	// Returns:
	//   - []node.Handle: the visible nodes in ascending order
	//   - error: when cam is not an enabled camera
	Visible(cam node.Handle) ([]node.Handle, error)
}

// graph is the implementation of the Graph interface.
type graph struct {
	mu   *sync.RWMutex
	name string

	nodes      map[node.Handle]*node.Node
	owned      map[*node.Node]node.Handle
	nextHandle node.Handle
	frameSize  common.Vec2

	physics node.NativeWorld
	sound   node.NativeWorld

	// applyPool runs ApplyAll tasks. Workers persist across frames and idle-exit on their own.
	applyPool    worker.DynamicWorkerPool
	applyWorkers int

	profilerEnabled  bool
	profilerInterval time.Duration
	profiler         *profiler.Profiler

	log *logrus.Entry
}

var _ Graph = &graph{}

// NewGraph creates an empty Graph.
//
// Parameters:
//   - name: the name of the graph
//   - options: functional options to further configure the graph
//
// Returns:
//   - Graph: the newly created graph
func NewGraph(name string, options ...GraphBuilderOption) Graph {
	g := &graph{
		mu:           &sync.RWMutex{},
		name:         name,
		nodes:        make(map[node.Handle]*node.Node),
		owned:        make(map[*node.Node]node.Handle),
		nextHandle:   1,
		applyWorkers: max(runtime.NumCPU()-1, 1),
		log:          common.Logger("scene").WithField("graph", name),
	}

	for _, option := range options {
		option(g)
	}

	// Created after options so WithApplyWorkers can override the default.
	g.applyPool = worker.NewDynamicWorkerPool(g.applyWorkers, 256, 1*time.Second)
	if g.profilerEnabled {
		g.profiler = profiler.NewProfiler(g.profilerInterval)
	}
	return g
}

func (g *graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name
}

func (g *graph) Contains(h node.Handle) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[h]
	return ok
}

func (g *graph) Get(h node.Handle) (*node.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[h]
	return n, ok
}

func (g *graph) Modify(h node.Handle, fn func(n *node.Node)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[h]
	if !ok {
		return false
	}
	fn(n)
	return true
}

func (g *graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *graph) Handles() []node.Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sortedHandles()
}

func (g *graph) Roots() []node.Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.roots()
}

func (g *graph) SetFrameSize(size common.Vec2) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frameSize = size
}

func (g *graph) Add(n *node.Node, parent node.Handle) node.Handle {
	if n == nil {
		panic("scene: Add requires a non-nil node")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addLocked(n, parent)
}

func (g *graph) addLocked(n *node.Node, parent node.Handle) node.Handle {
	if h, ok := g.owned[n]; ok {
		panic(fmt.Sprintf("scene: node %s is already in the graph as %d", n, h))
	}
	var p *node.Node
	if parent.IsSome() {
		var ok bool
		if p, ok = g.nodes[parent]; !ok {
			panic(fmt.Sprintf("scene: parent %d does not exist", parent))
		}
	}

	h := g.nextHandle
	g.nextHandle++
	g.nodes[h] = n
	g.owned[n] = h

	b := n.AsBase()
	b.ResetLinks()
	if p != nil {
		b.SetParent(parent)
		p.AsBase().AddChild(h)
	}
	g.log.WithFields(logrus.Fields{"handle": h, "node": n.String()}).Debug("node added")
	return h
}

func (g *graph) Remove(h node.Handle) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeLocked(h)
}

func (g *graph) removeLocked(h node.Handle) int {
	root, ok := g.nodes[h]
	if !ok {
		return 0
	}
	if parent, ok := g.nodes[root.AsBase().Parent()]; ok {
		parent.AsBase().RemoveChild(h)
	}

	ctx := g.syncContext()
	removed := 0
	stack := []node.Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := g.nodes[cur]
		if !ok {
			continue
		}
		stack = append(stack, n.AsBase().Children()...)
		n.OnRemovedFromGraph(cur, ctx)
		delete(g.nodes, cur)
		delete(g.owned, n)
		n.AsBase().ResetLinks()
		removed++
	}
	g.log.WithFields(logrus.Fields{"handle": h, "removed": removed}).Debug("subtree removed")
	return removed
}

func (g *graph) Link(child, parent node.Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.nodes[child]
	if !ok {
		return fmt.Errorf("scene: child %d does not exist", child)
	}
	var p *node.Node
	if parent.IsSome() {
		if p, ok = g.nodes[parent]; !ok {
			return fmt.Errorf("scene: parent %d does not exist", parent)
		}
		for a := parent; a.IsSome(); a = g.nodes[a].AsBase().Parent() {
			if a == child {
				return fmt.Errorf("scene: linking %d under %d would create a cycle", child, parent)
			}
		}
	}

	cb := c.AsBase()
	if old, ok := g.nodes[cb.Parent()]; ok {
		old.AsBase().RemoveChild(child)
	}
	cb.SetParent(parent)
	if p != nil {
		p.AsBase().AddChild(child)
	}
	return nil
}

func (g *graph) Update(dt float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctx := g.syncContext()
	handles := g.sortedHandles()
	for _, h := range handles {
		g.nodes[h].SyncNative(h, ctx)
	}

	for _, root := range g.roots() {
		g.propagate(root, common.IdentityMatrix(), ctx)
	}

	uctx := &node.UpdateContext{FrameSize: g.frameSize, DeltaTime: dt, Nodes: view{g}}
	for _, h := range handles {
		g.nodes[h].Update(uctx)
	}

	for _, h := range handles {
		if n, ok := g.nodes[h]; ok && !n.IsAlive() {
			g.log.WithField("node", n.String()).Debug("removing dead node")
			g.removeLocked(h)
		}
	}

	if g.profiler != nil {
		g.profiler.Tick(len(handles))
	}
}

// propagate computes the global transform of h and its descendants. Caller must hold the lock.
func (g *graph) propagate(h node.Handle, parentGlobal common.Matrix4, ctx *node.SyncContext) {
	n := g.nodes[h]
	b := n.AsBase()
	local := b.LocalTransform.Matrix()
	var global common.Matrix4
	common.Mul4(global[:], parentGlobal[:], local[:])
	if b.SetGlobalTransform(global) {
		n.SyncTransform(h, global, ctx)
	}
	for _, c := range b.Children() {
		g.propagate(c, global, ctx)
	}
}

func (g *graph) Apply(h node.Handle, values *animation.BoundValueCollection) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[h]
	if !ok {
		g.log.WithField("handle", h).Warn("Unable to apply animation values: node does not exist")
		return false
	}
	values.Apply(n)
	return true
}

func (g *graph) ApplyAll(poses map[node.Handle]*animation.BoundValueCollection) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Map keys are distinct, so no two tasks touch the same node.
	var wg sync.WaitGroup
	for _, h := range slices.Sorted(maps.Keys(poses)) {
		n, ok := g.nodes[h]
		if !ok {
			g.log.WithField("handle", h).Warn("Unable to apply animation values: node does not exist")
			continue
		}
		values := poses[h]
		wg.Add(1)
		g.applyPool.SubmitTask(worker.Task{
			ID: int(h),
			Do: func() (any, error) {
				defer wg.Done()
				values.Apply(n)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (g *graph) Validate() map[node.Handle][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make(map[node.Handle][]string)
	v := view{g}
	for _, h := range g.sortedHandles() {
		n := g.nodes[h]
		if problems := n.Validate(v); len(problems) > 0 {
			result[h] = problems
			for _, p := range problems {
				g.log.WithField("node", n.String()).Warn(p)
			}
		}
	}
	return result
}

func (g *graph) CopyNode(h node.Handle) (node.Handle, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[h]
	if !ok {
		return node.None, false
	}
	return g.addLocked(n.Clone(), n.AsBase().Parent()), true
}

func (g *graph) Visible(cam node.Handle) ([]node.Handle, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[cam]
	if !ok {
		return nil, fmt.Errorf("scene: camera %d does not exist", cam)
	}
	c, ok := node.Cast[*camera.Camera](n)
	if !ok {
		return nil, fmt.Errorf("scene: node %s is not a camera", n)
	}
	if !c.Enabled {
		return nil, fmt.Errorf("scene: camera %s is disabled", n)
	}

	frustum := c.Frustum()
	var visible []node.Handle
	for _, h := range g.sortedHandles() {
		if h == cam || !g.globallyVisible(h) {
			continue
		}
		box := g.nodes[h].WorldBoundingBox()
		if box.IsValid() && frustum.IntersectsAABB(box) {
			visible = append(visible, h)
		}
	}
	return visible, nil
}

// globallyVisible reports whether h and all of its ancestors are visible. Caller must hold the lock.
func (g *graph) globallyVisible(h node.Handle) bool {
	for h.IsSome() {
		n, ok := g.nodes[h]
		if !ok {
			return false
		}
		if !n.AsBase().Visible {
			return false
		}
		h = n.AsBase().Parent()
	}
	return true
}

func (g *graph) syncContext() *node.SyncContext {
	return &node.SyncContext{Nodes: view{g}, Physics: g.physics, Sound: g.sound}
}

func (g *graph) sortedHandles() []node.Handle {
	return slices.Sorted(maps.Keys(g.nodes))
}

func (g *graph) roots() []node.Handle {
	var roots []node.Handle
	for _, h := range g.sortedHandles() {
		if !g.nodes[h].AsBase().Parent().IsSome() {
			roots = append(roots, h)
		}
	}
	return roots
}

// view reads the graph without taking the lock. It is handed to node hooks, which always run
// while the graph lock is already held.
type view struct {
	g *graph
}

func (v view) Contains(h node.Handle) bool {
	_, ok := v.g.nodes[h]
	return ok
}

func (v view) Get(h node.Handle) (*node.Node, bool) {
	n, ok := v.g.nodes[h]
	return n, ok
}

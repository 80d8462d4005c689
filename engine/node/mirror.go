package node

import (
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// Mirror is an in-memory NativeWorld that keeps a snapshot of the last state each node pushed into
// it. It stands in for a physics or audio backend in tools and tests.
type Mirror struct {
	mu         *sync.Mutex
	objects    map[Handle]Variant
	transforms map[Handle]common.Matrix4
}

var _ NativeWorld = &Mirror{}

// NewMirror creates an empty Mirror.
func NewMirror() *Mirror {
	return &Mirror{
		mu:         &sync.Mutex{},
		objects:    make(map[Handle]Variant),
		transforms: make(map[Handle]common.Matrix4),
	}
}

// SyncNative stores a copy of v's exported state.
func (m *Mirror) SyncNative(h Handle, v Variant) {
	snapshot := copyVariant(v)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[h] = snapshot
}

func (m *Mirror) SyncTransform(h Handle, global common.Matrix4) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transforms[h] = global
}

func (m *Mirror) Remove(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, h)
	delete(m.transforms, h)
}

// Object returns the last snapshot mirrored for h.
func (m *Mirror) Object(h Handle) (Variant, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.objects[h]
	return v, ok
}

// Transform returns the last global transform mirrored for h.
func (m *Mirror) Transform(h Handle) (common.Matrix4, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transforms[h]
	return t, ok
}

// Handles returns the handles of every mirrored object in ascending order.
func (m *Mirror) Handles() []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.objects))
}

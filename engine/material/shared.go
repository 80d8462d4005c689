package material

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scene/engine/property"
)

var nextSharedKey atomic.Uint64

// SharedMaterial is a material used by several owners at once, for example every surface of a mesh
// and the renderer reading it. Access to the material goes through With, which holds the lock for
// the duration of the callback.
type SharedMaterial struct {
	mu   *sync.Mutex
	mat  Material
	refs *atomic.Int64
	key  uint64
}

var _ property.Reflector = &SharedMaterial{}

// NewSharedMaterial wraps m with a use count of one.
//
// Parameters:
//   - m: the material to share
//
// Returns:
//   - *SharedMaterial: the shared handle
func NewSharedMaterial(m Material) *SharedMaterial {
	s := &SharedMaterial{
		mu:   &sync.Mutex{},
		mat:  m,
		refs: &atomic.Int64{},
		key:  nextSharedKey.Add(1),
	}
	s.refs.Store(1)
	return s
}

// Share registers a new owner and returns the same handle.
func (s *SharedMaterial) Share() *SharedMaterial {
	s.refs.Add(1)
	return s
}

// Release unregisters an owner.
//
// Returns:
//   - int: the remaining use count
func (s *SharedMaterial) Release() int {
	return int(s.refs.Add(-1))
}

// UseCount returns the number of owners currently sharing the material.
func (s *SharedMaterial) UseCount() int {
	return int(s.refs.Load())
}

// Key returns an identifier unique to this shared instance for the lifetime of the process.
func (s *SharedMaterial) Key() uint64 {
	return s.key
}

// With runs fn with exclusive access to the material. The lock is released when fn returns or panics.
//
// Parameters:
//   - fn: the callback receiving the material
func (s *SharedMaterial) With(fn func(m Material)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.mat)
}

// DeepCopy returns a new shared material holding an independent copy of the material.
func (s *SharedMaterial) DeepCopy() *SharedMaterial {
	var c Material
	s.With(func(m Material) { c = m.Clone() })
	return NewSharedMaterial(c)
}

// NestedField describes a field holding s. A nil s reads back as an untyped nil, so a path walking
// through it fails with an invalid path error instead of dereferencing the missing material.
//
// Parameters:
//   - name: the field name used in paths
//   - s: the shared material, possibly nil
//
// Returns:
//   - property.Field: a field whose nested properties are reachable by path
func NestedField(name string, s *SharedMaterial) property.Field {
	return property.ReadOnly(name, func() any {
		if s == nil {
			return nil
		}
		return s
	})
}

// Fields exposes the material's properties to property paths. Every read and write takes the lock.
// A nil shared material has no fields.
func (s *SharedMaterial) Fields() []property.Field {
	if s == nil {
		return nil
	}
	var inner []property.Field
	s.With(func(m Material) { inner = m.Fields() })

	fields := make([]property.Field, len(inner))
	for i, f := range inner {
		fields[i] = property.Field{
			Name: f.Name,
			Get: func() any {
				var v any
				s.With(func(Material) { v = f.Get() })
				return v
			},
			Set: func(v any) error {
				var err error
				s.With(func(Material) { err = f.Set(v) })
				return err
			},
		}
	}
	return fields
}

// Package property describes the fields of engine objects so they can be read and written by a
// dotted path such as "surfaces[0].material.diffuseColor". Objects opt in by implementing Reflector;
// no runtime reflection is involved.
package property

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is wrapped by every error returned when a boxed value's dynamic type differs from
// the type of the field it is written to.
var ErrInvalidValue = errors.New("invalid value type")

// Reflector is implemented by anything whose fields are addressable by property path.
type Reflector interface {
	// Fields lists the object's addressable fields. The returned closures bind to the receiver.
	//
	// Returns:
	//   - []Field: the field descriptors
	Fields() []Field
}

// Field describes a single named property. Set is nil for read-only fields.
type Field struct {
	Name string
	Get  func() any
	Set  func(any) error
}

// List is implemented by indexable field values.
type List interface {
	Len() int
	Item(i int) any
	SetItem(i int, v any) error
}

// Find returns the field with the given name.
//
// Parameters:
//   - fields: the field list to search
//   - name: the field name
//
// Returns:
//   - Field: the matching field
//   - bool: false when no field has that name
func Find(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value describes a field stored directly at ptr.
//
// Parameters:
//   - name: the field name used in paths
//   - ptr: the storage location
//
// Returns:
//   - Field: a read-write field descriptor
func Value[T any](name string, ptr *T) Field {
	return Field{
		Name: name,
		Get:  func() any { return *ptr },
		Set: func(v any) error {
			t, err := unbox[T](name, v)
			if err != nil {
				return err
			}
			*ptr = t
			return nil
		},
	}
}

// Accessor describes a field read and written through functions.
//
// Parameters:
//   - name: the field name used in paths
//   - get: returns the current value
//   - set: stores a new value
//
// Returns:
//   - Field: a read-write field descriptor
func Accessor[T any](name string, get func() T, set func(T)) Field {
	return Field{
		Name: name,
		Get:  func() any { return get() },
		Set: func(v any) error {
			t, err := unbox[T](name, v)
			if err != nil {
				return err
			}
			set(t)
			return nil
		},
	}
}

// ReadOnly describes a field that cannot be written by path.
func ReadOnly(name string, get func() any) Field {
	return Field{Name: name, Get: get}
}

// Nested describes a field holding another Reflector. The nested object itself cannot be replaced
// by path, only its fields.
func Nested(name string, r Reflector) Field {
	return Field{Name: name, Get: func() any { return r }}
}

// Slice describes an indexable field stored at ptr. Writing the field itself replaces the slice;
// writing an index replaces a single element.
//
// Parameters:
//   - name: the field name used in paths
//   - ptr: the slice storage location
//
// Returns:
//   - Field: a read-write field whose value implements List
func Slice[T any](name string, ptr *[]T) Field {
	return Field{
		Name: name,
		Get:  func() any { return sliceList[T]{name: name, ptr: ptr} },
		Set: func(v any) error {
			t, err := unbox[[]T](name, v)
			if err != nil {
				return err
			}
			*ptr = t
			return nil
		},
	}
}

type sliceList[T any] struct {
	name string
	ptr  *[]T
}

var _ List = sliceList[int]{}

func (s sliceList[T]) Len() int { return len(*s.ptr) }

func (s sliceList[T]) Item(i int) any { return (*s.ptr)[i] }

func (s sliceList[T]) SetItem(i int, v any) error {
	t, err := unbox[T](fmt.Sprintf("%s[%d]", s.name, i), v)
	if err != nil {
		return err
	}
	(*s.ptr)[i] = t
	return nil
}

func unbox[T any](name string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("field %s expects %T, got %T: %w", name, zero, v, ErrInvalidValue)
	}
	return t, nil
}

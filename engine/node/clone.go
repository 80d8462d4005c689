package node

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

// CopyFields deep copies every exported field of src into a new value of the same type.
// Unexported state, including graph links, is left zeroed.
//
// Parameters:
//   - src: the value to copy
//
// Returns:
//   - *T: the copy
func CopyFields[T any](src *T) *T {
	dst := new(T)
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("node: failed to copy %T: %v", src, err))
	}
	return dst
}

// copyVariant is the fallback used by Node.Clone for variants that do not implement Cloner.
func copyVariant(v Variant) Variant {
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("node: variant %s must be a pointer to a struct to be cloned", v.TypeName()))
	}
	dst := reflect.New(t.Elem()).Interface()
	if err := copier.CopyWithOption(dst, v, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("node: failed to copy %s: %v", v.TypeName(), err))
	}
	return dst.(Variant)
}

package node

import (
	"fmt"
)

// Cast returns the payload as T when its concrete type matches.
//
// Parameters:
//   - n: the node to inspect
//
// Returns:
//   - T: the typed payload
//   - bool: false when the payload is not a T
func Cast[T Variant](n *Node) (T, bool) {
	v, ok := n.variant.(T)
	return v, ok
}

// MustCast is Cast for callers that know the payload type. A mismatch is a programming error and panics.
func MustCast[T Variant](n *Node) T {
	v, ok := n.variant.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("node: expected %T, node %q holds %s", want, n.AsBase().Name, n.variant.TypeName()))
	}
	return v
}

// Is reports whether the payload is a T.
func Is[T Variant](n *Node) bool {
	_, ok := n.variant.(T)
	return ok
}

// QueryComponent looks up a component of type T exposed by the payload. The payload itself is
// considered first, then each entry of Components in order. A missing component is not an error.
//
// Parameters:
//   - n: the node to query
//
// Returns:
//   - T: the component
//   - bool: false when the payload exposes no T
func QueryComponent[T any](n *Node) (T, bool) {
	if v, ok := any(n.variant).(T); ok {
		return v, true
	}
	for _, c := range n.variant.Components() {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

package animation

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/sirupsen/logrus"
)

// BoundValue pairs a track value with the property it is written to.
type BoundValue struct {
	Binding ValueBinding
	Value   TrackValue
}

// WeightedClone returns a copy with the value scaled by weight.
func (bv BoundValue) WeightedClone(weight float32) BoundValue {
	return BoundValue{Binding: bv.Binding, Value: bv.Value.WeightedClone(weight)}
}

// BlendWith blends other's value into bv in place. Both must target the same binding; blending
// values for different properties is a programming error and panics.
//
// Parameters:
//   - other: the value to blend in
//   - weight: the contribution of other
func (bv *BoundValue) BlendWith(other BoundValue, weight float32) {
	mustMatch(bv.Binding, other.Binding)
	bv.Value.BlendWith(other.Value, weight)
}

// Interpolate interpolates between bv and other, which must target the same binding.
//
// Parameters:
//   - other: the value at t = 1
//   - t: the interpolation coefficient
//
// Returns:
//   - BoundValue: the interpolated value
//   - bool: false when the two values are of different variants
func (bv BoundValue) Interpolate(other BoundValue, t float32) (BoundValue, bool) {
	mustMatch(bv.Binding, other.Binding)
	v, ok := bv.Value.Interpolate(other.Value, t)
	if !ok {
		return BoundValue{}, false
	}
	return BoundValue{Binding: bv.Binding, Value: v}, true
}

func mustMatch(a, b ValueBinding) {
	if a != b {
		panic(fmt.Sprintf("animation: binding mismatch: %s vs %s", a, b))
	}
}

// BoundValueCollection is the ordered set of values an animation produces for one node in one frame.
// Order is preserved so application is deterministic. Duplicate bindings are allowed; lookups use
// the first match.
type BoundValueCollection struct {
	Values []BoundValue
}

// NewBoundValueCollection builds a collection from values in order.
func NewBoundValueCollection(values ...BoundValue) *BoundValueCollection {
	return &BoundValueCollection{Values: values}
}

// Len returns the number of entries.
func (c *BoundValueCollection) Len() int {
	return len(c.Values)
}

// Find returns the first entry with the given binding.
//
// Parameters:
//   - binding: the slot to look up
//
// Returns:
//   - BoundValue: the entry
//   - bool: false when no entry targets binding
func (c *BoundValueCollection) Find(binding ValueBinding) (BoundValue, bool) {
	for _, v := range c.Values {
		if v.Binding == binding {
			return v, true
		}
	}
	return BoundValue{}, false
}

// WeightedClone returns a new collection with every value weighted, in the same order.
func (c *BoundValueCollection) WeightedClone(weight float32) *BoundValueCollection {
	out := &BoundValueCollection{Values: make([]BoundValue, len(c.Values))}
	for i, v := range c.Values {
		out.Values[i] = v.WeightedClone(weight)
	}
	return out
}

// BlendWith blends every entry of c with the first entry of other targeting the same binding.
// Entries with no counterpart in other are left untouched.
//
// Parameters:
//   - other: the collection to blend in
//   - weight: the contribution of other
func (c *BoundValueCollection) BlendWith(other *BoundValueCollection, weight float32) {
	for i := range c.Values {
		if o, ok := other.Find(c.Values[i].Binding); ok {
			c.Values[i].BlendWith(o, weight)
		}
	}
}

// Interpolate returns a new collection containing only the bindings present in both c and other,
// in c's order. Entries whose values cannot be interpolated are dropped as well.
//
// Parameters:
//   - other: the collection at t = 1
//   - t: the interpolation coefficient
//
// Returns:
//   - *BoundValueCollection: the intersection, interpolated
func (c *BoundValueCollection) Interpolate(other *BoundValueCollection, t float32) *BoundValueCollection {
	out := &BoundValueCollection{}
	for _, v := range c.Values {
		o, ok := other.Find(v.Binding)
		if !ok {
			continue
		}
		if iv, ok := v.Interpolate(o, t); ok {
			out.Values = append(out.Values, iv)
		}
	}
	return out
}

// Apply writes every entry into n. Entries that cannot be applied (wrong value shape for a
// transform binding, failed cast, unresolvable path, mismatched field type) are logged and skipped;
// the remaining entries are still applied.
//
// Parameters:
//   - n: the node to write into
func (c *BoundValueCollection) Apply(n *node.Node) {
	log := common.Logger("animation").WithField("node", n.String())
	transform := &n.AsBase().LocalTransform

	for _, bv := range c.Values {
		entry := log.WithField("binding", bv.Binding.String())

		switch bv.Binding.Kind() {
		case BindingPosition:
			if v, ok := bv.Value.AsVector3(); ok {
				transform.Position = v
			} else {
				entry.WithField("found", bv.Value.Shape().String()).
					Warn("position binding needs a Vector3 value, skipped")
			}
		case BindingScale:
			if v, ok := bv.Value.AsVector3(); ok {
				transform.Scale = v
			} else {
				entry.WithField("found", bv.Value.Shape().String()).
					Warn("scale binding needs a Vector3 value, skipped")
			}
		case BindingRotation:
			if q, ok := bv.Value.AsQuaternion(); ok {
				transform.Rotation = q
			} else {
				entry.WithField("found", bv.Value.Shape().String()).
					Warn("rotation binding needs a UnitQuaternion value, skipped")
			}
		case BindingProperty:
			applyProperty(entry, n, bv)
		}
	}
}

func applyProperty(entry *logrus.Entry, n *node.Node, bv BoundValue) {
	path := bv.Binding.Path()
	casted, ok := bv.Value.NumericTypeCast(bv.Binding.ValueType())
	if !ok {
		entry.WithFields(logrus.Fields{
			"expected": bv.Binding.ValueType().String(),
			"found":    bv.Value.Shape().String(),
		}).Errorf("cannot cast value for property %s", path)
		return
	}

	err := n.SetFieldByPath(path, casted)
	if err == nil {
		return
	}

	var pathErr *property.InvalidPathError
	switch {
	case errors.As(err, &pathErr):
		entry.WithField("reason", pathErr.Reason).Errorf("invalid property path %s", path)
	case errors.Is(err, property.ErrInvalidValue):
		entry.WithError(err).Errorf("type mismatch setting property %s", path)
	default:
		entry.WithError(err).Errorf("failed to set property %s", path)
	}
}

package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
)

// Transform is a node's position, rotation and scale relative to its parent.
type Transform struct {
	Position common.Vec3
	Scale    common.Vec3
	Rotation common.Quat
}

// IdentityTransform returns a transform with unit scale and no translation or rotation.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Scale:    common.NewVec3(1, 1, 1),
		Rotation: common.IdentityQuat(),
	}
}

// Matrix composes the transform into a column-major matrix (translation * rotation * scale).
//
// Returns:
//   - common.Matrix4: the local matrix
func (t Transform) Matrix() common.Matrix4 {
	var m common.Matrix4
	common.ComposeTRS(m[:], t.Position, t.Rotation, t.Scale)
	return m
}

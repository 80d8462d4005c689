// Package camera implements the perspective camera node.
package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/property"
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// TypeUUID identifies the Camera variant.
var TypeUUID = uuid.MustParse("7d2f5c1e-3a4b-4c8d-9e6f-0a1b2c3d4e5f")

// Camera is a perspective camera node. Its view matrix is the inverse of the node's global
// transform, so it looks down its local -Z axis.
type Camera struct {
	node.Base
	// Fov is the vertical field of view in radians.
	Fov    float32
	ZNear  float32
	ZFar   float32
	Aspect float32
	// Enabled cameras take part in visibility queries.
	Enabled bool
}

var (
	_ node.Variant   = &Camera{}
	_ node.Updater   = &Camera{}
	_ node.Validator = &Camera{}
)

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - *Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) *Camera {
	c := &Camera{
		Base:    node.NewBase("Camera"),
		Fov:     45.0 * (math32.Pi / 180.0),
		ZNear:   0.1,
		ZFar:    100.0,
		Aspect:  1.0,
		Enabled: true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Camera) TypeUUID() uuid.UUID { return TypeUUID }

func (c *Camera) TypeName() string { return "Camera" }

func (c *Camera) Fields() []property.Field {
	return append(c.Base.Fields(),
		property.Value("fov", &c.Fov),
		property.Value("zNear", &c.ZNear),
		property.Value("zFar", &c.ZFar),
		property.Value("aspect", &c.Aspect),
		property.Value("enabled", &c.Enabled),
	)
}

// Update tracks the aspect ratio of the frame the scene is rendered into.
func (c *Camera) Update(ctx *node.UpdateContext) {
	if ctx.FrameSize.X > 0 && ctx.FrameSize.Y > 0 {
		c.Aspect = ctx.FrameSize.X / ctx.FrameSize.Y
	}
}

// Validate reports clip planes and field of view that cannot produce a projection.
func (c *Camera) Validate(node.GraphView) []string {
	var problems []string
	if c.ZNear <= 0 {
		problems = append(problems, fmt.Sprintf("near clip plane must be positive, got %g", c.ZNear))
	}
	if c.ZNear >= c.ZFar {
		problems = append(problems, fmt.Sprintf("near clip plane %g must be closer than far clip plane %g", c.ZNear, c.ZFar))
	}
	if c.Fov <= 0 || c.Fov >= math32.Pi {
		problems = append(problems, fmt.Sprintf("field of view %g is outside (0, pi)", c.Fov))
	}
	return problems
}

// ProjectionMatrix returns the perspective projection matrix (column-major, clip depth [0, 1]).
//
// Returns:
//   - common.Matrix4: the projection matrix
func (c *Camera) ProjectionMatrix() common.Matrix4 {
	var m common.Matrix4
	common.Perspective(m[:], c.Fov, c.Aspect, c.ZNear, c.ZFar)
	return m
}

// ViewMatrix returns the inverse of the camera's global transform. A singular global transform
// yields the identity.
//
// Returns:
//   - common.Matrix4: the view matrix
func (c *Camera) ViewMatrix() common.Matrix4 {
	global := c.GlobalTransform()
	view := common.IdentityMatrix()
	common.Invert4(view[:], global[:])
	return view
}

// ViewProjection returns projection * view.
//
// Returns:
//   - common.Matrix4: the combined view-projection matrix
func (c *Camera) ViewProjection() common.Matrix4 {
	proj := c.ProjectionMatrix()
	view := c.ViewMatrix()
	var out common.Matrix4
	common.Mul4(out[:], proj[:], view[:])
	return out
}

// Frustum extracts the world-space view frustum from the current view-projection matrix.
//
// Returns:
//   - common.Frustum: the normalized frustum planes
func (c *Camera) Frustum() common.Frustum {
	vp := c.ViewProjection()
	return common.ExtractFrustumFromMatrix(vp[:])
}

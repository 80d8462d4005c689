package camera

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*Camera)

// WithName sets the node name of the camera.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's name
func WithName(name string) CameraBuilderOption {
	return func(c *Camera) {
		c.Name = name
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *Camera) {
		c.Fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *Camera) {
		c.Aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *Camera) {
		c.ZNear = near
		c.ZFar = far
	}
}

// WithEnabled sets whether the camera takes part in visibility queries.
func WithEnabled(enabled bool) CameraBuilderOption {
	return func(c *Camera) {
		c.Enabled = enabled
	}
}

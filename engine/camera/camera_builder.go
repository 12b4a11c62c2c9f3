package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option applied to a camera during construction via NewOrthographicCamera.
type CameraBuilderOption func(*orthographicCamera)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - position: the initial position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a camera
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *orthographicCamera) {
		c.position = position
	}
}

// WithRotation sets the camera's initial rotation around the z axis.
//
// Parameters:
//   - radians: the initial rotation in radians
//
// Returns:
//   - CameraBuilderOption: a function that applies the rotation option to a camera
func WithRotation(radians float32) CameraBuilderOption {
	return func(c *orthographicCamera) {
		c.rotation = radians
	}
}

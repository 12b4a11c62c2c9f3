package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectBuilderOption is a functional option applied to an object during construction via NewObject.
type ObjectBuilderOption func(*object)

// WithTag sets the object's human-readable tag.
//
// Parameters:
//   - tag: the tag
//
// Returns:
//   - ObjectBuilderOption: a function that applies the tag option to an object
func WithTag(tag string) ObjectBuilderOption {
	return func(o *object) {
		o.tag = tag
	}
}

// WithObjectPosition sets the object's initial world-space position.
//
// Parameters:
//   - position: the initial position
//
// Returns:
//   - ObjectBuilderOption: a function that applies the position option to an object
func WithObjectPosition(position mgl32.Vec3) ObjectBuilderOption {
	return func(o *object) {
		o.position = position
	}
}

// WithObjectRotation sets the object's initial rotation around the z axis.
//
// Parameters:
//   - radians: the initial rotation in radians
//
// Returns:
//   - ObjectBuilderOption: a function that applies the rotation option to an object
func WithObjectRotation(radians float32) ObjectBuilderOption {
	return func(o *object) {
		o.rotation = radians
	}
}

// WithObjectScale sets the object's initial per-axis scale.
//
// Parameters:
//   - scale: the initial scale
//
// Returns:
//   - ObjectBuilderOption: a function that applies the scale option to an object
func WithObjectScale(scale mgl32.Vec3) ObjectBuilderOption {
	return func(o *object) {
		o.scale = scale
	}
}

// WithOnUpdate attaches a per-tick update callback. The scene invokes it
// during OnUpdate before the object's transform is refreshed, so position,
// rotation, and scale changes made inside the callback take effect the same
// frame. The callback runs on a worker goroutine and must only touch the
// object it receives.
//
// Parameters:
//   - fn: the update callback
//
// Returns:
//   - ObjectBuilderOption: a function that applies the update callback option to an object
func WithOnUpdate(fn func(deltaTime float32, obj Object)) ObjectBuilderOption {
	return func(o *object) {
		o.onUpdate = fn
	}
}

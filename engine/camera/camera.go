package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// orthographicCamera is the implementation of the Camera interface.
type orthographicCamera struct {
	position mgl32.Vec3
	rotation float32 // z rotation in radians

	projectionMatrix     mgl32.Mat4
	viewMatrix           mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is an orthographic camera producing the view-projection matrix the
// renderer consumes each scene. Matrices use the column-major GL convention
// and are recomputed eagerly whenever position, rotation, or projection change.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera and recomputes the view matrices.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// Rotation returns the camera's rotation around the z axis in radians.
	//
	// Returns:
	//   - float32: the rotation in radians
	Rotation() float32

	// SetRotation rotates the camera around the z axis and recomputes the
	// view matrices.
	//
	// Parameters:
	//   - radians: the new rotation in radians
	SetRotation(radians float32)

	// SetProjection replaces the orthographic projection bounds and
	// recomputes the view-projection matrix.
	//
	// Parameters:
	//   - left, right, bottom, top: the orthographic clip bounds
	SetProjection(left, right, bottom, top float32)

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &orthographicCamera{}

// NewOrthographicCamera creates a camera with the given orthographic clip
// bounds, positioned at the origin with no rotation.
//
// Parameters:
//   - left, right, bottom, top: the orthographic clip bounds
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewOrthographicCamera(left, right, bottom, top float32, options ...CameraBuilderOption) Camera {
	c := &orthographicCamera{
		projectionMatrix: mgl32.Ortho(left, right, bottom, top, -1, 1),
		viewMatrix:       mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.recalculateViewMatrix()
	return c
}

func (c *orthographicCamera) Position() mgl32.Vec3 {
	return c.position
}

func (c *orthographicCamera) SetPosition(position mgl32.Vec3) {
	c.position = position
	c.recalculateViewMatrix()
}

func (c *orthographicCamera) Rotation() float32 {
	return c.rotation
}

func (c *orthographicCamera) SetRotation(radians float32) {
	c.rotation = radians
	c.recalculateViewMatrix()
}

func (c *orthographicCamera) SetProjection(left, right, bottom, top float32) {
	c.projectionMatrix = mgl32.Ortho(left, right, bottom, top, -1, 1)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *orthographicCamera) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *orthographicCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *orthographicCamera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

// recalculateViewMatrix inverts the camera's world transform into the view
// matrix and refreshes the combined view-projection matrix.
func (c *orthographicCamera) recalculateViewMatrix() {
	transform := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).
		Mul4(mgl32.HomogRotate3DZ(c.rotation))
	c.viewMatrix = transform.Inv()
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

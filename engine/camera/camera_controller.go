package camera

import (
	"github.com/Carmen-Shannon/ziben-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraController is the implementation of the CameraController interface.
type cameraController struct {
	camera Camera

	aspect float32
	zoom   float32

	rotationEnabled  bool
	translationSpeed float32
	rotationSpeed    float32

	position mgl32.Vec3
	rotation float32

	pressed map[uint32]bool
}

// CameraController drives an orthographic camera from window input events.
// Wire OnKeyDown/OnKeyUp/OnScroll/OnResize into the window's callbacks and
// call OnUpdate once per tick with the frame delta.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the controlled camera
	Camera() Camera

	// Zoom returns the current zoom level. Smaller values zoom in.
	//
	// Returns:
	//   - float32: the zoom level
	Zoom() float32

	// OnUpdate applies held-key movement (and rotation, when enabled) for
	// one tick. Translation speed scales with the zoom level so panning
	// feels uniform at any magnification.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	OnUpdate(deltaTime float32)

	// OnKeyDown records a key press.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	OnKeyDown(keyCode uint32)

	// OnKeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	OnKeyUp(keyCode uint32)

	// OnScroll zooms the camera. Positive delta zooms in; the zoom level is
	// clamped so the projection never collapses.
	//
	// Parameters:
	//   - delta: the scroll delta
	OnScroll(delta float32)

	// OnResize updates the aspect ratio when the window size changes.
	//
	// Parameters:
	//   - width: the new window width in pixels
	//   - height: the new window height in pixels
	OnResize(width, height int)
}

var _ CameraController = &cameraController{}

// minZoom keeps the orthographic bounds from collapsing to a zero-area projection.
const minZoom = 0.25

// NewCameraController creates a controller with its own orthographic camera
// sized to the given aspect ratio at zoom level 1.
//
// Parameters:
//   - aspect: the viewport aspect ratio (width / height)
//   - options: variadic list of CameraControllerBuilderOption functions to configure the controller
//
// Returns:
//   - CameraController: the configured controller
func NewCameraController(aspect float32, options ...CameraControllerBuilderOption) CameraController {
	c := &cameraController{
		aspect:           aspect,
		zoom:             1,
		translationSpeed: 1,
		rotationSpeed:    1,
		pressed:          make(map[uint32]bool),
	}
	for _, option := range options {
		option(c)
	}
	c.camera = NewOrthographicCamera(-c.aspect*c.zoom, c.aspect*c.zoom, -c.zoom, c.zoom)
	return c
}

func (c *cameraController) Camera() Camera {
	return c.camera
}

func (c *cameraController) Zoom() float32 {
	return c.zoom
}

func (c *cameraController) OnUpdate(deltaTime float32) {
	// Panning speed follows zoom so movement covers the same fraction of the
	// visible area regardless of magnification.
	step := c.translationSpeed * c.zoom * deltaTime

	if c.pressed[common.KeyA] {
		c.position[0] -= step
	}
	if c.pressed[common.KeyD] {
		c.position[0] += step
	}
	if c.pressed[common.KeyS] {
		c.position[1] -= step
	}
	if c.pressed[common.KeyW] {
		c.position[1] += step
	}
	c.camera.SetPosition(c.position)

	if c.rotationEnabled {
		if c.pressed[common.KeyQ] {
			c.rotation += c.rotationSpeed * deltaTime
		}
		if c.pressed[common.KeyE] {
			c.rotation -= c.rotationSpeed * deltaTime
		}
		c.camera.SetRotation(c.rotation)
	}
}

func (c *cameraController) OnKeyDown(keyCode uint32) {
	c.pressed[keyCode] = true
}

func (c *cameraController) OnKeyUp(keyCode uint32) {
	delete(c.pressed, keyCode)
}

func (c *cameraController) OnScroll(delta float32) {
	c.zoom -= delta * 0.25
	if c.zoom < minZoom {
		c.zoom = minZoom
	}
	c.updateProjection()
}

func (c *cameraController) OnResize(width, height int) {
	if height == 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.updateProjection()
}

func (c *cameraController) updateProjection() {
	c.camera.SetProjection(-c.aspect*c.zoom, c.aspect*c.zoom, -c.zoom, c.zoom)
}

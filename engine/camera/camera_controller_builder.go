package camera

// CameraControllerBuilderOption is a functional option applied to a controller during construction via NewCameraController.
type CameraControllerBuilderOption func(*cameraController)

// WithRotationEnabled enables Q/E rotation controls.
//
// Parameters:
//   - enabled: true to enable rotation controls
//
// Returns:
//   - CameraControllerBuilderOption: a function that applies the rotation option to a controller
func WithRotationEnabled(enabled bool) CameraControllerBuilderOption {
	return func(c *cameraController) {
		c.rotationEnabled = enabled
	}
}

// WithTranslationSpeed sets the base panning speed in world units per second
// at zoom level 1.
//
// Parameters:
//   - speed: the base translation speed
//
// Returns:
//   - CameraControllerBuilderOption: a function that applies the translation speed option to a controller
func WithTranslationSpeed(speed float32) CameraControllerBuilderOption {
	return func(c *cameraController) {
		c.translationSpeed = speed
	}
}

// WithRotationSpeed sets the rotation speed in radians per second.
//
// Parameters:
//   - speed: the rotation speed
//
// Returns:
//   - CameraControllerBuilderOption: a function that applies the rotation speed option to a controller
func WithRotationSpeed(speed float32) CameraControllerBuilderOption {
	return func(c *cameraController) {
		c.rotationSpeed = speed
	}
}

// WithZoom sets the initial zoom level.
//
// Parameters:
//   - zoom: the initial zoom level; clamped to the controller's minimum
//
// Returns:
//   - CameraControllerBuilderOption: a function that applies the zoom option to a controller
func WithZoom(zoom float32) CameraControllerBuilderOption {
	return func(c *cameraController) {
		if zoom < minZoom {
			zoom = minZoom
		}
		c.zoom = zoom
	}
}

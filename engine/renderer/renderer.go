package renderer

import (
	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names every shader used with the submission protocol must declare to
// receive per-draw transforms.
const (
	// UniformViewProjectionMatrix receives the scene's view-projection matrix.
	UniformViewProjectionMatrix = "u_ViewProjectionMatrix"

	// UniformTransform receives the submitted object's world transform.
	UniformTransform = "u_Transform"
)

// Camera is the collaborator contract the renderer consumes each scene: a
// computed combined view-projection matrix in column-major convention.
type Camera interface {
	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4
}

// Geometry is the collaborator contract for drawable geometry: a bindable
// identity plus an index count for indexed drawing. buffer.VertexArray
// satisfies it.
type Geometry interface {
	// Bind makes this geometry the active draw source.
	Bind()

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

// Program is the shader contract the submission protocol needs: activation
// (which may lazily link) and matrix uniform upload. shader.Shader satisfies it.
type Program interface {
	// Bind activates the program, linking it first if necessary.
	//
	// Returns:
	//   - error: an error if the lazy link fails or previously failed
	Bind() error

	// SetUniformMat4 uploads a 4x4 matrix uniform by name; unresolved names
	// are skipped silently.
	//
	// Parameters:
	//   - name: the uniform name
	//   - value: the matrix to upload
	SetUniformMat4(name string, value mgl32.Mat4)
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	drv driver.Driver

	// viewProjection is the scene-wide matrix snapshotted by BeginScene and
	// read by every Submit until the next BeginScene. It is the only state
	// the submission protocol carries across calls.
	viewProjection mgl32.Mat4
}

// Renderer is the immediate-mode frame submission protocol: BeginScene
// snapshots the camera's view-projection matrix, Submit issues one indexed
// draw per call, and EndScene closes the scene. Single-threaded; all calls
// must come from the thread owning the rendering context.
type Renderer interface {
	// BeginScene snapshots the camera's current view-projection matrix for
	// use by every Submit until the next BeginScene. No other side effect.
	//
	// Parameters:
	//   - camera: the camera supplying the view-projection matrix
	BeginScene(camera Camera)

	// Submit draws one piece of geometry with the given program and object
	// transform: the program is bound (triggering its lazy link on first
	// use), the scene's view-projection matrix and the object transform are
	// uploaded, the geometry is bound, and one indexed draw call is issued
	// sized to the geometry's index count.
	//
	// Parameters:
	//   - program: the shader program to draw with
	//   - geometry: the geometry to draw
	//   - transform: the object's world transform
	//
	// Returns:
	//   - error: an error if binding the program fails
	Submit(program Program, geometry Geometry, transform mgl32.Mat4) error

	// EndScene closes the scene begun by BeginScene. It performs no work;
	// submission is immediate.
	EndScene()

	// SetClearColor sets the color used by Clear.
	//
	// Parameters:
	//   - r, g, b, a: the clear color components
	SetClearColor(r, g, b, a float32)

	// Clear clears the color and depth buffers.
	Clear()

	// Resize updates the rendering viewport. Call when the window's
	// framebuffer size changes.
	//
	// Parameters:
	//   - width: the new viewport width in pixels
	//   - height: the new viewport height in pixels
	Resize(width, height int)
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on top of the given driver.
//
// Parameters:
//   - drv: the graphics driver
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(drv driver.Driver, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		drv:            drv,
		viewProjection: mgl32.Ident4(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) BeginScene(camera Camera) {
	r.viewProjection = camera.ViewProjectionMatrix()
}

func (r *renderer) Submit(program Program, geometry Geometry, transform mgl32.Mat4) error {
	if err := program.Bind(); err != nil {
		return err
	}
	program.SetUniformMat4(UniformViewProjectionMatrix, r.viewProjection)
	program.SetUniformMat4(UniformTransform, transform)

	geometry.Bind()
	r.drv.DrawIndexed(int32(geometry.IndexCount()))
	return nil
}

func (r *renderer) EndScene() {}

func (r *renderer) SetClearColor(red, g, b, a float32) {
	r.drv.SetClearColor(red, g, b, a)
}

func (r *renderer) Clear() {
	r.drv.Clear()
}

func (r *renderer) Resize(width, height int) {
	r.drv.SetViewport(0, 0, int32(width), int32(height))
}

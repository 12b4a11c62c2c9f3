// package driver defines the graphics driver seam the renderer is built on.
// Every GPU-facing operation (stage compilation, program linking, buffer
// uploads, draw calls) goes through the Driver interface so that the rest of
// the engine never touches the underlying graphics API directly. The real
// implementation lives in gl_driver.go; tests substitute recording fakes.
package driver

import (
	"github.com/go-gl/mathgl/mgl32"
)

// StageKind identifies a single programmable pipeline stage of a shader program.
type StageKind int

const (
	// StageVertex is the vertex processing stage.
	StageVertex StageKind = iota

	// StageFragment is the fragment (pixel) processing stage.
	StageFragment

	// StageGeometry is the geometry stage.
	StageGeometry

	// StageTessControl is the tessellation control stage.
	StageTessControl

	// StageTessEvaluation is the tessellation evaluation stage.
	StageTessEvaluation

	// StageCompute is the compute stage.
	StageCompute
)

// String returns the stage kind's name as it appears in shader source directives.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageTessControl:
		return "tessControl"
	case StageTessEvaluation:
		return "tessEvaluation"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// BufferTarget identifies the binding category of a GPU buffer.
type BufferTarget int

const (
	// TargetVertex binds a buffer as the active vertex data source.
	TargetVertex BufferTarget = iota

	// TargetIndex binds a buffer as the active index data source.
	TargetIndex
)

// BufferUsage hints the driver-side placement of a buffer's storage.
// It does not affect the engine's mutability contract: buffer data is
// uploaded exactly once, at creation.
type BufferUsage int

const (
	// UsageStatic hints that the buffer contents never change after upload.
	UsageStatic BufferUsage = iota

	// UsageDynamic hints that the driver should place the buffer for frequent reuse.
	UsageDynamic
)

// Driver is the low-level graphics driver interface. All calls are synchronous
// and must be made from the thread owning the rendering context; the driver
// provides no locking because concurrent use is unsupported.
//
// Handle values are opaque driver-issued identifiers; 0 means unallocated.
type Driver interface {
	// CreateProgram allocates a new program object.
	//
	// Returns:
	//   - uint32: the program handle
	//   - error: an error if the driver refuses to allocate a program
	CreateProgram() (uint32, error)

	// DeleteProgram revokes a program handle.
	//
	// Parameters:
	//   - program: the program handle to delete
	DeleteProgram(program uint32)

	// CreateStage allocates a new stage object of the given kind.
	//
	// Parameters:
	//   - kind: the pipeline stage kind
	//
	// Returns:
	//   - uint32: the stage handle
	//   - error: an error if the driver refuses to allocate a stage object
	CreateStage(kind StageKind) (uint32, error)

	// DeleteStage revokes a stage handle.
	//
	// Parameters:
	//   - stage: the stage handle to delete
	DeleteStage(stage uint32)

	// CompileStage submits source text to a stage object and compiles it.
	// On failure the returned error carries the driver's diagnostic log.
	// The stage object is not deleted; the caller owns cleanup.
	//
	// Parameters:
	//   - stage: the stage handle to compile
	//   - source: the stage source text
	//
	// Returns:
	//   - error: an error carrying the compile log if compilation fails
	CompileStage(stage uint32, source string) error

	// AttachStage attaches a compiled stage object to a program.
	//
	// Parameters:
	//   - program: the program handle
	//   - stage: the stage handle to attach
	AttachStage(program, stage uint32)

	// DetachStage detaches a stage object from a program.
	//
	// Parameters:
	//   - program: the program handle
	//   - stage: the stage handle to detach
	DetachStage(program, stage uint32)

	// AttachedStages enumerates the stage objects currently attached to a program.
	//
	// Parameters:
	//   - program: the program handle
	//
	// Returns:
	//   - []uint32: the attached stage handles
	AttachedStages(program uint32) []uint32

	// LinkProgram links the attached stages of a program into an executable.
	// On failure the returned error carries the program's diagnostic log;
	// the caller owns cleanup of the program and its stages.
	//
	// Parameters:
	//   - program: the program handle to link
	//
	// Returns:
	//   - error: an error carrying the link log if linking fails
	LinkProgram(program uint32) error

	// ValidateProgram requests a driver-side validation pass on a linked program.
	// Diagnostic only; the result does not affect the program's usability.
	//
	// Parameters:
	//   - program: the program handle to validate
	ValidateProgram(program uint32)

	// UseProgram activates a program for subsequent draw calls. Passing 0
	// activates the driver's null program.
	//
	// Parameters:
	//   - program: the program handle, or 0 to unbind
	UseProgram(program uint32)

	// BindAttribLocation associates a vertex attribute index with a named
	// program input. Only effective before the program is linked.
	//
	// Parameters:
	//   - program: the program handle
	//   - location: the attribute index
	//   - name: the attribute name in the stage source
	BindAttribLocation(program uint32, location uint32, name string)

	// BindFragDataLocation associates a color output index with a named
	// fragment output. Only effective before the program is linked.
	//
	// Parameters:
	//   - program: the program handle
	//   - location: the color output index
	//   - name: the output name in the fragment source
	BindFragDataLocation(program uint32, location uint32, name string)

	// UniformLocation resolves a uniform name to its location in a program.
	//
	// Parameters:
	//   - program: the program handle
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the resolved location, or a negative value if the uniform
	//     is not active in the program
	UniformLocation(program uint32, name string) int32

	// SetUniformInt uploads an integer uniform to the given location.
	SetUniformInt(location int32, value int32)

	// SetUniformFloat uploads a float uniform to the given location.
	SetUniformFloat(location int32, value float32)

	// SetUniformFloat3 uploads three float components to the given location.
	SetUniformFloat3(location int32, x, y, z float32)

	// SetUniformVec3 uploads a 3-component vector uniform to the given location.
	SetUniformVec3(location int32, value mgl32.Vec3)

	// SetUniformVec4 uploads a 4-component vector uniform to the given location.
	SetUniformVec4(location int32, value mgl32.Vec4)

	// SetUniformMat3 uploads a 3x3 matrix uniform to the given location.
	SetUniformMat3(location int32, value mgl32.Mat3)

	// SetUniformMat4 uploads a 4x4 matrix uniform to the given location.
	SetUniformMat4(location int32, value mgl32.Mat4)

	// CreateBuffer allocates a GPU buffer and uploads data to it immediately.
	// The upload happens exactly once; the buffer is immutable afterwards.
	//
	// Parameters:
	//   - target: the buffer's binding category
	//   - data: the raw bytes to upload
	//   - usage: the driver-side placement hint
	//
	// Returns:
	//   - uint32: the buffer handle
	//   - error: an error if the driver cannot allocate storage
	CreateBuffer(target BufferTarget, data []byte, usage BufferUsage) (uint32, error)

	// DeleteBuffer revokes a buffer handle.
	//
	// Parameters:
	//   - buffer: the buffer handle to delete
	DeleteBuffer(buffer uint32)

	// BindBuffer makes a buffer the active target for its category.
	// Passing 0 binds the null buffer of that category.
	//
	// Parameters:
	//   - target: the buffer's binding category
	//   - buffer: the buffer handle, or 0 to unbind
	BindBuffer(target BufferTarget, buffer uint32)

	// CreateVertexArray allocates a vertex array object.
	//
	// Returns:
	//   - uint32: the vertex array handle
	//   - error: an error if the driver refuses to allocate
	CreateVertexArray() (uint32, error)

	// DeleteVertexArray revokes a vertex array handle.
	//
	// Parameters:
	//   - array: the vertex array handle to delete
	DeleteVertexArray(array uint32)

	// BindVertexArray makes a vertex array the active geometry source.
	// Passing 0 binds the null vertex array.
	//
	// Parameters:
	//   - array: the vertex array handle, or 0 to unbind
	BindVertexArray(array uint32)

	// SetAttributePointer configures one float vertex attribute of the
	// currently bound vertex array, sourced from the currently bound
	// vertex buffer.
	//
	// Parameters:
	//   - index: the attribute index
	//   - components: the number of float components (1-4)
	//   - stride: the byte stride between consecutive vertices
	//   - offset: the byte offset of this attribute within a vertex
	SetAttributePointer(index uint32, components int32, stride int32, offset int)

	// DrawIndexed issues one indexed draw call using the currently bound
	// program and vertex array.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	DrawIndexed(indexCount int32)

	// SetClearColor sets the color used by Clear.
	SetClearColor(r, g, b, a float32)

	// Clear clears the color and depth buffers of the current framebuffer.
	Clear()

	// SetViewport sets the rendering viewport in pixels.
	SetViewport(x, y, width, height int32)
}

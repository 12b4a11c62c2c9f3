package shader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/ziben-go/common"
	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
	"github.com/go-gl/mathgl/mgl32"
)

// LinkState tracks a program's position in its link lifecycle. The transitions
// are Unlinked -> Linked on the first successful bind, or Unlinked -> Failed on
// a link error; both Linked and Failed are terminal.
type LinkState int

const (
	// LinkStateUnlinked means stages are compiled and attached but the program
	// has not been linked yet. Linking happens lazily on the first Bind.
	LinkStateUnlinked LinkState = iota

	// LinkStateLinked means the program linked successfully and its stage
	// objects have been detached and deleted. Terminal.
	LinkStateLinked

	// LinkStateFailed means linking failed and the program's driver resources
	// have been released. Terminal; the shader is permanently unusable.
	LinkStateFailed
)

var (
	// ErrNoStages is returned when shader source declares no stage sections.
	ErrNoStages = errors.New("shader source declares no stages")

	// ErrProgramUnusable is returned by Bind and EnsureLinked after a link
	// failure has permanently invalidated the program.
	ErrProgramUnusable = errors.New("shader program is unusable after link failure")
)

// shaderProgram is the implementation of the Shader interface.
type shaderProgram struct {
	drv    driver.Driver
	name   string
	source string

	handle *driver.Handle
	state  LinkState

	// uniformLocations memoizes successful location lookups only. Negative
	// results are re-queried on every call; see uniformLocation.
	uniformLocations map[string]int32
}

// Shader is a multi-stage GPU shader program. Construction compiles and
// attaches every stage declared in the source; linking is deferred until the
// first Bind. Uniform locations are resolved by name and cached for the
// program's lifetime.
type Shader interface {
	// Name returns the shader's identifier, derived from the source file name
	// unless overridden with WithName.
	//
	// Returns:
	//   - string: the shader name
	Name() string

	// Handle returns the shared-ownership wrapper around the program handle.
	// Callers that store the handle beyond the shader's lifetime must Retain it.
	//
	// Returns:
	//   - *driver.Handle: the program handle wrapper
	Handle() *driver.Handle

	// LinkState returns the program's current position in the link lifecycle.
	//
	// Returns:
	//   - LinkState: LinkStateUnlinked, LinkStateLinked, or LinkStateFailed
	LinkState() LinkState

	// EnsureLinked performs the lazy link transition. On the first call it
	// links the program, validates it, and detaches and deletes every attached
	// stage object. Subsequent calls on a linked program are no-ops. If
	// linking fails the program handle and all attached stages are released
	// and every later call returns ErrProgramUnusable.
	//
	// Returns:
	//   - error: the link error carrying the driver's diagnostic log, or
	//     ErrProgramUnusable if a previous link attempt failed
	EnsureLinked() error

	// Bind links the program if necessary and activates it for subsequent
	// draw calls.
	//
	// Returns:
	//   - error: an error if the lazy link fails or previously failed
	Bind() error

	// Unbind activates the driver's null program.
	Unbind()

	// BindAttribLocation associates a vertex attribute index with a named
	// program input. Attribute binding points are fixed at link time, so this
	// is a silent no-op once the program has linked.
	//
	// Parameters:
	//   - location: the attribute index
	//   - name: the attribute name in the vertex stage source
	BindAttribLocation(location uint32, name string)

	// BindFragDataLocation associates a color output index with a named
	// fragment output. A silent no-op once the program has linked.
	//
	// Parameters:
	//   - location: the color output index
	//   - name: the output name in the fragment stage source
	BindFragDataLocation(location uint32, name string)

	// SetUniformBool uploads a boolean uniform. Skipped silently if the name
	// does not resolve to an active uniform.
	SetUniformBool(name string, value bool)

	// SetUniformInt uploads an integer uniform. Skipped silently if the name
	// does not resolve to an active uniform.
	SetUniformInt(name string, value int32)

	// SetUniformFloat uploads a float uniform. Skipped silently if the name
	// does not resolve to an active uniform.
	SetUniformFloat(name string, value float32)

	// SetUniformFloat3 uploads three float components. Skipped silently if
	// the name does not resolve to an active uniform.
	SetUniformFloat3(name string, x, y, z float32)

	// SetUniformVec3 uploads a 3-component vector uniform. Skipped silently
	// if the name does not resolve to an active uniform.
	SetUniformVec3(name string, value mgl32.Vec3)

	// SetUniformVec4 uploads a 4-component vector uniform. Skipped silently
	// if the name does not resolve to an active uniform.
	SetUniformVec4(name string, value mgl32.Vec4)

	// SetUniformMat3 uploads a 3x3 matrix uniform. Skipped silently if the
	// name does not resolve to an active uniform.
	SetUniformMat3(name string, value mgl32.Mat3)

	// SetUniformMat4 uploads a 4x4 matrix uniform. Skipped silently if the
	// name does not resolve to an active uniform.
	SetUniformMat4(name string, value mgl32.Mat4)

	// Release drops this owner's reference to the program. Stage objects
	// still attached (the program was never linked) are detached and deleted
	// first so no driver resources leak.
	Release()
}

var _ Shader = &shaderProgram{}

// NewShader creates a Shader from a combined multi-stage source file. The file
// is read and split into stage sections, and each stage is compiled and
// attached to a freshly allocated program object. Linking is deferred until the
// first Bind. A file read failure is logged and treated as empty source, which
// fails the splitter's zero-stage check.
//
// Parameters:
//   - drv: the graphics driver
//   - path: the combined shader source file path (may be empty when WithSource is used)
//   - options: variadic list of ShaderBuilderOption functions to configure the shader
//
// Returns:
//   - Shader: the constructed shader with all stages compiled and attached
//   - error: a parse, allocation, or compile error; no partial shader is returned
func NewShader(drv driver.Driver, path string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shaderProgram{
		drv:              drv,
		state:            LinkStateUnlinked,
		uniformLocations: make(map[string]int32),
	}
	for _, option := range options {
		option(s)
	}

	if s.source == "" && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			common.Logger().Warn("failed to read shader source file", "path", path, "error", err)
		} else {
			s.source = string(data)
		}
	}
	if s.name == "" && path != "" {
		base := filepath.Base(path)
		s.name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	stages, err := ParseStages(s.source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", s.name, err)
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("shader %q: %w", s.name, ErrNoStages)
	}

	// Stage kinds are independent before linking, so compile order is the
	// map's iteration order.
	for kind, stageSource := range stages {
		if err := s.compile(kind, stageSource); err != nil {
			s.releaseUnlinked()
			return nil, err
		}
	}
	return s, nil
}

func (s *shaderProgram) Name() string {
	return s.name
}

func (s *shaderProgram) Handle() *driver.Handle {
	return s.handle
}

func (s *shaderProgram) LinkState() LinkState {
	return s.state
}

// compile allocates a stage object of the given kind, compiles the source into
// it, and attaches it to the program, allocating the program handle first if
// this is the first stage. The stage object stays alive until link time so it
// can be detached cleanly.
func (s *shaderProgram) compile(kind driver.StageKind, source string) error {
	if s.handle == nil {
		program, err := s.drv.CreateProgram()
		if err != nil {
			return fmt.Errorf("shader %q: %w", s.name, err)
		}
		s.handle = driver.NewHandle(program, s.drv.DeleteProgram)
	}

	stage, err := s.drv.CreateStage(kind)
	if err != nil {
		return fmt.Errorf("shader %q: %w", s.name, err)
	}
	if err := s.drv.CompileStage(stage, source); err != nil {
		s.drv.DeleteStage(stage)
		return fmt.Errorf("shader %q: %s stage: %w", s.name, kind, err)
	}

	s.drv.AttachStage(s.handle.ID(), stage)
	return nil
}

func (s *shaderProgram) EnsureLinked() error {
	switch s.state {
	case LinkStateLinked:
		return nil
	case LinkStateFailed:
		return fmt.Errorf("shader %q: %w", s.name, ErrProgramUnusable)
	}

	program := s.handle.ID()
	stages := s.drv.AttachedStages(program)

	if err := s.drv.LinkProgram(program); err != nil {
		for _, stage := range stages {
			s.drv.DeleteStage(stage)
		}
		s.handle.Release()
		s.state = LinkStateFailed
		return fmt.Errorf("shader %q: %w", s.name, err)
	}

	s.drv.ValidateProgram(program)
	s.state = LinkStateLinked

	// The compiled state now lives in the linked program; the stage objects
	// are no longer needed.
	for _, stage := range stages {
		s.drv.DetachStage(program, stage)
		s.drv.DeleteStage(stage)
	}

	common.Logger().Debug("shader program linked", "shader", s.name, "program", program)
	return nil
}

func (s *shaderProgram) Bind() error {
	if err := s.EnsureLinked(); err != nil {
		return err
	}
	s.drv.UseProgram(s.handle.ID())
	return nil
}

func (s *shaderProgram) Unbind() {
	s.drv.UseProgram(0)
}

func (s *shaderProgram) BindAttribLocation(location uint32, name string) {
	if s.state == LinkStateUnlinked {
		s.drv.BindAttribLocation(s.handle.ID(), location, name)
	}
}

func (s *shaderProgram) BindFragDataLocation(location uint32, name string) {
	if s.state == LinkStateUnlinked {
		s.drv.BindFragDataLocation(s.handle.ID(), location, name)
	}
}

func (s *shaderProgram) SetUniformBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	s.SetUniformInt(name, v)
}

func (s *shaderProgram) SetUniformInt(name string, value int32) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformInt(location, value)
	}
}

func (s *shaderProgram) SetUniformFloat(name string, value float32) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformFloat(location, value)
	}
}

func (s *shaderProgram) SetUniformFloat3(name string, x, y, z float32) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformFloat3(location, x, y, z)
	}
}

func (s *shaderProgram) SetUniformVec3(name string, value mgl32.Vec3) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformVec3(location, value)
	}
}

func (s *shaderProgram) SetUniformVec4(name string, value mgl32.Vec4) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformVec4(location, value)
	}
}

func (s *shaderProgram) SetUniformMat3(name string, value mgl32.Mat3) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformMat3(location, value)
	}
}

func (s *shaderProgram) SetUniformMat4(name string, value mgl32.Mat4) {
	if location := s.uniformLocation(name); location >= 0 {
		s.drv.SetUniformMat4(location, value)
	}
}

// uniformLocation resolves a uniform name through the cache. Only non-negative
// results are memoized: a name the driver cannot resolve is re-queried on
// every call, so a uniform that becomes active after a later link is still
// found. A negative return means the upload should be skipped.
func (s *shaderProgram) uniformLocation(name string) int32 {
	if location, ok := s.uniformLocations[name]; ok {
		return location
	}
	if s.handle == nil || !s.handle.Valid() {
		return -1
	}
	location := s.drv.UniformLocation(s.handle.ID(), name)
	if location >= 0 {
		s.uniformLocations[name] = location
	}
	return location
}

// releaseUnlinked detaches and deletes any stage objects still attached, then
// drops the program handle. Used on construction failure and on Release before
// the program has linked.
func (s *shaderProgram) releaseUnlinked() {
	if s.handle == nil || !s.handle.Valid() {
		return
	}
	program := s.handle.ID()
	for _, stage := range s.drv.AttachedStages(program) {
		s.drv.DetachStage(program, stage)
		s.drv.DeleteStage(stage)
	}
	s.handle.Release()
}

func (s *shaderProgram) Release() {
	if s.handle == nil || !s.handle.Valid() {
		return
	}
	if s.state == LinkStateUnlinked {
		s.releaseUnlinked()
		return
	}
	s.handle.Release()
}

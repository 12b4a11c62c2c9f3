package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/ziben-go/common"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glDriver implements Driver on top of the OpenGL core profile via go-gl.
// All methods must be called from the thread that owns the GL context.
type glDriver struct{}

var _ Driver = &glDriver{}

// stage kind -> GL shader object type
var glStageKinds = map[StageKind]uint32{
	StageVertex:         gl.VERTEX_SHADER,
	StageFragment:       gl.FRAGMENT_SHADER,
	StageGeometry:       gl.GEOMETRY_SHADER,
	StageTessControl:    gl.TESS_CONTROL_SHADER,
	StageTessEvaluation: gl.TESS_EVALUATION_SHADER,
	StageCompute:        gl.COMPUTE_SHADER,
}

var glBufferTargets = map[BufferTarget]uint32{
	TargetVertex: gl.ARRAY_BUFFER,
	TargetIndex:  gl.ELEMENT_ARRAY_BUFFER,
}

var glBufferUsages = map[BufferUsage]uint32{
	UsageStatic:  gl.STATIC_DRAW,
	UsageDynamic: gl.DYNAMIC_DRAW,
}

// NewGLDriver initializes the OpenGL function pointers for the current context
// and returns a Driver backed by them. The calling goroutine must own the GL
// context (see window.ProcessMessages) for this and every subsequent call.
//
// Returns:
//   - Driver: the OpenGL-backed driver
//   - error: an error if the GL bindings could not be initialized
func NewGLDriver() (Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("driver: failed to initialize OpenGL bindings: %w", err)
	}

	common.Logger().Info("OpenGL context initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &glDriver{}, nil
}

// glStr null-terminates a Go string for GL entry points that take C strings.
func glStr(name string) *uint8 {
	return gl.Str(name + "\x00")
}

func (d *glDriver) CreateProgram() (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, errors.New("driver: unable to create shader program")
	}
	return program, nil
}

func (d *glDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *glDriver) CreateStage(kind StageKind) (uint32, error) {
	glKind, ok := glStageKinds[kind]
	if !ok {
		return 0, fmt.Errorf("driver: unsupported stage kind %d", kind)
	}
	stage := gl.CreateShader(glKind)
	if stage == 0 {
		return 0, fmt.Errorf("driver: unable to create %s stage object", kind)
	}
	return stage, nil
}

func (d *glDriver) DeleteStage(stage uint32) {
	gl.DeleteShader(stage)
}

func (d *glDriver) CompileStage(stage uint32, source string) error {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(stage, 1, csources, nil)
	free()
	gl.CompileShader(stage)

	var status int32
	gl.GetShaderiv(stage, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return nil
	}

	log := shaderInfoLog(stage)
	if log == "" {
		return errors.New("stage compilation failed")
	}
	return fmt.Errorf("stage compilation failed: %s", log)
}

func (d *glDriver) AttachStage(program, stage uint32) {
	gl.AttachShader(program, stage)
}

func (d *glDriver) DetachStage(program, stage uint32) {
	gl.DetachShader(program, stage)
}

func (d *glDriver) AttachedStages(program uint32) []uint32 {
	var count int32
	gl.GetProgramiv(program, gl.ATTACHED_SHADERS, &count)
	if count == 0 {
		return nil
	}
	stages := make([]uint32, count)
	gl.GetAttachedShaders(program, count, nil, &stages[0])
	return stages
}

func (d *glDriver) LinkProgram(program uint32) error {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return nil
	}

	log := programInfoLog(program)
	if log == "" {
		return errors.New("program link failed")
	}
	return fmt.Errorf("program link failed: %s", log)
}

func (d *glDriver) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status != gl.TRUE {
		// Diagnostic only; a failed validation pass does not make the program unusable.
		common.Logger().Warn("program validation reported issues",
			"program", program,
			"log", programInfoLog(program),
		)
	}
}

func (d *glDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *glDriver) BindAttribLocation(program uint32, location uint32, name string) {
	gl.BindAttribLocation(program, location, glStr(name))
}

func (d *glDriver) BindFragDataLocation(program uint32, location uint32, name string) {
	gl.BindFragDataLocation(program, location, glStr(name))
}

func (d *glDriver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, glStr(name))
}

func (d *glDriver) SetUniformInt(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (d *glDriver) SetUniformFloat(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (d *glDriver) SetUniformFloat3(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (d *glDriver) SetUniformVec3(location int32, value mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &value[0])
}

func (d *glDriver) SetUniformVec4(location int32, value mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &value[0])
}

func (d *glDriver) SetUniformMat3(location int32, value mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &value[0])
}

func (d *glDriver) SetUniformMat4(location int32, value mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (d *glDriver) CreateBuffer(target BufferTarget, data []byte, usage BufferUsage) (uint32, error) {
	glTarget := glBufferTargets[target]

	var buffer uint32
	gl.GenBuffers(1, &buffer)
	gl.BindBuffer(glTarget, buffer)
	gl.BufferData(glTarget, len(data), gl.Ptr(data), glBufferUsages[usage])

	if glErr := gl.GetError(); glErr == gl.OUT_OF_MEMORY {
		gl.BindBuffer(glTarget, 0)
		gl.DeleteBuffers(1, &buffer)
		return 0, fmt.Errorf("driver: buffer allocation of %d bytes failed: out of memory", len(data))
	}
	return buffer, nil
}

func (d *glDriver) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *glDriver) BindBuffer(target BufferTarget, buffer uint32) {
	gl.BindBuffer(glBufferTargets[target], buffer)
}

func (d *glDriver) CreateVertexArray() (uint32, error) {
	var array uint32
	gl.GenVertexArrays(1, &array)
	if array == 0 {
		return 0, errors.New("driver: unable to create vertex array")
	}
	return array, nil
}

func (d *glDriver) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}

func (d *glDriver) BindVertexArray(array uint32) {
	gl.BindVertexArray(array)
}

func (d *glDriver) SetAttributePointer(index uint32, components int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, components, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *glDriver) DrawIndexed(indexCount int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
}

func (d *glDriver) SetClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *glDriver) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *glDriver) SetViewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// shaderInfoLog fetches and trims a stage object's diagnostic log.
func shaderInfoLog(stage uint32) string {
	var logLength int32
	gl.GetShaderiv(stage, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(stage, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// programInfoLog fetches and trims a program object's diagnostic log.
func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

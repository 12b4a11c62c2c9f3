package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver records draw and clear operations in call order.
type fakeDriver struct {
	driver.Driver

	drawCounts []int32
	clearColor [4]float32
	clearCalls int
	viewport   [4]int32
}

func (d *fakeDriver) DrawIndexed(indexCount int32) {
	d.drawCounts = append(d.drawCounts, indexCount)
}

func (d *fakeDriver) SetClearColor(r, g, b, a float32) {
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *fakeDriver) Clear() { d.clearCalls++ }

func (d *fakeDriver) SetViewport(x, y, width, height int32) {
	d.viewport = [4]int32{x, y, width, height}
}

// stubProgram records the order of bind and uniform operations.
type stubProgram struct {
	bindErr  error
	events   []string
	uniforms map[string]mgl32.Mat4
}

func newStubProgram() *stubProgram {
	return &stubProgram{uniforms: make(map[string]mgl32.Mat4)}
}

func (p *stubProgram) Bind() error {
	p.events = append(p.events, "bind")
	return p.bindErr
}

func (p *stubProgram) SetUniformMat4(name string, value mgl32.Mat4) {
	p.events = append(p.events, "uniform:"+name)
	p.uniforms[name] = value
}

// stubGeometry is a bindable identity with a fixed index count.
type stubGeometry struct {
	bound bool
	count int
}

func (g *stubGeometry) Bind()           { g.bound = true }
func (g *stubGeometry) IndexCount() int { return g.count }

// stubCamera supplies a fixed view-projection matrix.
type stubCamera struct {
	viewProjection mgl32.Mat4
}

func (c *stubCamera) ViewProjectionMatrix() mgl32.Mat4 { return c.viewProjection }

func TestSubmitIssuesOneIndexedDraw(t *testing.T) {
	drv := &fakeDriver{}
	r := NewRenderer(drv)

	viewProjection := mgl32.Ortho(-1.6, 1.6, -0.9, 0.9, -1, 1)
	cam := &stubCamera{viewProjection: viewProjection}
	program := newStubProgram()
	geometry := &stubGeometry{count: 6}
	transform := mgl32.Translate3D(1, 2, 3)

	r.BeginScene(cam)
	require.NoError(t, r.Submit(program, geometry, transform))
	r.EndScene()

	assert.Equal(t, []int32{6}, drv.drawCounts, "exactly one draw sized to the index count")
	assert.True(t, geometry.bound)
	assert.Equal(t, viewProjection, program.uniforms[UniformViewProjectionMatrix])
	assert.Equal(t, transform, program.uniforms[UniformTransform])
	assert.Equal(t, []string{
		"bind",
		"uniform:" + UniformViewProjectionMatrix,
		"uniform:" + UniformTransform,
	}, program.events, "program is bound before uniforms are uploaded")
}

func TestBeginSceneSnapshotsCamera(t *testing.T) {
	drv := &fakeDriver{}
	r := NewRenderer(drv)

	cam := &stubCamera{viewProjection: mgl32.Scale3D(2, 2, 2)}
	program := newStubProgram()

	r.BeginScene(cam)

	// A later camera change does not affect submissions until the next BeginScene.
	cam.viewProjection = mgl32.Ident4()
	require.NoError(t, r.Submit(program, &stubGeometry{count: 3}, mgl32.Ident4()))

	assert.Equal(t, mgl32.Scale3D(2, 2, 2), program.uniforms[UniformViewProjectionMatrix])
}

func TestSubmitWithoutBeginSceneUsesIdentity(t *testing.T) {
	drv := &fakeDriver{}
	r := NewRenderer(drv)
	program := newStubProgram()

	require.NoError(t, r.Submit(program, &stubGeometry{count: 3}, mgl32.Ident4()))
	assert.Equal(t, mgl32.Ident4(), program.uniforms[UniformViewProjectionMatrix])
}

func TestSubmitPropagatesBindFailure(t *testing.T) {
	drv := &fakeDriver{}
	r := NewRenderer(drv)

	program := newStubProgram()
	program.bindErr = errors.New("shader program is unusable after link failure")
	geometry := &stubGeometry{count: 3}

	err := r.Submit(program, geometry, mgl32.Ident4())
	require.Error(t, err)
	assert.False(t, geometry.bound, "a failed bind must not reach the geometry")
	assert.Empty(t, drv.drawCounts)
}

func TestRendererSurfaceOperations(t *testing.T) {
	drv := &fakeDriver{}
	r := NewRenderer(drv, WithClearColor(0.1, 0.1, 0.1, 1))

	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, drv.clearColor)

	r.Clear()
	assert.Equal(t, 1, drv.clearCalls)

	r.Resize(1280, 720)
	assert.Equal(t, [4]int32{0, 0, 1280, 720}, drv.viewport)
}

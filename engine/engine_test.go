package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/ziben-go/engine/camera"
	"github.com/Carmen-Shannon/ziben-go/engine/renderer"
	"github.com/Carmen-Shannon/ziben-go/engine/scene"
	"github.com/Carmen-Shannon/ziben-go/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow drives the engine's update callback a fixed number of times in
// place of a real message loop.
type fakeWindow struct {
	frames   int
	onUpdate func()
	onResize func(width, height int)

	swaps  int
	closed bool
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetScrollCallback(callback func(delta float32))     {}
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32))   {}
func (w *fakeWindow) SetKeyUpCallback(callback func(keyCode uint32))     {}
func (w *fakeWindow) SwapBuffers()                                       { w.swaps++ }
func (w *fakeWindow) SetVSync(enabled bool)                              {}
func (w *fakeWindow) VSync() bool                                        { return false }
func (w *fakeWindow) IsRunning() bool                                    { return !w.closed }
func (w *fakeWindow) Close() error                                       { w.closed = true; return nil }
func (w *fakeWindow) Width() int                                         { return 1280 }
func (w *fakeWindow) Height() int                                        { return 720 }

func (w *fakeWindow) ProcessMessages() {
	for range w.frames {
		if w.closed {
			return
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

// stubRenderer counts the frame lifecycle calls the engine and scenes make.
type stubRenderer struct {
	began   int
	submits int
	clears  int
	resizes [][2]int
}

var _ renderer.Renderer = &stubRenderer{}

func (r *stubRenderer) BeginScene(camera renderer.Camera) { r.began++ }

func (r *stubRenderer) Submit(program renderer.Program, geometry renderer.Geometry, transform mgl32.Mat4) error {
	r.submits++
	return nil
}

func (r *stubRenderer) EndScene()                          {}
func (r *stubRenderer) SetClearColor(red, g, b, a float32) {}
func (r *stubRenderer) Clear()                             { r.clears++ }
func (r *stubRenderer) Resize(width, height int)           { r.resizes = append(r.resizes, [2]int{width, height}) }

func newTestScene(t *testing.T, r renderer.Renderer, active bool) scene.Scene {
	t.Helper()
	cam := camera.NewOrthographicCamera(-1, 1, -1, 1)
	return scene.NewScene("test", cam, r, scene.WithActive(active))
}

func TestEngineSceneRegistry(t *testing.T) {
	r := &stubRenderer{}
	s := newTestScene(t, r, true)
	e := NewEngine(WithScene(3, s))

	assert.Same(t, s, e.Scene(3))
	assert.Nil(t, e.Scene(0))

	other := newTestScene(t, r, false)
	e.AddScene(0, other)
	assert.Len(t, e.Scenes(), 2)

	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
	assert.Len(t, e.Scenes(), 1)
}

func TestEngineRunRendersActiveScenesInOrder(t *testing.T) {
	w := &fakeWindow{frames: 3}
	background := &stubRenderer{}
	overlay := &stubRenderer{}
	hidden := &stubRenderer{}

	e := NewEngine(
		WithWindow(w),
		WithScene(1, newTestScene(t, overlay, true)),
		WithScene(0, newTestScene(t, background, true)),
		WithScene(2, newTestScene(t, hidden, false)),
	)

	e.Run()

	// The lowest z-index active scene's renderer clears each frame.
	assert.Equal(t, 3, background.clears)
	assert.Zero(t, overlay.clears)

	assert.Equal(t, 3, background.began)
	assert.Equal(t, 3, overlay.began)
	assert.Zero(t, hidden.began, "inactive scenes are skipped")

	assert.Equal(t, 3, w.swaps)
}

func TestEngineResizePropagatesToSceneRenderers(t *testing.T) {
	w := &fakeWindow{}
	r := &stubRenderer{}
	e := NewEngine(WithWindow(w), WithScene(0, newTestScene(t, r, true)))
	_ = e

	require.NotNil(t, w.onResize)
	w.onResize(800, 600)
	require.Len(t, r.resizes, 1)
	assert.Equal(t, [2]int{800, 600}, r.resizes[0])
}

func TestEngineRenderCallbackRuns(t *testing.T) {
	w := &fakeWindow{frames: 2}
	e := NewEngine(WithWindow(w))

	frames := 0
	e.SetRenderCallback(func(deltaTime float32) { frames++ })
	e.Run()

	assert.Equal(t, 2, frames)
}

func TestEngineTickRateKeepsFractionalPeriods(t *testing.T) {
	e := NewEngine(WithTickRate(59.94)).(*engine)
	rate := 59.94
	expected := time.Duration(float64(time.Second) / rate)
	assert.Equal(t, expected, e.engineTickRate)

	e.SetTickRate(119.88)
	rate = 119.88
	assert.Equal(t, time.Duration(float64(time.Second)/rate), e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
}

func TestEngineSetTickRateWhileRunning(t *testing.T) {
	w := &fakeWindow{frames: 3}
	e := NewEngine(WithWindow(w), WithTickRate(60))

	// Changing the rate mid-run goes through the tick goroutine's channel
	// rather than the struct field; it must not block the render loop.
	e.SetRenderCallback(func(deltaTime float32) {
		e.SetTickRate(144)
	})
	e.Run()

	assert.Equal(t, 3, w.swaps)
}

func TestEngineQuitClosesWindow(t *testing.T) {
	w := &fakeWindow{frames: 100}
	e := NewEngine(WithWindow(w))

	count := 0
	e.SetRenderCallback(func(deltaTime float32) {
		count++
		if count == 2 {
			e.Quit()
		}
	})
	e.Run()

	assert.True(t, w.closed)
	assert.Equal(t, 2, count)
}

package scene

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/ziben-go/engine/camera"
	"github.com/Carmen-Shannon/ziben-go/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeometry struct {
	indexCount int
}

func (g *stubGeometry) Bind()           {}
func (g *stubGeometry) IndexCount() int { return g.indexCount }

type stubProgram struct {
	bindErr error
}

func (p *stubProgram) Bind() error { return p.bindErr }

func (p *stubProgram) SetUniformMat4(name string, value mgl32.Mat4) {}

type submission struct {
	program   renderer.Program
	transform mgl32.Mat4
}

// stubRenderer records the submission protocol calls Render makes.
type stubRenderer struct {
	began       int
	ended       int
	submissions []submission
}

func (r *stubRenderer) BeginScene(camera renderer.Camera) { r.began++ }

func (r *stubRenderer) Submit(program renderer.Program, geometry renderer.Geometry, transform mgl32.Mat4) error {
	if err := program.Bind(); err != nil {
		return err
	}
	r.submissions = append(r.submissions, submission{program: program, transform: transform})
	return nil
}

func (r *stubRenderer) EndScene()                          { r.ended++ }
func (r *stubRenderer) SetClearColor(red, g, b, a float32) {}
func (r *stubRenderer) Clear()                             {}
func (r *stubRenderer) Resize(width, height int)           {}

func newTestScene(t *testing.T, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	t.Helper()
	cam := camera.NewOrthographicCamera(-1, 1, -1, 1)
	return NewScene("test", cam, r, options...)
}

func TestSceneAddAssignsSequentialIDs(t *testing.T) {
	s := newTestScene(t, &stubRenderer{})

	first := s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))
	second := s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, 2, s.Count())
	assert.NotNil(t, s.Get(first))
	assert.Nil(t, s.Get(99))
}

func TestSceneRemoveAndClear(t *testing.T) {
	s := newTestScene(t, &stubRenderer{})
	id := s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))
	s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))

	s.Remove(id)
	assert.Equal(t, 1, s.Count())
	assert.Nil(t, s.Get(id))

	s.Remove(99) // unknown id is a no-op
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestSceneWithObjectsRegistersAtConstruction(t *testing.T) {
	tagged := NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}, WithTag("player"))
	s := newTestScene(t, &stubRenderer{}, WithObjects(
		tagged,
		NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}),
	))

	require.Equal(t, 2, s.Count())
	assert.Equal(t, "player", s.Get(1).Tag())
}

func TestSceneRenderSubmitsInInsertionOrder(t *testing.T) {
	r := &stubRenderer{}
	s := newTestScene(t, r)

	programs := make([]renderer.Program, 3)
	for i := range programs {
		programs[i] = &stubProgram{}
		s.Add(NewObject(&stubGeometry{indexCount: 6}, programs[i], WithObjectPosition(mgl32.Vec3{float32(i), 0, 0})))
	}

	require.NoError(t, s.Render())
	assert.Equal(t, 1, r.began)
	assert.Equal(t, 1, r.ended)
	require.Len(t, r.submissions, 3)
	for i, sub := range r.submissions {
		assert.Same(t, programs[i], sub.program, "submission %d out of order", i)
		assert.Equal(t, mgl32.Translate3D(float32(i), 0, 0), sub.transform)
	}
}

func TestSceneRenderStopsOnSubmitError(t *testing.T) {
	r := &stubRenderer{}
	s := newTestScene(t, r)

	bindErr := errors.New("link failed")
	s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))
	s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{bindErr: bindErr}))
	s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{}))

	err := s.Render()
	require.ErrorIs(t, err, bindErr)
	assert.Len(t, r.submissions, 1, "submission stops at the failing object")
}

func TestSceneOnUpdateRunsEveryCallback(t *testing.T) {
	s := newTestScene(t, &stubRenderer{}, WithUpdateWorkers(4))

	var updates atomic.Int32
	for i := range 16 {
		s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{},
			WithTag(fmt.Sprintf("obj-%d", i)),
			WithOnUpdate(func(deltaTime float32, obj Object) {
				updates.Add(1)
				obj.SetPosition(mgl32.Vec3{deltaTime, 0, 0})
			}),
		))
	}

	s.OnUpdate(0.5)
	assert.Equal(t, int32(16), updates.Load())

	// Callback mutations are folded into the transform the same tick.
	obj := s.Get(1)
	assert.Equal(t, mgl32.Translate3D(0.5, 0, 0), obj.Transform())
}

func TestSceneConcurrentUpdateAndRender(t *testing.T) {
	r := &stubRenderer{}
	s := newTestScene(t, r, WithUpdateWorkers(4))

	for range 8 {
		s.Add(NewObject(&stubGeometry{indexCount: 6}, &stubProgram{},
			WithOnUpdate(func(deltaTime float32, obj Object) {
				obj.SetPosition(obj.Position().Add(mgl32.Vec3{deltaTime, 0, 0}))
			}),
		))
	}

	// Drive updates and renders from separate goroutines the way the engine
	// splits its tick and frame loops; object mutation must never overlap a
	// transform read.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50 {
			assert.NoError(t, s.Render())
		}
	}()
	for range 50 {
		s.OnUpdate(0.01)
	}
	<-done

	// Every tick's mutation is folded into the transform before any later
	// read, so the final transform matches the accumulated position exactly.
	obj := s.Get(1)
	assert.Equal(t, mgl32.Translate3D(obj.Position().X(), 0, 0), obj.Transform())
}

func TestSceneOnUpdateWithoutObjects(t *testing.T) {
	s := newTestScene(t, &stubRenderer{})
	s.OnUpdate(0.016) // must not block or panic
}

func TestObjectTransformComposesTranslationRotationScale(t *testing.T) {
	o := NewObject(&stubGeometry{indexCount: 6}, &stubProgram{},
		WithObjectPosition(mgl32.Vec3{1, 2, 0}),
		WithObjectRotation(mgl32.DegToRad(90)),
		WithObjectScale(mgl32.Vec3{2, 2, 1}),
	)

	expected := mgl32.Translate3D(1, 2, 0).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 2, 1))
	assert.Equal(t, expected, o.Transform())

	o.SetScale(mgl32.Vec3{1, 1, 1})
	expected = mgl32.Translate3D(1, 2, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	assert.Equal(t, expected, o.Transform())
}

func TestSceneActiveFlag(t *testing.T) {
	s := newTestScene(t, &stubRenderer{})
	assert.False(t, s.Active())

	s.SetActive(true)
	assert.True(t, s.Active())

	active := newTestScene(t, &stubRenderer{}, WithActive(true))
	assert.True(t, active.Active())
}

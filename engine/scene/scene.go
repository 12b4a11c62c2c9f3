package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/ziben-go/engine/camera"
	"github.com/Carmen-Shannon/ziben-go/engine/renderer"
)

// Scene manages an ordered registry of Objects together with the Camera and
// Renderer used to draw them. Scenes can be hot-swapped via the Active flag to
// switch between different views or levels. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Add registers an Object with the scene, assigns it an ID if it does not
	// already carry one, and appends it to the draw order.
	//
	// Parameters:
	//   - obj: the Object to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj Object) uint64

	// Get retrieves an Object by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - Object: the object or nil
	Get(id uint64) Object

	// Remove removes an Object from the scene by ID. Removing an unknown ID
	// is a no-op. The object's GPU resources are not released.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Count returns the number of Objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Clear removes all objects from the scene.
	// Does not release GPU resources.
	Clear()

	// OnUpdate runs every object's update callback and refreshes its cached
	// transform, fanning the work out across the scene's worker pool. Returns
	// once all objects have been updated.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	OnUpdate(deltaTime float32)

	// Render draws every object in insertion order inside one
	// BeginScene/EndScene block on the scene's renderer. Must be called from
	// the thread owning the rendering context.
	//
	// Returns:
	//   - error: an error if submitting an object fails
	Render() error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]Object
	order    []uint64 // draw order; ids in insertion order
	nextID   uint64

	cam camera.Camera
	r   renderer.Renderer

	// updatePool manages a bounded set of reusable goroutines for the
	// parallel CPU phase of OnUpdate. Workers persist across frames, avoiding
	// per-frame goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera and renderer. Both are
// required and NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		cam:           cam,
		r:             r,
		registry:      make(map[uint64]Object),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithUpdateWorkers can override the
	// default. Queue size of 256 accommodates typical object counts with headroom.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Add(obj Object) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers an object. Caller must hold the write lock.
func (s *scene) add(obj Object) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if _, exists := s.registry[obj.ID()]; !exists {
		s.order = append(s.order, obj.ID())
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]Object)
	s.order = s.order[:0]
}

func (s *scene) OnUpdate(deltaTime float32) {
	// The write lock is held across the fan-out and the barrier so Render
	// cannot observe objects mid-mutation; workers touch disjoint objects, so
	// they need no lock of their own.
	s.mu.Lock()
	defer s.mu.Unlock()

	// Fan out per-object updates to the pool. Workers are reused across
	// frames. A WaitGroup provides per-frame barrier sync since pool.Wait()
	// blocks until workers idle-exit which is unsuitable for frame-rate
	// workloads.
	var wg sync.WaitGroup
	for i, id := range s.order {
		obj := s.registry[id]
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.OnUpdate(deltaTime)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.r.BeginScene(s.cam)
	for _, id := range s.order {
		obj := s.registry[id]
		if err := s.r.Submit(obj.Program(), obj.Geometry(), obj.Transform()); err != nil {
			return fmt.Errorf("scene %q: submit object %d: %w", s.name, id, err)
		}
	}
	s.r.EndScene()
	return nil
}

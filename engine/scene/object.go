package scene

import (
	"github.com/Carmen-Shannon/ziben-go/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// object is the implementation of the Object interface.
type object struct {
	id  uint64
	tag string

	geometry renderer.Geometry
	program  renderer.Program

	position mgl32.Vec3
	rotation float32 // z rotation in radians
	scale    mgl32.Vec3

	transform mgl32.Mat4
	dirty     bool

	onUpdate func(deltaTime float32, obj Object)
}

// Object is a drawable scene entity: geometry and a shader program plus a
// world transform assembled from position, rotation, and scale. Objects are
// not safe for concurrent mutation; the scene updates each object from at
// most one goroutine per tick.
type Object interface {
	// ID returns the object's scene-assigned identifier, or 0 if the object
	// has not been added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID assigns the object's identifier. Called by the scene on Add.
	//
	// Parameters:
	//   - id: the new ID
	SetID(id uint64)

	// Tag returns the object's human-readable tag.
	//
	// Returns:
	//   - string: the tag
	Tag() string

	// SetTag sets the object's human-readable tag.
	//
	// Parameters:
	//   - tag: the new tag
	SetTag(tag string)

	// Position returns the object's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the object and marks its transform for recomputation.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// Rotation returns the object's rotation around the z axis in radians.
	//
	// Returns:
	//   - float32: the rotation in radians
	Rotation() float32

	// SetRotation rotates the object and marks its transform for recomputation.
	//
	// Parameters:
	//   - radians: the new rotation in radians
	SetRotation(radians float32)

	// Scale returns the object's per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetScale rescales the object and marks its transform for recomputation.
	//
	// Parameters:
	//   - scale: the new per-axis scale
	SetScale(scale mgl32.Vec3)

	// Transform returns the object's world transform, recomputing it first if
	// position, rotation, or scale changed since the last call.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	Transform() mgl32.Mat4

	// Geometry returns the object's drawable geometry.
	//
	// Returns:
	//   - renderer.Geometry: the geometry
	Geometry() renderer.Geometry

	// Program returns the object's shader program.
	//
	// Returns:
	//   - renderer.Program: the program
	Program() renderer.Program

	// OnUpdate runs the object's update callback (if any) and refreshes the
	// cached transform. The scene calls this once per tick.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	OnUpdate(deltaTime float32)
}

var _ Object = &object{}

// NewObject creates an Object from geometry and a shader program, positioned
// at the origin with unit scale and no rotation.
//
// Parameters:
//   - geometry: the drawable geometry (must not be nil)
//   - program: the shader program to draw with (must not be nil)
//   - options: variadic list of ObjectBuilderOption functions to configure the object
//
// Returns:
//   - Object: the configured object
func NewObject(geometry renderer.Geometry, program renderer.Program, options ...ObjectBuilderOption) Object {
	if geometry == nil {
		panic("scene: NewObject requires non-nil geometry")
	}
	if program == nil {
		panic("scene: NewObject requires a non-nil program")
	}

	o := &object{
		geometry: geometry,
		program:  program,
		scale:    mgl32.Vec3{1, 1, 1},
		dirty:    true,
	}
	for _, option := range options {
		option(o)
	}
	o.recalculateTransform()
	return o
}

func (o *object) ID() uint64 {
	return o.id
}

func (o *object) SetID(id uint64) {
	o.id = id
}

func (o *object) Tag() string {
	return o.tag
}

func (o *object) SetTag(tag string) {
	o.tag = tag
}

func (o *object) Position() mgl32.Vec3 {
	return o.position
}

func (o *object) SetPosition(position mgl32.Vec3) {
	o.position = position
	o.dirty = true
}

func (o *object) Rotation() float32 {
	return o.rotation
}

func (o *object) SetRotation(radians float32) {
	o.rotation = radians
	o.dirty = true
}

func (o *object) Scale() mgl32.Vec3 {
	return o.scale
}

func (o *object) SetScale(scale mgl32.Vec3) {
	o.scale = scale
	o.dirty = true
}

func (o *object) Transform() mgl32.Mat4 {
	if o.dirty {
		o.recalculateTransform()
	}
	return o.transform
}

func (o *object) Geometry() renderer.Geometry {
	return o.geometry
}

func (o *object) Program() renderer.Program {
	return o.program
}

func (o *object) OnUpdate(deltaTime float32) {
	if o.onUpdate != nil {
		o.onUpdate(deltaTime, o)
	}
	if o.dirty {
		o.recalculateTransform()
	}
}

func (o *object) recalculateTransform() {
	o.transform = mgl32.Translate3D(o.position.X(), o.position.Y(), o.position.Z()).
		Mul4(mgl32.HomogRotate3DZ(o.rotation)).
		Mul4(mgl32.Scale3D(o.scale.X(), o.scale.Y(), o.scale.Z()))
	o.dirty = false
}

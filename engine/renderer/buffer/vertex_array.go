package buffer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
)

// Attribute describes one float vertex attribute within an interleaved layout.
type Attribute struct {
	// Name is the attribute's identifier in the vertex stage source.
	Name string

	// Components is the number of float components (1-4).
	Components int32
}

// Layout is the ordered list of attributes making up one interleaved vertex.
type Layout []Attribute

// Stride returns the byte size of one vertex under this layout.
//
// Returns:
//   - int32: the byte stride between consecutive vertices
func (l Layout) Stride() int32 {
	var stride int32
	for _, attribute := range l {
		stride += attribute.Components * 4
	}
	return stride
}

// vertexArray is the implementation of the VertexArray interface.
type vertexArray struct {
	drv          driver.Driver
	handle       *driver.Handle
	vertexBuffer VertexBuffer
	indexBuffer  IndexBuffer
}

// VertexArray combines a vertex buffer, its attribute layout, and an index
// buffer into one bindable piece of geometry. It retains shared ownership of
// both buffers for its lifetime and satisfies the renderer's geometry contract
// (bindable identity plus index count).
type VertexArray interface {
	// Bind makes this geometry the active draw source.
	Bind()

	// Unbind binds the null vertex array.
	Unbind()

	// IndexCount returns the number of indices available for indexed drawing.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Release drops this owner's references to the vertex array and both
	// underlying buffers.
	Release()
}

var _ VertexArray = &vertexArray{}

// NewVertexArray builds a vertex array from a vertex buffer, an attribute
// layout describing its interleaved contents, and an index buffer. The array
// retains both buffers; callers that keep using the buffers independently keep
// their own references.
//
// Parameters:
//   - drv: the graphics driver
//   - vb: the vertex buffer holding interleaved attribute data
//   - layout: the attribute layout; must not be empty
//   - ib: the index buffer sized for indexed draws
//
// Returns:
//   - VertexArray: the assembled geometry
//   - error: an error if the layout is empty or the driver cannot allocate
func NewVertexArray(drv driver.Driver, vb VertexBuffer, layout Layout, ib IndexBuffer) (VertexArray, error) {
	if len(layout) == 0 {
		return nil, errors.New("buffer: vertex layout must not be empty")
	}

	id, err := drv.CreateVertexArray()
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}

	drv.BindVertexArray(id)
	vb.Bind()
	stride := layout.Stride()
	offset := 0
	for i, attribute := range layout {
		drv.SetAttributePointer(uint32(i), attribute.Components, stride, offset)
		offset += int(attribute.Components) * 4
	}
	ib.Bind()
	drv.BindVertexArray(0)

	// The array co-owns both buffers; the caller's references stay valid.
	vb.Handle().Retain()
	ib.Handle().Retain()

	return &vertexArray{
		drv:          drv,
		handle:       driver.NewHandle(id, drv.DeleteVertexArray),
		vertexBuffer: vb,
		indexBuffer:  ib,
	}, nil
}

func (v *vertexArray) Bind() {
	v.drv.BindVertexArray(v.handle.ID())
}

func (v *vertexArray) Unbind() {
	v.drv.BindVertexArray(0)
}

func (v *vertexArray) IndexCount() int {
	return v.indexBuffer.Count()
}

func (v *vertexArray) Release() {
	v.handle.Release()
	v.vertexBuffer.Release()
	v.indexBuffer.Release()
}

// package buffer owns GPU-resident vertex and index data. A buffer uploads its
// data exactly once, at construction, and is immutable afterwards; the usage
// hint only affects driver-side placement. Buffers share ownership of their
// driver handle through driver.Handle, so the GPU resource is revoked when the
// last owner releases.
package buffer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/ziben-go/common"
	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
)

// vertexBuffer is the implementation of the VertexBuffer interface.
type vertexBuffer struct {
	drv    driver.Driver
	handle *driver.Handle
	count  int
	usage  driver.BufferUsage
}

// VertexBuffer is a GPU buffer holding per-vertex float data.
type VertexBuffer interface {
	// Bind makes this buffer the active vertex data source.
	Bind()

	// Unbind binds the null vertex buffer.
	Unbind()

	// Count returns the number of float elements uploaded at construction.
	//
	// Returns:
	//   - int: the element count
	Count() int

	// Handle returns the shared-ownership wrapper around the buffer handle.
	//
	// Returns:
	//   - *driver.Handle: the buffer handle wrapper
	Handle() *driver.Handle

	// Release drops this owner's reference; the GPU buffer is revoked when
	// the last owner releases.
	Release()
}

var _ VertexBuffer = &vertexBuffer{}

// NewVertexBuffer allocates a GPU vertex buffer and uploads the given data
// immediately. The data is immutable after upload.
//
// Parameters:
//   - drv: the graphics driver
//   - data: the vertex data; must not be empty
//   - usage: the driver-side placement hint
//
// Returns:
//   - VertexBuffer: the uploaded buffer
//   - error: an error if the data is empty or the driver cannot allocate
func NewVertexBuffer(drv driver.Driver, data []float32, usage driver.BufferUsage) (VertexBuffer, error) {
	if len(data) == 0 {
		return nil, errors.New("buffer: vertex data must not be empty")
	}
	id, err := drv.CreateBuffer(driver.TargetVertex, common.SliceToBytes(data), usage)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	return &vertexBuffer{
		drv:    drv,
		handle: driver.NewHandle(id, drv.DeleteBuffer),
		count:  len(data),
		usage:  usage,
	}, nil
}

func (b *vertexBuffer) Bind() {
	b.drv.BindBuffer(driver.TargetVertex, b.handle.ID())
}

func (b *vertexBuffer) Unbind() {
	b.drv.BindBuffer(driver.TargetVertex, 0)
}

func (b *vertexBuffer) Count() int {
	return b.count
}

func (b *vertexBuffer) Handle() *driver.Handle {
	return b.handle
}

func (b *vertexBuffer) Release() {
	b.handle.Release()
}

// indexBuffer is the implementation of the IndexBuffer interface.
type indexBuffer struct {
	drv    driver.Driver
	handle *driver.Handle
	count  int
	usage  driver.BufferUsage
}

// IndexBuffer is a GPU buffer holding 32-bit draw indices.
type IndexBuffer interface {
	// Bind makes this buffer the active index data source.
	Bind()

	// Unbind binds the null index buffer.
	Unbind()

	// Count returns the number of indices uploaded at construction, used to
	// size indexed draw calls.
	//
	// Returns:
	//   - int: the index count
	Count() int

	// Handle returns the shared-ownership wrapper around the buffer handle.
	//
	// Returns:
	//   - *driver.Handle: the buffer handle wrapper
	Handle() *driver.Handle

	// Release drops this owner's reference; the GPU buffer is revoked when
	// the last owner releases.
	Release()
}

var _ IndexBuffer = &indexBuffer{}

// NewIndexBuffer allocates a GPU index buffer and uploads the given indices
// immediately. The data is immutable after upload.
//
// Parameters:
//   - drv: the graphics driver
//   - indices: the 32-bit indices; must not be empty
//   - usage: the driver-side placement hint
//
// Returns:
//   - IndexBuffer: the uploaded buffer
//   - error: an error if the data is empty or the driver cannot allocate
func NewIndexBuffer(drv driver.Driver, indices []uint32, usage driver.BufferUsage) (IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, errors.New("buffer: index data must not be empty")
	}
	id, err := drv.CreateBuffer(driver.TargetIndex, common.SliceToBytes(indices), usage)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	return &indexBuffer{
		drv:    drv,
		handle: driver.NewHandle(id, drv.DeleteBuffer),
		count:  len(indices),
		usage:  usage,
	}, nil
}

func (b *indexBuffer) Bind() {
	b.drv.BindBuffer(driver.TargetIndex, b.handle.ID())
}

func (b *indexBuffer) Unbind() {
	b.drv.BindBuffer(driver.TargetIndex, 0)
}

func (b *indexBuffer) Count() int {
	return b.count
}

func (b *indexBuffer) Handle() *driver.Handle {
	return b.handle
}

func (b *indexBuffer) Release() {
	b.handle.Release()
}

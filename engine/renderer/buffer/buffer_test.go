package buffer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/ziben-go/engine/renderer/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver tracks buffer and vertex array state. The embedded interface
// panics on anything the buffer lifecycle is not expected to call.
type fakeDriver struct {
	driver.Driver

	nextID    uint32
	createErr error

	uploads        map[uint32][]byte
	usages         map[uint32]driver.BufferUsage
	bound          map[driver.BufferTarget]uint32
	deletedBuffers []uint32

	boundArray    uint32
	deletedArrays []uint32
	attributes    []attributeCall
}

type attributeCall struct {
	index      uint32
	components int32
	stride     int32
	offset     int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		uploads: make(map[uint32][]byte),
		usages:  make(map[uint32]driver.BufferUsage),
		bound:   make(map[driver.BufferTarget]uint32),
	}
}

func (d *fakeDriver) CreateBuffer(target driver.BufferTarget, data []byte, usage driver.BufferUsage) (uint32, error) {
	if d.createErr != nil {
		return 0, d.createErr
	}
	d.nextID++
	d.uploads[d.nextID] = data
	d.usages[d.nextID] = usage
	return d.nextID, nil
}

func (d *fakeDriver) DeleteBuffer(buffer uint32) {
	d.deletedBuffers = append(d.deletedBuffers, buffer)
}

func (d *fakeDriver) BindBuffer(target driver.BufferTarget, buffer uint32) {
	d.bound[target] = buffer
}

func (d *fakeDriver) CreateVertexArray() (uint32, error) {
	d.nextID++
	return d.nextID, nil
}

func (d *fakeDriver) DeleteVertexArray(array uint32) {
	d.deletedArrays = append(d.deletedArrays, array)
}

func (d *fakeDriver) BindVertexArray(array uint32) {
	d.boundArray = array
}

func (d *fakeDriver) SetAttributePointer(index uint32, components int32, stride int32, offset int) {
	d.attributes = append(d.attributes, attributeCall{index, components, stride, offset})
}

func TestIndexBufferUploadsOnceAndTracksCount(t *testing.T) {
	drv := newFakeDriver()
	ib, err := NewIndexBuffer(drv, []uint32{0, 1, 2}, driver.UsageStatic)
	require.NoError(t, err)

	assert.Equal(t, 3, ib.Count())
	assert.Len(t, drv.uploads[ib.Handle().ID()], 12, "3 uint32 indices are 12 bytes")
	assert.Equal(t, driver.UsageStatic, drv.usages[ib.Handle().ID()])

	ib.Bind()
	assert.Equal(t, ib.Handle().ID(), drv.bound[driver.TargetIndex])
	ib.Unbind()
	assert.Equal(t, uint32(0), drv.bound[driver.TargetIndex], "unbind must leave the null resource active")
}

func TestVertexBufferBindTargetsVertexCategory(t *testing.T) {
	drv := newFakeDriver()
	vb, err := NewVertexBuffer(drv, []float32{0, 0, 0}, driver.UsageDynamic)
	require.NoError(t, err)

	vb.Bind()
	assert.Equal(t, vb.Handle().ID(), drv.bound[driver.TargetVertex])
	assert.Zero(t, drv.bound[driver.TargetIndex], "vertex bind must not touch the index binding")
	assert.Equal(t, 3, vb.Count())
}

func TestBufferEmptyDataFails(t *testing.T) {
	drv := newFakeDriver()

	_, err := NewIndexBuffer(drv, nil, driver.UsageStatic)
	assert.Error(t, err)

	_, err = NewVertexBuffer(drv, nil, driver.UsageStatic)
	assert.Error(t, err)

	assert.Zero(t, drv.nextID, "no allocation may happen for empty data")
}

func TestBufferAllocationFailurePropagates(t *testing.T) {
	drv := newFakeDriver()
	drv.createErr = errors.New("out of memory")

	_, err := NewIndexBuffer(drv, []uint32{0}, driver.UsageStatic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestBufferReleaseRevokesHandle(t *testing.T) {
	drv := newFakeDriver()
	ib, err := NewIndexBuffer(drv, []uint32{0, 1, 2}, driver.UsageStatic)
	require.NoError(t, err)
	id := ib.Handle().ID()

	ib.Release()
	assert.Equal(t, []uint32{id}, drv.deletedBuffers)
	assert.False(t, ib.Handle().Valid())

	ib.Release()
	assert.Len(t, drv.deletedBuffers, 1, "double release must not revoke twice")
}

func TestVertexArrayConfiguresLayout(t *testing.T) {
	drv := newFakeDriver()
	vb, err := NewVertexBuffer(drv, []float32{
		-0.5, -0.5, 0, 1, 0, 0, 1,
		0.5, -0.5, 0, 0, 1, 0, 1,
		0, 0.5, 0, 0, 0, 1, 1,
	}, driver.UsageStatic)
	require.NoError(t, err)
	ib, err := NewIndexBuffer(drv, []uint32{0, 1, 2}, driver.UsageStatic)
	require.NoError(t, err)

	layout := Layout{
		{Name: "a_Position", Components: 3},
		{Name: "a_Color", Components: 4},
	}
	assert.Equal(t, int32(28), layout.Stride())

	va, err := NewVertexArray(drv, vb, layout, ib)
	require.NoError(t, err)

	require.Len(t, drv.attributes, 2)
	assert.Equal(t, attributeCall{0, 3, 28, 0}, drv.attributes[0])
	assert.Equal(t, attributeCall{1, 4, 28, 12}, drv.attributes[1])
	assert.Equal(t, 3, va.IndexCount())
	assert.Zero(t, drv.boundArray, "construction must leave the null array bound")

	va.Bind()
	assert.NotZero(t, drv.boundArray)
	va.Unbind()
	assert.Zero(t, drv.boundArray)
}

func TestVertexArrayEmptyLayoutFails(t *testing.T) {
	drv := newFakeDriver()
	vb, err := NewVertexBuffer(drv, []float32{0}, driver.UsageStatic)
	require.NoError(t, err)
	ib, err := NewIndexBuffer(drv, []uint32{0}, driver.UsageStatic)
	require.NoError(t, err)

	_, err = NewVertexArray(drv, vb, nil, ib)
	assert.Error(t, err)
}

func TestVertexArraySharesBufferOwnership(t *testing.T) {
	drv := newFakeDriver()
	vb, err := NewVertexBuffer(drv, []float32{0, 0, 0}, driver.UsageStatic)
	require.NoError(t, err)
	ib, err := NewIndexBuffer(drv, []uint32{0, 1, 2}, driver.UsageStatic)
	require.NoError(t, err)

	va, err := NewVertexArray(drv, vb, Layout{{Name: "a_Position", Components: 3}}, ib)
	require.NoError(t, err)

	// The creator's references can be dropped without revoking the buffers.
	vb.Release()
	ib.Release()
	assert.Empty(t, drv.deletedBuffers)
	assert.True(t, vb.Handle().Valid())

	va.Release()
	assert.Len(t, drv.deletedBuffers, 2)
	assert.Len(t, drv.deletedArrays, 1)
}

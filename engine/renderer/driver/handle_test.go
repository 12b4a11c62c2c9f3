package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleReleasesOnLastOwner(t *testing.T) {
	released := 0
	var releasedID uint32
	h := NewHandle(42, func(id uint32) {
		released++
		releasedID = id
	})

	assert.True(t, h.Valid())
	assert.Equal(t, uint32(42), h.ID())

	h.Retain()
	h.Release()
	assert.True(t, h.Valid(), "resource must survive while an owner remains")
	assert.Equal(t, 0, released)

	h.Release()
	assert.False(t, h.Valid())
	assert.Equal(t, uint32(0), h.ID())
	assert.Equal(t, 1, released, "release callback must fire exactly once")
	assert.Equal(t, uint32(42), releasedID)
}

func TestHandleReleaseAfterRevokeIsNoOp(t *testing.T) {
	released := 0
	h := NewHandle(7, func(uint32) { released++ })

	h.Release()
	h.Release()
	h.Release()

	assert.Equal(t, 1, released)
	assert.False(t, h.Valid())
}

func TestHandleNilReleaseCallback(t *testing.T) {
	h := NewHandle(3, nil)
	h.Release()
	assert.False(t, h.Valid())
}

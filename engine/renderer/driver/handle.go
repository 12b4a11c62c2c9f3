package driver

import (
	"sync/atomic"
)

// Handle is a reference-counted owner of a driver-issued resource identifier.
// A Handle starts with one owner; additional owners are added with Retain and
// every owner must call Release exactly once. When the last owner releases,
// the release callback revokes the underlying resource and the id is zeroed.
//
// An id of 0 means unallocated; Release on an already-revoked Handle is a no-op.
type Handle struct {
	id      uint32
	refs    atomic.Int32
	release func(id uint32)
}

// NewHandle wraps a driver-issued id with a reference count of one.
//
// Parameters:
//   - id: the driver-issued resource identifier
//   - release: callback invoked with the id when the last owner releases
//
// Returns:
//   - *Handle: the shared-ownership wrapper
func NewHandle(id uint32, release func(id uint32)) *Handle {
	h := &Handle{id: id, release: release}
	h.refs.Store(1)
	return h
}

// ID returns the wrapped resource identifier, or 0 if the resource has been revoked.
//
// Returns:
//   - uint32: the resource identifier
func (h *Handle) ID() uint32 {
	return h.id
}

// Valid reports whether the handle still owns a live resource.
//
// Returns:
//   - bool: true if the id is non-zero
func (h *Handle) Valid() bool {
	return h.id != 0
}

// Retain adds an owner to the handle. The new owner must call Release when done.
//
// Returns:
//   - *Handle: the same handle, for chaining into struct literals
func (h *Handle) Retain() *Handle {
	h.refs.Add(1)
	return h
}

// Release drops one owner. When the owner count reaches zero the release
// callback revokes the resource and the handle becomes invalid. Releasing an
// already-revoked handle is a no-op.
func (h *Handle) Release() {
	if h.id == 0 {
		return
	}
	if h.refs.Add(-1) > 0 {
		return
	}
	if h.release != nil {
		h.release(h.id)
	}
	h.id = 0
}

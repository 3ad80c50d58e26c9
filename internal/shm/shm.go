// Package shm provides anonymous shared memory mappings used as an
// alternative backing store for allocations.
//
// A mapping is created with MAP_SHARED|MAP_ANON, so after a fork the
// region is visible to both processes. No synchronization is provided.
package shm

import (
	"errors"
	"sync/atomic"
)

// ErrUnsupported is returned by Map on platforms without anonymous mmap.
var ErrUnsupported = errors.New("shm: shared mappings not supported on this platform")

var (
	// ErrInvalid is returned by Map when the kernel rejects the request
	// itself, usually because of conflicting flags or a bad hint.
	ErrInvalid = errors.New("shm: invalid mapping request")
	// ErrNoMemory is returned by Map when the kernel has no memory or
	// address space left for the mapping.
	ErrNoMemory = errors.New("shm: no memory for mapping")
)

var live atomic.Int64

// Live reports the number of mappings created by Map that have not been
// unmapped yet.
func Live() int64 {
	return live.Load()
}

// mapLength is the number of bytes actually mapped for a payload of size
// bytes. The kernel rejects zero-length mappings.
func mapLength(size int) int {
	if size == 0 {
		return 1
	}
	return size
}

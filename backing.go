package mmatic

import (
	"fmt"
	"unsafe"
)

// Backing selects where an allocation's bytes live.
type Backing uint8

const (
	// Heap allocations are ordinary Go byte slices.
	Heap Backing = iota
	// SharedMapping allocations are anonymous MAP_SHARED mappings and stay
	// visible to child processes after fork.
	SharedMapping
)

// String implements fmt.Stringer.
func (b Backing) String() string {
	switch b {
	case Heap:
		return "heap"
	case SharedMapping:
		return "shared"
	default:
		return fmt.Sprintf("Backing(%d)", uint8(b))
	}
}

// AllocOptions controls a single allocation. The zero value is a heap
// allocation.
type AllocOptions struct {
	// Zero clears the payload before it is returned.
	Zero bool
	// Backing is fixed for the lifetime of the allocation, including
	// across Reallocate.
	Backing Backing
	// MapHint is the preferred address of a SharedMapping. Only honored
	// on Linux.
	MapHint unsafe.Pointer
	// MapFlags are extra mmap flags for a SharedMapping.
	MapFlags int
}

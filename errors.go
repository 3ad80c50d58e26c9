package mmatic

import "github.com/pkg/errors"

var (
	// ErrInvalidOwner is returned when an owner argument resolves neither to
	// a live manager nor to a live allocation.
	ErrInvalidOwner = errors.New("mmatic: invalid owner")
	// ErrReleased is returned when a manager is used after FreeAll.
	ErrReleased = errors.New("mmatic: manager released")
	// ErrInvalidHandle is returned for a zero, stale or foreign handle.
	ErrInvalidHandle = errors.New("mmatic: invalid chunk handle")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("mmatic: invalid size")
	// ErrOutOfMemory is returned when the backing store cannot provide memory.
	ErrOutOfMemory = errors.New("mmatic: out of memory")
	// ErrInvalidMapping is returned when the kernel rejects a shared
	// mapping request, typically because of MapFlags or MapHint.
	ErrInvalidMapping = errors.New("mmatic: invalid mapping request")
	// ErrSharedUnsupported is returned when a shared mapping is requested on
	// a platform without anonymous mmap.
	ErrSharedUnsupported = errors.New("mmatic: shared mappings not supported")
)

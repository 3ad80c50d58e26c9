//go:build linux

package shm

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Map creates an anonymous shared read/write mapping holding size bytes.
// hint is passed to mmap as the preferred address and flags are OR'ed into
// MAP_SHARED|MAP_ANONYMOUS. The returned cleanup unmaps the region; calling
// it again is a no-op.
func Map(size int, hint unsafe.Pointer, flags int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("shm: negative size %d", size)
	}
	length := uintptr(mapLength(size))
	p, err := unix.MmapPtr(-1, 0, hint, length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_ANONYMOUS|flags)
	if err != nil {
		return nil, nil, mapError(size, err)
	}
	live.Add(1)

	data := unsafe.Slice((*byte)(p), length)[:size:size]
	cleanup := func() error {
		if p == nil {
			return nil
		}
		err := unix.MunmapPtr(p, length)
		if err != nil && !errors.Is(err, unix.EINVAL) {
			return fmt.Errorf("shm: munmap %d bytes: %w", length, err)
		}
		p = nil
		live.Add(-1)
		return nil
	}
	return data, cleanup, nil
}

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package shm

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Map creates an anonymous shared read/write mapping holding size bytes.
// The address hint is not honored on this platform; flags are OR'ed into
// MAP_SHARED|MAP_ANON.
func Map(size int, _ unsafe.Pointer, flags int) ([]byte, func() error, error) {
	if size < 0 {
		return nil, nil, fmt.Errorf("shm: negative size %d", size)
	}
	mem, err := unix.Mmap(-1, 0, mapLength(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_ANON|flags)
	if err != nil {
		return nil, nil, mapError(size, err)
	}
	live.Add(1)

	cleanup := func() error {
		if mem == nil {
			return nil
		}
		err := unix.Munmap(mem)
		if err != nil && !errors.Is(err, unix.EINVAL) {
			return fmt.Errorf("shm: munmap %d bytes: %w", len(mem), err)
		}
		mem = nil
		live.Add(-1)
		return nil
	}
	return mem[:size:size], cleanup, nil
}

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package shm

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// mapError tags an mmap failure with ErrInvalid or ErrNoMemory when the
// errno says which one it is.
func mapError(size int, err error) error {
	switch {
	case errors.Is(err, unix.EINVAL):
		return fmt.Errorf("%w: mmap %d bytes: %w", ErrInvalid, size, err)
	case errors.Is(err, unix.ENOMEM):
		return fmt.Errorf("%w: mmap %d bytes: %w", ErrNoMemory, size, err)
	}
	return fmt.Errorf("shm: mmap %d bytes: %w", size, err)
}

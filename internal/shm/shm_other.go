//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package shm

import "unsafe"

// Map always fails with ErrUnsupported on this platform.
func Map(size int, _ unsafe.Pointer, _ int) ([]byte, func() error, error) {
	return nil, nil, ErrUnsupported
}

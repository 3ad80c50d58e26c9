package mmatic

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// Reallocate moves the allocation h to a fresh chunk of size bytes and
// frees the old one. A nil owner keeps the allocation in h's manager and a
// zero size keeps the current size. The backing store is preserved. The
// payload is copied up to the smaller of the two sizes.
func Reallocate(h Handle, size int, owner Owner) (Handle, error) {
	return reallocate(h, size, owner, 2)
}

func reallocate(h Handle, size int, owner Owner, skip int) (Handle, error) {
	c, err := h.chunk()
	if err != nil {
		return Handle{}, errors.Wrapf(err, "reallocate %s", h)
	}
	if owner == nil {
		owner = c.mgr
	}
	if size == 0 {
		size = c.size
	}

	nh, err := allocate(owner, size, AllocOptions{Backing: c.backing}, skip+1)
	if err != nil {
		return Handle{}, err
	}
	copy(nh.Bytes(), c.data)

	if err := Free(&h); err != nil {
		return nh, err
	}
	return nh, nil
}

// DupString copies s into a new NUL-terminated allocation of len(s)+1
// bytes.
func DupString(owner Owner, s string) (Handle, error) {
	return dup(owner, s, 2)
}

// DupBytes is DupString for a byte slice. A nil slice yields the zero
// Handle and no error.
func DupBytes(owner Owner, b []byte) (Handle, error) {
	if b == nil {
		return Handle{}, nil
	}
	return dup(owner, string(b), 2)
}

func dup(owner Owner, s string, skip int) (Handle, error) {
	h, err := allocate(owner, len(s)+1, AllocOptions{}, skip+1)
	if err != nil {
		return Handle{}, err
	}
	b := h.Bytes()
	copy(b, s)
	b[len(s)] = 0
	return h, nil
}

// Sprintf formats into a new NUL-terminated allocation sized to fit.
func Sprintf(owner Owner, format string, args ...any) (Handle, error) {
	return dup(owner, fmt.Sprintf(format, args...), 2)
}

// AllocSlice allocates room for n values of T and returns the payload
// viewed as a []T. T must not contain pointers: the payload is not scanned
// by the garbage collector when it lives in a shared mapping.
func AllocSlice[T any](owner Owner, n int, opts AllocOptions) (Handle, []T, error) {
	if n < 0 {
		return Handle{}, nil, errors.Wrapf(ErrInvalidSize, "allocate %d elements", n)
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	h, err := allocate(owner, size, opts, 2)
	if err != nil {
		return Handle{}, nil, err
	}
	return h, View[T](h), nil
}

// View reinterprets the payload of h as a []T. It returns nil when h is
// invalid or too small to hold a single T.
func View[T any](h Handle) []T {
	b := h.Bytes()
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 || len(b) < elemSize {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/elemSize)
}

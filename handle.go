package mmatic

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Owner names the manager an allocation should join. It is implemented by
// *Manager and by Handle; a Handle resolves to the manager that owns it.
type Owner interface {
	manager() (*Manager, error)
}

func (m *Manager) manager() (*Manager, error) {
	if m == nil {
		return nil, ErrInvalidOwner
	}
	if m.tag != tagManager {
		return nil, ErrReleased
	}
	return m, nil
}

func (h Handle) manager() (*Manager, error) {
	c, err := h.chunk()
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidOwner, "%s: %v", h, err)
	}
	return c.mgr, nil
}

// Resolve returns the live manager owner refers to.
func Resolve(owner Owner) (*Manager, error) {
	return resolve(owner)
}

func resolve(owner Owner) (*Manager, error) {
	if owner == nil {
		return nil, ErrInvalidOwner
	}
	return owner.manager()
}

// Handle refers to one allocation made through a Manager. The zero Handle
// is invalid. Handles go stale when their allocation is freed, even if the
// table slot is later reused.
type Handle struct {
	m   *Manager
	idx uint32
	gen uint32
}

// chunk looks the handle up in its manager's table.
func (h Handle) chunk() (*chunk, error) {
	m := h.m
	if m == nil {
		return nil, ErrInvalidHandle
	}
	if m.tag != tagManager {
		return nil, ErrReleased
	}
	if int(h.idx) >= len(m.slots) {
		return nil, ErrInvalidHandle
	}
	s := m.slots[h.idx]
	if s.c == nil || s.gen != h.gen || s.c.tag != tagChunk {
		return nil, ErrInvalidHandle
	}
	return s.c, nil
}

// Valid reports whether h refers to a live allocation.
func (h Handle) Valid() bool {
	_, err := h.chunk()
	return err == nil
}

// Bytes returns the payload, or nil if h is not valid. The slice stays
// usable until the allocation is freed.
func (h Handle) Bytes() []byte {
	c, err := h.chunk()
	if err != nil {
		return nil
	}
	return c.data
}

// Size returns the payload size in bytes, or 0 if h is not valid.
func (h Handle) Size() int {
	c, err := h.chunk()
	if err != nil {
		return 0
	}
	return c.size
}

// Backing returns the backing store of the allocation.
func (h Handle) Backing() Backing {
	c, err := h.chunk()
	if err != nil {
		return Heap
	}
	return c.backing
}

// Manager returns the owning manager, or nil if h is not valid.
func (h Handle) Manager() *Manager {
	c, err := h.chunk()
	if err != nil {
		return nil
	}
	return c.mgr
}

// Location returns the source location that made the allocation.
func (h Handle) Location() (file string, line int) {
	c, err := h.chunk()
	if err != nil {
		return "", 0
	}
	return c.file, c.line
}

// Text returns the payload up to the first NUL byte as a string.
func (h Handle) Text() string {
	b := h.Bytes()
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	if h.m == nil {
		return "chunk(nil)"
	}
	return fmt.Sprintf("%s/chunk#%d.%d", h.m, h.idx, h.gen)
}

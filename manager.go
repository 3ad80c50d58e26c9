package mmatic

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pavanmanishd/mmatic/internal/shm"
)

// Type tags. A manager or chunk whose tag does not match is dead.
const (
	tagManager uint32 = 0xBABBA777
	tagChunk   uint32 = 0xABBA1234
)

// chunk is the bookkeeping record kept for every allocation.
type chunk struct {
	tag     uint32
	backing Backing
	size    int
	file    string
	line    int
	prev    *chunk
	next    *chunk
	mgr     *Manager
	slot    uint32
	data    []byte
	unmap   func() error // nil for heap chunks
}

// slot is one entry of the manager's handle table.
type slot struct {
	c   *chunk
	gen uint32
}

// Manager groups allocations so they can all be released with FreeAll.
// A Manager is not goroutine-safe; use SafeManager to share one.
type Manager struct {
	tag    uint32
	id     uint64
	total  int
	count  int
	shared int
	allocs uint64
	frees  uint64

	// live chunks in allocation order
	head *chunk
	tail *chunk

	slots []slot
	free  []uint32

	conf Config
	log  *logrus.Entry
}

var managerIDs atomic.Uint64

// New creates an empty manager configured from the environment.
func New() *Manager {
	return NewWithConfig(defaultConfig())
}

// NewWithConfig creates an empty manager with an explicit configuration.
func NewWithConfig(conf Config) *Manager {
	id := managerIDs.Add(1)
	m := &Manager{
		tag:  tagManager,
		id:   id,
		conf: conf,
	}
	m.log = log.WithFields(logrus.Fields{
		"prefix":  "mmatic",
		"manager": id,
	})
	return m
}

// String returns a short identifier for log output.
func (m *Manager) String() string {
	if m == nil {
		return "mmatic#nil"
	}
	return fmt.Sprintf("mmatic#%d", m.id)
}

// Released reports whether the manager has been torn down by FreeAll.
func (m *Manager) Released() bool {
	return m == nil || m.tag != tagManager
}

// Allocate reserves size bytes under owner. owner is either a *Manager or a
// live Handle, in which case the allocation joins that handle's manager.
func Allocate(owner Owner, size int, opts AllocOptions) (Handle, error) {
	return allocate(owner, size, opts, 2)
}

// allocate resolves owner and allocates. skip is the caller depth of the
// user call site relative to allocate.
func allocate(owner Owner, size int, opts AllocOptions, skip int) (Handle, error) {
	m, err := resolve(owner)
	if err != nil {
		return Handle{}, errors.Wrapf(err, "allocate %d bytes", size)
	}
	return m.allocate(size, opts, skip+1)
}

func (m *Manager) allocate(size int, opts AllocOptions, skip int) (Handle, error) {
	if size < 0 {
		return Handle{}, errors.Wrapf(ErrInvalidSize, "allocate %d bytes", size)
	}

	data, unmap, err := obtain(size, opts)
	if err != nil {
		return Handle{}, err
	}

	c := &chunk{
		tag:     tagChunk,
		backing: opts.Backing,
		size:    size,
		mgr:     m,
		data:    data,
		unmap:   unmap,
	}
	c.file, c.line = m.site(skip)

	m.link(c)
	h := m.acquire(c)
	m.total += size
	m.count++
	m.allocs++
	if c.backing == SharedMapping {
		m.shared++
	}

	if opts.Zero {
		clear(data)
	}

	if m.conf.Audit {
		m.log.WithFields(logrus.Fields{
			"chunk":   h.String(),
			"size":    size,
			"backing": c.backing.String(),
			"at":      fmt.Sprintf("%s:%d", c.file, c.line),
		}).Debug("alloc")
	}
	return h, nil
}

// obtain gets payload storage from the requested backing store.
func obtain(size int, opts AllocOptions) ([]byte, func() error, error) {
	switch opts.Backing {
	case Heap:
		return make([]byte, size), nil, nil
	case SharedMapping:
		data, unmap, err := shm.Map(size, opts.MapHint, opts.MapFlags)
		switch {
		case errors.Is(err, shm.ErrUnsupported):
			return nil, nil, ErrSharedUnsupported
		case errors.Is(err, shm.ErrInvalid):
			return nil, nil, errors.Wrapf(ErrInvalidMapping, "%d shared bytes: %v", size, err)
		case errors.Is(err, shm.ErrNoMemory):
			return nil, nil, errors.Wrapf(ErrOutOfMemory, "%d shared bytes: %v", size, err)
		case err != nil:
			return nil, nil, errors.Wrapf(err, "mmatic: map %d shared bytes", size)
		}
		return data, unmap, nil
	default:
		return nil, nil, errors.Errorf("mmatic: unknown backing %d", opts.Backing)
	}
}

// Free releases a single allocation and zeroes *h.
func Free(h *Handle) error {
	if h == nil {
		return ErrInvalidHandle
	}
	c, err := h.chunk()
	if err != nil {
		return errors.Wrapf(err, "free %s", h)
	}

	m := c.mgr
	m.unlink(c)
	m.releaseSlot(c.slot)
	m.total -= c.size
	m.count--
	m.frees++
	if c.backing == SharedMapping {
		m.shared--
	}
	if m.conf.Audit {
		m.log.WithFields(logrus.Fields{
			"chunk": h.String(),
			"size":  c.size,
		}).Debug("free")
	}
	*h = Handle{}

	if err := c.release(); err != nil {
		return errors.Wrap(err, "free")
	}
	return nil
}

// FreeAll releases every allocation owned by the manager that owner
// resolves to, then releases the manager itself. Any later use of the
// manager or its handles fails with ErrReleased.
func FreeAll(owner Owner) error {
	m, err := resolve(owner)
	if err != nil {
		return errors.Wrap(err, "free all")
	}
	m.log.WithField("chunks", m.count).Debug("freeing")

	var result *multierror.Error
	for c := m.head; c != nil; {
		next := c.next
		if err := c.release(); err != nil {
			result = multierror.Append(result, err)
		}
		c.prev, c.next, c.mgr = nil, nil, nil
		c = next
	}

	m.tag = 0
	m.head, m.tail = nil, nil
	m.slots, m.free = nil, nil
	m.total, m.count, m.shared = 0, 0, 0
	return result.ErrorOrNil()
}

// release drops the chunk's storage. Mapped chunks are unmapped.
func (c *chunk) release() error {
	c.tag = 0
	c.data = nil
	if c.unmap == nil {
		return nil
	}
	unmap := c.unmap
	c.unmap = nil
	return unmap()
}

// link appends c at the tail of the chunk list.
func (m *Manager) link(c *chunk) {
	c.prev = m.tail
	c.next = nil
	if m.tail == nil {
		m.head = c
	} else {
		m.tail.next = c
	}
	m.tail = c
}

// unlink removes c from the chunk list, fixing head and tail.
func (m *Manager) unlink(c *chunk) {
	if c.prev == nil {
		m.head = c.next
	} else {
		c.prev.next = c.next
	}
	if c.next == nil {
		m.tail = c.prev
	} else {
		c.next.prev = c.prev
	}
	c.prev, c.next = nil, nil
}

// acquire stores c in a free table slot and returns its handle.
func (m *Manager) acquire(c *chunk) Handle {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}
	s := &m.slots[idx]
	s.c = c
	c.slot = idx
	return Handle{m: m, idx: idx, gen: s.gen}
}

// releaseSlot empties a table slot and bumps its generation so that
// outstanding handles to it go stale.
func (m *Manager) releaseSlot(idx uint32) {
	s := &m.slots[idx]
	s.c = nil
	s.gen++
	m.free = append(m.free, idx)
}

// site returns the source location skip frames above the caller.
func (m *Manager) site(skip int) (string, int) {
	if !m.conf.TrackCallers {
		return "", 0
	}
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0
	}
	return file, line
}

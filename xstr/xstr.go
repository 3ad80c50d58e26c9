// Package xstr implements a growable byte string whose storage is a single
// chunk owned by an mmatic.Manager.
//
// The buffer keeps its content NUL-terminated, so Handle().Bytes() can be
// handed to code that expects a C-style string. Storage failures are fatal
// through mmatic.FatalFunc.
package xstr

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/mmatic"
)

// ErrNoStorage is returned when the buffer could not obtain storage. The
// failure itself has already been reported through mmatic.FatalFunc.
var ErrNoStorage = errors.New("xstr: no storage")

// Buffer is a growable string. The zero value must be initialized with
// Init or InitValue before use. A Buffer borrows its manager and owns its
// backing chunk.
type Buffer struct {
	mm *mmatic.Manager
	h  mmatic.Handle
	s  []byte // payload of h, cap+1 bytes
	n  int    // length, excluding the terminator
	a  int    // capacity, excluding the terminator
}

// New returns a buffer holding initial, allocated under m.
func New(initial string, m *mmatic.Manager) *Buffer {
	b := new(Buffer)
	b.InitValue(initial, m)
	return b
}

// Init sets up b as an empty string owned by m.
func (b *Buffer) Init(m *mmatic.Manager) {
	b.InitValue("", m)
}

// InitValue sets up b holding value, owned by m. Any previous state of b
// is discarded without being freed.
func (b *Buffer) InitValue(value string, m *mmatic.Manager) {
	*b = Buffer{mm: m}
	b.Set(value)
}

// Reserve makes room for at least l bytes plus the terminator. It is the
// only way the buffer grows: the content is copied to a new chunk and the
// old chunk is freed.
func (b *Buffer) Reserve(l int) {
	if b.live() != nil {
		return
	}
	b.reserve(l)
}

func (b *Buffer) reserve(l int) error {
	if b.s != nil && b.a >= l {
		return nil
	}

	h := b.mm.Alloc(l + 1)
	s := h.Bytes()
	if len(s) == 0 {
		return ErrNoStorage
	}
	if b.s != nil {
		copy(s, b.s[:b.n+1])
		b.mm.Free(&b.h)
	} else {
		s[0] = 0
		b.n = 0
	}
	b.h, b.s, b.a = h, s, l
	return nil
}

// live fails when the backing chunk was released behind the buffer's back,
// for example by FreeAll on its manager. The failure is reported through
// mmatic.FatalFunc at the caller of the exported method.
func (b *Buffer) live() error {
	if b.s == nil || b.h.Valid() {
		return nil
	}
	err := errors.Wrapf(mmatic.ErrInvalidHandle, "xstr: buffer storage %s", b.h)
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
	}
	mmatic.FatalFunc(err.Error(), file, line)
	return err
}

// Set replaces the content with s.
func (b *Buffer) Set(s string) {
	if b.live() != nil || b.reserve(len(s)) != nil {
		return
	}
	copy(b.s, s)
	b.s[len(s)] = 0
	b.n = len(s)
}

// SetSized replaces the content with exactly n bytes of s. NUL bytes in s
// are copied; if s is shorter than n the rest is zero filled.
func (b *Buffer) SetSized(s []byte, n int) {
	if n < 0 {
		n = 0
	}
	if b.live() != nil || b.reserve(n) != nil {
		return
	}
	c := copy(b.s[:n], s)
	clear(b.s[c:n])
	b.s[n] = 0
	b.n = n
}

// Append adds s to the end of the content.
func (b *Buffer) Append(s string) {
	if b.live() != nil || s == "" {
		return
	}
	l := b.n + len(s)
	if b.reserve(l) != nil {
		return
	}
	copy(b.s[b.n:], s)
	b.s[l] = 0
	b.n = l
}

// AppendSized adds exactly n bytes of s. A nil s or non-positive n leaves
// the buffer unchanged.
func (b *Buffer) AppendSized(s []byte, n int) {
	if b.live() != nil || s == nil || n <= 0 {
		return
	}
	l := b.n + n
	if b.reserve(l) != nil {
		return
	}
	c := copy(b.s[b.n:l], s)
	clear(b.s[b.n+c : l])
	b.s[l] = 0
	b.n = l
}

// AppendChar adds a single byte. NUL is ignored. When headroom runs low
// the buffer grows by half its length, so a run of n appends reallocates
// O(log n) times.
func (b *Buffer) AppendChar(c byte) {
	if b.live() != nil || c == 0 {
		return
	}
	if b.s == nil || b.n+2 > b.a {
		if b.reserve(max(b.n+2, b.n*3/2)) != nil {
			return
		}
	}
	b.s[b.n] = c
	b.n++
	b.s[b.n] = 0
}

// Free releases the backing chunk. It is safe to call on an empty buffer.
func (b *Buffer) Free() {
	if b.s == nil {
		return
	}
	b.mm.Free(&b.h)
	b.s = nil
	b.n = 0
	b.a = 0
}

// Len returns the content length.
func (b *Buffer) Len() int { return b.n }

// Cap returns the number of bytes the buffer can hold without growing.
func (b *Buffer) Cap() int { return b.a }

// Bytes returns the content. The slice aliases the buffer and is only
// valid until the next mutation.
func (b *Buffer) Bytes() []byte {
	if b.s == nil {
		return nil
	}
	return b.s[:b.n]
}

// String returns a copy of the content.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Handle returns the backing chunk, which holds the NUL-terminated content.
func (b *Buffer) Handle() mmatic.Handle { return b.h }

// Manager returns the manager the buffer allocates from.
func (b *Buffer) Manager() *mmatic.Manager { return b.mm }

// Dup copies the content into a new NUL-terminated allocation under m, or
// under the buffer's own manager when m is nil.
func (b *Buffer) Dup(m *mmatic.Manager) mmatic.Handle {
	if m == nil {
		m = b.mm
	}
	return m.Strdup(b.String())
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.AppendSized(p, len(p))
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Buffer) WriteString(s string) (int, error) {
	b.Append(s)
	return len(s), nil
}

// WriteByte implements io.ByteWriter. NUL bytes are dropped.
func (b *Buffer) WriteByte(c byte) error {
	b.AppendChar(c)
	return nil
}

package xstr

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrFormatMismatch is returned when formatting the same arguments twice
// produced different lengths.
var ErrFormatMismatch = errors.New("xstr: formatted length changed between passes")

// SetFormat replaces the content with the fmt-formatted arguments and
// returns the new length. The output is measured first and written
// directly into reserved storage. On a length mismatch it returns -1 and
// ErrFormatMismatch and leaves the buffer empty.
func (b *Buffer) SetFormat(format string, args ...any) (int, error) {
	if err := b.live(); err != nil {
		return -1, err
	}
	n, err := b.format(0, format, args)
	if errors.Is(err, ErrFormatMismatch) {
		b.s[0] = 0
		b.n = 0
	}
	return n, err
}

// AppendFormat appends the fmt-formatted arguments and returns the number
// of bytes added. On a length mismatch it returns -1 and ErrFormatMismatch
// and the content is unchanged.
func (b *Buffer) AppendFormat(format string, args ...any) (int, error) {
	if err := b.live(); err != nil {
		return -1, err
	}
	n, err := b.format(b.n, format, args)
	if errors.Is(err, ErrFormatMismatch) {
		b.s[b.n] = 0
	}
	return n, err
}

// format writes the formatted arguments at off and sets the length to the
// end of the written text.
func (b *Buffer) format(off int, format string, args []any) (int, error) {
	var cw countWriter
	fmt.Fprintf(&cw, format, args...)
	n := int(cw)

	if err := b.reserve(off + n); err != nil {
		return -1, err
	}
	w := fixedWriter{buf: b.s[off : off+n]}
	written, err := fmt.Fprintf(&w, format, args...)
	if err != nil || written != n {
		return -1, errors.Wrapf(ErrFormatMismatch, "%q: measured %d, wrote %d", format, n, written)
	}

	b.s[off+n] = 0
	b.n = off + n
	return n, nil
}

// countWriter discards its input and counts the bytes.
type countWriter int

func (w *countWriter) Write(p []byte) (int, error) {
	*w += countWriter(len(p))
	return len(p), nil
}

// fixedWriter writes into a fixed region and fails instead of growing.
type fixedWriter struct {
	buf []byte
	off int
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	n := copy(w.buf[w.off:], p)
	w.off += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

package xstr

import "github.com/pavanmanishd/mmatic"

// isgraph reports whether c is a printable ASCII character other than
// space.
func isgraph(c byte) bool {
	return c > ' ' && c < 0x7f
}

// Strip returns a new NUL-terminated allocation, under the buffer's
// manager, holding the content without leading and trailing non-graphic
// bytes. The buffer is not modified.
func (b *Buffer) Strip() mmatic.Handle {
	if b.live() != nil {
		return mmatic.Handle{}
	}
	s := b.Bytes()
	i := 0
	for i < len(s) && !isgraph(s[i]) {
		i++
	}
	j := len(s)
	for j > i && !isgraph(s[j-1]) {
		j--
	}
	return b.mm.Strdup(string(s[i:j]))
}

// StripString strips s through a temporary buffer owned by m and returns
// the result allocated under m.
func StripString(s string, m *mmatic.Manager) mmatic.Handle {
	var b Buffer
	b.InitValue(s, m)
	defer b.Free()
	return b.Strip()
}

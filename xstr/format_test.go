package xstr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unstable formats to a different width every time it is printed.
type unstable struct {
	calls int
	grow  bool
}

func (u *unstable) Format(s fmt.State, _ rune) {
	u.calls++
	n := u.calls
	if !u.grow {
		n = 3 - u.calls
	}
	fmt.Fprint(s, strings.Repeat("x", n))
}

func TestSetFormat(t *testing.T) {
	m := newManager(t)
	b := New("previous", m)

	n, err := b.SetFormat("%d-%s", 42, "x")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	checkBuffer(t, b, "42-x")

	n, err = b.SetFormat("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	checkBuffer(t, b, "")

	long := strings.Repeat("ab", 300)
	n, err = b.SetFormat("[%s]", long)
	require.NoError(t, err)
	assert.Equal(t, 602, n)
	checkBuffer(t, b, "["+long+"]")
}

func TestSetFormatReservesExactly(t *testing.T) {
	m := newManager(t)
	var b Buffer
	b.Init(m)

	_, err := b.SetFormat("%05d", 7)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Cap())
	checkBuffer(t, &b, "00007")
}

func TestAppendFormat(t *testing.T) {
	m := newManager(t)
	b := New("x=", m)

	n, err := b.AppendFormat("%d", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	checkBuffer(t, b, "x=10")

	n, err = b.AppendFormat(", y=%.2f", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	checkBuffer(t, b, "x=10, y=1.50")

	n, err = b.AppendFormat("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	checkBuffer(t, b, "x=10, y=1.50")
}

func TestFormatMismatch(t *testing.T) {
	tests := []struct {
		name string
		grow bool
	}{
		{"second pass longer", true},
		{"second pass shorter", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t)

			b := New("keep", m)
			n, err := b.AppendFormat("%v", &unstable{grow: tt.grow})
			require.ErrorIs(t, err, ErrFormatMismatch)
			assert.Equal(t, -1, n)
			checkBuffer(t, b, "keep")

			n, err = b.SetFormat("%v", &unstable{grow: tt.grow})
			require.ErrorIs(t, err, ErrFormatMismatch)
			assert.Equal(t, -1, n)
			checkBuffer(t, b, "")
		})
	}
}

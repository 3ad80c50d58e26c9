//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package shm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapRoundTrip(t *testing.T) {
	before := Live()

	data, cleanup, err := Map(4096, nil, 0)
	require.NoError(t, err)
	require.Len(t, data, 4096)
	require.Equal(t, before+1, Live())

	for i := range data {
		require.Zero(t, data[i], "anonymous mapping must start zeroed")
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	copy(data[100:], want)
	require.Equal(t, want, data[100:105])

	require.NoError(t, cleanup())
	require.Equal(t, before, Live())
}

func TestMapZeroLength(t *testing.T) {
	before := Live()

	data, cleanup, err := Map(0, nil, 0)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data, 0)
	require.Equal(t, 0, cap(data))

	require.NoError(t, cleanup())
	require.Equal(t, before, Live())
}

func TestMapCleanupTwice(t *testing.T) {
	before := Live()

	_, cleanup, err := Map(16, nil, 0)
	require.NoError(t, err)
	require.NoError(t, cleanup())
	require.NoError(t, cleanup())
	require.Equal(t, before, Live())
}

func TestMapNegativeSize(t *testing.T) {
	_, _, err := Map(-1, nil, 0)
	require.Error(t, err)
}

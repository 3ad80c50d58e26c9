package mmatic

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSafeManager(t *testing.T) {
	s := NewSafeManager()
	require.NotNil(t, s)
	require.NotNil(t, s.m)
	require.NoError(t, s.Release())
	assert.True(t, s.m.Released())
}

func TestSafeManagerOperations(t *testing.T) {
	s := NewSafeManager()

	h, err := s.Allocate(100, AllocOptions{Zero: true})
	require.NoError(t, err)
	assert.Len(t, s.Bytes(h), 100)

	h, err = s.Reallocate(h, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Stats().TotalBytes)

	d, err := s.DupString("safe")
	require.NoError(t, err)
	assert.Equal(t, "safe", d.Text())

	require.NoError(t, s.Free(&h))
	assert.Equal(t, 5, s.Stats().TotalBytes)

	s.Summary(logrus.DebugLevel)
	s.Do(func(m *Manager) {
		checkInvariants(t, m)
	})

	require.NoError(t, s.Release())
	_, err = s.Allocate(1, AllocOptions{})
	require.ErrorIs(t, err, ErrReleased)
}

func TestSafeManagerConcurrentAccess(t *testing.T) {
	s := NewSafeManager()
	defer s.Release()

	const numGoroutines = 10
	const opsPerGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var keep []Handle
			for j := 0; j < opsPerGoroutine; j++ {
				h, err := s.Allocate(j%64+1, AllocOptions{})
				if err != nil {
					t.Errorf("goroutine %d: %v", id, err)
					return
				}
				b := s.Bytes(h)
				b[0] = byte(id)
				if j%2 == 0 {
					if err := s.Free(&h); err != nil {
						t.Errorf("goroutine %d: %v", id, err)
						return
					}
					continue
				}
				keep = append(keep, h)
			}
			for _, h := range keep {
				if s.Bytes(h)[0] != byte(id) {
					t.Errorf("goroutine %d: payload overwritten", id)
				}
			}
		}(i)
	}
	wg.Wait()

	st := s.Stats()
	assert.Equal(t, numGoroutines*opsPerGoroutine/2, st.Chunks)
	assert.Equal(t, uint64(numGoroutines*opsPerGoroutine), st.Allocations)
	s.Do(func(m *Manager) {
		checkInvariants(t, m)
	})
}

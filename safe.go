package mmatic

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// SafeManager is a mutex-protected wrapper around Manager for callers that
// share one manager between goroutines. Payloads must also be reached
// through the wrapper (Bytes) while other goroutines allocate.
type SafeManager struct {
	mu sync.Mutex
	m  *Manager
}

// NewSafeManager creates a new serialized manager.
func NewSafeManager() *SafeManager {
	return &SafeManager{m: New()}
}

// Allocate allocates size bytes with opts.
func (s *SafeManager) Allocate(size int, opts AllocOptions) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return allocate(s.m, size, opts, 2)
}

// Reallocate moves h to a fresh chunk of size bytes.
func (s *SafeManager) Reallocate(h Handle, size int) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reallocate(h, size, s.m, 2)
}

// DupString copies s into a NUL-terminated allocation.
func (s *SafeManager) DupString(str string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dup(s.m, str, 2)
}

// Free releases a single allocation and zeroes *h.
func (s *SafeManager) Free(h *Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Free(h)
}

// Bytes returns the payload of h.
func (s *SafeManager) Bytes(h Handle) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return h.Bytes()
}

// Release frees every allocation and the underlying manager.
func (s *SafeManager) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FreeAll(s.m)
}

// Stats returns a snapshot of manager statistics.
func (s *SafeManager) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Stats()
}

// Summary logs every live chunk at the given level.
func (s *SafeManager) Summary(level logrus.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Summary(level)
}

// Do runs fn with exclusive access to the underlying manager.
func (s *SafeManager) Do(fn func(m *Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

package mmatic

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// TotalAllocated returns the sum of the payload sizes of all live chunks.
func (m *Manager) TotalAllocated() int {
	return m.total
}

// NumChunks returns the number of live chunks.
func (m *Manager) NumChunks() int {
	return m.count
}

// Stats returns a snapshot of manager statistics.
func (m *Manager) Stats() Stats {
	return Stats{
		TotalBytes:   m.total,
		Chunks:       m.count,
		SharedChunks: m.shared,
		Allocations:  m.allocs,
		Frees:        m.frees,
	}
}

// Stats contains statistical information about a manager.
type Stats struct {
	TotalBytes   int    // Payload bytes in live chunks
	Chunks       int    // Live chunks
	SharedChunks int    // Live chunks backed by a shared mapping
	Allocations  uint64 // Chunks ever allocated
	Frees        uint64 // Chunks individually freed
}

func (s Stats) String() string {
	return fmt.Sprintf("%s in %d chunks (%d shared), %d allocs, %d frees",
		humanize.Bytes(uint64(s.TotalBytes)), s.Chunks, s.SharedChunks, s.Allocations, s.Frees)
}

// ChunkInfo describes one live chunk.
type ChunkInfo struct {
	Handle  Handle
	Size    int
	Backing Backing
	File    string
	Line    int
}

// Chunks returns the live chunks in allocation order.
func (m *Manager) Chunks() []ChunkInfo {
	out := make([]ChunkInfo, 0, m.count)
	for c := m.head; c != nil; c = c.next {
		out = append(out, ChunkInfo{
			Handle:  Handle{m: m, idx: c.slot, gen: m.slots[c.slot].gen},
			Size:    c.size,
			Backing: c.backing,
			File:    c.file,
			Line:    c.line,
		})
	}
	return out
}

// Summary logs every live chunk at the given level. It does not change the
// manager.
func (m *Manager) Summary(level logrus.Level) {
	e := m.log
	e.Logf(level, "--- memory summary start (%s) ---", m)
	e.Logf(level, "--- total memory allocated: %s (%d bytes)", humanize.Bytes(uint64(m.total)), m.total)
	for c := m.head; c != nil; c = c.next {
		h := Handle{m: m, idx: c.slot, gen: m.slots[c.slot].gen}
		e.Logf(level, "  %s %p: %dB %s for %s:%d", h, c.data, c.size, c.backing, c.file, c.line)
	}
	e.Logf(level, "--- memory summary end (%s) ---", m)
}

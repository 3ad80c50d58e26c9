// Package mmatic implements a scope-grouped memory manager: every
// allocation is tracked under a Manager, and the whole group is released
// with a single call.
//
// # Overview
//
// A Manager is a bulk-lifetime allocator, not a general heap. It suits:
//
//   - Request- or task-scoped buffers released all at once
//   - Parsers and builders that allocate freely and never free piecemeal
//   - Memory that must be shared with a forked child (SharedMapping)
//
// # Basic Usage
//
//	m := mmatic.New()
//	defer m.Release() // frees every allocation, then the manager
//
//	buf := m.Alloc(1024)         // heap bytes
//	name := m.Strdup("gopher")   // NUL-terminated copy
//	seg := m.AllocShared(4096)   // anonymous MAP_SHARED mapping
//
//	copy(buf.Bytes(), "hello")
//	buf = m.Realloc(buf, 4096)   // always moves, content preserved
//	m.Free(&name)                // individual free, zeroes the handle
//
// # Owners
//
// The package-level functions take an Owner, which is either a *Manager or
// a Handle. Passing a Handle places the new allocation in the manager that
// owns it:
//
//	child, err := mmatic.Allocate(parent, 64, mmatic.AllocOptions{})
//
// # Errors
//
// Package-level functions return errors (ErrInvalidOwner, ErrReleased,
// ErrInvalidHandle, ...). The Manager convenience methods treat any error
// as a programming error and hand it to FatalFunc, which by default logs
// and exits.
//
// # Thread Safety
//
// Manager is not thread-safe. A Manager and everything allocated under it
// belong to one goroutine. SafeManager serializes access when a manager
// must be shared.
//
// # Configuration
//
// New reads MMATIC_LOG_LEVEL, MMATIC_TRACK_CALLERS and MMATIC_AUDIT once
// per process. NewWithConfig takes an explicit Config.
package mmatic

package mmatic

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// FatalFunc is called by the Manager convenience methods when an operation
// fails. The default logs msg with the caller's location at fatal level,
// which exits the process. If a replacement returns, the method returns a
// zero value.
var FatalFunc = func(msg string, file string, line int) {
	log.WithFields(logrus.Fields{
		"prefix": "mmatic",
		"at":     fmt.Sprintf("%s:%d", file, line),
	}).Fatal(msg)
}

// fatal reports err through FatalFunc, attributed to the frame skip levels
// above the caller.
func fatal(err error, skip int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		file = "???"
	}
	FatalFunc(err.Error(), file, line)
}

// Alloc allocates size heap bytes. Failure is fatal.
func (m *Manager) Alloc(size int) Handle {
	h, err := allocate(m, size, AllocOptions{}, 2)
	if err != nil {
		fatal(err, 1)
	}
	return h
}

// Calloc allocates size zeroed heap bytes. Failure is fatal.
func (m *Manager) Calloc(size int) Handle {
	h, err := allocate(m, size, AllocOptions{Zero: true}, 2)
	if err != nil {
		fatal(err, 1)
	}
	return h
}

// AllocShared allocates size bytes in an anonymous shared mapping. Failure
// is fatal.
func (m *Manager) AllocShared(size int) Handle {
	h, err := allocate(m, size, AllocOptions{Backing: SharedMapping}, 2)
	if err != nil {
		fatal(err, 1)
	}
	return h
}

// AllocWith allocates size bytes with explicit options. Failure is fatal.
func (m *Manager) AllocWith(size int, opts AllocOptions) Handle {
	h, err := allocate(m, size, opts, 2)
	if err != nil {
		fatal(err, 1)
	}
	return h
}

// Realloc moves h to a fresh chunk of size bytes owned by m. Failure is
// fatal.
func (m *Manager) Realloc(h Handle, size int) Handle {
	nh, err := reallocate(h, size, m, 2)
	if err != nil {
		fatal(err, 1)
	}
	return nh
}

// Free releases a single allocation and zeroes *h. Failure is fatal.
func (m *Manager) Free(h *Handle) {
	if err := Free(h); err != nil {
		fatal(err, 1)
	}
}

// Strdup copies s into a NUL-terminated allocation. Failure is fatal.
func (m *Manager) Strdup(s string) Handle {
	h, err := dup(m, s, 2)
	if err != nil {
		fatal(err, 1)
	}
	return h
}

// Release frees every allocation and the manager itself. Failure is fatal.
func (m *Manager) Release() {
	if err := FreeAll(m); err != nil {
		fatal(err, 1)
	}
}

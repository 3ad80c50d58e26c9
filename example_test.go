package mmatic

import (
	"fmt"
	"sync"
)

// Example demonstrates basic manager usage
func Example() {
	m := New()
	defer m.Release() // frees everything allocated below

	buf := m.Alloc(1024)
	fmt.Printf("Allocated buffer of size: %d\n", buf.Size())

	name := m.Strdup("gopher")
	fmt.Printf("Duplicated string: %s\n", name.Text())

	copy(buf.Bytes(), "payload")
	buf = m.Realloc(buf, 4096)
	fmt.Printf("After realloc: %d bytes, starts with %q\n", buf.Size(), buf.Bytes()[:7])

	m.Free(&name)
	fmt.Printf("Memory in use: %d bytes in %d chunks\n", m.TotalAllocated(), m.NumChunks())

	// Output:
	// Allocated buffer of size: 1024
	// Duplicated string: gopher
	// After realloc: 4096 bytes, starts with "payload"
	// Memory in use: 4096 bytes in 1 chunks
}

// ExampleAllocate shows allocating next to an existing allocation
func ExampleAllocate() {
	m := New()
	defer m.Release()

	parent := m.Alloc(16)
	child, err := Allocate(parent, 32, AllocOptions{Zero: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(child.Manager() == m, m.NumChunks())

	// Output:
	// true 2
}

// ExampleFreeAll shows releasing a manager through one of its allocations
func ExampleFreeAll() {
	m := New()
	m.Alloc(10)
	h := m.Alloc(20)

	if err := FreeAll(h); err != nil {
		fmt.Println("error:", err)
	}
	fmt.Println(m.Released(), h.Valid())

	_, err := Allocate(m, 1, AllocOptions{})
	fmt.Println(err)

	// Output:
	// true false
	// allocate 1 bytes: mmatic: manager released
}

// ExampleSafeManager demonstrates serialized sharing of one manager
func ExampleSafeManager() {
	s := NewSafeManager()
	defer s.Release()

	var wg sync.WaitGroup
	const numWorkers = 3

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h, err := s.Allocate(100, AllocOptions{})
			if err != nil {
				return
			}
			s.Bytes(h)[0] = byte(id)
		}(i)
	}
	wg.Wait()

	fmt.Println(s.Stats())

	// Output:
	// 300 B in 3 chunks (0 shared), 3 allocs, 0 frees
}

// Package platform provides a uniform facade over OS virtual-memory
// primitives: reserve a range, commit a sub-range, release the whole
// range, and query the page size. It is the only package in this
// module that talks to the OS; everything above it (the Arena) only
// ever sees this interface.
//
// Two real backends are selected at build time (facade_unix.go,
// facade_windows.go); facade_fake.go provides an in-memory stand-in
// for tests that must not touch real OS virtual memory.
package platform

import "unsafe"

// Facade is the uniform virtual-memory contract. Commit and Release
// failures are unrecoverable by design: a caller cannot do anything
// useful with a half-committed reservation, so implementations call
// tmpfatal directly rather than returning an error for those two.
type Facade interface {
	// Reserve asks the OS to set aside size bytes of contiguous,
	// currently inaccessible address space and returns its base
	// address. Fails fatally if the OS denies the reservation.
	Reserve(size uintptr) unsafe.Pointer

	// Commit makes the page-aligned sub-range [addr, addr+size)
	// readable and writable. Fatal on failure.
	Commit(addr unsafe.Pointer, size uintptr)

	// Release returns the entire reservation, including all
	// committed pages within it, to the OS. Fatal on failure.
	Release(addr unsafe.Pointer, size uintptr)

	// PageSize returns the platform page size P. Must be a power of two.
	PageSize() uintptr
}

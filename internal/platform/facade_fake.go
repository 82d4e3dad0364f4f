package platform

import "unsafe"

// FakeFacade is an in-memory Facade backed by a plain Go byte slice
// instead of real OS virtual memory. It lets the Arena and Pool be
// tested deterministically and without OS-level side effects, per the
// design notes' call to parameterize tests over an injected arena.
// Grounded on the shared-array-buffer-backed InMemoryProvider in the
// pack's nmxmxh-inos_v1 kernel (kernel/threads/sab/hal_memory.go),
// which stands in for a real hardware memory-mapped region the same
// way this stands in for a real OS reservation.
//
// Unlike the real backends, FakeFacade performs no access-protection
// changes: Commit is a no-op beyond bookkeeping, since the backing
// slice is already read/write the moment it is allocated. This is
// sufficient for the contract under test (the Arena only needs
// Commit to succeed or terminate fatally) but means FakeFacade cannot
// catch use of uncommitted memory the way a real PROT_NONE mapping
// would.
type FakeFacade struct {
	pageSize uintptr
	buf      []byte
}

// NewFakeFacade returns a fake Facade with the given page size.
func NewFakeFacade(pageSize uintptr) *FakeFacade {
	return &FakeFacade{pageSize: pageSize}
}

func (f *FakeFacade) Reserve(size uintptr) unsafe.Pointer {
	f.buf = make([]byte, size)
	return unsafe.Pointer(unsafe.SliceData(f.buf))
}

func (f *FakeFacade) Commit(unsafe.Pointer, uintptr) {
	// Backing slice is already addressable; nothing to do.
}

func (f *FakeFacade) Release(unsafe.Pointer, uintptr) {
	f.buf = nil
}

func (f *FakeFacade) PageSize() uintptr {
	return f.pageSize
}

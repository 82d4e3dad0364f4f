//go:build unix

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tinymempool/tinymempool/internal/tmpfatal"
)

// UnixFacade implements Facade with mmap/mprotect/munmap: reserve via
// an anonymous, no-access mapping, commit by upgrading protection to
// read+write, release by unmapping the whole reservation. Grounded on
// PosixMemory.h in the original source, and on the same mmap/mprotect
// pair used by the pack's balloc and go-ublk examples.
type UnixFacade struct{}

// NewUnixFacade returns the unix Facade implementation.
func NewUnixFacade() *UnixFacade { return &UnixFacade{} }

func (UnixFacade) Reserve(size uintptr) unsafe.Pointer {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		tmpfatal.Fatal("platform: mmap reserve failed: %v", err)
	}
	return unsafe.Pointer(unsafe.SliceData(data))
}

func (UnixFacade) Commit(addr unsafe.Pointer, size uintptr) {
	data := unsafe.Slice((*byte)(addr), size)
	if err := unix.Mprotect(data, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		tmpfatal.Fatal("platform: mprotect commit failed: %v", err)
	}
}

func (UnixFacade) Release(addr unsafe.Pointer, size uintptr) {
	data := unsafe.Slice((*byte)(addr), size)
	if err := unix.Munmap(data); err != nil {
		tmpfatal.Fatal("platform: munmap release failed: %v", err)
	}
}

func (UnixFacade) PageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

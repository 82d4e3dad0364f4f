//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/tinymempool/tinymempool/internal/tmpfatal"
)

// WindowsFacade implements Facade with VirtualAlloc/VirtualFree:
// reserve and commit are distinct VirtualAlloc calls, release frees
// the whole reservation in one VirtualFree. Grounded on
// WindowsMemory.h in the original source.
type WindowsFacade struct{}

// NewWindowsFacade returns the windows Facade implementation.
func NewWindowsFacade() *WindowsFacade { return &WindowsFacade{} }

func (WindowsFacade) Reserve(size uintptr) unsafe.Pointer {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		tmpfatal.Fatal("platform: VirtualAlloc reserve failed: %v", err)
	}
	return unsafe.Pointer(addr)
}

func (WindowsFacade) Commit(addr unsafe.Pointer, size uintptr) {
	_, err := windows.VirtualAlloc(uintptr(addr), size, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		tmpfatal.Fatal("platform: VirtualAlloc commit failed: %v", err)
	}
}

func (WindowsFacade) Release(addr unsafe.Pointer, _ uintptr) {
	if err := windows.VirtualFree(uintptr(addr), 0, windows.MEM_RELEASE); err != nil {
		tmpfatal.Fatal("platform: VirtualFree release failed: %v", err)
	}
}

func (WindowsFacade) PageSize() uintptr {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return uintptr(info.PageSize)
}

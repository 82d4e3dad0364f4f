//go:build tmpalloc_debug

package router

import (
	"sync"
	"unsafe"

	"github.com/tinymempool/tinymempool/internal/tmpfatal"
)

// debugLive tracks every payload pointer currently on loan to a
// client. Built only with -tags tmpalloc_debug: §9 recommends "an
// optional debug-only magic field in the header for test builds" to
// catch a Deallocate call on a pointer that never came from this
// Router. A side registry achieves the same catch without widening
// BlockHeader in release builds, where the bit-exact 16-byte layout
// in §6 must hold unconditionally.
var debugLive sync.Map // map[uintptr]struct{}

func debugMarkAllocated(payload unsafe.Pointer) {
	debugLive.Store(uintptr(payload), struct{}{})
}

func debugMarkFreed(payload unsafe.Pointer) {
	if _, ok := debugLive.LoadAndDelete(uintptr(payload)); !ok {
		tmpfatal.Fatal("router: Deallocate called on pointer %p not tracked as live (debug build)", payload)
	}
}

package router

import (
	"sync"
	"unsafe"
)

// fallbackRegistry keeps the backing Go slice for every large
// (non-pooled) allocation alive for as long as the client holds the
// payload pointer returned by Allocate.
//
// This is the one place the Go port must diverge in mechanism (never
// in contract) from the original: the original calls libc malloc/free
// directly, a pair of raw, GC-independent calls. Go has no standalone
// "free a byte slice" primitive — the moment Allocate returns only the
// interior unsafe.Pointer to the payload, nothing in Go's own object
// graph references the slice header anymore, and the garbage
// collector would be free to reclaim it. Retaining the slice in this
// registry, keyed by the numeric address of its header, is what keeps
// it alive until the matching Deallocate call removes the entry.
var fallbackRegistry sync.Map // map[uintptr][]byte, keyed by header address

// maxFallbackSize bounds what fallbackAlloc will attempt, so a
// pathological request fails with a recoverable nil instead of
// panicking inside make. Go itself has no "malloc returns null"
// signal for genuine system-wide memory exhaustion — an exhausted
// runtime aborts the process unconditionally, unlike libc malloc — so
// this bound is the one place a fallback request can still fail
// recoverably, per §7's "system fallback returning null" case.
const maxFallbackSize = 1 << 40 // 1 TiB; anything past this is almost certainly a caller bug

func fallbackAlloc(total uintptr) unsafe.Pointer {
	if total > maxFallbackSize {
		return nil
	}
	block := make([]byte, total)
	addr := unsafe.Pointer(unsafe.SliceData(block))
	fallbackRegistry.Store(uintptr(addr), block)
	return addr
}

func fallbackFree(block unsafe.Pointer) {
	fallbackRegistry.Delete(uintptr(block))
}

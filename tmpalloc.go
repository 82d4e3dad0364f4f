// Package tmpalloc is the public entry point for the allocator: a
// thread-safe, size-classed replacement for a general-purpose heap
// aimed at latency-sensitive, engine-style workloads — many small,
// short-lived objects, node-like graphs, and mid-size buffers.
//
// Allocate and Deallocate are the only two operations a client needs.
// Everything else (the Reservation Arena, the per-size-class pools,
// the platform facade) is process-wide, lazily constructed on first
// use, and never exposed directly.
package tmpalloc

import (
	"sync"
	"unsafe"

	"github.com/tinymempool/tinymempool/internal/arena"
	"github.com/tinymempool/tinymempool/internal/frame"
	"github.com/tinymempool/tinymempool/internal/router"
	"github.com/tinymempool/tinymempool/internal/tmpconfig"
)

// PoolConfig overrides the initial super-block size of the size class
// whose chunk size equals ChunkSize. Class chunk sizes themselves are
// fixed.
type PoolConfig = tmpconfig.PoolConfig

// Config configures the process-wide allocator singleton.
type Config = tmpconfig.Config

// DefaultConfig returns the documented defaults: a 1 GiB reservation,
// a 16 MiB frame arena, and the built-in tiered per-class sizing.
func DefaultConfig() Config {
	return tmpconfig.Default()
}

var (
	initOnce sync.Once

	theArena  *arena.Arena
	theRouter *router.Router
	theFrame  *frame.Arena
)

// Init performs the one-time, idempotent setup described in §5: the
// Arena initializes before the Router, and the Router's own
// constructor is what touches the Arena's accessor, so the ordering
// falls out of normal Go initialization rather than being tracked
// separately. A second call is a no-op, matching the Arena's own
// Init idempotence.
//
// Most callers do not need to call Init explicitly: Allocate calls it
// lazily with DefaultConfig() on first use. Call it explicitly only to
// override the configuration before the first allocation.
func Init(cfg Config) {
	initOnce.Do(func() {
		theArena = arena.New(newDefaultFacade())
		theArena.Init(cfg.TotalReserveSize)

		theRouter = router.New(theArena, toRouterPoolConfigs(cfg.PoolConfigs))

		frameSize := cfg.FrameAllocatorSize
		if frameSize == 0 {
			frameSize = tmpconfig.DefaultFrameAllocatorSize
		}
		theFrame = frame.New(theArena, frameSize)
	})
}

func toRouterPoolConfigs(in []tmpconfig.PoolConfig) []router.PoolConfig {
	out := make([]router.PoolConfig, len(in))
	for i, c := range in {
		out[i] = router.PoolConfig{ChunkSize: c.ChunkSize, InitialBlockSize: c.InitialBlockSize}
	}
	return out
}

// ensureInit lazily runs Init with the default configuration. Safe to
// call unconditionally: Init's own sync.Once makes every call after
// the first a cheap no-op, with no unsynchronized read of theRouter
// in the fast path.
func ensureInit() {
	Init(DefaultConfig())
}

// Allocate returns a pointer to a payload of at least size bytes.
// Never returns nil on success; on the system fallback's own
// out-of-memory condition (an allocation larger than the largest
// pooled class that the host cannot satisfy), returns nil. Every
// other failure mode — OS reservation/commit failure, reservation
// exhaustion, a page-size invariant violation, or a pool bug —
// terminates the process with a diagnostic, per §7.
//
// A request of size 0 is well-defined and inherited as-is from the
// original source: it still consumes a class-64 chunk and returns a
// live, usable (zero-length) payload pointer.
func Allocate(size int) unsafe.Pointer {
	ensureInit()
	return theRouter.Allocate(uintptr(size))
}

// Deallocate returns a payload pointer previously obtained from
// Allocate. A nil pointer is a no-op. Passing any other pointer is
// undefined behavior, per §4.4.
func Deallocate(ptr unsafe.Pointer) {
	ensureInit()
	theRouter.Deallocate(ptr)
}

// FrameAlloc allocates n bytes from the process-wide per-frame linear
// arena. Intended for allocations whose lifetime is bounded by a
// single frame/tick; there is no matching Free — call FrameReset at
// the frame boundary instead.
func FrameAlloc(n int) unsafe.Pointer {
	ensureInit()
	return theFrame.Alloc(uintptr(n))
}

// FrameReset rewinds the per-frame arena to empty in O(1).
func FrameReset() {
	ensureInit()
	theFrame.Reset()
}

// Shutdown tears the process-wide allocator down: the Router drains
// its pools' bookkeeping first, then the Arena releases the entire
// reservation back to the OS, per §5's shutdown ordering. Intended for
// use at process exit or in test teardown; nothing prevents further
// Allocate calls afterward other than that they will re-run Init from
// scratch via ensureInit, which is why Shutdown resets initOnce.
func Shutdown() {
	if theRouter == nil {
		return
	}
	theRouter.Shutdown()
	theArena.Shutdown()
	theRouter, theArena, theFrame = nil, nil, nil
	initOnce = sync.Once{}
}

// Package router implements the Pool Router: the entry point that
// routes an allocation request to a size-class pool or the large-
// allocation fallback, stamps a BlockHeader on every payload, and
// reverses that routing on free by reading the header back.
//
// Adapted from mallocgc's routing-and-header portion in the Go
// runtime's malloc.go and roundupsize in msize.go, minus the GC type
// descriptors and sweep-credit bookkeeping that have no equivalent in
// a pool with no garbage collector behind it.
package router

import (
	"unsafe"

	"github.com/tinymempool/tinymempool/internal/arena"
	"github.com/tinymempool/tinymempool/internal/pool"
	"github.com/tinymempool/tinymempool/internal/sizeclass"
	"github.com/tinymempool/tinymempool/internal/tmplog"
	"github.com/tinymempool/tinymempool/internal/tmpstats"
)

// PoolConfig overrides the initial super-block size of the size class
// whose chunk size equals ChunkSize. Class chunk sizes themselves are
// fixed; an entry whose ChunkSize is not one of them is ignored.
type PoolConfig struct {
	ChunkSize        uintptr
	InitialBlockSize uintptr
}

// Router owns a fixed array of size-class pools plus the large-
// allocation fallback. Constructed once; immutable after
// New — the pool array itself is never mutated again, so concurrent
// readers need no lock to index into it.
type Router struct {
	pools       [sizeclass.NumClasses]*pool.Pool
	initialized bool
}

// tieredInitialItemCount returns the initial chunk count for a given
// chunk size, per §4.3's tiered sizing strategy: smaller, more
// frequently requested classes get a much bigger initial reservation
// so their first growth amortizes across many more allocations.
func tieredInitialItemCount(chunkSize uintptr) uintptr {
	switch {
	case chunkSize <= 256:
		return 4096
	case chunkSize <= 1024:
		return 1024
	default:
		return 256
	}
}

// New constructs a Router backed by a. Applies overrides, defaulting
// every unconfigured class to the tiered initial sizing strategy.
func New(a *arena.Arena, overrides []PoolConfig) *Router {
	r := &Router{}

	byChunkSize := make(map[uintptr]PoolConfig, len(overrides))
	for _, o := range overrides {
		byChunkSize[o.ChunkSize] = o
	}

	for i := 0; i < sizeclass.NumClasses; i++ {
		chunkSize := sizeclass.Size(i)

		initialBlockSize := chunkSize * tieredInitialItemCount(chunkSize)
		if o, ok := byChunkSize[chunkSize]; ok && o.InitialBlockSize > 0 {
			initialBlockSize = o.InitialBlockSize
		}

		p := pool.New(i, chunkSize, a)
		p.Init(initialBlockSize)
		r.pools[i] = p
	}

	r.initialized = true
	tmplog.L().Sugar().Info("router initialized")
	return r
}

// Allocate serves userSize bytes, returning a payload pointer with
// HeaderSize bytes of hidden metadata immediately before it. Never
// returns nil on success. On an out-of-memory failure from the system
// fallback only, returns nil — every other failure mode is fatal, per
// §7's error model.
func (r *Router) Allocate(userSize uintptr) unsafe.Pointer {
	total := userSize + HeaderSize

	var block unsafe.Pointer
	var owner unsafe.Pointer

	if sizeclass.Fits(total) {
		index := sizeclass.IndexFor(total)
		p := r.pools[index]
		block = p.Pop()
		owner = unsafe.Pointer(p)
	} else {
		tmpstats.FallbackAllocations.Inc()
		block = fallbackAlloc(total)
		if block == nil {
			return nil
		}
		owner = nil
	}

	h := headerAt(block)
	h.owner = owner
	h.totalSize = uint64(total)

	payload := payloadOf(h)
	debugMarkAllocated(payload)
	return payload
}

// Deallocate returns a payload pointer previously returned by
// Allocate. A nil pointer is a no-op. Any other pointer not obtained
// from this Router is undefined behavior, per §4.4.
func (r *Router) Deallocate(payload unsafe.Pointer) {
	if payload == nil {
		return
	}
	debugMarkFreed(payload)

	h := headerOf(payload)
	block := unsafe.Pointer(h)

	if h.owner == nil {
		fallbackFree(block)
		return
	}

	p := (*pool.Pool)(h.owner)
	p.Push(block)
}

// Shutdown drains every pool's free list and drops the bookkeeping.
// Backing memory is reclaimed only when the Arena itself is shut
// down, per §9's ownership asymmetry.
func (r *Router) Shutdown() {
	for _, p := range r.pools {
		p.Shutdown()
	}
	r.initialized = false
	tmplog.L().Sugar().Info("router shut down")
}

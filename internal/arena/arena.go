// Package arena implements the process-wide Reservation Arena: it
// obtains one large contiguous virtual address range from the
// platform facade up front and commits physical pages lazily, in
// monotonically increasing offset order, as pools above it grow.
//
// See mallocinit / mHeap_SysAlloc / persistentalloc in the Go
// runtime's malloc.go for the shape this is adapted from: reserve a
// big range once, then bump an offset forward as the heap needs more
// pages, with a single lock serializing growth because growth is rare
// compared to the steady-state allocation rate.
package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/tinymempool/tinymempool/internal/platform"
	"github.com/tinymempool/tinymempool/internal/tmpfatal"
	"github.com/tinymempool/tinymempool/internal/tmplog"
	"github.com/tinymempool/tinymempool/internal/tmpstats"
)

// DefaultTotalReserveSize is the default size of the one-shot virtual
// reservation: 1 GiB.
const DefaultTotalReserveSize = 1 << 30

// Arena holds a single reservation and bump-commits sub-ranges from
// it. The zero value is not ready for use; construct with New and
// call Init once before any AllocateBlock call.
type Arena struct {
	mu sync.Mutex

	facade platform.Facade

	base          unsafe.Pointer
	totalReserved uintptr
	pageSize      uintptr
	initialized   bool

	// commitOffset is read without the lock from tests/diagnostics;
	// every mutation happens under mu, so the atomic type only buys
	// safe concurrent reads, never lock-free writes.
	commitOffset atomic.Uintptr
}

// New constructs an Arena bound to the given facade. Init must still
// be called before use.
func New(facade platform.Facade) *Arena {
	return &Arena{facade: facade}
}

// Init reserves totalReserveSize bytes from the facade and queries the
// page size. Idempotent: a second call while already initialized is a
// no-op, per the spec's initialization-order requirements. Fatal if
// the page size the facade reports is not a power of two, or if the
// reservation fails (the facade itself terminates the process on a
// failed reservation, so that case never returns here).
func (a *Arena) Init(totalReserveSize uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return
	}

	pageSize := a.facade.PageSize()
	if pageSize == 0 || pageSize&(pageSize-1) != 0 {
		tmpfatal.Fatal("arena: page size %d is not a power of two", pageSize)
	}

	if totalReserveSize == 0 {
		totalReserveSize = DefaultTotalReserveSize
	}

	a.base = a.facade.Reserve(totalReserveSize)
	a.totalReserved = totalReserveSize
	a.pageSize = pageSize
	a.commitOffset.Store(0)
	a.initialized = true

	tmplog.L().Sugar().Infow("arena initialized",
		"totalReserveSize", totalReserveSize, "pageSize", pageSize)
}

// PageSize returns the page size P queried at Init.
func (a *Arena) PageSize() uintptr { return a.pageSize }

// CommitOffset returns the current commit offset. Exposed for tests;
// it is monotonically non-decreasing and never exceeds the total
// reservation size.
func (a *Arena) CommitOffset() uintptr { return a.commitOffset.Load() }

// roundUpPage rounds size up to the next multiple of pageSize, which
// must be a power of two. Identical to the bit-mask rounding in
// MemoryManager::AllocateBlock in the original source.
func roundUpPage(size, pageSize uintptr) uintptr {
	return (size + pageSize - 1) &^ (pageSize - 1)
}

// AllocateBlock returns a pointer to a freshly committed sub-range of
// at least size bytes, positioned at the current commit offset. The
// actual committed length is size rounded up to the next page
// boundary. Terminates the process if the arena is not initialized,
// or if the reservation is exhausted.
func (a *Arena) AllocateBlock(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		tmpfatal.Fatal("arena: AllocateBlock called before Init")
	}

	rounded := roundUpPage(size, a.pageSize)
	offset := a.commitOffset.Load()

	if offset+rounded > a.totalReserved {
		tmpfatal.Fatal(
			"arena: out of reserved memory (need %d more bytes, %d reserved, %d already committed)",
			rounded, a.totalReserved, offset)
	}

	addr := unsafe.Add(a.base, offset)
	a.facade.Commit(addr, rounded)
	a.commitOffset.Store(offset + rounded)
	tmpstats.ArenaBytesCommitted.Set(float64(offset + rounded))

	return addr
}

// Shutdown releases the entire reserved range back to the OS.
// Idempotent.
func (a *Arena) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}

	a.facade.Release(a.base, a.totalReserved)

	a.base = nil
	a.totalReserved = 0
	a.pageSize = 0
	a.commitOffset.Store(0)
	a.initialized = false

	tmplog.L().Sugar().Info("arena shut down")
}

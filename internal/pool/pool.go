// Package pool implements a single size class's chunk pool: a
// free list of fixed-size chunks plus a mutex-guarded, double-checked
// growth path that pulls a fresh super-block from the Arena whenever
// the free list runs dry.
//
// Adapted from mcentral.go in the Go runtime: mcentral holds the
// central free list of spans for one size class and replenishes it
// from the heap under a lock when both its nonempty and empty lists
// are exhausted. This Pool plays the same role without the
// sweep-generation/GC machinery, which has no equivalent here.
package pool

import (
	"sync"
	"unsafe"

	"github.com/tinymempool/tinymempool/internal/tmpfatal"
	"github.com/tinymempool/tinymempool/internal/tmplog"
	"github.com/tinymempool/tinymempool/internal/tmpstats"
)

// Grower is the capability a Pool needs from the Arena: hand back a
// fresh, committed super-block of at least size bytes. Defined here
// (rather than importing the arena package directly) so Pool can be
// unit-tested against a trivial stub grower.
type Grower interface {
	AllocateBlock(size uintptr) unsafe.Pointer
}

// Pool manages fixed-size chunks for exactly one size class.
type Pool struct {
	index     int
	chunkSize uintptr
	grower    Grower

	freeList freeList

	growMu        sync.Mutex
	nextBlockSize uintptr
}

// New constructs a Pool for the given index (used only for stats
// labeling) and chunk size, backed by grower for growth.
func New(index int, chunkSize uintptr, grower Grower) *Pool {
	return &Pool{
		index:     index,
		chunkSize: chunkSize,
		grower:    grower,
	}
}

// Init sets the pool's initial super-block size and performs the
// first growth eagerly, so the first Pop call is a hot-path hit
// rather than paying cold-path latency. Requires
// initialBlockSize >= chunkSize and initialBlockSize % chunkSize == 0.
func (p *Pool) Init(initialBlockSize uintptr) {
	if initialBlockSize < p.chunkSize || initialBlockSize%p.chunkSize != 0 {
		tmpfatal.Fatal(
			"pool[%d]: invalid initial block size %d for chunk size %d",
			p.index, initialBlockSize, p.chunkSize)
	}
	p.nextBlockSize = initialBlockSize
	p.grow()
}

// ChunkSize returns the fixed chunk size this pool serves.
func (p *Pool) ChunkSize() uintptr { return p.chunkSize }

// Pop acquires one chunk, growing the pool first if the free list is
// empty. Terminates the process if a fresh grow still fails to
// produce a poppable chunk, which indicates a bug rather than a
// runtime condition (grow always enqueues at least one chunk on
// success).
func (p *Pool) Pop() unsafe.Pointer {
	if ptr, ok := p.freeList.tryPop(); ok {
		return ptr
	}

	p.grow()

	if ptr, ok := p.freeList.tryPop(); ok {
		return ptr
	}

	tmpfatal.Fatal("pool[%d]: pop failed immediately after a successful grow", p.index)
	return nil
}

// Push returns a chunk to the free list. Never blocks for growth.
func (p *Pool) Push(ptr unsafe.Pointer) {
	p.freeList.push(ptr)
}

// Shutdown drops all free-list entries. The backing memory is owned
// by the Arena and is not released here; it is reclaimed only when
// the whole reservation is torn down.
func (p *Pool) Shutdown() {
	p.freeList.reset()
}

// grow acquires growMu, re-checks emptiness under the lock (the
// double-checked pattern: another thread may have already
// replenished the list while this one waited), and otherwise requests
// a new super-block from the Arena, slices it into
// nextBlockSize/chunkSize chunks, enqueues them, and doubles
// nextBlockSize for next time.
func (p *Pool) grow() {
	p.growMu.Lock()
	defer p.growMu.Unlock()

	if !p.freeList.empty() {
		return
	}

	blockSize := p.nextBlockSize
	block := p.grower.AllocateBlock(blockSize)

	numChunks := blockSize / p.chunkSize
	cur := block
	for i := uintptr(0); i < numChunks; i++ {
		p.freeList.push(cur)
		cur = unsafe.Add(cur, p.chunkSize)
	}

	p.nextBlockSize = blockSize * 2

	tmpstats.PoolGrowths.WithLabelValues(classLabel(p.index)).Inc()
	tmplog.L().Sugar().Debugw("pool grew",
		"index", p.index, "chunkSize", p.chunkSize,
		"blockSize", blockSize, "numChunks", numChunks,
		"nextBlockSize", p.nextBlockSize)
}

func classLabel(index int) string {
	return classLabels[index]
}

var classLabels = [...]string{"64", "128", "256", "512", "1024", "2048", "4096"}

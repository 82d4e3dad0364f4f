package pool

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// shardCount is the number of independent lock-protected shards the
// free list is split across. Splitting the list this way keeps
// steady-state contention negligible without requiring a true
// lock-free structure, which the design notes explicitly sanction:
// "An implementation may substitute a sharded lock-based queue if it
// preserves the contract ... measured steady-state contention should
// be negligible because hot paths never touch grow_lock." Each
// shard's own mutex is not grow_lock — it is internal synchronization
// of the free list itself, which the spec's "no mutex acquisition by
// this code" hot-path guarantee does not forbid.
const shardCount = 16

// freeList is a multi-producer multi-consumer, unbounded, try-pop
// queue of raw chunk pointers. Order across the whole list is not
// observable to callers, matching §4.3's free-list semantics: within
// a shard it is LIFO, and which shard a given push/pop lands on is an
// implementation detail.
type freeList struct {
	next    atomic.Uint64 // round-robin cursor across shards
	shards  [shardCount]shard
}

type shard struct {
	mu   sync.Mutex
	head unsafe.Pointer // *chunkNode, the top of this shard's stack
}

// chunkNode is an intrusive free-list link stored in the first machine
// word of a free chunk's own memory — the same trick the Go runtime's
// mspan free lists use, since an unused chunk has no other purpose for
// those bytes until it is popped and its header is stamped.
type chunkNode struct {
	next unsafe.Pointer
}

func (f *freeList) shardFor(i uint64) *shard {
	return &f.shards[i%shardCount]
}

// push returns a chunk to the free list.
func (f *freeList) push(ptr unsafe.Pointer) {
	i := f.next.Add(1)
	s := f.shardFor(i)
	node := (*chunkNode)(ptr)

	s.mu.Lock()
	node.next = s.head
	s.head = ptr
	s.mu.Unlock()
}

// tryPop attempts to take one chunk from the free list. ok is false
// only when every shard was observed empty; it distinguishes "empty"
// from "success" per §4.3's try-pop requirement.
func (f *freeList) tryPop() (ptr unsafe.Pointer, ok bool) {
	start := f.next.Add(1)
	for i := uint64(0); i < shardCount; i++ {
		s := f.shardFor(start + i)

		s.mu.Lock()
		if s.head != nil {
			top := s.head
			s.head = (*chunkNode)(top).next
			s.mu.Unlock()
			return top, true
		}
		s.mu.Unlock()
	}
	return nil, false
}

// empty reports whether every shard is currently empty. Used only by
// Grow's double-checked re-test after acquiring growMu; it is a
// genuine observation through the free list's own synchronization,
// not a plain unsynchronized read, per the design notes' requirement.
func (f *freeList) empty() bool {
	for i := range f.shards {
		s := &f.shards[i]
		s.mu.Lock()
		isEmpty := s.head == nil
		s.mu.Unlock()
		if !isEmpty {
			return false
		}
	}
	return true
}

// reset drops all entries without touching the backing memory, which
// is owned by the Arena and reclaimed only when the whole reservation
// is released.
func (f *freeList) reset() {
	for i := range f.shards {
		s := &f.shards[i]
		s.mu.Lock()
		s.head = nil
		s.mu.Unlock()
	}
}

package router_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tinymempool/tinymempool/internal/arena"
	"github.com/tinymempool/tinymempool/internal/platform"
	"github.com/tinymempool/tinymempool/internal/router"
)

func newTestRouter(t *testing.T) *router.Router {
	t.Helper()
	a := arena.New(platform.NewFakeFacade(4096))
	a.Init(64 << 20)
	t.Cleanup(a.Shutdown)
	return router.New(a, nil)
}

func TestRouter_SmallAllocFreeCycle(t *testing.T) {
	r := newTestRouter(t)

	const n = 100_000
	for i := 0; i < n; i++ {
		p := r.Allocate(40)
		require.NotNil(t, p)
		r.Deallocate(p)
	}
}

func TestRouter_BoundaryRouting(t *testing.T) {
	r := newTestRouter(t)

	for _, userSize := range []uintptr{1, 48, 49, 4080, 4081} {
		p := r.Allocate(userSize)
		require.NotNil(t, p, "userSize=%d", userSize)
		r.Deallocate(p)
	}
}

func TestRouter_LargeAllocationUsesFallback(t *testing.T) {
	r := newTestRouter(t)

	p := r.Allocate(1 << 20) // 1 MiB, well past the largest pooled class
	require.NotNil(t, p)

	s := unsafe.Slice((*byte)(p), 1<<20)
	s[0] = 1
	s[len(s)-1] = 2
	assert.Equal(t, byte(1), s[0])
	assert.Equal(t, byte(2), s[len(s)-1])

	r.Deallocate(p)
}

func TestRouter_DeallocateNilIsNoop(t *testing.T) {
	r := newTestRouter(t)
	assert.NotPanics(t, func() { r.Deallocate(nil) })
}

func TestRouter_ConcurrentAllocFreeAcrossThreads(t *testing.T) {
	r := newTestRouter(t)

	const (
		threads      = 8
		opsPerThread = 5000
	)

	handoff := make(chan unsafe.Pointer, threads*2)

	var eg errgroup.Group
	for i := 0; i < threads; i++ {
		eg.Go(func() error {
			for j := 0; j < opsPerThread; j++ {
				p := r.Allocate(32)
				if p == nil {
					t.Error("allocate returned nil")
					return nil
				}

				select {
				case handoff <- p:
				default:
					r.Deallocate(p)
				}

				select {
				case q := <-handoff:
					r.Deallocate(q)
				default:
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	close(handoff)
	for p := range handoff {
		r.Deallocate(p)
	}
}

func TestRouter_NoAddressDoubleIssuedConcurrently(t *testing.T) {
	r := newTestRouter(t)

	const (
		threads      = 16
		opsPerThread = 2000
	)

	var mu sync.Mutex
	live := map[unsafe.Pointer]bool{}

	var eg errgroup.Group
	for i := 0; i < threads; i++ {
		eg.Go(func() error {
			for j := 0; j < opsPerThread; j++ {
				p := r.Allocate(16)

				mu.Lock()
				if live[p] {
					mu.Unlock()
					t.Errorf("address %p double-issued", p)
					return nil
				}
				live[p] = true
				mu.Unlock()

				mu.Lock()
				delete(live, p)
				mu.Unlock()

				r.Deallocate(p)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

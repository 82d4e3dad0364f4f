// Command tmpbench is a small functional-and-benchmark harness,
// grounded on the original project's tests/main.cpp: a functional pass
// that prints element addresses to eyeball pool reuse, followed by a
// timed comparison of the allocator against Go's built-in allocator
// for both a vector-like workload and a node-like workload.
package main

import (
	"flag"
	"fmt"
	"time"
	"unsafe"

	tmpalloc "github.com/tinymempool/tinymempool"
	"github.com/tinymempool/tinymempool/stdalloc"
)

const itemCount = 1_000_000

type timer struct {
	name  string
	start time.Time
}

func newTimer(name string) *timer {
	return &timer{name: name, start: time.Now()}
}

func (t *timer) stop() {
	fmt.Printf("[%s] : %v\n", t.name, time.Since(t.start))
}

type node struct {
	data int
	next *node
}

func testFunctional() {
	fmt.Println("=== 1. Functional Test (Address Check) ===")

	var alloc stdalloc.Allocator[int32]
	v, err := alloc.Alloc(10)
	if err != nil {
		fmt.Println("allocation failed:", err)
		return
	}
	defer alloc.Free(v)

	for i := range v {
		v[i] = int32(i)
	}

	fmt.Println("Slice Element Addresses:")
	for i := range v {
		fmt.Printf("Index %d: %p (Value: %d)\n", i, &v[i], v[i])
	}
	fmt.Println("-> If no crash, Allocate -> Router -> Pool works!")
	fmt.Println()
}

func testBenchmark() {
	fmt.Println("=== 2. Benchmark (Go builtin vs tinymempool) ===")

	func() {
		t := newTimer("Go builtin allocator (slice append)")
		defer t.stop()
		v := make([]int32, 0, itemCount)
		for i := 0; i < itemCount; i++ {
			v = append(v, int32(i))
		}
	}()

	func() {
		t := newTimer("tinymempool allocator (slice append)")
		defer t.stop()
		var alloc stdalloc.Allocator[int32]
		v, err := alloc.Alloc(itemCount)
		if err != nil {
			fmt.Println("allocation failed:", err)
			return
		}
		defer alloc.Free(v)
		for i := 0; i < itemCount; i++ {
			v[i] = int32(i)
		}
	}()

	fmt.Println()
	fmt.Println("--- Small Object Allocation (Node-like) ---")

	func() {
		t := newTimer("Go builtin new/GC")
		defer t.stop()
		var sink *node
		for i := 0; i < itemCount; i++ {
			sink = &node{data: i}
		}
		_ = sink
	}()

	func() {
		t := newTimer("tinymempool Allocate/Deallocate")
		defer t.stop()
		for i := 0; i < itemCount; i++ {
			p := tmpalloc.Allocate(int(unsafe.Sizeof(node{})))
			n := (*node)(p)
			n.data = i
			tmpalloc.Deallocate(p)
		}
	}()
}

func main() {
	functionalOnly := flag.Bool("functional-only", false, "skip the timed benchmark pass")
	flag.Parse()

	tmpalloc.Init(tmpalloc.DefaultConfig())
	defer tmpalloc.Shutdown()

	testFunctional()
	if !*functionalOnly {
		testBenchmark()
	}
}

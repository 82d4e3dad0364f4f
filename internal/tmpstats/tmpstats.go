// Package tmpstats exposes Prometheus metrics for the allocator's
// cold-path events: super-block growths, bytes committed by the
// Arena, and fallback allocations. Nothing in this package is read or
// written from the allocation hot path — Pop/Push only touch plain
// atomic counters in their own packages; these gauges/counters are
// updated on grow/commit/fallback, which are already cold by design.
//
// Grounded on github.com/prometheus/client_golang, an indirect
// dependency of the pack's nmxmxh-inos_v1 kernel module, promoted to
// direct here since this package is the one place in the module that
// actually constructs prometheus.Collector values.
package tmpstats

import "github.com/prometheus/client_golang/prometheus"

var (
	// PoolGrowths counts how many times each size-class pool has
	// requested a new super-block from the Arena.
	PoolGrowths = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tinymempool",
		Name:      "pool_growths_total",
		Help:      "Number of super-block growths per size class.",
	}, []string{"class"})

	// ArenaBytesCommitted tracks the Arena's cumulative commit offset.
	ArenaBytesCommitted = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tinymempool",
		Name:      "arena_bytes_committed",
		Help:      "Cumulative bytes committed by the reservation arena.",
	})

	// FallbackAllocations counts allocations routed to the system
	// allocator because they exceeded the largest pooled size class.
	FallbackAllocations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tinymempool",
		Name:      "fallback_allocations_total",
		Help:      "Number of allocations served by the system fallback.",
	})
)

// MustRegister registers every collector in this package with reg.
// Call once during process startup; safe to call with a dedicated
// registry in tests to avoid cross-test collisions.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(PoolGrowths, ArenaBytesCommitted, FallbackAllocations)
}

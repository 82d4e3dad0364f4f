package tmpstats_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/tinymempool/tinymempool/internal/tmpstats"
)

func TestMustRegister_NoDuplicateCollisions(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { tmpstats.MustRegister(reg) })

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["tinymempool_pool_growths_total"])
	require.True(t, names["tinymempool_arena_bytes_committed"])
	require.True(t, names["tinymempool_fallback_allocations_total"])
}

func TestFallbackAllocations_Increments(t *testing.T) {
	before := &dto.Metric{}
	require.NoError(t, tmpstats.FallbackAllocations.Write(before))

	tmpstats.FallbackAllocations.Inc()

	after := &dto.Metric{}
	require.NoError(t, tmpstats.FallbackAllocations.Write(after))

	require.Equal(t, before.GetCounter().GetValue()+1, after.GetCounter().GetValue())
}

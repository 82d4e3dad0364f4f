package platform_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinymempool/tinymempool/internal/platform"
)

func TestFakeFacade_ReserveCommitRelease(t *testing.T) {
	f := platform.NewFakeFacade(4096)
	require.Equal(t, uintptr(4096), f.PageSize())

	base := f.Reserve(1 << 20)
	require.NotNil(t, base)

	f.Commit(base, 4096)

	s := unsafe.Slice((*byte)(base), 4096)
	s[0] = 0xAB
	assert.Equal(t, byte(0xAB), s[0])

	f.Release(base, 1<<20)
}

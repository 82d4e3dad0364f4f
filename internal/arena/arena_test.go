package arena_test

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinymempool/tinymempool/internal/arena"
	"github.com/tinymempool/tinymempool/internal/platform"
)

func newTestArena(t *testing.T, pageSize, totalReserve uintptr) *arena.Arena {
	t.Helper()
	a := arena.New(platform.NewFakeFacade(pageSize))
	a.Init(totalReserve)
	t.Cleanup(a.Shutdown)
	return a
}

func TestArena_InitIsIdempotent(t *testing.T) {
	a := newTestArena(t, 4096, 1<<20)
	assert.Equal(t, uintptr(4096), a.PageSize())

	a.Init(1 << 21) // second call must be a no-op
	assert.Equal(t, uintptr(4096), a.PageSize())
}

func TestArena_AllocateBlockRoundsUpToPage(t *testing.T) {
	a := newTestArena(t, 4096, 1<<20)

	p := a.AllocateBlock(10)
	require.NotNil(t, p)
	assert.Equal(t, uintptr(4096), a.CommitOffset())

	p2 := a.AllocateBlock(4097)
	require.NotNil(t, p2)
	assert.Equal(t, uintptr(4096+8192), a.CommitOffset())
}

// TestArena_ExhaustionIsFatal exercises the real tmpfatal.Fatal ->
// os.Exit(1) path by re-executing this same test binary as a
// subprocess, the standard way to test os.Exit behavior without
// killing the outer test process.
func TestArena_ExhaustionIsFatal(t *testing.T) {
	if os.Getenv("TMPALLOC_EXHAUST_SUBPROCESS") == "1" {
		a := arena.New(platform.NewFakeFacade(4096))
		a.Init(4096) // exactly one page reserved
		a.AllocateBlock(1 << 30)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestArena_ExhaustionIsFatal")
	cmd.Env = append(os.Environ(), "TMPALLOC_EXHAUST_SUBPROCESS=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

//go:build tmpalloc_debug

package router_test

import (
	"os"
	"os/exec"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRouter_DebugCatchesUntracked ensures the debug build's live-
// pointer registry terminates the process on a Deallocate call for a
// pointer this Router never handed out. Only compiled with
// -tags tmpalloc_debug; the subprocess re-exec inherits the same build
// tag as this already-compiled test binary.
func TestRouter_DebugCatchesUntracked(t *testing.T) {
	if os.Getenv("TMPALLOC_DEBUG_SUBPROCESS") == "1" {
		r := newTestRouter(t)
		var bogus int
		r.Deallocate(unsafe.Pointer(&bogus))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestRouter_DebugCatchesUntracked")
	cmd.Env = append(os.Environ(), "TMPALLOC_DEBUG_SUBPROCESS=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

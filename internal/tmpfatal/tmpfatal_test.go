package tmpfatal_test

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinymempool/tinymempool/internal/tmpfatal"
)

func TestFatal_TerminatesProcess(t *testing.T) {
	if os.Getenv("TMPALLOC_FATAL_SUBPROCESS") == "1" {
		tmpfatal.Fatal("boom: %d", 42)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_TerminatesProcess")
	cmd.Env = append(os.Environ(), "TMPALLOC_FATAL_SUBPROCESS=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "boom: 42")
}

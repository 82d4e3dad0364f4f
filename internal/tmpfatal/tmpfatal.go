// Package tmpfatal implements the unrecoverable half of the error
// model: OS reservation/commit/release failures, reservation
// exhaustion, page-size invariant violations, and a pool popping
// after a fresh grow all indicate a condition the allocator cannot
// continue past. Every path in this package ends the process.
//
// This mirrors the Go runtime's own throw(): a diagnostic to stderr
// followed by unconditional termination, not a panic (a panic is
// recoverable by a caller's defer/recover and this family of failures
// must not be).
package tmpfatal

import (
	"fmt"
	"os"

	"github.com/tinymempool/tinymempool/internal/tmplog"
)

// Fatal logs a diagnostic and terminates the process. It never returns.
func Fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	tmplog.L().Sugar().Error("tinymempool: fatal: " + msg)
	fmt.Fprintln(os.Stderr, "[tinymempool fatal]", msg)
	tmplog.Sync()
	os.Exit(1)
}

// Package tmplog provides the structured logger used for
// initialization, shutdown, and pool-growth events.
//
// It is deliberately never called from an allocation hot path: zap's
// encoders allocate, and a memory allocator that logs on every
// Allocate/Deallocate would both be slow and risk reentering itself.
// Logging here is limited to cold-path events (arena init/shutdown,
// pool growth, fatal diagnostics) that happen orders of magnitude less
// often than allocations.
package tmplog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// L returns the process-wide structured logger, constructing it on
// first use.
func L() *zap.Logger {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// Sync flushes any buffered log entries. Best-effort: errors from Sync
// are common on redirected stderr/stdout and are intentionally ignored.
func Sync() {
	_ = L().Sync()
}

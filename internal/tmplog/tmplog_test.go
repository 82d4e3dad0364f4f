package tmplog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinymempool/tinymempool/internal/tmplog"
)

func TestL_ReturnsSameLoggerAcrossCalls(t *testing.T) {
	l1 := tmplog.L()
	l2 := tmplog.L()
	assert.Same(t, l1, l2)
}

package sizeclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinymempool/tinymempool/internal/sizeclass"
)

func TestSizes(t *testing.T) {
	assert.Equal(t, [7]uintptr{64, 128, 256, 512, 1024, 2048, 4096}, sizeclass.Sizes())
}

func TestIndexFor(t *testing.T) {
	cases := []struct {
		total uintptr
		index int
	}{
		{17, 0},
		{64, 0},
		{65, 1},
		{128, 1},
		{129, 2},
		{4096, 6},
	}
	for _, c := range cases {
		assert.Equal(t, c.index, sizeclass.IndexFor(c.total), "total=%d", c.total)
	}
}

func TestFits(t *testing.T) {
	assert.True(t, sizeclass.Fits(4096))
	assert.False(t, sizeclass.Fits(4097))
}

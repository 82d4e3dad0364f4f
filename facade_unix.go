//go:build unix

package tmpalloc

import "github.com/tinymempool/tinymempool/internal/platform"

func newDefaultFacade() platform.Facade {
	return platform.NewUnixFacade()
}

//go:build windows

package tmpalloc

import "github.com/tinymempool/tinymempool/internal/platform"

func newDefaultFacade() platform.Facade {
	return platform.NewWindowsFacade()
}

//go:build !ebiten

package window

import "github.com/pkg/errors"

// ErrUnavailable is returned by Run in builds without the ebiten tag
var ErrUnavailable = errors.New("window renderer requires the ebiten build tag (go build -tags ebiten)")

// Run reports that the window renderer was not compiled in.
func Run(Simulation, Options) error {
	return ErrUnavailable
}

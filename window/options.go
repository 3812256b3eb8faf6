// Package window renders a running simulation in a desktop window.
//
// The window is only available when built with the ebiten build tag; without
// it Run returns ErrUnavailable.
package window

import (
	"time"

	"github.com/sheikhrachel/go-life/model"
)

// Simulation is stepped once per window tick
type Simulation interface {
	// Tick returns the generation to draw and whether the run has ended.
	Tick() (model.Snapshot, bool)
}

// Options configures the window
type Options struct {
	Title     string
	CellSize  int
	FrameRate time.Duration
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Game of Life"
	}
	if o.CellSize <= 0 {
		o.CellSize = 10
	}
	return o
}

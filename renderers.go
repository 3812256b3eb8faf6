package main

import (
	"context"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/window"
)

// progressRenderer shows a progress bar instead of frames
type progressRenderer struct {
	bar *pb.ProgressBar
}

func newProgressRenderer(w io.Writer, total int) *progressRenderer {
	bar := pb.New(total).SetWriter(w)
	bar.Set("prefix", "generations ")
	return &progressRenderer{bar: bar.Start()}
}

// Render moves the bar to the frame's run-wide generation.
// Frames repeated by a restart do not count twice.
func (p *progressRenderer) Render(f frame) error {
	p.bar.SetCurrent(int64(f.generation + 1))
	return nil
}

// Finish stops redrawing the bar
func (p *progressRenderer) Finish() {
	p.bar.Finish()
}

// runGame drives g with the renderer named in the config
func runGame(ctx context.Context, g *game) error {
	switch g.config.Renderer {
	case utils.RendererTUI:
		return runTUI(ctx, g)

	case utils.RendererWindow:
		title := "Conway's Game of Life"
		if err := window.Run(g, window.Options{Title: title, CellSize: utils.CellSize, FrameRate: g.config.FrameRate}); err != nil {
			return errors.Wrap(err, "[runGame] window renderer")
		}
		return nil

	case utils.RendererHeadless:
		return runHeadless(ctx, g, newProgressRenderer(os.Stderr, headlessFrames(g.config)))

	case utils.RendererPlain:
		r := &model.PlainRenderer{Out: os.Stdout}
		return runLoop(ctx, g, func(f frame) error { return r.Render(f.snap) })

	default:
		r := &model.TerminalRenderer{Out: os.Stdout}
		return runLoop(ctx, g, func(f frame) error {
			r.Status = f.status
			return r.Render(f.snap)
		})
	}
}

// headlessFrames is the number of frames a full run renders; generation 0 is a frame too
func headlessFrames(config utils.Config) int {
	return config.MaxGenerations + 1
}

// runHeadless runs without frame delay, counting frames on bar
func runHeadless(ctx context.Context, g *game, bar *progressRenderer) error {
	defer bar.Finish()
	g.config.FrameRate = 0
	return runLoop(ctx, g, bar.Render)
}

//go:build ebiten

package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

var (
	cellColor   = color.RGBA{G: 0xe4, B: 0x30, A: 0xff}
	gridColor   = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
	borderColor = color.RGBA{R: 0xe6, G: 0x29, B: 0x37, A: 0xff}
)

// Game adapts a Simulation to the ebiten.Game interface.
type Game struct {
	sim      Simulation
	cellSize int
	snap     model.Snapshot
	done     bool
	paused   bool
}

// Update advances the simulation by one tick unless it is paused or finished.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.done || (g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN)) {
		return nil
	}
	g.snap, g.done = g.sim.Tick()
	return nil
}

// Draw renders the live cells, grid lines and the world border.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	var (
		cs = float32(g.cellSize)
		w  = float32(g.snap.Width) * cs
		h  = float32(g.snap.Height) * cs
	)

	for p := range g.snap.All() {
		vector.DrawFilledRect(screen, float32(p.X)*cs, float32(p.Y)*cs, cs, cs, cellColor, false)
	}
	for x := 0; x <= g.snap.Width; x++ {
		vector.StrokeLine(screen, float32(x)*cs, 0, float32(x)*cs, h, 1, gridColor, false)
	}
	for y := 0; y <= g.snap.Height; y++ {
		vector.StrokeLine(screen, 0, float32(y)*cs, w, float32(y)*cs, 1, gridColor, false)
	}
	vector.StrokeRect(screen, 0, 0, w, h, 3, borderColor, false)

	status := fmt.Sprintf("Generation: %d | FPS: %.1f", g.snap.Generation, ebiten.ActualFPS())
	if g.done {
		status += " | ended"
	} else if g.paused {
		status += " | paused"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, 10)
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	return g.snap.Width * g.cellSize, g.snap.Height * g.cellSize
}

// Run opens a window and blocks until it is closed.
func Run(sim Simulation, opts Options) error {
	opts = opts.withDefaults()

	g := &Game{sim: sim, cellSize: opts.CellSize}
	g.snap, g.done = sim.Tick()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(g.snap.Width*opts.CellSize, g.snap.Height*opts.CellSize)
	ebiten.SetTPS(ticksPerSecond(opts.FrameRate))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[window.Run] ebiten")
	}
	return nil
}

func ticksPerSecond(frameRate time.Duration) int {
	if frameRate <= 0 {
		return ebiten.DefaultTPS
	}
	return max(1, int(time.Second/frameRate))
}

package model

import (
	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned when a selection name matches no seeding operation
var ErrUnknownPattern = errors.New("unknown pattern")

// Pattern is a named arrangement of live cells relative to an anchor
type Pattern struct {
	Name    string
	Offsets []Position
}

var (
	Glider = Pattern{Name: "Glider", Offsets: []Position{
		{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2},
	}}
	Blinker = Pattern{Name: "Blinker", Offsets: []Position{
		{0, 0}, {1, 0}, {2, 0},
	}}
	Block = Pattern{Name: "Block", Offsets: []Position{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	}}
	Beacon = Pattern{Name: "Beacon", Offsets: []Position{
		{0, 0}, {1, 0}, {0, 1},
		{3, 2}, {2, 3}, {3, 3},
	}}
	RPentomino = Pattern{Name: "R-pentomino", Offsets: []Position{
		{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2},
	}}
	Acorn = Pattern{Name: "Acorn", Offsets: []Position{
		{1, 0}, {3, 1}, {0, 2}, {1, 2}, {4, 2}, {5, 2}, {6, 2},
	}}
	Diehard = Pattern{Name: "Diehard", Offsets: []Position{
		{6, 0}, {0, 1}, {1, 1}, {1, 2}, {5, 2}, {6, 2}, {7, 2},
	}}
	GosperGun = Pattern{Name: "Gosper Gun", Offsets: []Position{
		{24, 0},
		{22, 1}, {24, 1},
		{12, 2}, {13, 2}, {20, 2}, {21, 2}, {34, 2}, {35, 2},
		{11, 3}, {15, 3}, {20, 3}, {21, 3}, {34, 3}, {35, 3},
		{0, 4}, {1, 4}, {10, 4}, {16, 4}, {20, 4}, {21, 4},
		{0, 5}, {1, 5}, {10, 5}, {14, 5}, {16, 5}, {17, 5}, {22, 5}, {24, 5},
		{10, 6}, {16, 6}, {24, 6},
		{11, 7}, {15, 7},
		{12, 8}, {13, 8},
	}}
	// Pentadecathlon is the period-15 oscillator; its middle row sits on the anchor
	Pentadecathlon = Pattern{Name: "Pentadecathlon", Offsets: []Position{
		{2, -1}, {7, -1},
		{0, 0}, {1, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {8, 0}, {9, 0},
		{2, 1}, {7, 1},
	}}
)

// AddPattern adds every offset of p relative to (x, y)
func (e *Engine) AddPattern(p Pattern, x, y int) {
	for _, o := range p.Offsets {
		e.AddCell(x+o.X, y+o.Y)
	}
}

// AddGlider adds a glider pattern at the specified position
func (e *Engine) AddGlider(x, y int) { e.AddPattern(Glider, x, y) }

// AddBlinker adds a horizontal period-2 blinker
func (e *Engine) AddBlinker(x, y int) { e.AddPattern(Blinker, x, y) }

// AddBlock adds a 2x2 still life
func (e *Engine) AddBlock(x, y int) { e.AddPattern(Block, x, y) }

// AddBeacon adds a period-2 beacon made of two diagonal blocks
func (e *Engine) AddBeacon(x, y int) { e.AddPattern(Beacon, x, y) }

// AddRPentomino adds the R-pentomino methuselah
func (e *Engine) AddRPentomino(x, y int) { e.AddPattern(RPentomino, x, y) }

// AddAcorn adds the acorn methuselah
func (e *Engine) AddAcorn(x, y int) { e.AddPattern(Acorn, x, y) }

// AddDiehard adds a diehard, which vanishes after 130 generations
func (e *Engine) AddDiehard(x, y int) { e.AddPattern(Diehard, x, y) }

// AddGosperGun adds a Gosper glider gun; it needs a 36x9 area
func (e *Engine) AddGosperGun(x, y int) { e.AddPattern(GosperGun, x, y) }

// AddPentadecathlon adds a period-15 pentadecathlon with its middle row at y
func (e *Engine) AddPentadecathlon(x, y int) { e.AddPattern(Pentadecathlon, x, y) }

// Selection names offered by the pattern menu, in menu order
const (
	SelectGlider         = "Glider"
	SelectRandom         = "Random"
	SelectBlock          = "Block"
	SelectBlinker        = "Blinker"
	SelectBeacon         = "Beacon"
	SelectRPentomino     = "R-pentomino"
	SelectAcorn          = "Acorn"
	SelectDiehard        = "Diehard"
	SelectGosperGun      = "Gosper Gun"
	SelectPentadecathlon = "Pentadecathlon"
	SelectMixed          = "Mixed"
)

// Selections returns the pattern menu entries
func Selections() []string {
	return []string{
		SelectGlider,
		SelectRandom,
		SelectBlock,
		SelectBlinker,
		SelectBeacon,
		SelectRPentomino,
		SelectAcorn,
		SelectDiehard,
		SelectGosperGun,
		SelectPentadecathlon,
		SelectMixed,
	}
}

// SeedSelection seeds e with the named menu entry at its usual anchor.
// Random uses density and src; the other entries ignore them.
func SeedSelection(e *Engine, name string, density float64, src RandomSource) error {
	var (
		cx = e.width / 2
		cy = e.height / 2
	)

	switch name {
	case SelectGlider:
		e.AddGlider(cx, cy)
	case SelectRandom:
		e.Randomize(density, src)
	case SelectBlock:
		e.AddBlock(10, 10)
	case SelectBlinker:
		e.AddBlinker(cx, cy)
	case SelectBeacon:
		e.AddBeacon(10, 10)
	case SelectRPentomino:
		e.AddRPentomino(cx, cy)
	case SelectAcorn:
		e.AddAcorn(10, 10)
	case SelectDiehard:
		e.AddDiehard(10, 10)
	case SelectGosperGun:
		e.AddGosperGun(1, 1)
	case SelectPentadecathlon:
		e.AddPentadecathlon(cx-4, cy)
	case SelectMixed:
		e.seedMixed()
	default:
		return errors.Wrapf(ErrUnknownPattern, "[SeedSelection] %q", name)
	}
	return nil
}

// seedMixed lays out several small patterns scaled to the grid
func (e *Engine) seedMixed() {
	w, h := e.width, e.height
	e.AddGlider(2, 2)
	e.AddBlinker(w-5, h-5)
	e.AddBlock(w-5, 2)
	e.AddBeacon(2, h-5)
	e.AddGlider(w/2, h/2-2)
}

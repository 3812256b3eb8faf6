package model

import (
	"github.com/sheikhrachel/go-life/rules"
)

// Mode decides whether generation advance is clipped to the declared grid.
type Mode int

const (
	// Unbounded lets patterns drift off the declared grid; bounds only matter for seeding and rendering.
	Unbounded Mode = iota
	// Bounded discards any cell that would be alive outside [0,width) x [0,height).
	Bounded
)

func (m Mode) String() string {
	if m == Bounded {
		return "bounded"
	}
	return "unbounded"
}

// Position is a cell coordinate on the plane
type Position struct {
	X, Y int
}

// Neighbors returns the 8 positions of the Moore neighborhood
func (p Position) Neighbors() [8]Position {
	return [8]Position{
		{p.X - 1, p.Y - 1}, {p.X, p.Y - 1}, {p.X + 1, p.Y - 1},
		{p.X - 1, p.Y}, {p.X + 1, p.Y},
		{p.X - 1, p.Y + 1}, {p.X, p.Y + 1}, {p.X + 1, p.Y + 1},
	}
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithMode sets the bounds policy used by NextGeneration.
func WithMode(mode Mode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithAges enables per-cell age tracking.
func WithAges() Option {
	return func(e *Engine) { e.ages = make(map[Position]int) }
}

// Engine holds a sparse set of live cells and advances it under B3/S23
type Engine struct {
	width      int
	height     int
	mode       Mode
	cells      map[Position]struct{}
	ages       map[Position]int // nil when age tracking is off
	generation int
}

// NewEngine creates an empty engine for a width x height grid
func NewEngine(width, height int, opts ...Option) *Engine {
	e := &Engine{
		width:  width,
		height: height,
		cells:  make(map[Position]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetWidth returns the width of the grid
func (e *Engine) GetWidth() int {
	return e.width
}

// GetHeight returns the height of the grid
func (e *Engine) GetHeight() int {
	return e.height
}

// Mode returns the bounds policy
func (e *Engine) Mode() Mode { return e.mode }

// TracksAges reports whether the engine keeps per-cell ages
func (e *Engine) TracksAges() bool { return e.ages != nil }

// Generation returns the number of completed NextGeneration calls
func (e *Engine) Generation() int { return e.generation }

// Population returns the number of live cells
func (e *Engine) Population() int { return len(e.cells) }

// AddCell marks (x, y) alive. Coordinates are not checked against the grid.
func (e *Engine) AddCell(x, y int) {
	p := Position{X: x, Y: y}
	e.cells[p] = struct{}{}
	if e.ages != nil {
		e.ages[p] = 0
	}
}

// IsAlive reports whether p is in the live-cell set
func (e *Engine) IsAlive(p Position) bool {
	_, ok := e.cells[p]
	return ok
}

// Age returns the age of a live cell. The second value is false when the
// cell is dead or ages are not tracked.
func (e *Engine) Age(p Position) (int, bool) {
	if e.ages == nil {
		return 0, false
	}
	age, ok := e.ages[p]
	return age, ok
}

// CountLiveNeighbors counts live cells in the Moore neighborhood of p.
// Neighbors outside the grid are counted in both modes.
func (e *Engine) CountLiveNeighbors(p Position) (count int) {
	for _, n := range p.Neighbors() {
		if e.IsAlive(n) {
			count++
		}
	}
	return
}

func (e *Engine) inBounds(p Position) bool {
	return p.X >= 0 && p.X < e.width && p.Y >= 0 && p.Y < e.height
}

// candidates fills out with every position that could be alive after the next step
func (e *Engine) candidates(out map[Position]struct{}) map[Position]struct{} {
	for p := range e.cells {
		out[p] = struct{}{}
		for _, n := range p.Neighbors() {
			out[n] = struct{}{}
		}
	}
	return out
}

// NextGeneration advances the automaton by exactly one step.
// Every candidate is judged against the current set; the new set replaces it only after all are evaluated.
func (e *Engine) NextGeneration() {
	var (
		next     = make(map[Position]struct{}, len(e.cells))
		nextAges map[Position]int
	)
	if e.ages != nil {
		nextAges = make(map[Position]int, len(e.cells))
	}

	candidates := e.candidates(candidatePool.Get())
	defer candidatePool.Put(candidates)

	for p := range candidates {
		if e.mode == Bounded && !e.inBounds(p) {
			continue
		}

		outcome := rules.Next(e.CountLiveNeighbors(p), e.IsAlive(p))
		if !outcome.Alive() {
			continue
		}
		next[p] = struct{}{}

		if nextAges == nil {
			continue
		}
		if outcome == rules.Survives {
			nextAges[p] = e.ages[p] + 1
		} else {
			nextAges[p] = 0
		}
	}

	e.cells = next
	e.ages = nextAges
	e.generation++
}

// Clear kills every cell and resets the generation counter
func (e *Engine) Clear() {
	e.cells = make(map[Position]struct{})
	if e.ages != nil {
		e.ages = make(map[Position]int)
	}
	e.generation = 0
}

// Snapshot returns an independent copy of the current state for renderers
func (e *Engine) Snapshot() Snapshot {
	cells := make(map[Position]int, len(e.cells))
	for p := range e.cells {
		cells[p] = e.ages[p] // zero when ages are off
	}
	return Snapshot{
		Width:      e.width,
		Height:     e.height,
		Generation: e.generation,
		Mode:       e.mode,
		HasAges:    e.ages != nil,
		cells:      cells,
	}
}

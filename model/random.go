package model

// RandomSource yields uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// RandomIntSource yields uniform integers in [0, n). *math/rand.Rand satisfies it.
type RandomIntSource interface {
	Intn(n int) int
}

// Randomize visits every cell of the grid in row-major order and adds it with probability density.
// Density outside [0, 1] simply saturates to never or always.
func (e *Engine) Randomize(density float64, src RandomSource) {
	for y := range e.height {
		for x := range e.width {
			if src.Float64() < density {
				e.AddCell(x, y)
			}
		}
	}
}

// InjectRandomLife adds count random in-bounds cells to break stagnation
func (e *Engine) InjectRandomLife(count int, src RandomIntSource) {
	if e.width <= 0 || e.height <= 0 {
		return
	}
	for range count {
		e.AddCell(src.Intn(e.width), src.Intn(e.height))
	}
}

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
)

// LCG is the multiplier-congruential generator used by the classic terminal
// simulator. It is kept for reproducing its seeding numerically.
type LCG struct {
	state uint64
}

// NewLCG returns an LCG starting at seed
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the state and returns the 16 bits above the low 16
func (l *LCG) Next() uint16 {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return uint16(l.state >> 16)
}

// Float64 returns a value in [0, 1) with 16 bits of resolution
func (l *LCG) Float64() float64 {
	return float64(l.Next()) / 65536.0
}

// Intn returns a value in [0, n) by scaling Float64
func (l *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(l.Float64() * float64(n))
}

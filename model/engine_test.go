package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-life/rules"
)

func engineWith(cells []Position, opts ...Option) *Engine {
	e := NewEngine(40, 20, opts...)
	for _, p := range cells {
		e.AddCell(p.X, p.Y)
	}
	return e
}

func liveSet(e *Engine) map[Position]bool {
	out := make(map[Position]bool)
	for _, p := range e.Snapshot().Positions() {
		out[p] = true
	}
	return out
}

func setOf(cells ...Position) map[Position]bool {
	out := make(map[Position]bool, len(cells))
	for _, p := range cells {
		out[p] = true
	}
	return out
}

func translate(cells []Position, dx, dy int) []Position {
	out := make([]Position, len(cells))
	for i, p := range cells {
		out[i] = Position{p.X + dx, p.Y + dy}
	}
	return out
}

func TestNewEngine(t *testing.T) {
	e := NewEngine(30, 10)
	assert.Equal(t, 30, e.GetWidth())
	assert.Equal(t, 10, e.GetHeight())
	assert.Equal(t, 0, e.Generation())
	assert.Equal(t, 0, e.Population())
	assert.Equal(t, Unbounded, e.Mode())
	assert.False(t, e.TracksAges())

	e = NewEngine(30, 10, WithMode(Bounded), WithAges())
	assert.Equal(t, Bounded, e.Mode())
	assert.True(t, e.TracksAges())
}

func TestAddCellIdempotent(t *testing.T) {
	e := NewEngine(10, 10)
	e.AddCell(3, 4)
	e.AddCell(3, 4)

	assert.Equal(t, 1, e.Population())
	assert.True(t, e.IsAlive(Position{3, 4}))
	assert.False(t, e.IsAlive(Position{4, 3}))
}

func TestAddCellOutsideGrid(t *testing.T) {
	e := NewEngine(5, 5)
	e.AddCell(-3, 100)
	assert.True(t, e.IsAlive(Position{-3, 100}))
}

func TestCountLiveNeighbors(t *testing.T) {
	e := NewEngine(10, 10)
	assert.Equal(t, 0, e.CountLiveNeighbors(Position{0, 0}))

	for _, n := range (Position{5, 5}).Neighbors() {
		e.AddCell(n.X, n.Y)
	}
	e.AddCell(5, 5)
	assert.Equal(t, 8, e.CountLiveNeighbors(Position{5, 5}), "the cell itself is not counted")
	assert.Equal(t, 3, e.CountLiveNeighbors(Position{7, 5}))

	// out-of-grid neighbors still count
	e = NewEngine(3, 3, WithMode(Bounded))
	e.AddCell(-1, 0)
	e.AddCell(-1, 1)
	assert.Equal(t, 2, e.CountLiveNeighbors(Position{0, 0}))
}

func TestIsolatedCellDies(t *testing.T) {
	e := engineWith([]Position{{0, 0}})
	e.NextGeneration()
	assert.Empty(t, liveSet(e))
	assert.Equal(t, 1, e.Generation())
}

func TestBlockIsStable(t *testing.T) {
	block := []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	e := engineWith(block)

	for i := 1; i <= 5; i++ {
		e.NextGeneration()
		assert.Equal(t, setOf(block...), liveSet(e), "generation %d", i)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	horizontal := []Position{{0, 0}, {1, 0}, {2, 0}}
	vertical := []Position{{1, -1}, {1, 0}, {1, 1}}
	e := engineWith(horizontal)

	e.NextGeneration()
	assert.Equal(t, setOf(vertical...), liveSet(e))

	e.NextGeneration()
	assert.Equal(t, setOf(horizontal...), liveSet(e))
	assert.Equal(t, 2, e.Generation())
}

func TestGliderTranslates(t *testing.T) {
	e := NewEngine(40, 40)
	e.AddGlider(0, 0)

	for period := 1; period <= 3; period++ {
		for range 4 {
			e.NextGeneration()
		}
		want := translate(Glider.Offsets, period, period)
		assert.Equal(t, setOf(want...), liveSet(e), "after %d generations", period*4)
	}
}

func TestEmptyStaysEmpty(t *testing.T) {
	e := NewEngine(10, 10, WithAges())
	for range 3 {
		e.NextGeneration()
	}
	assert.Equal(t, 0, e.Population())
	assert.Equal(t, 3, e.Generation())
}

func TestDeterminism(t *testing.T) {
	seed := []Position{}
	src := rand.New(rand.NewSource(7))
	for range 150 {
		seed = append(seed, Position{src.Intn(20), src.Intn(20)})
	}

	a := engineWith(seed)
	b := engineWith(seed)
	for range 10 {
		a.NextGeneration()
		b.NextGeneration()
	}
	assert.Equal(t, liveSet(a), liveSet(b))
	assert.Equal(t, a.Snapshot().Hash(), b.Snapshot().Hash())
}

// bruteForceStep evaluates every position of a padded box without the candidate optimization
func bruteForceStep(e *Engine) map[Position]bool {
	out := make(map[Position]bool)
	minP, maxP, ok := e.Snapshot().Bounds()
	if !ok {
		return out
	}
	for y := minP.Y - 2; y <= maxP.Y+2; y++ {
		for x := minP.X - 2; x <= maxP.X+2; x++ {
			p := Position{x, y}
			if rules.ApplyConwayRules(e.CountLiveNeighbors(p), e.IsAlive(p)) {
				out[p] = true
			}
		}
	}
	return out
}

func TestCandidateSetSufficiency(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		src := rand.New(rand.NewSource(seed))
		e := NewEngine(16, 16)
		e.Randomize(0.35, src)

		for gen := 0; gen < 5; gen++ {
			want := bruteForceStep(e)
			e.NextGeneration()
			require.Equal(t, want, liveSet(e), "seed %d generation %d", seed, gen)
		}
	}
}

func TestBoundedModeDiscardsOutside(t *testing.T) {
	// a blinker on the top edge would grow a cell at y = -1
	edge := []Position{{0, 0}, {1, 0}, {2, 0}}

	unbounded := engineWith(edge)
	unbounded.NextGeneration()
	assert.True(t, unbounded.IsAlive(Position{1, -1}))

	bounded := engineWith(edge, WithMode(Bounded))
	bounded.NextGeneration()
	assert.Equal(t, setOf(Position{1, 0}, Position{1, 1}), liveSet(bounded))
}

func TestBoundedModeDropsCellsAddedOutside(t *testing.T) {
	e := NewEngine(10, 10, WithMode(Bounded))
	e.AddBlock(-5, -5)
	e.NextGeneration()
	assert.Equal(t, 0, e.Population())
}

func TestAgeTracking(t *testing.T) {
	e := NewEngine(10, 10, WithAges())
	e.AddBlinker(3, 3)

	for _, p := range Blinker.Offsets {
		age, ok := e.Age(Position{3 + p.X, 3 + p.Y})
		require.True(t, ok)
		assert.Equal(t, 0, age)
	}

	e.NextGeneration()
	// the centre survives, the two vertical cells are newborn
	centre, ok := e.Age(Position{4, 3})
	require.True(t, ok)
	assert.Equal(t, 1, centre)
	for _, p := range []Position{{4, 2}, {4, 4}} {
		age, ok := e.Age(p)
		require.True(t, ok)
		assert.Equal(t, 0, age)
	}
	_, ok = e.Age(Position{3, 3})
	assert.False(t, ok, "dead cells have no age")

	e.NextGeneration()
	centre, _ = e.Age(Position{4, 3})
	assert.Equal(t, 2, centre)
}

func TestAgeMonotonicity(t *testing.T) {
	e := NewEngine(30, 30, WithAges())
	e.Randomize(0.4, rand.New(rand.NewSource(11)))

	for range 15 {
		before := e.Snapshot()
		e.NextGeneration()
		after := e.Snapshot()

		require.Equal(t, after.Len(), len(e.ages), "age map domain equals live set")
		for p, age := range after.All() {
			prev, wasAlive := before.Age(p)
			if wasAlive {
				assert.Equal(t, prev+1, age, "survivor %v", p)
			} else {
				assert.Equal(t, 0, age, "newborn %v", p)
			}
		}
	}
}

func TestAddCellResetsAge(t *testing.T) {
	e := NewEngine(10, 10, WithAges())
	e.AddBlock(1, 1)
	e.NextGeneration()
	e.NextGeneration()

	age, _ := e.Age(Position{1, 1})
	require.Equal(t, 2, age)

	e.AddCell(1, 1)
	age, _ = e.Age(Position{1, 1})
	assert.Equal(t, 0, age)
}

func TestAgeWithoutTracking(t *testing.T) {
	e := engineWith([]Position{{1, 1}})
	_, ok := e.Age(Position{1, 1})
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	e := NewEngine(10, 10, WithAges())
	e.AddGlider(1, 1)
	e.NextGeneration()

	e.Clear()
	assert.Equal(t, 0, e.Population())
	assert.Equal(t, 0, e.Generation())
	assert.True(t, e.TracksAges())
}

func TestSnapshotIsIndependent(t *testing.T) {
	e := NewEngine(10, 10)
	e.AddBlinker(2, 2)
	snap := e.Snapshot()

	e.NextGeneration()
	e.AddCell(9, 9)

	assert.Equal(t, 0, snap.Generation)
	assert.Equal(t, 3, snap.Len())
	assert.True(t, snap.Alive(Position{2, 2}))
	assert.False(t, snap.Alive(Position{9, 9}))
}

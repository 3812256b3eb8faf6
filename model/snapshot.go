package model

import (
	"cmp"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"iter"
	"slices"
)

// Snapshot is a read-only copy of the engine state at one generation.
// It shares nothing with the engine, so renderers may hold it across steps.
type Snapshot struct {
	Width      int
	Height     int
	Generation int
	Mode       Mode
	HasAges    bool

	cells map[Position]int
}

// Len returns the number of live cells
func (s Snapshot) Len() int { return len(s.cells) }

// Alive reports whether p was alive
func (s Snapshot) Alive(p Position) bool {
	_, ok := s.cells[p]
	return ok
}

// Age returns the age of p; ok is false for dead cells or when ages were not tracked.
func (s Snapshot) Age(p Position) (age int, ok bool) {
	age, ok = s.cells[p]
	return age, ok && s.HasAges
}

// All yields every live position with its age (always 0 without age tracking).
// Iteration order is unspecified.
func (s Snapshot) All() iter.Seq2[Position, int] {
	return func(yield func(Position, int) bool) {
		for p, age := range s.cells {
			if !yield(p, age) {
				return
			}
		}
	}
}

// Positions returns the live positions sorted row-major
func (s Snapshot) Positions() []Position {
	out := make([]Position, 0, len(s.cells))
	for p := range s.cells {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Position) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

// Bounds returns the bounding box of the live cells; ok is false when the set is empty.
func (s Snapshot) Bounds() (minP, maxP Position, ok bool) {
	for p := range s.cells {
		if !ok {
			minP, maxP, ok = p, p, true
			continue
		}
		minP.X = min(minP.X, p.X)
		minP.Y = min(minP.Y, p.Y)
		maxP.X = max(maxP.X, p.X)
		maxP.Y = max(maxP.Y, p.Y)
	}
	return
}

// GetBoundingBoxSize returns the area of the live bounding box
func (s Snapshot) GetBoundingBoxSize() int {
	minP, maxP, ok := s.Bounds()
	if !ok {
		return 0
	}
	return (maxP.X - minP.X + 1) * (maxP.Y - minP.Y + 1)
}

// AgeStats returns the oldest age and the mean age of the live cells
func (s Snapshot) AgeStats() (maxAge int, mean float64) {
	if !s.HasAges || len(s.cells) == 0 {
		return 0, 0
	}
	total := 0
	for _, age := range s.cells {
		maxAge = max(maxAge, age)
		total += age
	}
	return maxAge, float64(total) / float64(len(s.cells))
}

// Hash returns an MD5 digest of the live positions, independent of ages and generation
func (s Snapshot) Hash() string {
	var (
		h   = md5.New()
		buf [16]byte
	)
	for _, p := range s.Positions() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(int64(p.X)))
		binary.LittleEndian.PutUint64(buf[8:], uint64(int64(p.Y)))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

package rules

// Outcome is the fate of a single cell for the coming generation.
type Outcome int

const (
	// Dead means the cell is not alive in the next generation.
	Dead Outcome = iota
	// Survives means a live cell stays alive.
	Survives
	// Born means a dead cell comes to life.
	Born
)

const (
	birthNeighbors   = 3
	surviveNeighbors = 2
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23): (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == surviveNeighbors) || neighbors == birthNeighbors
}

// Next classifies the transition of a cell so callers can tell survivors from births.
func Next(neighbors int, alive bool) Outcome {
	switch {
	case !ApplyConwayRules(neighbors, alive):
		return Dead
	case alive:
		return Survives
	default:
		return Born
	}
}

// Alive reports whether the outcome leaves the cell alive.
func (o Outcome) Alive() bool { return o != Dead }

func (o Outcome) String() string {
	switch o {
	case Survives:
		return "survives"
	case Born:
		return "born"
	default:
		return "dead"
	}
}

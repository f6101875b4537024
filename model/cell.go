package model

// CellState is the value of one cell in a generation
type CellState int

const (
	// OutOfBounds is returned by Resolve for positions outside the grid. It is never stored.
	OutOfBounds CellState = -1
	// Dead cell
	Dead CellState = 0
	// Alive cell
	Alive CellState = 1
)

// IsAlive reports whether the state counts as a live neighbor
func (c CellState) IsAlive() bool {
	return c > 0
}

// String returns a readable name for the state
func (c CellState) String() string {
	switch c {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case OutOfBounds:
		return "out-of-bounds"
	default:
		return "invalid"
	}
}

// Position addresses a cell: X is the column, Y is the row
type Position struct {
	X, Y int
}

package model

import (
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Grid is one immutable generation of the automaton
type Grid struct {
	width  int
	height int
	cells  [][]CellState
}

// NewGrid validates rows and copies them into a new grid. Rows must be
// non-empty, all the same length, and hold only Dead or Alive.
func NewGrid(rows [][]CellState) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidGrid, "[NewGrid] grid is empty")
	}

	width := len(rows[0])
	cells := make([][]CellState, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidGrid, "[NewGrid] row %d has %d cells, want %d", y, len(row), width)
		}
		cells[y] = make([]CellState, width)
		for x, c := range row {
			if c != Dead && c != Alive {
				return nil, errors.Wrapf(ErrInvalidGrid, "[NewGrid] cell (%d,%d) has state %d", x, y, c)
			}
			cells[y][x] = c
		}
	}

	return &Grid{
		width:  width,
		height: len(rows),
		cells:  cells,
	}, nil
}

// MustGrid is NewGrid for literals known to be valid; it panics otherwise
func MustGrid(rows [][]CellState) *Grid {
	g, err := NewGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// NewDeadGrid creates an all-dead grid with the specified dimensions
func NewDeadGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidGrid, "[NewDeadGrid] dimensions %dx%d", width, height)
	}
	return blankGrid(width, height), nil
}

// blankGrid allocates the backing cells without validation
func blankGrid(width, height int) *Grid {
	cells := make([][]CellState, height)
	for i := range cells {
		cells[i] = make([]CellState, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Resolve returns the state at pos, or OutOfBounds when pos lies outside the grid
func (g *Grid) Resolve(pos Position) CellState {
	if pos.X < 0 || pos.X >= g.width || pos.Y < 0 || pos.Y >= g.height {
		return OutOfBounds
	}
	return g.cells[pos.Y][pos.X]
}

// Get returns whether the cell at (x, y) is alive
func (g *Grid) Get(x, y int) bool {
	return g.Resolve(Position{X: x, Y: y}).IsAlive()
}

// Rows returns a copy of the cells, row-major
func (g *Grid) Rows() [][]CellState {
	rows := make([][]CellState, g.height)
	for y := range g.height {
		rows[y] = append([]CellState(nil), g.cells[y]...)
	}
	return rows
}

// Equal reports structural equality: same dimensions and the same value at every position
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x].IsAlive() {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the dimensions and cell states
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x].IsAlive() {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid as nested arrays, the same shape as its JSON form
func (g *Grid) String() string {
	data, _ := g.MarshalJSON()
	return string(data)
}

// MarshalJSON encodes the grid as an array of rows of 0/1
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.cells)
}

// UnmarshalJSON decodes an array of rows and validates it like NewGrid
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]CellState
	if err := json.Unmarshal(data, &rows); err != nil {
		return errors.Wrap(err, "[Grid.UnmarshalJSON] failed to decode rows")
	}
	parsed, err := NewGrid(rows)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

package model

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-organism/rules"
)

// NextState applies the von Neumann rule to the cell at pos, reading only from g
func NextState(pos Position, g *Grid) (CellState, error) {
	neighbors := 0
	for _, o := range rules.Neighbors {
		if g.Resolve(Position{X: pos.X + o.DX, Y: pos.Y + o.DY}).IsAlive() {
			neighbors++
		}
	}

	alive, err := rules.VonNeumannFate(neighbors, g.Resolve(pos).IsAlive())
	if err != nil {
		return Dead, errors.Wrapf(err, "[NextState] cell (%d,%d)", pos.X, pos.Y)
	}
	if alive {
		return Alive, nil
	}
	return Dead, nil
}

// Stepper computes successive generations, splitting rows across workers
type Stepper struct {
	workers int
}

// NewStepper creates a stepper; workers <= 0 means one per CPU
func NewStepper(workers int) *Stepper {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Stepper{workers: workers}
}

// Step builds the next generation of g. Every cell is evaluated against g
// only, so the result never depends on partially written output.
func (s *Stepper) Step(g *Grid) (*Grid, error) {
	if g == nil || g.height == 0 || g.width == 0 {
		return nil, errors.Wrap(ErrInvalidGrid, "[Step] grid is empty")
	}

	var (
		next          = blankGrid(g.width, g.height)
		eg            errgroup.Group
		rowsPerWorker = (g.height + s.workers - 1) / s.workers // Ceiling division
	)

	for i := range s.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		// Each worker owns a disjoint band of output rows
		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := range g.width {
					state, err := NextState(Position{X: x, Y: y}, g)
					if err != nil {
						return err
					}
					next.cells[y][x] = state
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "[Step] failed to compute generation")
	}

	return next, nil
}

// Generate returns count+1 grids: initial unchanged, then count successive steps
func (s *Stepper) Generate(initial *Grid, count int) (Sequence, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrSequenceLength, "[Generate] negative generation count %d", count)
	}
	if initial == nil {
		return nil, errors.Wrap(ErrInvalidGrid, "[Generate] initial grid is nil")
	}

	seq := make(Sequence, 0, count+1)
	seq = append(seq, initial)
	current := initial
	for i := range count {
		next, err := s.Step(current)
		if err != nil {
			return nil, errors.Wrapf(err, "[Generate] generation %d", i+1)
		}
		seq = append(seq, next)
		current = next
	}
	return seq, nil
}

var defaultStepper = NewStepper(0)

// Step builds the next generation of g using one worker per CPU
func Step(g *Grid) (*Grid, error) {
	return defaultStepper.Step(g)
}

// Generate builds a sequence of count+1 generations using one worker per CPU
func Generate(initial *Grid, count int) (Sequence, error) {
	return defaultStepper.Generate(initial, count)
}

package rules

import "github.com/pkg/errors"

// MaxNeighbors is the size of the von Neumann neighborhood: up, down, left and right.
const MaxNeighbors = 4

// ErrNeighborCount is returned when a live-neighbor count falls outside 0..MaxNeighbors.
var ErrNeighborCount = errors.New("neighbor count out of range")

// Offset is a relative (dx, dy) step from a cell to one of its neighbors
type Offset struct {
	DX, DY int
}

// Neighbors lists the four orthogonal offsets consulted for every cell, in
// top, bottom, left, right order. Diagonals are never consulted.
var Neighbors = [MaxNeighbors]Offset{
	{DX: 0, DY: -1},
	{DX: 0, DY: 1},
	{DX: -1, DY: 0},
	{DX: 1, DY: 0},
}

// survives maps a live cell's neighbor count to whether it stays alive.
// It only covers the 4-neighbor count range.
var survives = [MaxNeighbors + 1]bool{
	0: false, // underpopulation
	1: false, // underpopulation
	2: true,
	3: true,
	4: false, // overpopulation
}

// births maps a dead cell's neighbor count to whether it becomes alive.
var births = [MaxNeighbors + 1]bool{
	3: true,
}

/*
VonNeumannFate decides whether a cell is alive in the next generation.

A dead cell with exactly three live orthogonal neighbors is born. A live cell
with two or three survives; with 0, 1 or 4 it dies.
*/
func VonNeumannFate(neighbors int, alive bool) (bool, error) {
	if neighbors < 0 || neighbors > MaxNeighbors {
		return false, errors.Wrapf(ErrNeighborCount, "[VonNeumannFate] count %d", neighbors)
	}
	if alive {
		return survives[neighbors], nil
	}
	return births[neighbors], nil
}

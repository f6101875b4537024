package model

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plus = [][]CellState{
	{0, 1, 0},
	{1, 1, 1},
	{0, 1, 0},
}

func TestNewGrid_Invalid(t *testing.T) {
	cases := map[string][][]CellState{
		"empty":       {},
		"empty row":   {{}},
		"ragged":      {{0, 1}, {1}},
		"bad state":   {{0, 2}},
		"sentinel":    {{OutOfBounds, 0}},
		"ragged tail": {{0, 0}, {0, 0}, {0, 0, 0}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGrid(rows)
			assert.True(t, errors.Is(err, ErrInvalidGrid), "got %v", err)
		})
	}
}

func TestNewGrid_CopiesInput(t *testing.T) {
	rows := [][]CellState{{0, 1}, {1, 0}}
	g, err := NewGrid(rows)
	require.NoError(t, err)

	rows[0][0] = Alive
	assert.Equal(t, Dead, g.Resolve(Position{X: 0, Y: 0}))

	out := g.Rows()
	out[1][1] = Alive
	assert.Equal(t, Dead, g.Resolve(Position{X: 1, Y: 1}))
}

func TestResolve_OutOfBounds(t *testing.T) {
	g := MustGrid([][]CellState{{0, 1, 0}, {1, 1, 1}})
	assert.Equal(t, 3, g.GetWidth())
	assert.Equal(t, 2, g.GetHeight())

	for _, pos := range []Position{
		{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 2},
		{X: -5, Y: -5}, {X: 100, Y: 1},
	} {
		assert.Equal(t, OutOfBounds, g.Resolve(pos), "position %+v", pos)
	}
}

func TestResolve_InBounds(t *testing.T) {
	g := MustGrid(plus)
	for y, row := range plus {
		for x, want := range row {
			assert.Equal(t, want, g.Resolve(Position{X: x, Y: y}))
		}
	}
}

func TestGrid_Equal(t *testing.T) {
	a := MustGrid(plus)
	b := MustGrid(plus)
	assert.True(t, a.Equal(b))

	c := MustGrid([][]CellState{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}})
	assert.False(t, a.Equal(c))

	d := MustGrid([][]CellState{{0, 1, 0}, {1, 1, 1}})
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

func TestGrid_Hash(t *testing.T) {
	a := MustGrid(plus)
	assert.Equal(t, a.GetGridHash(), MustGrid(plus).GetGridHash())

	// same cell bits, different shape
	wide := MustGrid([][]CellState{{0, 0, 0, 0}})
	tall := MustGrid([][]CellState{{0, 0}, {0, 0}})
	assert.NotEqual(t, wide.GetGridHash(), tall.GetGridHash())
}

func TestGrid_JSON(t *testing.T) {
	g := MustGrid(plus)
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[[0,1,0],[1,1,1],[0,1,0]]`, string(data))

	var decoded Grid
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, g.Equal(&decoded))

	err = json.Unmarshal([]byte(`[[0,1],[1]]`), &decoded)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

func TestGrid_CountLivingCells(t *testing.T) {
	assert.Equal(t, 5, MustGrid(plus).CountLivingCells())

	dead, err := NewDeadGrid(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, dead.CountLivingCells())

	_, err = NewDeadGrid(0, 2)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	g := MustGrid(plus)
	for n := 0; n <= 5; n++ {
		seq, err := Generate(g, n)
		require.NoError(t, err)
		assert.Equal(t, n+1, seq.Len())
		assert.Same(t, g, seq.At(0), "generation 0 is the initial grid")
		assert.NoError(t, seq.ExpectLen(n+1))
	}
}

func TestGenerate_MatchesRepeatedStep(t *testing.T) {
	g := MustGrid([][]CellState{
		{0, 1, 1, 0},
		{1, 1, 1, 0},
		{0, 1, 1, 1},
		{1, 1, 0, 1},
	})
	seq, err := Generate(g, 3)
	require.NoError(t, err)

	s1, err := Step(g)
	require.NoError(t, err)
	s2, err := Step(s1)
	require.NoError(t, err)
	s3, err := Step(s2)
	require.NoError(t, err)

	assert.True(t, seq.Equal(Sequence{g, s1, s2, s3}))
}

func TestGenerate_Deterministic(t *testing.T) {
	g := MustGrid([][]CellState{
		{1, 1, 0},
		{1, 1, 1},
		{0, 1, 1},
	})
	a, err := Generate(g, 6)
	require.NoError(t, err)
	b, err := NewStepper(1).Generate(g, 6)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(MustGrid(plus), -1)
	assert.True(t, errors.Is(err, ErrSequenceLength))

	_, err = Generate(nil, 2)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

func TestSequence_ExpectLen(t *testing.T) {
	seq, err := Generate(MustGrid(plus), 2)
	require.NoError(t, err)
	err = seq.ExpectLen(4)
	assert.True(t, errors.Is(err, ErrSequenceLength))
	assert.Nil(t, seq.At(3))
	assert.Nil(t, seq.At(-1))
}

func TestSequence_JSON(t *testing.T) {
	seq, err := Generate(MustGrid(plus), 1)
	require.NoError(t, err)

	data, err := json.Marshal(seq)
	require.NoError(t, err)
	assert.JSONEq(t, `[[[0,1,0],[1,1,1],[0,1,0]],[[0,0,0],[0,0,0],[0,0,0]]]`, string(data))

	var decoded Sequence
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, seq.Equal(decoded))

	err = json.Unmarshal([]byte(`[null]`), &decoded)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Sequence is an ordered run of generations; index 0 is the initial grid
type Sequence []*Grid

// Len returns the number of generations, including generation 0
func (s Sequence) Len() int {
	return len(s)
}

// At returns generation i, or nil when i is out of range
func (s Sequence) At(i int) *Grid {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Equal reports element-wise structural equality
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// ExpectLen returns ErrSequenceLength unless the sequence has exactly want generations
func (s Sequence) ExpectLen(want int) error {
	if len(s) != want {
		return errors.Wrapf(ErrSequenceLength, "[Sequence.ExpectLen] got %d generations, want %d", len(s), want)
	}
	return nil
}

// UnmarshalJSON decodes an array of grids, validating each
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var grids []*Grid
	if err := json.Unmarshal(data, &grids); err != nil {
		return errors.Wrap(err, "[Sequence.UnmarshalJSON] failed to decode generations")
	}
	for i, g := range grids {
		if g == nil {
			return errors.Wrapf(ErrInvalidGrid, "[Sequence.UnmarshalJSON] generation %d is null", i)
		}
	}
	*s = grids
	return nil
}

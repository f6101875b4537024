package model

import "github.com/pkg/errors"

var (
	// ErrInvalidGrid is returned for empty, ragged, or out-of-range grids.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrSequenceLength is returned when a generation sequence has the wrong length.
	ErrSequenceLength = errors.New("sequence length mismatch")
)

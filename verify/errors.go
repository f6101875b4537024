package verify

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrFixtureMismatch is matched by every MismatchError.
var ErrFixtureMismatch = errors.New("fixture mismatch")

// ErrBadFixture is returned when a fixture file cannot be turned into cases.
var ErrBadFixture = errors.New("bad fixture")

// MismatchError reports which case and which comparison disagreed
type MismatchError struct {
	Case       string
	Comparison string
	Generation int
	Want       string
	Got        string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("fixture %q: %s at generation %d: want %s, got %s",
		e.Case, e.Comparison, e.Generation, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrFixtureMismatch
func (e *MismatchError) Unwrap() error {
	return ErrFixtureMismatch
}

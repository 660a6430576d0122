package engine

import (
	"errors"
	"fmt"
)

// Domain errors for world construction and placement.
var (
	// ErrNonPositiveRadius indicates a particle radius <= 0 at construction.
	ErrNonPositiveRadius = errors.New("engine: particle radius must be positive")

	// ErrNonPositiveMass indicates a particle mass <= 0 at construction.
	ErrNonPositiveMass = errors.New("engine: particle mass must be positive")

	// ErrInvalidBounds indicates non-positive arena dimensions.
	ErrInvalidBounds = errors.New("engine: arena bounds must be positive")

	// ErrInvalidCount indicates a negative population size.
	ErrInvalidCount = errors.New("engine: particle count must not be negative")

	// ErrPlacementExhausted indicates rejection sampling ran out of attempts
	// before finding a non-overlapping position.
	ErrPlacementExhausted = errors.New("engine: placement attempts exhausted")
)

// PlacementError wraps ErrPlacementExhausted with the state of the
// population at the point placement gave up.
type PlacementError struct {
	Placed    int
	Requested int
	Attempts  int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("engine: placed %d of %d particles (gave up after %d attempts): arena too dense",
		e.Placed, e.Requested, e.Attempts)
}

func (e *PlacementError) Unwrap() error {
	return ErrPlacementExhausted
}

package location

import "errors"

// State errors raised by the drop/pick protocol.
var (
	// ErrLocationIsEmpty is returned when a pick targets a location without units.
	ErrLocationIsEmpty = errors.New("location is empty")

	// ErrHandlingUnitNotOnLocation is returned when a targeted pick asks for a unit that is
	// not placed on the (non-empty) location.
	ErrHandlingUnitNotOnLocation = errors.New("handling unit is not on location")
)

// Dimension errors raised by ValidatePlacement. Each wraps ErrDimensionExceeded so callers
// can treat all of them as one validation class.
var (
	ErrDimensionExceeded = errors.New("dimension limit exceeded")

	ErrCapacityExceeded = &dimensionError{name: "capacity exceeded"}
	ErrWeightExceeded   = &dimensionError{name: "weight exceeded"}
	ErrOverheight       = &dimensionError{name: "overheight"}
	ErrOverlength       = &dimensionError{name: "overlength"}
	ErrOverwidth        = &dimensionError{name: "overwidth"}
)

type dimensionError struct {
	name string
}

func (e *dimensionError) Error() string {
	return e.name
}

func (e *dimensionError) Unwrap() error {
	return ErrDimensionExceeded
}

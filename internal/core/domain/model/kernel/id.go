package kernel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxIDLength is the longest identifier accepted for locations and handling units.
const MaxIDLength = 200

// ErrIDIsNotConstructed indicates a zero-value ID that did not come from NewID or NewRandomID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or NewRandomID")

// ID is the value object used to identify locations and handling units.
//
// Warehouse identifiers are business keys chosen by operators ("A-01", "FIFO_B", "4711"),
// so ID wraps a string instead of a UUID. Surrounding whitespace is trimmed, the
// value must not be empty and must not exceed MaxIDLength characters.
//
// The zero value of ID is invalid.
//
// Example usage:
//
//	id, err := kernel.NewID("A-01")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id) // A-01
type ID struct {
	value string
}

// NewID validates and wraps a business key.
//
// Returns:
//   - ID on success
//   - ValueIsRequiredError when the trimmed value is empty
//   - ValueIsOutOfRangeError when the value is longer than MaxIDLength
func NewID(value string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxIDLength {
		return ID{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"id length", n, 1, MaxIDLength,
			fmt.Errorf("identifier has %d characters", n),
		)
	}
	return ID{value: trimmed}, nil
}

// NewRandomID generates an identifier from a random UUID (version 4).
// Used when callers do not supply their own business key.
func NewRandomID() ID {
	return ID{value: uuid.NewString()}
}

// String returns the raw identifier.
func (id ID) String() string {
	return id.value
}

// IsEqual reports whether both identifiers carry the same value.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// IsZero reports whether the ID is the zero value.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}

// Less orders identifiers lexicographically. Used wherever results need a stable order.
func (id ID) Less(other ID) bool {
	return id.value < other.value
}

package location

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// AccessKind selects the access discipline of a location. It is fixed at creation.
type AccessKind int

const (
	// AccessKindUnknown is the invalid zero value.
	AccessKindUnknown AccessKind = iota

	// FIFO picks the unit that was dropped first.
	FIFO

	// LIFO picks the unit that was dropped last.
	LIFO

	// Random keeps an unordered set; any top-level unit may be picked.
	Random

	// None is a plain location without discipline. It behaves like Random.
	None
)

func getAccessKindStrings() map[AccessKind]string {
	return map[AccessKind]string{
		AccessKindUnknown: "UNKNOWN",
		FIFO:              "FIFO",
		LIFO:              "LIFO",
		Random:            "RANDOM",
		None:              "NONE",
	}
}

// String returns the persisted discriminator, e.g. "FIFO".
func (k AccessKind) String() string {
	if s, ok := getAccessKindStrings()[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate accepts FIFO, LIFO, Random and None.
func (k AccessKind) Validate() error {
	switch k {
	case FIFO, LIFO, Random, None:
		return nil
	case AccessKindUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("accessKind", fmt.Errorf("%d is not a valid access kind", k))
}

// IsOrdered reports whether drops are numbered with locaPos.
func (k AccessKind) IsOrdered() bool {
	return k == FIFO || k == LIFO
}

// ParseAccessKind accepts "FIFO", "LIFO", "RANDOM" and "NONE", case-insensitively.
func ParseAccessKind(s string) (AccessKind, error) {
	for k, name := range getAccessKindStrings() {
		if k != AccessKindUnknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return AccessKindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"accessKind", fmt.Errorf("%q is not a valid access kind", s),
	)
}

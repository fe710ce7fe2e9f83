package kernel

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// HeightCategory classifies the height of a handling unit, or the maximum height a
// location accepts.
//
// The sized values are ordered: HeightLow < HeightMiddle < HeightHigh < TooHigh.
// HeightNotRelevant on a location means "unconstrained"; on a handling unit it means the
// height was never measured and never blocks a drop. HeightUnknown and TooHigh units never
// fit a constrained location.
type HeightCategory int

const (
	HeightNotRelevant HeightCategory = iota
	HeightUnknown
	HeightLow
	HeightMiddle
	HeightHigh
	TooHigh
)

// LengthCategory classifies length. Same ordering rules as HeightCategory.
type LengthCategory int

const (
	LengthNotRelevant LengthCategory = iota
	LengthUnknown
	LengthShort
	LengthMiddle
	LengthLong
	TooLong
)

// WidthCategory classifies width. Same ordering rules as HeightCategory.
type WidthCategory int

const (
	WidthNotRelevant WidthCategory = iota
	WidthUnknown
	WidthNarrow
	WidthMiddle
	WidthWide
	TooWide
)

func getHeightStrings() map[HeightCategory]string {
	return map[HeightCategory]string{
		HeightNotRelevant: "NOT_RELEVANT",
		HeightUnknown:     "UNKNOWN",
		HeightLow:         "LOW",
		HeightMiddle:      "MIDDLE",
		HeightHigh:        "HIGH",
		TooHigh:           "TOO_HIGH",
	}
}

func getLengthStrings() map[LengthCategory]string {
	return map[LengthCategory]string{
		LengthNotRelevant: "NOT_RELEVANT",
		LengthUnknown:     "UNKNOWN",
		LengthShort:       "SHORT",
		LengthMiddle:      "MIDDLE",
		LengthLong:        "LONG",
		TooLong:           "TOO_LONG",
	}
}

func getWidthStrings() map[WidthCategory]string {
	return map[WidthCategory]string{
		WidthNotRelevant: "NOT_RELEVANT",
		WidthUnknown:     "UNKNOWN",
		WidthNarrow:      "NARROW",
		WidthMiddle:      "MIDDLE",
		WidthWide:        "WIDE",
		TooWide:          "TOO_WIDE",
	}
}

// String returns the persisted name, e.g. "MIDDLE" or "TOO_HIGH".
func (c HeightCategory) String() string {
	if s, ok := getHeightStrings()[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate returns an error for values outside of the declared constants.
func (c HeightCategory) Validate() error {
	if _, ok := getHeightStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("height", fmt.Errorf("%d is not a valid height category", c))
	}
	return nil
}

// Exceeds reports whether a unit of category c does not fit under the maximum max.
//
// Rules:
//   - max HeightNotRelevant: never exceeds
//   - c HeightUnknown or TooHigh: always exceeds a constrained max
//   - c HeightNotRelevant: never exceeds
//   - otherwise c exceeds when it is ordinally greater than a sized max
func (c HeightCategory) Exceeds(maxCategory HeightCategory) bool {
	return exceeds(int(c), int(maxCategory), int(HeightUnknown), int(TooHigh))
}

// ParseHeightCategory accepts the names produced by String, case-insensitively.
func ParseHeightCategory(s string) (HeightCategory, error) {
	for c, name := range getHeightStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("height", fmt.Errorf("%q is not a valid height category", s))
}

// String returns the persisted name, e.g. "SHORT" or "TOO_LONG".
func (c LengthCategory) String() string {
	if s, ok := getLengthStrings()[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate returns an error for values outside of the declared constants.
func (c LengthCategory) Validate() error {
	if _, ok := getLengthStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("length", fmt.Errorf("%d is not a valid length category", c))
	}
	return nil
}

// Exceeds follows the same rules as HeightCategory.Exceeds.
func (c LengthCategory) Exceeds(maxCategory LengthCategory) bool {
	return exceeds(int(c), int(maxCategory), int(LengthUnknown), int(TooLong))
}

// ParseLengthCategory accepts the names produced by String, case-insensitively.
func ParseLengthCategory(s string) (LengthCategory, error) {
	for c, name := range getLengthStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("length", fmt.Errorf("%q is not a valid length category", s))
}

// String returns the persisted name, e.g. "NARROW" or "TOO_WIDE".
func (c WidthCategory) String() string {
	if s, ok := getWidthStrings()[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate returns an error for values outside of the declared constants.
func (c WidthCategory) Validate() error {
	if _, ok := getWidthStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("width", fmt.Errorf("%d is not a valid width category", c))
	}
	return nil
}

// Exceeds follows the same rules as HeightCategory.Exceeds.
func (c WidthCategory) Exceeds(maxCategory WidthCategory) bool {
	return exceeds(int(c), int(maxCategory), int(WidthUnknown), int(TooWide))
}

// ParseWidthCategory accepts the names produced by String, case-insensitively.
func ParseWidthCategory(s string) (WidthCategory, error) {
	for c, name := range getWidthStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("width", fmt.Errorf("%q is not a valid width category", s))
}

// exceeds implements the shared ordinal rule. notRelevant is always 0 and the sized
// values lie strictly between unknown and tooBig.
func exceeds(candidate, maxCategory, unknown, tooBig int) bool {
	const notRelevant = 0
	if maxCategory == notRelevant {
		return false
	}
	switch candidate {
	case notRelevant:
		return false
	case unknown, tooBig:
		return true
	}
	if maxCategory == unknown || maxCategory == tooBig {
		return false
	}
	return candidate > maxCategory
}

package location

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Dimension holds the physical limits of a location.
//
// A zero limit means unlimited for capacity and weight. A NotRelevant category means
// unconstrained for height, length and width. The zero value is a location without any
// limit.
type Dimension struct {
	maxCapacity int
	maxWeight   int
	maxHeight   kernel.HeightCategory
	maxLength   kernel.LengthCategory
	maxWidth    kernel.WidthCategory
}

// NewDimension validates the limits.
//
// Example:
//
//	// at most 3 units, 100 weight units in total, no taller than MIDDLE
//	dim, err := location.NewDimension(3, 100, kernel.HeightMiddle, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
func NewDimension(
	maxCapacity int,
	maxWeight int,
	maxHeight kernel.HeightCategory,
	maxLength kernel.LengthCategory,
	maxWidth kernel.WidthCategory,
) (Dimension, error) {
	var errList []error
	if maxCapacity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maxCapacity", fmt.Errorf("%d is negative", maxCapacity)))
	}
	if maxWeight < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maxWeight", fmt.Errorf("%d is negative", maxWeight)))
	}
	errList = append(errList, maxHeight.Validate(), maxLength.Validate(), maxWidth.Validate())
	if err := errors.Join(errList...); err != nil {
		return Dimension{}, err
	}

	return Dimension{
		maxCapacity: maxCapacity,
		maxWeight:   maxWeight,
		maxHeight:   maxHeight,
		maxLength:   maxLength,
		maxWidth:    maxWidth,
	}, nil
}

func (d Dimension) MaxCapacity() int {
	return d.maxCapacity
}

func (d Dimension) MaxWeight() int {
	return d.maxWeight
}

func (d Dimension) MaxHeight() kernel.HeightCategory {
	return d.maxHeight
}

func (d Dimension) MaxLength() kernel.LengthCategory {
	return d.maxLength
}

func (d Dimension) MaxWidth() kernel.WidthCategory {
	return d.maxWidth
}

// IsFull reports whether count units reach a finite capacity.
func (d Dimension) IsFull(count int) bool {
	return d.maxCapacity > 0 && count >= d.maxCapacity
}

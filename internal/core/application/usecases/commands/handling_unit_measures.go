package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// HandlingUnitMeasures carries the physical attributes of a handling unit in a command.
type HandlingUnitMeasures struct {
	Weight int
	Volume float64
	Height kernel.HeightCategory
	Length kernel.LengthCategory
	Width  kernel.WidthCategory
}

// Validate rejects negative weight or volume and unknown categories.
func (m HandlingUnitMeasures) Validate() error {
	var errList []error
	if m.Weight < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d is negative", m.Weight)))
	}
	if m.Volume < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%g is negative", m.Volume)))
	}
	errList = append(errList, m.Height.Validate(), m.Length.Validate(), m.Width.Validate())
	return errors.Join(errList...)
}

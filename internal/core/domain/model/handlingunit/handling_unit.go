package handlingunit

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrHandlingUnitIsNotConstructed is returned when a HandlingUnit was not created through
	// NewHandlingUnit or RestoreHandlingUnit.
	ErrHandlingUnitIsNotConstructed = errors.New("HandlingUnit must be created via NewHandlingUnit constructor")

	// ErrSelfComposition is returned when a unit would become its own base or child.
	ErrSelfComposition = errors.New("handling unit cannot contain itself")
)

// HandlingUnit is a physical item or container. It is the aggregate root for its own
// measures, its physical placement and its composition edges.
//
// Placement and composition are independent:
//   - location/locaPos describe where the unit physically sits
//   - baseID/contains describe the unit's parent and direct children in the composition forest
//
// HandlingUnit follows these invariants:
//   - id is a valid kernel.ID
//   - weight and volume are not negative
//   - locaPos is only set while location is set
//   - the unit is never its own base and never in its own contains set
//   - contains is a set ordered by id
//
// Cross-aggregate invariants (the forest property, both ends of an edge being in sync)
// are maintained by the composition manager in the services package.
type HandlingUnit struct {
	// id is the business key of the unit
	id kernel.ID

	// version is the optimistic lock counter, bumped by the store after each write
	version int

	// weight is an integer weight in the warehouse's unit of measure
	weight int

	// volume is informational and never validated against a location
	volume float64

	height kernel.HeightCategory
	length kernel.LengthCategory
	width  kernel.WidthCategory

	// locationID is the location the unit is placed on, nil when not placed
	locationID *kernel.ID

	// locaPos is the policy-assigned sequence number on the location
	locaPos *int

	// baseID is the composition parent, nil for a root
	baseID *kernel.ID

	// contains holds the direct composition children
	contains []kernel.ID

	audit kernel.Audit

	isConstructed bool
}

// NewHandlingUnit creates an unplaced, uncomposed handling unit at version 0.
//
// Parameters:
//   - id: business key of the unit
//   - weight: must be >= 0
//   - volume: must be >= 0
//   - height, length, width: size categories, NotRelevant when unmeasured
//
// Example:
//
//	id, _ := kernel.NewID("4711")
//	hu, err := handlingunit.NewHandlingUnit(id, 12, 0.5, kernel.HeightLow, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
func NewHandlingUnit(
	id kernel.ID,
	weight int,
	volume float64,
	height kernel.HeightCategory,
	length kernel.LengthCategory,
	width kernel.WidthCategory,
) (*HandlingUnit, error) {
	hu := &HandlingUnit{
		contains:      make([]kernel.ID, 0),
		audit:         kernel.NewAudit("", time.Time{}),
		isConstructed: true,
	}

	if err := errors.Join(
		hu.setID(id),
		hu.setMeasures(weight, volume, height, length, width),
	); err != nil {
		return nil, err
	}

	return hu, nil
}

// RestoreHandlingUnit rebuilds a unit from persisted state. It applies the same
// validation as NewHandlingUnit plus the placement and composition invariants.
func RestoreHandlingUnit(
	id kernel.ID,
	version int,
	weight int,
	volume float64,
	height kernel.HeightCategory,
	length kernel.LengthCategory,
	width kernel.WidthCategory,
	locationID *kernel.ID,
	locaPos *int,
	baseID *kernel.ID,
	contains []kernel.ID,
	audit kernel.Audit,
) (*HandlingUnit, error) {
	hu := &HandlingUnit{
		audit:         audit,
		isConstructed: true,
	}

	if err := errors.Join(
		hu.setID(id),
		hu.setVersion(version),
		hu.setMeasures(weight, volume, height, length, width),
		hu.setPlacement(locationID, locaPos),
		hu.setBase(baseID),
		hu.setContains(contains),
	); err != nil {
		return nil, err
	}

	return hu, nil
}

// Validate ensures the unit was created through a constructor.
func (h *HandlingUnit) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHandlingUnitIsNotConstructed
	}
	return nil
}

// IsEqual compares units by id.
func (h *HandlingUnit) IsEqual(other *HandlingUnit) bool {
	return other != nil && h.id.IsEqual(other.id)
}

// ID returns the unit's business key.
func (h *HandlingUnit) ID() kernel.ID {
	return h.id
}

// Version returns the optimistic lock counter.
func (h *HandlingUnit) Version() int {
	return h.version
}

// Weight returns the unit's weight.
func (h *HandlingUnit) Weight() int {
	return h.weight
}

// Volume returns the unit's volume.
func (h *HandlingUnit) Volume() float64 {
	return h.volume
}

// Height returns the height category.
func (h *HandlingUnit) Height() kernel.HeightCategory {
	return h.height
}

// Length returns the length category.
func (h *HandlingUnit) Length() kernel.LengthCategory {
	return h.length
}

// Width returns the width category.
func (h *HandlingUnit) Width() kernel.WidthCategory {
	return h.width
}

// Location returns the id of the location the unit is placed on, or nil.
func (h *HandlingUnit) Location() *kernel.ID {
	if h.locationID == nil {
		return nil
	}
	id := *h.locationID
	return &id
}

// LocaPos returns the policy-assigned position, or nil.
func (h *HandlingUnit) LocaPos() *int {
	if h.locaPos == nil {
		return nil
	}
	pos := *h.locaPos
	return &pos
}

// Base returns the composition parent id, or nil.
func (h *HandlingUnit) Base() *kernel.ID {
	if h.baseID == nil {
		return nil
	}
	id := *h.baseID
	return &id
}

// Contains returns a copy of the direct children ids ordered by id.
func (h *HandlingUnit) Contains() []kernel.ID {
	return slices.Clone(h.contains)
}

// Audit returns the last-modified stamp.
func (h *HandlingUnit) Audit() kernel.Audit {
	return h.audit
}

// IsPlaced reports whether the unit sits on any location.
func (h *HandlingUnit) IsPlaced() bool {
	return h.locationID != nil
}

// IsOn reports whether the unit sits on the given location.
func (h *HandlingUnit) IsOn(locationID kernel.ID) bool {
	return h.locationID != nil && h.locationID.IsEqual(locationID)
}

// HasBase reports whether the unit is nested inside another unit.
func (h *HandlingUnit) HasBase() bool {
	return h.baseID != nil
}

// IsChildOf reports whether baseID is the unit's direct parent.
func (h *HandlingUnit) IsChildOf(baseID kernel.ID) bool {
	return h.baseID != nil && h.baseID.IsEqual(baseID)
}

// HasChild reports whether id is a direct child of the unit.
func (h *HandlingUnit) HasChild(id kernel.ID) bool {
	_, found := slices.BinarySearchFunc(h.contains, id, compareIDs)
	return found
}

// UpdateMeasures replaces weight, volume and size categories. Placement and composition
// are left untouched.
func (h *HandlingUnit) UpdateMeasures(
	weight int,
	volume float64,
	height kernel.HeightCategory,
	length kernel.LengthCategory,
	width kernel.WidthCategory,
) error {
	return h.setMeasures(weight, volume, height, length, width)
}

// PlaceOn records the unit as sitting on locationID at position pos (nil for unordered
// locations).
func (h *HandlingUnit) PlaceOn(locationID kernel.ID, pos *int) error {
	return h.setPlacement(&locationID, pos)
}

// ShiftDown moves a placed unit one position towards the head after a unit below it left.
// Units without a position, or already at position 1, keep theirs.
func (h *HandlingUnit) ShiftDown() {
	if h.locationID == nil || h.locaPos == nil || *h.locaPos <= 1 {
		return
	}
	lowered := *h.locaPos - 1
	h.locaPos = &lowered
}

// ClearPlacement removes the unit from its location.
func (h *HandlingUnit) ClearPlacement() {
	h.locationID = nil
	h.locaPos = nil
}

// AttachTo sets the composition parent. The caller is responsible for adding the unit
// to the parent's contains set.
func (h *HandlingUnit) AttachTo(baseID kernel.ID) error {
	return h.setBase(&baseID)
}

// Detach clears the composition parent.
func (h *HandlingUnit) Detach() {
	h.baseID = nil
}

// AddChild inserts id into the contains set. Adding an existing child is a no-op.
func (h *HandlingUnit) AddChild(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if id.IsEqual(h.id) {
		return ErrSelfComposition
	}
	i, found := slices.BinarySearchFunc(h.contains, id, compareIDs)
	if !found {
		h.contains = slices.Insert(h.contains, i, id)
	}
	return nil
}

// RemoveChild deletes id from the contains set and reports whether it was present.
func (h *HandlingUnit) RemoveChild(id kernel.ID) bool {
	i, found := slices.BinarySearchFunc(h.contains, id, compareIDs)
	if !found {
		return false
	}
	h.contains = slices.Delete(h.contains, i, i+1)
	return true
}

// ClearChildren empties the contains set and returns the former children.
func (h *HandlingUnit) ClearChildren() []kernel.ID {
	former := h.contains
	h.contains = make([]kernel.ID, 0)
	return former
}

// Touch records the user and time of a mutation.
func (h *HandlingUnit) Touch(audit kernel.Audit) {
	h.audit = audit
}

// IncrementVersion is called by repositories after a successful compare-and-swap write.
func (h *HandlingUnit) IncrementVersion() {
	h.version++
}

// String is used in log lines.
func (h *HandlingUnit) String() string {
	return fmt.Sprintf("HandlingUnit[%s v%d]", h.id, h.version)
}

func (h *HandlingUnit) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *HandlingUnit) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	h.version = version
	return nil
}

func (h *HandlingUnit) setMeasures(
	weight int,
	volume float64,
	height kernel.HeightCategory,
	length kernel.LengthCategory,
	width kernel.WidthCategory,
) error {
	var errList []error
	if weight < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d is negative", weight)))
	}
	if volume < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%g is negative", volume)))
	}
	errList = append(errList, height.Validate(), length.Validate(), width.Validate())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	h.weight = weight
	h.volume = volume
	h.height = height
	h.length = length
	h.width = width
	return nil
}

func (h *HandlingUnit) setPlacement(locationID *kernel.ID, pos *int) error {
	if locationID == nil {
		if pos != nil {
			return errs.NewValueIsInvalidErrorWithCause("locaPos", errors.New("position without location"))
		}
		h.ClearPlacement()
		return nil
	}
	if err := locationID.Validate(); err != nil {
		return err
	}
	if pos != nil && *pos < 1 {
		return errs.NewValueIsOutOfRangeError("locaPos", *pos, 1, "unbounded")
	}

	loc := *locationID
	h.locationID = &loc
	if pos == nil {
		h.locaPos = nil
	} else {
		p := *pos
		h.locaPos = &p
	}
	return nil
}

func (h *HandlingUnit) setBase(baseID *kernel.ID) error {
	if baseID == nil {
		h.baseID = nil
		return nil
	}
	if err := baseID.Validate(); err != nil {
		return err
	}
	if baseID.IsEqual(h.id) {
		return ErrSelfComposition
	}
	b := *baseID
	h.baseID = &b
	return nil
}

func (h *HandlingUnit) setContains(ids []kernel.ID) error {
	h.contains = make([]kernel.ID, 0, len(ids))
	for _, id := range ids {
		if err := h.AddChild(id); err != nil {
			return err
		}
	}
	return nil
}

func compareIDs(a, b kernel.ID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

package location

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// ErrLocationIsNotConstructed is returned when a Location was not created through
// NewLocation or RestoreLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a physical slot units can be dropped on and picked from.
//
// The location does not hold its units. Membership is the set of units whose placement
// points at the location id, and it is loaded by the caller whenever a policy or the
// dimension validator needs it.
//
// The version covers the dimension and the status record: a status change is a write of
// the location aggregate.
type Location struct {
	id         kernel.ID
	version    int
	accessKind AccessKind
	dimension  Dimension
	status     Status
	audit      kernel.Audit

	isConstructed bool
}

// NewLocation creates a location at version 0 with status NONE / NO / UNLOCKED.
//
// Example:
//
//	id, _ := kernel.NewID("A-01-01")
//	dim, _ := location.NewDimension(4, 0, kernel.HeightNotRelevant, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
//	loc, err := location.NewLocation(id, location.FIFO, dim)
func NewLocation(id kernel.ID, accessKind AccessKind, dimension Dimension) (*Location, error) {
	l := &Location{
		dimension:     dimension,
		audit:         kernel.NewAudit("", time.Time{}),
		isConstructed: true,
	}
	if err := errors.Join(l.setID(id), l.setAccessKind(accessKind)); err != nil {
		return nil, err
	}
	return l, nil
}

// RestoreLocation rebuilds a location from persisted state.
func RestoreLocation(
	id kernel.ID,
	version int,
	accessKind AccessKind,
	dimension Dimension,
	status Status,
	audit kernel.Audit,
) (*Location, error) {
	l := &Location{
		dimension:     dimension,
		audit:         audit,
		isConstructed: true,
	}
	var versionErr error
	if version < 0 {
		versionErr = errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	if err := errors.Join(
		l.setID(id),
		versionErr,
		l.setAccessKind(accessKind),
		l.setStatus(status),
	); err != nil {
		return nil, err
	}
	l.version = version
	return l, nil
}

func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

func (l *Location) ID() kernel.ID {
	return l.id
}

func (l *Location) Version() int {
	return l.version
}

func (l *Location) AccessKind() AccessKind {
	return l.accessKind
}

func (l *Location) Dimension() Dimension {
	return l.dimension
}

func (l *Location) Status() Status {
	return l.status
}

func (l *Location) Audit() kernel.Audit {
	return l.audit
}

// Policy returns the access policy matching the location's access kind.
func (l *Location) Policy() AccessPolicy {
	return PolicyFor(l.accessKind)
}

// IsFull reports whether placed units reach the location's capacity.
func (l *Location) IsFull(placed int) bool {
	return l.dimension.IsFull(placed)
}

// HasFreeCapacity reports whether another unit could be counted in. Locations without a
// capacity limit always have free capacity.
func (l *Location) HasFreeCapacity(placed int) bool {
	return !l.dimension.IsFull(placed)
}

// Accept validates unit against the dimension and places it according to the policy.
func (l *Location) Accept(placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) error {
	if err := ValidatePlacement(l.dimension, placed, unit); err != nil {
		return err
	}
	return l.Policy().Add(l.id, placed, unit)
}

// Release removes unit from the location and returns the units whose position shifted.
func (l *Location) Release(placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	return l.Policy().Remove(placed, unit)
}

// MarkError flags the location for manual review. It reports whether the status changed.
func (l *Location) MarkError() bool {
	if l.status.errorStatus == ErrorStatusError {
		return false
	}
	l.status.errorStatus = ErrorStatusError
	return true
}

// ClearError resets the error flag. It reports whether the status changed.
func (l *Location) ClearError() bool {
	if l.status.errorStatus == ErrorStatusNone {
		return false
	}
	l.status.errorStatus = ErrorStatusNone
	return true
}

// ChangeStatus replaces the whole status record.
func (l *Location) ChangeStatus(status Status) error {
	return l.setStatus(status)
}

// ChangeDimension replaces the limits. Units already placed are not re-validated.
func (l *Location) ChangeDimension(dimension Dimension) {
	l.dimension = dimension
}

func (l *Location) Touch(audit kernel.Audit) {
	l.audit = audit
}

// IncrementVersion is called by repositories after a successful compare-and-swap write.
func (l *Location) IncrementVersion() {
	l.version++
}

func (l *Location) String() string {
	return fmt.Sprintf("Location[%s %s v%d]", l.id, l.accessKind, l.version)
}

func (l *Location) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setAccessKind(kind AccessKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	l.accessKind = kind
	return nil
}

func (l *Location) setStatus(status Status) error {
	validated, err := NewStatus(status.errorStatus, status.ltosStatus, status.lockStatus)
	if err != nil {
		return err
	}
	l.status = validated
	return nil
}

package location

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// ErrorStatus is the persistent anomaly flag of a location.
//
// State transitions (all driven by the drop/pick protocol):
//
//	NONE ──(unit dropped elsewhere / failed targeted pick)──> ERROR
//	ERROR ──(explicit reset)──> NONE
//
// There is no automatic ERROR -> NONE transition.
type ErrorStatus int

const (
	ErrorStatusNone ErrorStatus = iota
	ErrorStatusError
)

// LtosStatus marks a location as "long time out of service".
type LtosStatus int

const (
	LtosNo LtosStatus = iota
	LtosYes
)

// LockStatus records operational locks on a location. Locks are informational and do not
// block drops or picks.
type LockStatus int

const (
	Unlocked LockStatus = iota
	PickLocked
	DropLocked
	Locked
)

func getErrorStatusStrings() map[ErrorStatus]string {
	return map[ErrorStatus]string{
		ErrorStatusNone:  "NONE",
		ErrorStatusError: "ERROR",
	}
}

func getLtosStatusStrings() map[LtosStatus]string {
	return map[LtosStatus]string{
		LtosNo:  "NO",
		LtosYes: "YES",
	}
}

func getLockStatusStrings() map[LockStatus]string {
	return map[LockStatus]string{
		Unlocked:   "UNLOCKED",
		PickLocked: "PICK_LOCKED",
		DropLocked: "DROP_LOCKED",
		Locked:     "LOCKED",
	}
}

func (s ErrorStatus) String() string {
	if str, ok := getErrorStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s ErrorStatus) Validate() error {
	if _, ok := getErrorStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("errorStatus", fmt.Errorf("%d is not a valid error status", s))
	}
	return nil
}

func (s LtosStatus) String() string {
	if str, ok := getLtosStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s LtosStatus) Validate() error {
	if _, ok := getLtosStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("ltosStatus", fmt.Errorf("%d is not a valid ltos status", s))
	}
	return nil
}

func (s LockStatus) String() string {
	if str, ok := getLockStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s LockStatus) Validate() error {
	if _, ok := getLockStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("lockStatus", fmt.Errorf("%d is not a valid lock status", s))
	}
	return nil
}

// ParseErrorStatus accepts "NONE" and "ERROR", case-insensitively.
func ParseErrorStatus(s string) (ErrorStatus, error) {
	for k, name := range getErrorStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("errorStatus", fmt.Errorf("%q is not a valid error status", s))
}

// ParseLtosStatus accepts "NO" and "YES", case-insensitively.
func ParseLtosStatus(s string) (LtosStatus, error) {
	for k, name := range getLtosStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("ltosStatus", fmt.Errorf("%q is not a valid ltos status", s))
}

// ParseLockStatus accepts the names produced by LockStatus.String, case-insensitively.
func ParseLockStatus(s string) (LockStatus, error) {
	for k, name := range getLockStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("lockStatus", fmt.Errorf("%q is not a valid lock status", s))
}

// Status is the one-to-one status record of a location. The zero value is
// NONE / NO / UNLOCKED, the state of a freshly created location.
type Status struct {
	errorStatus ErrorStatus
	ltosStatus  LtosStatus
	lockStatus  LockStatus
}

// NewStatus validates and combines the three status fields.
func NewStatus(errorStatus ErrorStatus, ltosStatus LtosStatus, lockStatus LockStatus) (Status, error) {
	if err := errors.Join(errorStatus.Validate(), ltosStatus.Validate(), lockStatus.Validate()); err != nil {
		return Status{}, err
	}
	return Status{
		errorStatus: errorStatus,
		ltosStatus:  ltosStatus,
		lockStatus:  lockStatus,
	}, nil
}

func (s Status) ErrorStatus() ErrorStatus {
	return s.errorStatus
}

func (s Status) LtosStatus() LtosStatus {
	return s.ltosStatus
}

func (s Status) LockStatus() LockStatus {
	return s.lockStatus
}

// IsError reports whether the location is flagged for manual review.
func (s Status) IsError() bool {
	return s.errorStatus == ErrorStatusError
}

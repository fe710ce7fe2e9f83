// Package guard provides ConstructorGuard, a marker embedded in commands, queries and
// value objects so that zero values created outside their constructor fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether an object went through its constructor.
// The zero value reports "not constructed".
//
// Example usage:
//
//	var ErrDropCommandIsNotConstructed = errors.New("DropCommand must be created via NewDropCommand")
//
//	type DropCommand struct {
//	    locationID kernel.ID
//	    unitID     kernel.ID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewDropCommand(locationID, unitID kernel.ID) (DropCommand, error) {
//	    // validate arguments ...
//	    return DropCommand{locationID: locationID, unitID: unitID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c DropCommand) Validate() error {
//	    return c.guard.Validate(ErrDropCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

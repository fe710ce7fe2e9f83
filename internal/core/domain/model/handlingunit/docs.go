// Package handlingunit provides the HandlingUnit aggregate: a physical item or container
// that can be placed on a location and nested inside other handling units.
//
// Key business rules:
//   - Units are identified by a business key (kernel.ID) and carry weight, volume and
//     height/length/width categories
//   - A unit is on at most one location; its locaPos is only meaningful while placed
//   - A unit has at most one base (composition parent) and any number of direct children
//   - A unit can never contain itself
//
// The package only guards invariants local to one unit. Keeping both ends of a
// composition edge consistent and rejecting cycles is done by the composition manager
// in the services package, which sees every unit involved.
package handlingunit

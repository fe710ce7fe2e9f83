// Package location contains the Location aggregate and the rules that decide how handling
// units enter and leave it.
//
// # Access policies
//
// Every location has an AccessKind fixed at creation:
//   - FIFO and LIFO number drops with a 1-based locaPos. Removing a unit lowers the
//     position of every unit above it by one, so positions stay contiguous.
//   - Random and None keep an unordered set and assign no position.
//
// Only top-level units are pickable: a unit whose base is placed on the same location is
// carried along with its base and never offered on its own.
//
// # Dimension
//
// ValidatePlacement checks capacity, weight, height, length and width in that order. Each
// violation has its own sentinel, and all of them match ErrDimensionExceeded.
//
// # Status
//
// The status record carries the error flag used by the drop/pick protocol. The lock and
// ltos flags are stored and reported but never enforced.
package location

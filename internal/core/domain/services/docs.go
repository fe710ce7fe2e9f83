// Package services provides domain services that coordinate several aggregates of the
// warehouse: placing handling units on locations and composing units into each other.
//
// The package includes:
//   - DropPickProtocol: drops and picks with dimension checks and error status upkeep
//   - CompositionManager: assign, remove, move and free on the composition forest
//
// Both services mutate the aggregates they are given and report every touched aggregate in
// an Outcome. They never persist anything themselves.
package services

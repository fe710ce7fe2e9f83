// Package kernel provides the domain primitives shared by locations and handling units.
//
// The package includes:
//   - ID: a business-key value object used to identify locations and handling units
//   - HeightCategory, LengthCategory, WidthCategory: ordinal size classes with the
//     "does this fit under that maximum" rule used by dimension validation
//   - Audit: last-modified user and timestamp carried by every aggregate
//
// All types are immutable values and safe for concurrent use.
package kernel

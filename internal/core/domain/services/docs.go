// Package services contains stateless domain services that coordinate logic
// across aggregates.
//
// AvailabilityFilter computes which shipments may be loaded onto a challan.
// It is the structural half of the exclusivity rule: a GR number already held
// by an active transit record is simply never offered for assignment. The
// other half is the store-level unique index on active GR numbers, which
// closes the read-then-assign race between concurrent operators.
package services

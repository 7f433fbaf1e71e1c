// Package kernel provides core domain primitives for the freight back office.
// It implements the fundamental building blocks shared by the transit, challan
// and shipment models.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GRNo: A value object for the human-assigned alphanumeric shipment identifier,
//     carrying the canonical ordering used wherever shipments are listed
//   - ConstructorGuard: A defensive programming pattern to ensure proper object construction
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel

// Package challan contains the loading-manifest domain model.
//
// A challan groups shipments onto one truck trip between two branches. The
// package owns two aggregates: Challan, carrying the running bilty count and
// the dispatch lock, and ChallanBook, the per-lane numbering sequence that
// generates challan numbers.
//
// The dispatch lock is the engine's write barrier: a dispatched challan rejects
// every assignment, removal and milestone change with ErrChallanLocked.
package challan

// Package guard implements the constructor-guard pattern used by commands and
// value objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply its own error for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having passed through its designated
// constructor. Embed it as a private field and set it with NewConstructorGuard
// inside the constructor; a zero-value instance of the owning struct then fails
// Validate, which keeps domain invariants from being bypassed by direct struct
// literals.
//
// Example:
//
//	type RemoveFromTransitCommand struct {
//	    transitID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewRemoveFromTransitCommand(id kernel.UUID) (RemoveFromTransitCommand, error) {
//	    ...
//	    return RemoveFromTransitCommand{transitID: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RemoveFromTransitCommand) Validate() error {
//	    return c.guard.Validate(ErrRemoveFromTransitCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owner was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

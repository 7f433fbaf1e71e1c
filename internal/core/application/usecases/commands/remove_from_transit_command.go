package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRemoveFromTransitCommandIsNotConstructed = errors.New(
	"RemoveFromTransitCommand must be created via NewRemoveFromTransitCommand constructor",
)

// RemoveFromTransitCommand represents a request to take one shipment back off
// its challan. The transit record is deactivated, never deleted, so the
// assignment history stays auditable.
type RemoveFromTransitCommand struct { //nolint:recvcheck //using for validation
	transitID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewRemoveFromTransitCommand creates a command to remove a transit record.
// The reason is recorded on the deactivated record and is required.
func NewRemoveFromTransitCommand(transitID kernel.UUID, reason string) (RemoveFromTransitCommand, error) {
	cmd := RemoveFromTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransitID(transitID),
		cmd.setReason(reason),
	); err != nil {
		return RemoveFromTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveFromTransitCommandIsNotConstructed if validation fails.
func (c RemoveFromTransitCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromTransitCommandIsNotConstructed)
}

// TransitID returns the identifier of the record to remove.
func (c RemoveFromTransitCommand) TransitID() kernel.UUID {
	return c.transitID
}

// Reason returns the operator-supplied removal reason.
func (c RemoveFromTransitCommand) Reason() string {
	return c.reason
}

func (c *RemoveFromTransitCommand) setTransitID(transitID kernel.UUID) error {
	if err := transitID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("transitID", err)
	}

	c.transitID = transitID
	return nil
}

func (c *RemoveFromTransitCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

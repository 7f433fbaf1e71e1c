package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrDispatchChallanCommandIsNotConstructed = errors.New(
	"DispatchChallanCommand must be created via NewDispatchChallanCommand constructor",
)

// DispatchChallanCommand represents the request to send a loaded challan out:
// the truck leaves, every shipment on board goes out from the origin branch and
// the manifest locks.
type DispatchChallanCommand struct { //nolint:recvcheck //using for validation
	challanID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchChallanCommand creates a command to dispatch a challan.
func NewDispatchChallanCommand(challanID kernel.UUID) (DispatchChallanCommand, error) {
	cmd := DispatchChallanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setChallanID(challanID); err != nil {
		return DispatchChallanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchChallanCommandIsNotConstructed if validation fails.
func (c DispatchChallanCommand) Validate() error {
	return c.guard.Validate(ErrDispatchChallanCommandIsNotConstructed)
}

// ChallanID returns the identifier of the challan to dispatch.
func (c DispatchChallanCommand) ChallanID() kernel.UUID {
	return c.challanID
}

func (c *DispatchChallanCommand) setChallanID(challanID kernel.UUID) error {
	if err := challanID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}

	c.challanID = challanID
	return nil
}

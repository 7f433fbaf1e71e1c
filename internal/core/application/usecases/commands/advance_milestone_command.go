package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transit"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdvanceMilestoneCommandIsNotConstructed = errors.New(
	"AdvanceMilestoneCommand must be created via NewAdvanceMilestoneCommand constructor",
)

// AdvanceMilestoneCommand represents a request to mark the next delivery
// milestone on a transit record.
type AdvanceMilestoneCommand struct { //nolint:recvcheck //using for validation
	transitID kernel.UUID
	milestone transit.Milestone

	guard guard.ConstructorGuard
}

// NewAdvanceMilestoneCommand creates a command to advance a transit record's
// delivery state.
func NewAdvanceMilestoneCommand(
	transitID kernel.UUID,
	milestone transit.Milestone,
) (AdvanceMilestoneCommand, error) {
	cmd := AdvanceMilestoneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransitID(transitID),
		cmd.setMilestone(milestone),
	); err != nil {
		return AdvanceMilestoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceMilestoneCommandIsNotConstructed if validation fails.
func (c AdvanceMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceMilestoneCommandIsNotConstructed)
}

// TransitID returns the identifier of the record to advance.
func (c AdvanceMilestoneCommand) TransitID() kernel.UUID {
	return c.transitID
}

// Milestone returns the milestone to set.
func (c AdvanceMilestoneCommand) Milestone() transit.Milestone {
	return c.milestone
}

func (c *AdvanceMilestoneCommand) setTransitID(transitID kernel.UUID) error {
	if err := transitID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("transitID", err)
	}

	c.transitID = transitID
	return nil
}

func (c *AdvanceMilestoneCommand) setMilestone(milestone transit.Milestone) error {
	if err := milestone.Validate(); err != nil {
		return err
	}

	c.milestone = milestone
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrBulkRemoveFromTransitCommandIsNotConstructed = errors.New(
	"BulkRemoveFromTransitCommand must be created via NewBulkRemoveFromTransitCommand constructor",
)

// BulkRemoveFromTransitCommand represents a request to take several shipments
// off their challans in one operation, with one shared removal reason.
type BulkRemoveFromTransitCommand struct { //nolint:recvcheck //using for validation
	transitIDs []kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewBulkRemoveFromTransitCommand creates a command to remove a batch of
// transit records. The selection must be non-empty and free of duplicates.
func NewBulkRemoveFromTransitCommand(
	transitIDs []kernel.UUID,
	reason string,
) (BulkRemoveFromTransitCommand, error) {
	cmd := BulkRemoveFromTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransitIDs(transitIDs),
		cmd.setReason(reason),
	); err != nil {
		return BulkRemoveFromTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBulkRemoveFromTransitCommandIsNotConstructed if validation fails.
func (c BulkRemoveFromTransitCommand) Validate() error {
	return c.guard.Validate(ErrBulkRemoveFromTransitCommandIsNotConstructed)
}

// TransitIDs returns the selected transit record identifiers.
func (c BulkRemoveFromTransitCommand) TransitIDs() []kernel.UUID {
	return c.transitIDs
}

// Reason returns the removal reason recorded on every deactivated record.
func (c BulkRemoveFromTransitCommand) Reason() string {
	return c.reason
}

func (c *BulkRemoveFromTransitCommand) setTransitIDs(transitIDs []kernel.UUID) error {
	if len(transitIDs) == 0 {
		return ErrEmptySelection
	}

	seen := make(map[kernel.UUID]struct{}, len(transitIDs))
	for _, id := range transitIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("transitIDs", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("transitIDs",
				fmt.Errorf("transit record %s is selected twice", id))
		}
		seen[id] = struct{}{}
	}

	c.transitIDs = transitIDs
	return nil
}

func (c *BulkRemoveFromTransitCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

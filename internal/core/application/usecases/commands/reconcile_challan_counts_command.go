package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrReconcileChallanCountsCommandIsNotConstructed = errors.New(
	"ReconcileChallanCountsCommand must be created via NewReconcileChallanCountsCommand constructor",
)

// ReconcileChallanCountsCommand represents a request to repair bilty-count
// drift on every active challan of one branch.
type ReconcileChallanCountsCommand struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReconcileChallanCountsCommand creates a command to reconcile a branch's
// challan counts.
func NewReconcileChallanCountsCommand(branchID kernel.UUID) (ReconcileChallanCountsCommand, error) {
	cmd := ReconcileChallanCountsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBranchID(branchID); err != nil {
		return ReconcileChallanCountsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileChallanCountsCommandIsNotConstructed if validation fails.
func (c ReconcileChallanCountsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileChallanCountsCommandIsNotConstructed)
}

// BranchID returns the branch whose challans are reconciled.
func (c ReconcileChallanCountsCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c *ReconcileChallanCountsCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}

	c.branchID = branchID
	return nil
}

package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateChallanCommandIsNotConstructed = errors.New(
	"CreateChallanCommand must be created via NewCreateChallanCommand constructor",
)

// CreateChallanCommand represents a request to open a new loading manifest on a
// challan book's lane. The manifest number is generated from the book; truck,
// driver and owner are reference data captured for the trip.
type CreateChallanCommand struct { //nolint:recvcheck //using for validation
	challanID     kernel.UUID
	challanBookID kernel.UUID
	truckNo       string
	driverName    string
	ownerName     string

	guard guard.ConstructorGuard
}

// NewCreateChallanCommand creates a command to open a new challan.
// The truck number is required; driver and owner names may be empty.
func NewCreateChallanCommand(
	challanID kernel.UUID,
	challanBookID kernel.UUID,
	truckNo string,
	driverName string,
	ownerName string,
) (CreateChallanCommand, error) {
	cmd := CreateChallanCommand{
		driverName: driverName,
		ownerName:  ownerName,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setChallanID(challanID),
		cmd.setChallanBookID(challanBookID),
		cmd.setTruckNo(truckNo),
	); err != nil {
		return CreateChallanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateChallanCommandIsNotConstructed if validation fails.
func (c CreateChallanCommand) Validate() error {
	return c.guard.Validate(ErrCreateChallanCommandIsNotConstructed)
}

// ChallanID returns the identifier the new challan will carry.
func (c CreateChallanCommand) ChallanID() kernel.UUID {
	return c.challanID
}

// ChallanBookID returns the numbering sequence to draw the manifest number from.
func (c CreateChallanCommand) ChallanBookID() kernel.UUID {
	return c.challanBookID
}

// TruckNo returns the truck registration number.
func (c CreateChallanCommand) TruckNo() string {
	return c.truckNo
}

// DriverName returns the driver's name for the manifest.
func (c CreateChallanCommand) DriverName() string {
	return c.driverName
}

// OwnerName returns the truck owner's name for the manifest.
func (c CreateChallanCommand) OwnerName() string {
	return c.ownerName
}

func (c *CreateChallanCommand) setChallanID(challanID kernel.UUID) error {
	if err := challanID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}

	c.challanID = challanID
	return nil
}

func (c *CreateChallanCommand) setChallanBookID(challanBookID kernel.UUID) error {
	if err := challanBookID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanBookID", err)
	}

	c.challanBookID = challanBookID
	return nil
}

func (c *CreateChallanCommand) setTruckNo(truckNo string) error {
	if truckNo == "" {
		return errs.NewValueIsRequiredError("truckNo")
	}

	c.truckNo = truckNo
	return nil
}

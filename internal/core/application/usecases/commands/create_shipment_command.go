package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to book a new shipment ("bilty").
// The engine owns this edge of the booking flow so manual-entry records and
// test fixtures have a write path; full booking lives upstream.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	grNo            kernel.GRNo
	originBranchID  kernel.UUID
	destinationCity string
	packages        int
	weightKg        float64
	amount          float64
	paymentMode     shipment.PaymentMode
	deliveryType    shipment.DeliveryType
	source          shipment.Source
	stage           shipment.Stage

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to book a shipment.
// Value validation is delegated to the shipment constructor; the command only
// checks the identifiers it needs to route the request.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	grNo kernel.GRNo,
	originBranchID kernel.UUID,
	destinationCity string,
	packages int,
	weightKg float64,
	amount float64,
	paymentMode shipment.PaymentMode,
	deliveryType shipment.DeliveryType,
	source shipment.Source,
	stage shipment.Stage,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		destinationCity: destinationCity,
		packages:        packages,
		weightKg:        weightKg,
		amount:          amount,
		paymentMode:     paymentMode,
		deliveryType:    deliveryType,
		source:          source,
		stage:           stage,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setGRNo(grNo),
		cmd.setOriginBranchID(originBranchID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShipmentCommandIsNotConstructed if validation fails.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier the new shipment will carry.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// GRNo returns the human-assigned GR number.
func (c CreateShipmentCommand) GRNo() kernel.GRNo {
	return c.grNo
}

// OriginBranchID returns the booking branch.
func (c CreateShipmentCommand) OriginBranchID() kernel.UUID {
	return c.originBranchID
}

// DestinationCity returns the destination city name.
func (c CreateShipmentCommand) DestinationCity() string {
	return c.destinationCity
}

// Packages returns the package count.
func (c CreateShipmentCommand) Packages() int {
	return c.packages
}

// WeightKg returns the total weight in kilograms.
func (c CreateShipmentCommand) WeightKg() float64 {
	return c.weightKg
}

// Amount returns the monetary total of the consignment.
func (c CreateShipmentCommand) Amount() float64 {
	return c.amount
}

// PaymentMode returns how the freight charges are settled.
func (c CreateShipmentCommand) PaymentMode() shipment.PaymentMode {
	return c.paymentMode
}

// DeliveryType returns the destination handover type.
func (c CreateShipmentCommand) DeliveryType() shipment.DeliveryType {
	return c.deliveryType
}

// Source returns the booking channel of the record.
func (c CreateShipmentCommand) Source() shipment.Source {
	return c.source
}

// Stage returns the data-entry lifecycle stage to create the record in.
func (c CreateShipmentCommand) Stage() shipment.Stage {
	return c.stage
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipmentID", err)
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setGRNo(grNo kernel.GRNo) error {
	if err := grNo.Validate(); err != nil {
		return err
	}

	c.grNo = grNo
	return nil
}

func (c *CreateShipmentCommand) setOriginBranchID(originBranchID kernel.UUID) error {
	if err := originBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originBranchID", err)
	}

	c.originBranchID = originBranchID
	return nil
}

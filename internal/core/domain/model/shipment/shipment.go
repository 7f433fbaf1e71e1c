package shipment

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrShipmentAlreadyCancelled is returned when cancelling a shipment twice.
	ErrShipmentAlreadyCancelled = errors.New("shipment is already cancelled")
)

// Shipment is a consignment record ("bilty"): one batch of goods booked at an
// origin branch for carriage to a destination city. The transit engine treats
// shipments as read-only input (they are created and edited by the booking
// flow) with a single exception: cancellation, which soft-deletes the record.
//
// Invariants:
//   - GR number is unique among active shipments (enforced by booking and by
//     the active-transit uniqueness at the store)
//   - Package count and weight are positive, the amount is non-negative
//   - Only Saved, active shipments are candidates for loading
type Shipment struct {
	id              kernel.UUID
	grNo            kernel.GRNo
	originBranchID  kernel.UUID
	destinationCity string
	packages        int
	weightKg        float64
	amount          float64
	paymentMode     PaymentMode
	deliveryType    DeliveryType
	source          Source
	stage           Stage
	isActive        bool

	guard guard.ConstructorGuard
}

// NewShipment creates a validated shipment record in the given lifecycle stage.
// New records are always active; cancellation is the only engine-side mutation.
func NewShipment(
	id kernel.UUID,
	grNo kernel.GRNo,
	originBranchID kernel.UUID,
	destinationCity string,
	packages int,
	weightKg float64,
	amount float64,
	paymentMode PaymentMode,
	deliveryType DeliveryType,
	source Source,
	stage Stage,
) (*Shipment, error) {
	s := &Shipment{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setGRNo(grNo),
		s.setOriginBranchID(originBranchID),
		s.setDestinationCity(destinationCity),
		s.setPackages(packages),
		s.setWeightKg(weightKg),
		s.setAmount(amount),
		s.setPaymentMode(paymentMode),
		s.setDeliveryType(deliveryType),
		s.setSource(source),
		s.setStage(stage),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence, including its
// active flag. It applies the same validation as NewShipment.
func RestoreShipment(
	id kernel.UUID,
	grNo kernel.GRNo,
	originBranchID kernel.UUID,
	destinationCity string,
	packages int,
	weightKg float64,
	amount float64,
	paymentMode PaymentMode,
	deliveryType DeliveryType,
	source Source,
	stage Stage,
	isActive bool,
) (*Shipment, error) {
	s, err := NewShipment(id, grNo, originBranchID, destinationCity, packages,
		weightKg, amount, paymentMode, deliveryType, source, stage)
	if err != nil {
		return nil, err
	}

	s.isActive = isActive
	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// GRNo returns the human-assigned GR number.
func (s *Shipment) GRNo() kernel.GRNo {
	return s.grNo
}

// OriginBranchID returns the branch where the shipment was booked.
func (s *Shipment) OriginBranchID() kernel.UUID {
	return s.originBranchID
}

// DestinationCity returns the destination city name.
func (s *Shipment) DestinationCity() string {
	return s.destinationCity
}

// Packages returns the package count.
func (s *Shipment) Packages() int {
	return s.packages
}

// WeightKg returns the total weight in kilograms.
func (s *Shipment) WeightKg() float64 {
	return s.weightKg
}

// Amount returns the monetary total of the consignment.
func (s *Shipment) Amount() float64 {
	return s.amount
}

// PaymentMode returns how the freight charges are settled.
func (s *Shipment) PaymentMode() PaymentMode {
	return s.paymentMode
}

// DeliveryType returns the destination handover type.
func (s *Shipment) DeliveryType() DeliveryType {
	return s.deliveryType
}

// Source returns the booking channel of the record.
func (s *Shipment) Source() Source {
	return s.source
}

// Stage returns the data-entry lifecycle stage.
func (s *Shipment) Stage() Stage {
	return s.stage
}

// IsActive reports whether the record has not been cancelled.
func (s *Shipment) IsActive() bool {
	return s.isActive
}

// IsLoadable reports whether the shipment is a candidate for challan
// assignment: fully entered (Saved) and not cancelled. Availability on top of
// this also requires the GR number to be absent from active transit, which is
// the availability filter's concern.
func (s *Shipment) IsLoadable() bool {
	return s.stage == Saved && s.isActive
}

// Cancel soft-deletes the shipment record. The row is kept for audit history.
// Returns ErrShipmentAlreadyCancelled when invoked twice.
func (s *Shipment) Cancel() error {
	if !s.isActive {
		return ErrShipmentAlreadyCancelled
	}
	s.isActive = false
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setGRNo(grNo kernel.GRNo) error {
	if err := grNo.Validate(); err != nil {
		return err
	}
	s.grNo = grNo
	return nil
}

func (s *Shipment) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originBranchID", err)
	}
	s.originBranchID = id
	return nil
}

func (s *Shipment) setDestinationCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("destinationCity")
	}
	s.destinationCity = city
	return nil
}

func (s *Shipment) setPackages(packages int) error {
	if packages <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("packages",
			fmt.Errorf("%d is not greater than 0", packages))
	}
	s.packages = packages
	return nil
}

func (s *Shipment) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%g is not greater than 0", weightKg))
	}
	s.weightKg = weightKg
	return nil
}

func (s *Shipment) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%g is negative", amount))
	}
	s.amount = amount
	return nil
}

func (s *Shipment) setPaymentMode(mode PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	s.paymentMode = mode
	return nil
}

func (s *Shipment) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	s.deliveryType = deliveryType
	return nil
}

func (s *Shipment) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	s.source = source
	return nil
}

func (s *Shipment) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	s.stage = stage
	return nil
}

// Package shipmentrepo provides data transfer objects and mapping functions for
// shipment persistence. This package implements the repository pattern for the
// shipment domain aggregate, handling the conversion between domain entities
// and database representations.
package shipmentrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment records.
// Enumerations are stored in their string form so the rows stay readable in
// ad-hoc SQL and migrations never need to renumber constants.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	GRNo            string    `gorm:"column:gr_no;index"`
	OriginBranchID  uuid.UUID `gorm:"type:uuid;index"`
	DestinationCity string
	Packages        int
	WeightKg        float64
	Amount          float64
	PaymentMode     string
	DeliveryType    string
	Source          string
	Stage           string
	IsActive        bool `gorm:"index"`
}

// TableName specifies the database table name for shipment records.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:              s.ID().Bytes(),
		GRNo:            s.GRNo().String(),
		OriginBranchID:  s.OriginBranchID().Bytes(),
		DestinationCity: s.DestinationCity(),
		Packages:        s.Packages(),
		WeightKg:        s.WeightKg(),
		Amount:          s.Amount(),
		PaymentMode:     s.PaymentMode().String(),
		DeliveryType:    s.DeliveryType().String(),
		Source:          s.Source().String(),
		Stage:           s.Stage().String(),
		IsActive:        s.IsActive(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment, which re-applies the full constructor validation.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	grNo, err := kernel.NewGRNo(dto.GRNo)
	if err != nil {
		return nil, err
	}

	originBranchID, err := kernel.UUIDFromBytes(dto.OriginBranchID[:])
	if err != nil {
		return nil, err
	}

	paymentMode, err := shipment.PaymentModeFromString(dto.PaymentMode)
	if err != nil {
		return nil, err
	}

	deliveryType, err := shipment.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	source, err := shipment.SourceFromString(dto.Source)
	if err != nil {
		return nil, err
	}

	stage, err := shipment.StageFromString(dto.Stage)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(id, grNo, originBranchID, dto.DestinationCity,
		dto.Packages, dto.WeightKg, dto.Amount, paymentMode, deliveryType,
		source, stage, dto.IsActive)
}

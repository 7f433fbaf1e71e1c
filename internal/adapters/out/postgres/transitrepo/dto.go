// Package transitrepo provides data transfer objects and mapping functions for
// transit record persistence. Each row is one shipment-on-challan assignment
// with its five milestone flags and their timestamps flattened into columns,
// so the read side can label progress without touching the domain aggregates.
package transitrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"

	"github.com/google/uuid"
)

// TransitDTO represents the database structure for persisting transit records.
//
// A partial unique index on (gr_no) WHERE is_active backs the exclusivity rule:
// the database rejects a second active row for the same GR number even under
// concurrent assignment. The index is created by the schema migrations, not by
// GORM tags.
type TransitDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GRNo         string    `gorm:"column:gr_no;index"`
	ChallanID    uuid.UUID `gorm:"type:uuid;index"`
	ChallanNo    string
	FromBranchID uuid.UUID `gorm:"type:uuid;index"`
	ToBranchID   uuid.UUID `gorm:"type:uuid"`
	DeliveryType string
	RouteClass   string

	OutFromBranch1           bool
	OutFromBranch1At         *time.Time
	DeliveredAtBranch2       bool
	DeliveredAtBranch2At     *time.Time
	OutFromBranch2           bool
	OutFromBranch2At         *time.Time
	OutForDoorDelivery       bool
	OutForDoorDeliveryAt     *time.Time
	DeliveredAtDestination   bool
	DeliveredAtDestinationAt *time.Time

	IsActive           bool `gorm:"index"`
	DeactivatedAt      *time.Time
	DeactivationReason string
}

// TableName specifies the database table name for transit records.
// Overrides GORM's default naming convention to use "transit_details".
func (TransitDTO) TableName() string {
	return "transit_details"
}

// fromDomain converts a transit record domain aggregate to its database representation.
func fromDomain(t *transit.TransitDetails) TransitDTO {
	flags := t.MilestoneFlags()
	state := t.State()

	return TransitDTO{
		ID:           t.ID().Bytes(),
		GRNo:         t.GRNo().String(),
		ChallanID:    t.ChallanID().Bytes(),
		ChallanNo:    t.ChallanNo(),
		FromBranchID: t.FromBranchID().Bytes(),
		ToBranchID:   t.ToBranchID().Bytes(),
		DeliveryType: t.DeliveryType().String(),
		RouteClass:   t.RouteClass().String(),

		OutFromBranch1:           flags.OutFromBranch1.Set,
		OutFromBranch1At:         flags.OutFromBranch1.At,
		DeliveredAtBranch2:       flags.DeliveredAtBranch2.Set,
		DeliveredAtBranch2At:     flags.DeliveredAtBranch2.At,
		OutFromBranch2:           flags.OutFromBranch2.Set,
		OutFromBranch2At:         flags.OutFromBranch2.At,
		OutForDoorDelivery:       flags.OutForDoorDelivery.Set,
		OutForDoorDeliveryAt:     flags.OutForDoorDelivery.At,
		DeliveredAtDestination:   flags.DeliveredAtDestination.Set,
		DeliveredAtDestinationAt: flags.DeliveredAtDestination.At,

		IsActive:           t.IsActive(),
		DeactivatedAt:      state.DeactivatedAt(),
		DeactivationReason: state.Reason(),
	}
}

// toDomain converts a database DTO to a transit record domain aggregate using
// RestoreTransitDetails, which tolerates milestone gaps on historical rows.
func toDomain(dto TransitDTO) (*transit.TransitDetails, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	grNo, err := kernel.NewGRNo(dto.GRNo)
	if err != nil {
		return nil, err
	}

	challanID, err := kernel.UUIDFromBytes(dto.ChallanID[:])
	if err != nil {
		return nil, err
	}

	fromBranchID, err := kernel.UUIDFromBytes(dto.FromBranchID[:])
	if err != nil {
		return nil, err
	}

	toBranchID, err := kernel.UUIDFromBytes(dto.ToBranchID[:])
	if err != nil {
		return nil, err
	}

	deliveryType, err := shipment.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	routeClass, err := transit.RouteClassFromString(dto.RouteClass)
	if err != nil {
		return nil, err
	}

	state := transit.ActiveState()
	if !dto.IsActive {
		deactivatedAt := time.Time{}
		if dto.DeactivatedAt != nil {
			deactivatedAt = *dto.DeactivatedAt
		}
		state, err = transit.DeactivatedState(deactivatedAt, dto.DeactivationReason)
		if err != nil {
			return nil, err
		}
	}

	flags := transit.MilestoneFlags{
		OutFromBranch1:         transit.MilestoneFlag{Set: dto.OutFromBranch1, At: dto.OutFromBranch1At},
		DeliveredAtBranch2:     transit.MilestoneFlag{Set: dto.DeliveredAtBranch2, At: dto.DeliveredAtBranch2At},
		OutFromBranch2:         transit.MilestoneFlag{Set: dto.OutFromBranch2, At: dto.OutFromBranch2At},
		OutForDoorDelivery:     transit.MilestoneFlag{Set: dto.OutForDoorDelivery, At: dto.OutForDoorDeliveryAt},
		DeliveredAtDestination: transit.MilestoneFlag{Set: dto.DeliveredAtDestination, At: dto.DeliveredAtDestinationAt},
	}

	return transit.RestoreTransitDetails(id, grNo, challanID, dto.ChallanNo,
		fromBranchID, toBranchID, deliveryType, routeClass, state, flags)
}

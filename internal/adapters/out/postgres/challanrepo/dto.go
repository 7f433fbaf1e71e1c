// Package challanrepo provides data transfer objects and mapping functions for
// challan persistence. This package implements the repository pattern for the
// challan domain aggregate, handling the conversion between domain entities
// and database representations.
package challanrepo

import (
	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChallanDTO represents the database structure for persisting challan aggregates.
type ChallanDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChallanNo       string    `gorm:"index"`
	FromBranchID    uuid.UUID `gorm:"type:uuid;index"`
	ToBranchID      uuid.UUID `gorm:"type:uuid"`
	TruckNo         string
	DriverName      string
	OwnerName       string
	TotalBiltyCount int
	IsActive        bool `gorm:"index"`
	IsDispatched    bool
}

// TableName specifies the database table name for challan entities.
// Overrides GORM's default naming convention to use "challans".
func (ChallanDTO) TableName() string {
	return "challans"
}

// fromDomain converts a challan domain aggregate to its database representation.
func fromDomain(c *challan.Challan) ChallanDTO {
	return ChallanDTO{
		ID:              c.ID().Bytes(),
		ChallanNo:       c.ChallanNo(),
		FromBranchID:    c.FromBranchID().Bytes(),
		ToBranchID:      c.ToBranchID().Bytes(),
		TruckNo:         c.TruckNo(),
		DriverName:      c.DriverName(),
		OwnerName:       c.OwnerName(),
		TotalBiltyCount: c.TotalBiltyCount(),
		IsActive:        c.IsActive(),
		IsDispatched:    c.IsDispatched(),
	}
}

// toDomain converts a database DTO to a challan domain aggregate using
// RestoreChallan.
func toDomain(dto ChallanDTO) (*challan.Challan, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return challan.RestoreChallan(id, dto.ChallanNo, fromBranchID, toBranchID,
		dto.TruckNo, dto.DriverName, dto.OwnerName,
		dto.TotalBiltyCount, dto.IsActive, dto.IsDispatched)
}

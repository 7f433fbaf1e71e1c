// Package challanbookrepo provides data transfer objects and mapping functions
// for challan-book persistence. A challan book is the numbering sequence for
// the challans of one origin→destination lane.
package challanbookrepo

import (
	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChallanBookDTO represents the database structure for persisting challan
// numbering sequences.
type ChallanBookDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromBranchID uuid.UUID `gorm:"type:uuid;index"`
	ToBranchID   uuid.UUID `gorm:"type:uuid"`
	Prefix       string
	Postfix      string
	PadWidth     int
	NextCounter  int
}

// TableName specifies the database table name for challan book entities.
// Overrides GORM's default naming convention to use "challan_books".
func (ChallanBookDTO) TableName() string {
	return "challan_books"
}

// fromDomain converts a challan book domain aggregate to its database representation.
func fromDomain(b *challan.ChallanBook) ChallanBookDTO {
	return ChallanBookDTO{
		ID:           b.ID().Bytes(),
		FromBranchID: b.FromBranchID().Bytes(),
		ToBranchID:   b.ToBranchID().Bytes(),
		Prefix:       b.Prefix(),
		Postfix:      b.Postfix(),
		PadWidth:     b.PadWidth(),
		NextCounter:  b.NextCounter(),
	}
}

// toDomain converts a database DTO to a challan book domain aggregate using
// RestoreChallanBook.
func toDomain(dto ChallanBookDTO) (*challan.ChallanBook, error) {
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

	return challan.RestoreChallanBook(id, fromBranchID, toBranchID,
		dto.Prefix, dto.Postfix, dto.PadWidth, dto.NextCounter)
}

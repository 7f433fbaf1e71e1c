package challanbookrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChallanBookRepository implements ChallanBookRepository using GORM.
type GormChallanBookRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChallanBookRepository creates a new GORM challan book repository.
func NewGormChallanBookRepository(db *gorm.DB, tracker aggregateTracker) *GormChallanBookRepository {
	return &GormChallanBookRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new numbering sequence to the database.
func (r *GormChallanBookRepository) Add(ctx context.Context, aggregate *challan.ChallanBook) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the advanced counter of a sequence to the database.
func (r *GormChallanBookRepository) Update(ctx context.Context, aggregate *challan.ChallanBook) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ChallanBookDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a numbering sequence by ID.
func (r *GormChallanBookRepository) Get(ctx context.Context, id kernel.UUID) (*challan.ChallanBook, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChallanBookDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("challanBook", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOriginBranch retrieves the sequences whose lane starts at the given branch.
func (r *GormChallanBookRepository) GetAllByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*challan.ChallanBook, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChallanBookDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "from_branch_id = ?", branchID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	books := make([]*challan.ChallanBook, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, nil
}

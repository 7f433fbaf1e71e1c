package challanrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChallanRepository implements ChallanRepository using GORM.
type GormChallanRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChallanRepository creates a new GORM challan repository.
func NewGormChallanRepository(db *gorm.DB, tracker aggregateTracker) *GormChallanRepository {
	return &GormChallanRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new challan to the database.
func (r *GormChallanRepository) Add(ctx context.Context, aggregate *challan.Challan) error {
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

// Update saves an existing challan to the database. All columns are written so
// a count returning to zero or the dispatch flag flipping is never skipped as
// a zero value.
func (r *GormChallanRepository) Update(ctx context.Context, aggregate *challan.Challan) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ChallanDTO{}).
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

// Get retrieves a challan by ID.
func (r *GormChallanRepository) Get(ctx context.Context, id kernel.UUID) (*challan.Challan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChallanDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("challan", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveByOriginBranch retrieves the active challans originating at the
// given branch.
func (r *GormChallanRepository) GetAllActiveByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*challan.Challan, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ChallanDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "from_branch_id = ? AND is_active", branchID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	challans := make([]*challan.Challan, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		challans = append(challans, c)
	}

	return challans, nil
}

package transitrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transit"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransitRepository implements TransitRepository using GORM.
type GormTransitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransitRepository creates a new GORM transit repository.
func NewGormTransitRepository(db *gorm.DB, tracker aggregateTracker) *GormTransitRepository {
	return &GormTransitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a single new transit record to the database.
func (r *GormTransitRepository) Add(ctx context.Context, aggregate *transit.TransitDetails) error {
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

// AddBatch saves an assignment batch in one insert. The partial unique index on
// active GR numbers makes a concurrent double assignment fail here rather than
// producing two live rows.
func (r *GormTransitRepository) AddBatch(ctx context.Context, aggregates []*transit.TransitDetails) error {
	if len(aggregates) == 0 {
		return nil
	}

	dtos := make([]TransitDTO, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(aggregate))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, aggregate := range aggregates {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// Update saves milestone and state changes of an existing record. All columns
// are written so clearing is_active on removal is never skipped as a zero value.
func (r *GormTransitRepository) Update(ctx context.Context, aggregate *transit.TransitDetails) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransitDTO{}).
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

// Get retrieves a transit record by ID.
func (r *GormTransitRepository) Get(ctx context.Context, id kernel.UUID) (*transit.TransitDetails, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByChallanID retrieves the active records assigned to a challan.
func (r *GormTransitRepository) GetActiveByChallanID(
	ctx context.Context,
	challanID kernel.UUID,
) ([]*transit.TransitDetails, error) {
	if err := challanID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "challan_id = ? AND is_active", challanID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveGRNosByOriginBranch retrieves the GR numbers currently held by
// active records originating at the given branch.
func (r *GormTransitRepository) GetActiveGRNosByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]kernel.GRNo, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var raw []string
	err := r.db.WithContext(ctx).Model(&TransitDTO{}).
		Where("from_branch_id = ? AND is_active", branchID.Bytes()).
		Pluck("gr_no", &raw).Error
	if err != nil {
		return nil, err
	}

	grNos := make([]kernel.GRNo, 0, len(raw))
	for _, value := range raw {
		grNo, grErr := kernel.NewGRNo(value)
		if grErr != nil {
			return nil, grErr
		}
		grNos = append(grNos, grNo)
	}

	return grNos, nil
}

// GetActiveByGRNo retrieves the active record holding the given GR number.
func (r *GormTransitRepository) GetActiveByGRNo(
	ctx context.Context,
	grNo kernel.GRNo,
) (*transit.TransitDetails, error) {
	if err := grNo.Validate(); err != nil {
		return nil, err
	}

	var dto TransitDTO
	err := r.db.WithContext(ctx).
		First(&dto, "gr_no = ? AND is_active", grNo.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transit", grNo.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveByChallanID returns the live count of active records on a challan.
func (r *GormTransitRepository) CountActiveByChallanID(
	ctx context.Context,
	challanID kernel.UUID,
) (int, error) {
	if err := challanID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&TransitDTO{}).
		Where("challan_id = ? AND is_active", challanID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func toDomainSlice(dtos []TransitDTO) ([]*transit.TransitDetails, error) {
	records := make([]*transit.TransitDetails, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

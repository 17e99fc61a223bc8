package branchrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM.
type GormBranchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBranchRepository(db *gorm.DB, tracker aggregateTracker) *GormBranchRepository {
	return &GormBranchRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "branch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdatePerformance writes the counters touched by the aggregation run. The
// parcel set and assign_delivery_count are written elsewhere with atomic
// statements and are not part of this update.
func (r *GormBranchRepository) UpdatePerformance(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	perf := PerformanceFromDomain(aggregate.Performance())
	result := r.db.WithContext(ctx).
		Model(&BranchDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(perf.Columns(false))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByKind returns every branch of the given kind ordered by name.
func (r *GormBranchRepository) GetAllByKind(ctx context.Context, kind branch.Kind) ([]*branch.Branch, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var dtos []BranchDTO
	if err := r.db.WithContext(ctx).Where("kind = ?", int(kind)).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	return branches, nil
}

// AddParcel appends the parcel id to the set with array_append, guarded so a
// parcel already in the set is not added twice.
func (r *GormBranchRepository) AddParcel(ctx context.Context, branchID, parcelID kernel.UUID) error {
	if err := errors.Join(branchID.Validate(), parcelID.Validate()); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&BranchDTO{}).
		Where("id = ? AND NOT (? = ANY(parcel_ids))", branchID.Bytes(), parcelID.String()).
		Update("parcel_ids", gorm.Expr("array_append(parcel_ids, ?)", parcelID.String()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	return r.ensureExists(ctx, branchID)
}

// IncrementAssignCount bumps assign_delivery_count in place.
func (r *GormBranchRepository) IncrementAssignCount(ctx context.Context, branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BranchDTO{}).
		Where("id = ?", branchID.Bytes()).
		Update("assign_delivery_count", gorm.Expr("assign_delivery_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("branch", branchID.String())
	}
	return nil
}

func (r *GormBranchRepository) ensureExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BranchDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("branch", id.String())
	}
	return nil
}

package performancerepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/performance"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLogRepository implements PerformanceLogRepository using GORM.
type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Add creates the log row. Snapshots are written by Save.
func (r *GormLogRepository) Add(ctx context.Context, log *performance.Log) error {
	if err := log.Validate(); err != nil {
		return err
	}

	dto := LogDTO{BranchID: log.BranchID().Bytes(), Kind: int(log.Kind())}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, "performance log", log.BranchID().String())
	}
	return nil
}

func (r *GormLogRepository) Get(ctx context.Context, branchID kernel.UUID) (*performance.Log, error) {
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dto LogDTO
	err := r.db.WithContext(ctx).
		Preload("Snapshots", func(db *gorm.DB) *gorm.DB { return db.Order("day") }).
		First(&dto, "branch_id = ?", branchID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("performance log", branchID.String())
		}
		return nil, err
	}

	return logToDomain(dto)
}

// Save upserts every snapshot touched since the log was loaded.
func (r *GormLogRepository) Save(ctx context.Context, log *performance.Log) error {
	if err := log.Validate(); err != nil {
		return err
	}

	touched := log.Touched()
	if len(touched) == 0 {
		return nil
	}

	branchID := log.BranchID().Bytes()
	dtos := make([]SnapshotDTO, 0, len(touched))
	for _, s := range touched {
		dtos = append(dtos, snapshotFromDomain(branchID, s))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_id"}, {Name: "day"}},
		UpdateAll: true,
	}).Create(&dtos).Error
}

package performancerepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSegmentLedger implements SegmentLedger with an insert that ignores
// existing keys.
type GormSegmentLedger struct {
	db *gorm.DB
}

func NewGormSegmentLedger(db *gorm.DB) *GormSegmentLedger {
	return &GormSegmentLedger{db: db}
}

func (l *GormSegmentLedger) MarkProcessed(ctx context.Context, parcelID kernel.UUID, key string) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ProcessedSegmentDTO{ParcelID: parcelID.Bytes(), SegmentKey: key})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

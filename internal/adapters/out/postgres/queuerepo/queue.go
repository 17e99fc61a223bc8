// Package queuerepo stores the delivery completion queue. A row per parcel is
// pending while processed_at is NULL; acknowledging sets it, re-enqueueing
// clears it again.
package queuerepo

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QueueItemDTO struct {
	ParcelID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EnqueuedAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (QueueItemDTO) TableName() string {
	return "delivery_queue"
}

// GormDeliveryQueue implements DeliveryQueue using GORM.
type GormDeliveryQueue struct {
	db *gorm.DB
}

func NewGormDeliveryQueue(db *gorm.DB) *GormDeliveryQueue {
	return &GormDeliveryQueue{db: db}
}

// Enqueue upserts the parcel. A pending row is left as is; a processed row is
// re-armed with the new enqueue time.
func (q *GormDeliveryQueue) Enqueue(ctx context.Context, parcelID kernel.UUID, at time.Time) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	// Postgres keeps microseconds; truncating here makes Ack's equality check exact.
	enqueuedAt := at.UTC().Truncate(time.Microsecond)
	dto := QueueItemDTO{ParcelID: parcelID.Bytes(), EnqueuedAt: enqueuedAt}

	return q.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "parcel_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"enqueued_at":  enqueuedAt,
			"processed_at": nil,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "delivery_queue.processed_at IS NOT NULL"},
		}},
	}).Create(&dto).Error
}

// Pending returns up to limit unprocessed items, oldest first. Paging is keyset
// based on (enqueued_at, parcel_id), so rows left pending by a failed reader do
// not hide the rows behind them.
func (q *GormDeliveryQueue) Pending(ctx context.Context, after *ports.QueueItem, limit int) ([]ports.QueueItem, error) {
	tx := q.db.WithContext(ctx).Where("processed_at IS NULL")
	if after != nil {
		tx = tx.Where("(enqueued_at, parcel_id) > (?, ?)", after.EnqueuedAt, after.ParcelID.Bytes())
	}

	var dtos []QueueItemDTO
	err := tx.Order("enqueued_at, parcel_id").Limit(limit).Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.QueueItem, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ParcelID[:])
		if idErr != nil {
			return nil, idErr
		}
		items = append(items, ports.QueueItem{ParcelID: id, EnqueuedAt: dto.EnqueuedAt.UTC()})
	}

	return items, nil
}

// Ack marks the item processed only if it was not re-enqueued after it was read.
func (q *GormDeliveryQueue) Ack(ctx context.Context, item ports.QueueItem, at time.Time) error {
	return q.db.WithContext(ctx).
		Model(&QueueItemDTO{}).
		Where("parcel_id = ? AND enqueued_at = ? AND processed_at IS NULL", item.ParcelID.Bytes(), item.EnqueuedAt).
		Update("processed_at", at.UTC()).Error
}

func (q *GormDeliveryQueue) PendingCount(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&QueueItemDTO{}).Where("processed_at IS NULL").Count(&count).Error
	return count, err
}

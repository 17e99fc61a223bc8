package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// QueueItem is one pending entry of the delivery completion queue.
type QueueItem struct {
	ParcelID   kernel.UUID
	EnqueuedAt time.Time
}

// DeliveryQueue is the durable at-least-once set of parcels awaiting aggregation.
type DeliveryQueue interface {
	// Enqueue adds the parcel. Adding a pending parcel again is a no-op; adding
	// one that was already processed re-arms it.
	Enqueue(ctx context.Context, parcelID kernel.UUID, at time.Time) error

	// Pending returns up to limit unprocessed items ordered by (EnqueuedAt, ParcelID),
	// starting strictly after the given item. A nil after reads from the head.
	Pending(ctx context.Context, after *QueueItem, limit int) ([]QueueItem, error)

	// Ack marks the item processed. It is a no-op when the parcel was re-enqueued
	// after the item was read, so the newer entry stays pending.
	Ack(ctx context.Context, item QueueItem, at time.Time) error

	PendingCount(ctx context.Context) (int64, error)
}

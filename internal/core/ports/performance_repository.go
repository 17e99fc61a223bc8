package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/performance"
)

type PerformanceLogRepository interface {
	// Add creates an empty log for a branch.
	Add(ctx context.Context, log *performance.Log) error

	// Get loads the log with all of its snapshots.
	Get(ctx context.Context, branchID kernel.UUID) (*performance.Log, error)

	// Save upserts the snapshots touched since the log was loaded.
	Save(ctx context.Context, log *performance.Log) error
}

type SystemPerformanceRepository interface {
	// Get returns an ObjectNotFoundError when the singleton has not been seeded.
	Get(ctx context.Context) (*performance.SystemPerformance, error)

	Save(ctx context.Context, system *performance.SystemPerformance) error

	// Ensure seeds a zeroed singleton if none exists.
	Ensure(ctx context.Context) error
}

// SegmentLedger records which credits of a parcel have been applied.
type SegmentLedger interface {
	// MarkProcessed stores the key and reports whether it was new.
	MarkProcessed(ctx context.Context, parcelID kernel.UUID, key string) (bool, error)
}

// RunLocker guarantees a single aggregation run at a time.
type RunLocker interface {
	// TryLock returns ok=false without blocking when another run holds the lock.
	TryLock(ctx context.Context) (release func(), ok bool, err error)
}

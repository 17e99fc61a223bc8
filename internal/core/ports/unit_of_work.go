package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository

	BranchRepository() BranchRepository

	CourierRepository() CourierRepository

	DeliveryQueue() DeliveryQueue

	PerformanceLogRepository() PerformanceLogRepository

	SystemPerformanceRepository() SystemPerformanceRepository

	SegmentLedger() SegmentLedger
}

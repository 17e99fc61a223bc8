// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	QueueFactory interface {
		DeliveryQueue() ports.DeliveryQueue
	}

	// PerformanceRepoFactory gives access to the performance logs, the system
	// singleton and the processed-credit ledger.
	PerformanceRepoFactory interface {
		PerformanceLogRepository() ports.PerformanceLogRepository
		SystemPerformanceRepository() ports.SystemPerformanceRepository
		SegmentLedger() ports.SegmentLedger
	}

	// BranchUoW manages transactions for branch registration: the branch and its log.
	BranchUoW interface {
		TxManager
		BranchRepoFactory
		PerformanceRepoFactory
	}

	BranchUoWFactory interface {
		Create() BranchUoW
	}

	// CourierUoW manages transactions for courier registration.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
		BranchRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans every aggregate. Used by the transition engine, parcel commands
	// and the aggregation run.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   parcelRepo := uow.ParcelRepository()
	//   queue := uow.DeliveryQueue()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		BranchRepoFactory
		CourierRepoFactory
		QueueFactory
		PerformanceRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. Handlers take one so tests control "now".
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

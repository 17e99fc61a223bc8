package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

type ParcelRepository interface {
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update writes the parcel's status, track and assignment. It never touches the update lock.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
}

// ParcelLocker serializes mutations of a single parcel across processes.
type ParcelLocker interface {
	// WithUpdateLock acquires the parcel's update lock with one conditional update,
	// runs fn and releases the lock on every exit path of fn, including a panic.
	//
	// Returns an ObjectNotFoundError when the parcel does not exist and a
	// ConflictError when the lock is already held.
	WithUpdateLock(ctx context.Context, id kernel.UUID, fn func(ctx context.Context) error) error
}

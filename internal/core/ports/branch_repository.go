package ports

import (
	"context"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
)

type BranchRepository interface {
	Add(ctx context.Context, aggregate *branch.Branch) error

	// UpdatePerformance writes the counters owned by the aggregation run. It leaves the
	// parcel set and the assignment count alone, since those are written atomically.
	UpdatePerformance(ctx context.Context, aggregate *branch.Branch) error

	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	GetAllByKind(ctx context.Context, kind branch.Kind) ([]*branch.Branch, error)

	// AddParcel appends the parcel to the branch's parcel set unless already present.
	AddParcel(ctx context.Context, branchID, parcelID kernel.UUID) error

	// IncrementAssignCount bumps assign_delivery_count by one in place.
	IncrementAssignCount(ctx context.Context, branchID kernel.UUID) error
}

package queries

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/performance"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetBranchPerformanceQueryIsNotConstructed = errors.New(
	"GetBranchPerformanceQuery must be created via NewGetBranchPerformanceQuery constructor",
)

// GetBranchPerformanceQuery returns a branch's cumulative counters and the
// daily snapshots whose day lies in [from, to]. Both bounds are truncated to
// their UTC day.
type GetBranchPerformanceQuery struct {
	branchID kernel.UUID
	from     time.Time
	to       time.Time
	guard    guard.ConstructorGuard
}

func NewGetBranchPerformanceQuery(branchID kernel.UUID, from, to time.Time) (GetBranchPerformanceQuery, error) {
	var rangeErr error
	from, to = performance.DayOf(from), performance.DayOf(to)
	if to.Before(from) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause(
			"date range is invalid",
			fmt.Errorf("from %s is after to %s", from.Format(time.DateOnly), to.Format(time.DateOnly)),
		)
	}

	if err := errors.Join(branchID.Validate(), rangeErr); err != nil {
		return GetBranchPerformanceQuery{}, err
	}

	return GetBranchPerformanceQuery{
		branchID: branchID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetBranchPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchPerformanceQueryIsNotConstructed)
}

func (q GetBranchPerformanceQuery) BranchID() kernel.UUID { return q.branchID }

func (q GetBranchPerformanceQuery) From() time.Time { return q.from }

func (q GetBranchPerformanceQuery) To() time.Time { return q.to }

type DailyPerformanceView struct {
	Day         time.Time
	Performance branch.Performance
}

type GetBranchPerformanceQueryResponse struct {
	BranchID             kernel.UUID
	Kind                 string
	Name                 string
	PromisedDeliveryTime time.Duration
	OnTimeRate           float64
	Cumulative           branch.Performance
	Daily                []DailyPerformanceView
}

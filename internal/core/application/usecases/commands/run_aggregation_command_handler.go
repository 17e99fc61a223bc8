package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/performance"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"
)

const defaultAggregationBatchSize = 100

var (
	// ErrSystemPerformanceMissing aborts a run before any parcel is processed.
	ErrSystemPerformanceMissing = fmt.Errorf("system performance record is missing: %w", errs.ErrObjectNotFound)
	// ErrAggregationInProgress is returned when another run holds the run lock.
	ErrAggregationInProgress = errs.NewConflictError("aggregation run", "in progress")
)

// AggregationReport summarizes one run.
type AggregationReport struct {
	StartedAt        time.Time
	Parcels          int
	FailedParcels    int
	SegmentsCredited int
	EventsCredited   int
	CreditsSkipped   int
	Duplicates       int
	Rollup           performance.Rollup
}

// RunAggregationCommandHandler is the performance aggregation engine.
//
// Each queued parcel is replayed and credited in its own transaction together
// with its processed markers and its queue ack, so a crash mid-run loses nothing
// and a replay never counts a credit twice. The system rollup runs last.
//
// Example:
//
//	handler := NewRunAggregationCommandHandler(uowFactory, runLocker, time.Now, logger).WithBatchSize(50)
//
//	report, err := handler.Handle(ctx, NewRunAggregationCommand("cron"))
//	if errors.Is(err, ErrAggregationInProgress) {
//	    return nil // another run holds the lock
//	}
//	if err != nil {
//	    return fmt.Errorf("aggregation failed: %w", err)
//	}
//
//	// Parcels in report.FailedParcels stay queued for the next run.
type RunAggregationCommandHandler struct {
	uowFactory UoWFactory
	runLocker  ports.RunLocker
	clock      Clock
	replayer   services.SegmentReplayer
	batchSize  int
	logger     *slog.Logger
}

func NewRunAggregationCommandHandler(
	uowFactory UoWFactory,
	runLocker ports.RunLocker,
	clock Clock,
	logger *slog.Logger,
) RunAggregationCommandHandler {
	return RunAggregationCommandHandler{
		uowFactory: uowFactory,
		runLocker:  runLocker,
		clock:      clock,
		replayer:   services.NewSegmentReplayer(),
		batchSize:  defaultAggregationBatchSize,
		logger:     logger.With("component", "RunAggregationCommandHandler"),
	}
}

// WithBatchSize overrides how many queue items are read per page.
func (h RunAggregationCommandHandler) WithBatchSize(n int) RunAggregationCommandHandler {
	if n > 0 {
		h.batchSize = n
	}
	return h
}

func (h *RunAggregationCommandHandler) Handle(ctx context.Context, cmd RunAggregationCommand) (AggregationReport, error) {
	if err := cmd.Validate(); err != nil {
		return AggregationReport{}, err
	}

	release, ok, err := h.runLocker.TryLock(ctx)
	if err != nil {
		return AggregationReport{}, err
	}
	if !ok {
		metrics.AggregationRunsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
		return AggregationReport{}, ErrAggregationInProgress
	}
	defer release()

	report := AggregationReport{StartedAt: h.clock()}
	logger := h.logger.With("trigger", cmd.Trigger())

	report, err = h.run(ctx, report, logger)

	metrics.AggregationDuration.Observe(h.clock().Sub(report.StartedAt).Seconds())
	if err != nil {
		metrics.AggregationRunsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		logger.ErrorContext(ctx, "aggregation run failed", "error", err)
		return report, err
	}

	metrics.AggregationRunsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	logger.InfoContext(ctx, "aggregation run finished",
		"parcels", report.Parcels,
		"failed_parcels", report.FailedParcels,
		"segments", report.SegmentsCredited,
		"events", report.EventsCredited,
		"skipped", report.CreditsSkipped,
		"duplicates", report.Duplicates,
		"top_tier_branches", report.Rollup.BranchCount,
	)
	return report, nil
}

func (h *RunAggregationCommandHandler) run(
	ctx context.Context,
	report AggregationReport,
	logger *slog.Logger,
) (AggregationReport, error) {
	if err := h.checkSystemPerformance(ctx); err != nil {
		return report, err
	}

	reader := h.uowFactory.Create()
	if count, err := reader.DeliveryQueue().PendingCount(ctx); err == nil {
		metrics.QueuePending.Set(float64(count))
	}

	// Each item is read at most once per run. A failed parcel stays pending for
	// the next run and does not block the items queued after it.
	var after *ports.QueueItem
	for {
		items, err := reader.DeliveryQueue().Pending(ctx, after, h.batchSize)
		if err != nil {
			return report, err
		}

		for _, item := range items {
			if err = ctx.Err(); err != nil {
				return report, err
			}

			report.Parcels++
			if err = h.processParcel(ctx, item, &report, logger); err != nil {
				report.FailedParcels++
				logger.ErrorContext(ctx, "parcel aggregation failed, left in queue",
					"parcel_id", item.ParcelID.String(), "error", err)
			}
		}

		if len(items) < h.batchSize {
			break
		}
		last := items[len(items)-1]
		after = &last
	}

	rollup, err := h.rollup(ctx)
	if err != nil {
		return report, err
	}
	report.Rollup = rollup
	return report, nil
}

func (h *RunAggregationCommandHandler) checkSystemPerformance(ctx context.Context) error {
	_, err := h.uowFactory.Create().SystemPerformanceRepository().Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrSystemPerformanceMissing
	}
	return err
}

// aggregationScope caches the branches and logs touched by one parcel.
type aggregationScope struct {
	branches map[kernel.UUID]*branch.Branch
	logs     map[kernel.UUID]*performance.Log
	system   *performance.SystemPerformance
	dirty    bool
}

func (h *RunAggregationCommandHandler) processParcel(
	ctx context.Context,
	item ports.QueueItem,
	report *AggregationReport,
	logger *slog.Logger,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()

	p, err := uow.ParcelRepository().Get(ctx, item.ParcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		logger.WarnContext(ctx, "queued parcel not found, dropping", "parcel_id", item.ParcelID.String())
		if err = uow.DeliveryQueue().Ack(ctx, item, now); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}
	if err != nil {
		return err
	}

	credits, err := h.replayer.Replay(p)
	if err != nil {
		return err
	}

	system, err := uow.SystemPerformanceRepository().Get(ctx)
	if err != nil {
		return err
	}

	scope := &aggregationScope{
		branches: make(map[kernel.UUID]*branch.Branch),
		logs:     make(map[kernel.UUID]*performance.Log),
		system:   system,
	}

	for _, credit := range credits {
		applied, err := h.applyCredit(ctx, uow, scope, p.ID(), credit, now, logger)
		if err != nil {
			return err
		}
		switch {
		case applied == creditApplied && credit.Kind == services.CreditSegment:
			report.SegmentsCredited++
		case applied == creditApplied:
			report.EventsCredited++
		case applied == creditSkipped:
			report.CreditsSkipped++
		case applied == creditDuplicate:
			report.Duplicates++
		}
		metrics.CreditsTotal.WithLabelValues(credit.Kind.String(), applied.String()).Inc()
	}

	if err = h.flush(ctx, uow, scope); err != nil {
		return err
	}

	if err = uow.DeliveryQueue().Ack(ctx, item, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type creditResult int

const (
	creditApplied creditResult = iota
	creditSkipped
	creditDuplicate
)

func (r creditResult) String() string {
	switch r {
	case creditApplied:
		return "applied"
	case creditSkipped:
		return metrics.OutcomeSkipped
	default:
		return "duplicate"
	}
}

func (h *RunAggregationCommandHandler) applyCredit(
	ctx context.Context,
	uow UoW,
	scope *aggregationScope,
	parcelID kernel.UUID,
	credit services.Credit,
	now time.Time,
	logger *slog.Logger,
) (creditResult, error) {
	if credit.BranchID == nil {
		logger.WarnContext(ctx, "credit has no branch, skipped",
			"parcel_id", parcelID.String(), "key", credit.Key)
		return creditSkipped, nil
	}

	b, log, err := h.load(ctx, uow, scope, *credit.BranchID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		logger.WarnContext(ctx, "branch or performance log missing, credit skipped",
			"parcel_id", parcelID.String(), "branch_id", credit.BranchID.String(), "key", credit.Key, "error", err)
		return creditSkipped, nil
	}
	if err != nil {
		return 0, err
	}

	fresh, err := uow.SegmentLedger().MarkProcessed(ctx, parcelID, credit.Key)
	if err != nil {
		return 0, err
	}
	if !fresh {
		return creditDuplicate, nil
	}

	daily := log.Snapshot(now)
	switch credit.Kind {
	case services.CreditSegment:
		b.RecordSegment(credit.Hours)
		daily.RecordSegment(credit.Hours, b.PromisedDeliveryTime())
	case services.CreditEvent:
		b.RecordEvent(credit.From)
		daily.RecordEvent(credit.From)
		switch credit.From {
		case parcel.PickedUp:
			scope.system.RecordPickup()
			scope.dirty = true
		case parcel.Delivered:
			scope.system.RecordDelivered()
			scope.dirty = true
		}
	}

	return creditApplied, nil
}

func (h *RunAggregationCommandHandler) load(
	ctx context.Context,
	uow UoW,
	scope *aggregationScope,
	branchID kernel.UUID,
) (*branch.Branch, *performance.Log, error) {
	b, ok := scope.branches[branchID]
	if !ok {
		var err error
		if b, err = uow.BranchRepository().Get(ctx, branchID); err != nil {
			return nil, nil, err
		}
	}

	log, ok := scope.logs[branchID]
	if !ok {
		var err error
		if log, err = uow.PerformanceLogRepository().Get(ctx, branchID); err != nil {
			return nil, nil, err
		}
	}

	scope.branches[branchID] = b
	scope.logs[branchID] = log
	return b, log, nil
}

func (h *RunAggregationCommandHandler) flush(ctx context.Context, uow UoW, scope *aggregationScope) error {
	for _, b := range scope.branches {
		if err := uow.BranchRepository().UpdatePerformance(ctx, b); err != nil {
			return err
		}
	}
	for _, log := range scope.logs {
		if err := uow.PerformanceLogRepository().Save(ctx, log); err != nil {
			return err
		}
	}
	if scope.dirty {
		return uow.SystemPerformanceRepository().Save(ctx, scope.system)
	}
	return nil
}

func (h *RunAggregationCommandHandler) rollup(ctx context.Context) (performance.Rollup, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return performance.Rollup{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mains, err := uow.BranchRepository().GetAllByKind(ctx, branch.MainBranch)
	if err != nil {
		return performance.Rollup{}, err
	}

	systemRepo := uow.SystemPerformanceRepository()
	system, err := systemRepo.Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return performance.Rollup{}, ErrSystemPerformanceMissing
	}
	if err != nil {
		return performance.Rollup{}, err
	}

	rollup := performance.ComputeRollup(mains)
	system.Apply(rollup)

	if err = systemRepo.Save(ctx, system); err != nil {
		return performance.Rollup{}, err
	}

	return rollup, uow.Commit(ctx)
}

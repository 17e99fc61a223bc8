package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"
)

// ApplyTransitionCommandHandler is the status transition engine.
//
// The whole read-modify-append runs under the parcel's update lock and inside one
// transaction: the appended entry, the courier release, the branch parcel set and
// the queue entry are committed together. A missing branch or courier only skips
// its side effect.
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(locker, uowFactory, time.Now, logger)
//	cmd, err := NewApplyTransitionCommand(parcelID, parcel.HeldAtRegionalHub, nil, &requesterBranchID)
//	if err != nil {
//	    return err
//	}
//
//	// A held status from a branch that is not the custodian fails with errs.ErrAccessDenied,
//	// a concurrent writer with errs.ErrConflict.
//	track, err := handler.Handle(ctx, cmd)
type ApplyTransitionCommandHandler struct {
	locker     ports.ParcelLocker
	uowFactory UoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewApplyTransitionCommandHandler(
	locker ports.ParcelLocker,
	uowFactory UoWFactory,
	clock Clock,
	logger *slog.Logger,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		locker:     locker,
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "ApplyTransitionCommandHandler"),
	}
}

// Handle applies the transition and returns the updated track.
func (h *ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) ([]parcel.TrackEntry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var track []parcel.TrackEntry
	err := h.locker.WithUpdateLock(ctx, cmd.ParcelID(), func(ctx context.Context) error {
		var err error
		track, err = h.apply(ctx, cmd)
		return err
	})

	metrics.TransitionsTotal.WithLabelValues(cmd.Status().String(), outcomeOf(err)).Inc()
	if err != nil {
		return nil, err
	}
	return track, nil
}

func (h *ApplyTransitionCommandHandler) apply(ctx context.Context, cmd ApplyTransitionCommand) ([]parcel.TrackEntry, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	result, err := p.ApplyTransition(parcel.TransitionRequest{
		Status:            cmd.Status(),
		BranchID:          cmd.BranchID(),
		RequesterBranchID: cmd.RequesterBranchID(),
		At:                now,
	})
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if result.ReleasedCourier != nil {
		if err = h.completeAssignment(ctx, uow.CourierRepository(), *result.ReleasedCourier, p.ID()); err != nil {
			return nil, err
		}
	}

	if cmd.Status().IsBranchCustody() && result.Entry.BranchID() != nil {
		if err = h.addToBranch(ctx, uow.BranchRepository(), *result.Entry.BranchID(), p.ID()); err != nil {
			return nil, err
		}
	}

	if cmd.Status().TriggersAccounting() {
		if err = uow.DeliveryQueue().Enqueue(ctx, p.ID(), now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p.Track(), nil
}

func (h *ApplyTransitionCommandHandler) completeAssignment(
	ctx context.Context,
	repo ports.CourierRepository,
	courierID, parcelID kernel.UUID,
) error {
	c, err := repo.Get(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.skip(ctx, "complete_assignment", "courier not found", parcelID, "courier_id", courierID.String())
		return nil
	}
	if err != nil {
		return err
	}

	err = c.CompleteAssignment(parcelID, h.clock())
	if errors.Is(err, courier.ErrAssignmentNotFound) {
		h.skip(ctx, "complete_assignment", "no pending assignment", parcelID, "courier_id", courierID.String())
		return nil
	}
	if err != nil {
		return err
	}

	return repo.Update(ctx, c)
}

func (h *ApplyTransitionCommandHandler) addToBranch(
	ctx context.Context,
	repo ports.BranchRepository,
	branchID, parcelID kernel.UUID,
) error {
	err := repo.AddParcel(ctx, branchID, parcelID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.skip(ctx, "branch_custody", "branch not found", parcelID, "branch_id", branchID.String())
		return nil
	}
	return err
}

func (h *ApplyTransitionCommandHandler) skip(ctx context.Context, effect, reason string, parcelID kernel.UUID, args ...any) {
	metrics.SideEffectsSkippedTotal.WithLabelValues(effect).Inc()
	h.logger.WarnContext(ctx, "transition side effect skipped",
		append([]any{"effect", effect, "reason", reason, "parcel_id", parcelID.String()}, args...)...)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, errs.ErrObjectNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return metrics.OutcomeAccessDenied
	case errors.Is(err, errs.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

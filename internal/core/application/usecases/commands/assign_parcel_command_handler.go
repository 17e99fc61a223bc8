package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"
)

// AssignParcelCommandHandler assigns a parcel to a courier under the parcel's
// update lock, records the pending assignment on the courier and counts the
// assignment for the custodian branch.
type AssignParcelCommandHandler struct {
	locker     ports.ParcelLocker
	uowFactory UoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewAssignParcelCommandHandler(
	locker ports.ParcelLocker,
	uowFactory UoWFactory,
	clock Clock,
	logger *slog.Logger,
) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{
		locker:     locker,
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "AssignParcelCommandHandler"),
	}
}

func (h *AssignParcelCommandHandler) Handle(ctx context.Context, cmd AssignParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.locker.WithUpdateLock(ctx, cmd.ParcelID(), func(ctx context.Context) error {
		return h.assign(ctx, cmd)
	})
}

func (h *AssignParcelCommandHandler) assign(ctx context.Context, cmd AssignParcelCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	courierRepo := uow.CourierRepository()

	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = p.Assign(c.ID(), cmd.DeliveryType()); err != nil {
		return err
	}

	if _, err = c.AddAssignment(p.ID(), cmd.DeliveryType(), h.clock()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	if custodian := p.Custodian(); custodian != nil {
		err = uow.BranchRepository().IncrementAssignCount(ctx, *custodian)
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "custodian branch not found, assignment not counted",
				"parcel_id", p.ID().String(), "branch_id", custodian.String())
			metrics.SideEffectsSkippedTotal.WithLabelValues("assign_count").Inc()
		} else if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/performance"
)

// CreateBranchCommandHandler persists a new branch together with its empty
// performance log, so the aggregation run always finds a log for it.
type CreateBranchCommandHandler struct {
	uowFactory BranchUoWFactory
}

func NewCreateBranchCommandHandler(uowFactory BranchUoWFactory) CreateBranchCommandHandler {
	return CreateBranchCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateBranchCommandHandler) Handle(ctx context.Context, cmd CreateBranchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := branch.NewBranch(cmd.BranchID(), cmd.Kind(), cmd.Name(), cmd.PromisedDeliveryTime())
	if err != nil {
		return err
	}

	log, err := performance.NewLog(b.ID(), b.Kind())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BranchRepository().Add(ctx, b); err != nil {
		return err
	}

	if err = uow.PerformanceLogRepository().Add(ctx, log); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

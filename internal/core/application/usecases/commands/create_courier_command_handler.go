package commands

import (
	"context"

	"logistics/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler registers a courier at an existing home branch.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns an ObjectNotFoundError for an unknown branch.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.BranchRepository().Get(ctx, cmd.BranchID()); err != nil {
		return err
	}

	courierEntity, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.BranchID())
	if err != nil {
		return err
	}

	if err = uow.CourierRepository().Add(ctx, courierEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

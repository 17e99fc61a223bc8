package commands

import (
	"context"

	"logistics/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler creates the parcel with its Created entry and adds
// it to the origin branch's parcel set in the same transaction.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateParcelCommandHandler(uowFactory UoWFactory, clock Clock) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
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

	branchRepo := uow.BranchRepository()
	if _, err := branchRepo.Get(ctx, cmd.OriginBranchID()); err != nil {
		return err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), cmd.Type(), cmd.OriginBranchID(), h.clock())
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return err
	}

	if err = branchRepo.AddParcel(ctx, cmd.OriginBranchID(), p.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

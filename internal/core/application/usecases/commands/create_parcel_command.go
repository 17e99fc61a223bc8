package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand registers a parcel at its originating branch.
type CreateParcelCommand struct {
	parcelID       kernel.UUID
	parcelType     parcel.Type
	originBranchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(parcelType parcel.Type, originBranchID kernel.UUID) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		parcelID: kernel.NewUUID(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcelType.Validate(),
		originBranchID.Validate(),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	command.parcelType = parcelType
	command.originBranchID = originBranchID
	return command, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c CreateParcelCommand) Type() parcel.Type { return c.parcelType }

func (c CreateParcelCommand) OriginBranchID() kernel.UUID { return c.originBranchID }

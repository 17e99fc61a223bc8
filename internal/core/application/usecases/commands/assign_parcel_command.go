package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand hands a parcel to a courier for first-mile collection or
// last-mile delivery.
type AssignParcelCommand struct {
	parcelID     kernel.UUID
	courierID    kernel.UUID
	deliveryType parcel.DeliveryType

	guard guard.ConstructorGuard
}

func NewAssignParcelCommand(
	parcelID, courierID kernel.UUID,
	deliveryType parcel.DeliveryType,
) (AssignParcelCommand, error) {
	command := AssignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	var typeErr error
	if deliveryType == parcel.Unassigned {
		typeErr = errs.NewValueIsRequiredError("delivery type")
	}

	if err := errors.Join(parcelID.Validate(), courierID.Validate(), typeErr); err != nil {
		return AssignParcelCommand{}, err
	}

	command.parcelID = parcelID
	command.courierID = courierID
	command.deliveryType = deliveryType
	return command, nil
}

func (c AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}

func (c AssignParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c AssignParcelCommand) CourierID() kernel.UUID { return c.courierID }

func (c AssignParcelCommand) DeliveryType() parcel.DeliveryType { return c.deliveryType }

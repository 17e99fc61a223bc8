package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand moves a parcel to a new status.
//
// BranchID is optional; without it the new entry names the current custodian.
// RequesterBranchID comes from the caller's authorization context and is only
// checked for held statuses.
type ApplyTransitionCommand struct {
	parcelID          kernel.UUID
	status            parcel.Status
	branchID          *kernel.UUID
	requesterBranchID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewApplyTransitionCommand(
	parcelID kernel.UUID,
	status parcel.Status,
	branchID *kernel.UUID,
	requesterBranchID *kernel.UUID,
) (ApplyTransitionCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		status.ValidateTransitionTarget(),
		validateOptional(branchID),
		validateOptional(requesterBranchID),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return ApplyTransitionCommand{
		parcelID:          parcelID,
		status:            status,
		branchID:          copyOptional(branchID),
		requesterBranchID: copyOptional(requesterBranchID),
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c ApplyTransitionCommand) Status() parcel.Status { return c.status }

func (c ApplyTransitionCommand) BranchID() *kernel.UUID { return copyOptional(c.branchID) }

func (c ApplyTransitionCommand) RequesterBranchID() *kernel.UUID {
	return copyOptional(c.requesterBranchID)
}

func validateOptional(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}

func copyOptional(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

package courier

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrAssignmentAlreadyCompleted is returned when completing an assignment twice.
	ErrAssignmentAlreadyCompleted = errors.New("assignment is already completed")
)

// Assignment is one parcel handed to a courier. It stays in the courier's list
// after completion so the history of sub-assignments is kept.
type Assignment struct {
	id           kernel.UUID
	parcelID     kernel.UUID
	deliveryType parcel.DeliveryType
	assignedAt   time.Time
	completedAt  *time.Time
	guard        guard.ConstructorGuard
}

// NewAssignment creates a pending assignment.
func NewAssignment(id, parcelID kernel.UUID, deliveryType parcel.DeliveryType, at time.Time) (*Assignment, error) {
	return RestoreAssignment(id, parcelID, deliveryType, at, nil)
}

// RestoreAssignment rebuilds an assignment from persistence.
func RestoreAssignment(
	id, parcelID kernel.UUID,
	deliveryType parcel.DeliveryType,
	assignedAt time.Time,
	completedAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		a.setDeliveryType(deliveryType),
	); err != nil {
		return nil, err
	}

	a.id = id
	a.parcelID = parcelID
	a.assignedAt = assignedAt.UTC()
	if completedAt != nil {
		c := completedAt.UTC()
		a.completedAt = &c
	}
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID { return a.id }

func (a *Assignment) ParcelID() kernel.UUID { return a.parcelID }

func (a *Assignment) DeliveryType() parcel.DeliveryType { return a.deliveryType }

func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

func (a *Assignment) CompletedAt() *time.Time { return a.completedAt }

func (a *Assignment) IsPending() bool { return a.completedAt == nil }

func (a *Assignment) complete(at time.Time) error {
	if !a.IsPending() {
		return ErrAssignmentAlreadyCompleted
	}
	t := at.UTC()
	a.completedAt = &t
	return nil
}

func (a *Assignment) setDeliveryType(deliveryType parcel.DeliveryType) error {
	if deliveryType == parcel.Unassigned {
		return errs.NewValueIsRequiredError("delivery type")
	}
	a.deliveryType = deliveryType
	return nil
}

package courier

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrAssignmentNotFound is returned when the courier has no pending assignment for a parcel.
	ErrAssignmentNotFound = errors.New("pending assignment not found")
	// ErrParcelAlreadyPending is returned when assigning a parcel the courier already carries.
	ErrParcelAlreadyPending = errors.New("parcel is already pending for this courier")
)

// Courier is a delivery person attached to a home branch.
//
// A courier holds a list of sub-assignments, one per parcel handed over for first-mile
// collection or last-mile delivery. When the parcel moves on to a status that clears
// its assignment, the matching pending entry is marked completed.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and a home branch
//   - A parcel can be pending at most once per courier
type Courier struct {
	id          kernel.UUID
	name        string
	branchID    kernel.UUID
	assignments []*Assignment
	guard       guard.ConstructorGuard
}

// NewCourier creates a courier with no assignments.
func NewCourier(id kernel.UUID, name string, branchID kernel.UUID) (*Courier, error) {
	return RestoreCourier(id, name, branchID, nil)
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including completed assignments.
func RestoreCourier(id kernel.UUID, name string, branchID kernel.UUID, assignments []*Assignment) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setBranchID(branchID),
		courier.setAssignments(assignments),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed. The zero value is invalid.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID { return c.id }

func (c *Courier) Name() string { return c.name }

// BranchID returns the branch the courier works for.
func (c *Courier) BranchID() kernel.UUID { return c.branchID }

// Assignments returns all assignments, pending and completed, in the order they were given.
func (c *Courier) Assignments() []*Assignment {
	out := make([]*Assignment, len(c.assignments))
	copy(out, c.assignments)
	return out
}

// PendingAssignments returns assignments not yet completed.
func (c *Courier) PendingAssignments() []*Assignment {
	var out []*Assignment
	for _, a := range c.assignments {
		if a.IsPending() {
			out = append(out, a)
		}
	}
	return out
}

// AddAssignment records a parcel handed to the courier.
//
// Returns ErrParcelAlreadyPending if the courier already has a pending
// assignment for the same parcel.
func (c *Courier) AddAssignment(parcelID kernel.UUID, deliveryType parcel.DeliveryType, at time.Time) (*Assignment, error) {
	if c.findPending(parcelID) != nil {
		return nil, ErrParcelAlreadyPending
	}

	a, err := NewAssignment(kernel.NewUUID(), parcelID, deliveryType, at)
	if err != nil {
		return nil, err
	}

	c.assignments = append(c.assignments, a)
	return a, nil
}

// CompleteAssignment marks the pending assignment for the parcel as completed.
func (c *Courier) CompleteAssignment(parcelID kernel.UUID, at time.Time) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	a := c.findPending(parcelID)
	if a == nil {
		return ErrAssignmentNotFound
	}
	return a.complete(at)
}

func (c *Courier) findPending(parcelID kernel.UUID) *Assignment {
	for _, a := range c.assignments {
		if a.IsPending() && a.ParcelID().IsEqual(parcelID) {
			return a
		}
	}
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch", err)
	}

	c.branchID = branchID
	return nil
}

// setAssignments is used during restoration. Every assignment must be valid.
func (c *Courier) setAssignments(assignments []*Assignment) error {
	for _, a := range assignments {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	c.assignments = make([]*Assignment, len(assignments))
	copy(c.assignments, assignments)
	return nil
}

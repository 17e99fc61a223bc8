package parcel

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not built by NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
	// ErrTrackIsEmpty is returned when restoring a parcel without any transition log entries.
	ErrTrackIsEmpty = errs.NewValueIsRequiredError("track status")
	// ErrParcelAlreadyAssigned is returned when assigning a parcel a courier already holds.
	ErrParcelAlreadyAssigned = errors.New("parcel is already assigned to a courier")
)

// Parcel is the aggregate root of the status transition engine. It owns the
// transition log and keeps the following invariants:
//   - the track log is non-empty and starts with a Created entry
//   - Status() always equals the status of the last track entry
//   - entries are only ever appended
//
// Timestamps are appended in call order and not independently validated.
type Parcel struct {
	id           kernel.UUID
	parcelType   Type
	track        []TrackEntry
	assignedTo   *kernel.UUID
	deliveryType DeliveryType
	guard        guard.ConstructorGuard
}

// TransitionRequest carries one status change.
//
// BranchID is the explicit branch supplied by the caller; when nil the custodian
// rule decides which branch the new entry names. RequesterBranchID identifies the
// branch acting on the parcel and is only checked for held statuses.
type TransitionRequest struct {
	Status            Status
	BranchID          *kernel.UUID
	RequesterBranchID *kernel.UUID
	At                time.Time
}

// TransitionResult describes what ApplyTransition changed so the caller can
// perform side effects outside of the aggregate.
type TransitionResult struct {
	Entry TrackEntry
	// ReleasedCourier is the courier whose assignment was cleared, if any.
	ReleasedCourier *kernel.UUID
}

// NewParcel creates a parcel with a single Created entry attributed to the
// originating branch.
func NewParcel(id kernel.UUID, parcelType Type, originBranchID kernel.UUID, at time.Time) (*Parcel, error) {
	if err := errors.Join(id.Validate(), parcelType.Validate(), originBranchID.Validate()); err != nil {
		return nil, err
	}

	created, err := NewTrackEntry(Created, &originBranchID, at)
	if err != nil {
		return nil, err
	}

	return &Parcel{
		id:         id,
		parcelType: parcelType,
		track:      []TrackEntry{created},
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreParcel rebuilds a parcel from persistence and re-checks the log invariants.
func RestoreParcel(
	id kernel.UUID,
	parcelType Type,
	track []TrackEntry,
	assignedTo *kernel.UUID,
	deliveryType DeliveryType,
) (*Parcel, error) {
	if err := errors.Join(id.Validate(), parcelType.Validate()); err != nil {
		return nil, err
	}
	if len(track) == 0 {
		return nil, ErrTrackIsEmpty
	}
	if track[0].Status() != Created {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"track status is invalid",
			fmt.Errorf("first entry is %s, expected %s", track[0].Status(), Created),
		)
	}
	if (assignedTo == nil) != (deliveryType == Unassigned) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"assignment is invalid",
			errors.New("assigned courier and delivery type must be set together"),
		)
	}

	restored := make([]TrackEntry, len(track))
	copy(restored, track)

	return &Parcel{
		id:           id,
		parcelType:   parcelType,
		track:        restored,
		assignedTo:   assignedTo,
		deliveryType: deliveryType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the parcel was built through a constructor.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID { return p.id }

func (p *Parcel) Type() Type { return p.parcelType }

// Status returns the status of the last track entry.
func (p *Parcel) Status() Status {
	return p.track[len(p.track)-1].Status()
}

// Track returns a copy of the transition log.
func (p *Parcel) Track() []TrackEntry {
	out := make([]TrackEntry, len(p.track))
	copy(out, p.track)
	return out
}

// AssignedTo returns the courier currently holding the parcel, or nil.
func (p *Parcel) AssignedTo() *kernel.UUID { return p.assignedTo }

func (p *Parcel) DeliveryType() DeliveryType { return p.deliveryType }

// Custodian returns the branch responsible for the parcel right now.
// See ResolveCustodian for the rule.
func (p *Parcel) Custodian() *kernel.UUID {
	return ResolveCustodian(p.track)
}

// ApplyTransition validates and appends one status change.
//
// Held statuses require req.RequesterBranchID to equal the custodian; a mismatch
// (or a missing requester branch) yields an AccessDeniedError and leaves the
// parcel untouched. Statuses in the clears-assignment class release the courier
// and report it in the result.
func (p *Parcel) ApplyTransition(req TransitionRequest) (TransitionResult, error) {
	if err := p.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := req.Status.ValidateTransitionTarget(); err != nil {
		return TransitionResult{}, err
	}

	custodian := p.Custodian()
	if req.Status.IsHeld() && (custodian == nil || !kernel.EqualOptional(custodian, req.RequesterBranchID)) {
		return TransitionResult{}, errs.NewAccessDeniedError(
			"apply status "+req.Status.String(),
			"requester is not the custodian branch of parcel "+p.id.String(),
		)
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = custodian
	}

	entry, err := NewTrackEntry(req.Status, branchID, req.At)
	if err != nil {
		return TransitionResult{}, err
	}
	p.track = append(p.track, entry)

	result := TransitionResult{Entry: entry}
	if req.Status.ClearsAssignment() && p.assignedTo != nil {
		result.ReleasedCourier = p.assignedTo
		p.assignedTo = nil
		p.deliveryType = Unassigned
	}

	return result, nil
}

// Assign hands the parcel to a courier for one leg of its journey.
func (p *Parcel) Assign(courierID kernel.UUID, deliveryType DeliveryType) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	if deliveryType == Unassigned {
		return errs.NewValueIsRequiredError("delivery type")
	}
	if p.Status().IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", p.Status()),
		)
	}
	if p.assignedTo != nil {
		return ErrParcelAlreadyAssigned
	}

	p.assignedTo = &courierID
	p.deliveryType = deliveryType
	return nil
}

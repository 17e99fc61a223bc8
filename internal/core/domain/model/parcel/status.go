package parcel

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the closed vocabulary of parcel states. Every value has a row in
// statusTable; the classes in that row drive the side effects of a transition.
//
// Outbound:     Created -> At Local Office -> At Regional Hub -> At Main Branch
// Destination:  At Destination Main Branch -> At Destination Regional Hub ->
//
//	At Destination Local Office -> Delivered | Ready to Pickup -> Pickup
//
// Held states (Held at Main Branch, Held at Regional Hub, Ready to Pickup) park a
// parcel at a branch and may only be applied by the current custodian.
type Status int

const (
	// Unknown catches uninitialized values and is never valid.
	Unknown Status = iota
	Created
	AtLocalOffice
	AtRegionalHub
	AtMainBranch
	AtDestinationLocalOffice
	AtDestinationRegionalHub
	AtDestinationMainBranch
	HeldAtMainBranch
	HeldAtRegionalHub
	ReadyToPickup
	PickedUp
	DeliveryAttempted
	DamagedInTransit
	LostInTransit
	Delivered
)

// class is a bit set of the behaviours attached to a status.
type class uint8

const (
	// classClearsAssignment clears assignedTo/deliveryType and completes the courier's pending entry.
	classClearsAssignment class = 1 << iota
	// classHeld requires the requester to be the current custodian.
	classHeld
	// classBranchCustody adds the parcel to the attributed branch's parcel set.
	classBranchCustody
	// classAccountingTrigger enqueues the parcel for performance aggregation.
	classAccountingTrigger
	// classTerminal ends the parcel's journey; no further assignment is possible.
	classTerminal
)

type statusInfo struct {
	name    string
	classes class
}

// statusTable is the single source of truth for names and classes.
// Created is only ever written by NewParcel and carries no transition class.
var statusTable = map[Status]statusInfo{
	Created:                  {"Created", 0},
	AtLocalOffice:            {"At Local Office", classClearsAssignment | classBranchCustody},
	AtRegionalHub:            {"At Regional Hub", classClearsAssignment | classBranchCustody},
	AtMainBranch:             {"At Main Branch", classClearsAssignment | classBranchCustody},
	AtDestinationLocalOffice: {"At Destination Local Office", classClearsAssignment | classBranchCustody},
	AtDestinationRegionalHub: {"At Destination Regional Hub", classClearsAssignment | classBranchCustody},
	AtDestinationMainBranch:  {"At Destination Main Branch", classClearsAssignment | classBranchCustody},
	HeldAtMainBranch:         {"Held at Main Branch", classClearsAssignment | classHeld},
	HeldAtRegionalHub:        {"Held at Regional Hub", classClearsAssignment | classHeld},
	ReadyToPickup:            {"Ready to Pickup (at the branch)", classClearsAssignment | classHeld},
	PickedUp:                 {"Pickup", classClearsAssignment | classAccountingTrigger | classTerminal},
	DeliveryAttempted:        {"Delivery Attempted", classClearsAssignment | classAccountingTrigger},
	DamagedInTransit:         {"Damaged in Transit", classClearsAssignment | classAccountingTrigger},
	LostInTransit:            {"Lost in Transit", classClearsAssignment | classAccountingTrigger | classTerminal},
	Delivered:                {"Delivered", classAccountingTrigger | classTerminal},
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	all := make([]Status, 0, len(statusTable))
	for s := Created; s <= Delivered; s++ {
		all = append(all, s)
	}
	return all
}

// ParseStatus maps the verbatim status name used on the wire to a Status.
func ParseStatus(name string) (Status, error) {
	for s, info := range statusTable {
		if info.name == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", name))
}

// Validate rejects Unknown and any value outside the vocabulary.
func (s Status) Validate() error {
	if _, ok := statusTable[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the verbatim wire name, or "Unknown".
func (s Status) String() string {
	if info, ok := statusTable[s]; ok {
		return info.name
	}
	return "Unknown"
}

func (s Status) has(c class) bool {
	return statusTable[s].classes&c != 0
}

// ClearsAssignment reports whether applying s releases the assigned courier.
func (s Status) ClearsAssignment() bool { return s.has(classClearsAssignment) }

// IsHeld reports whether s parks the parcel and requires a custodian match.
func (s Status) IsHeld() bool { return s.has(classHeld) }

// IsBranchCustody reports whether s is an arrival at a branch tier.
func (s Status) IsBranchCustody() bool { return s.has(classBranchCustody) }

// TriggersAccounting reports whether s queues the parcel for aggregation.
func (s Status) TriggersAccounting() bool { return s.has(classAccountingTrigger) }

// IsTerminal reports whether the parcel's journey ends at s.
func (s Status) IsTerminal() bool { return s.has(classTerminal) }

// ValidateTransitionTarget rejects statuses that cannot be applied by a transition:
// anything outside the vocabulary, and Created, which only NewParcel writes.
func (s Status) ValidateTransitionTarget() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is only written on parcel creation", s),
		)
	}
	return nil
}

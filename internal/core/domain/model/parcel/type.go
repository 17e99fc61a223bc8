package parcel

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Type tells whether the recipient receives the parcel at the door or collects it at a branch.
type Type int

const (
	UnknownType Type = iota
	TypeDeliver
	TypePickup
)

var typeNames = map[Type]string{
	TypeDeliver: "Deliver",
	TypePickup:  "Pickup",
}

// ParseType maps "Deliver" or "Pickup" to a Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a parcel type", name))
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%d is not a valid parcel type", t))
	}
	return nil
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// DeliveryType describes the leg a courier was assigned to carry.
type DeliveryType int

const (
	// Unassigned means no courier currently holds the parcel.
	Unassigned DeliveryType = iota
	// FirstMile is a collection from the sender to the origin office.
	FirstMile
	// LastMile is a hand-off from the destination office to the recipient.
	LastMile
)

var deliveryTypeNames = map[DeliveryType]string{
	Unassigned: "",
	FirstMile:  "first_mile",
	LastMile:   "last_mile",
}

// ParseDeliveryType accepts "first_mile" or "last_mile".
func ParseDeliveryType(name string) (DeliveryType, error) {
	for d, n := range deliveryTypeNames {
		if d != Unassigned && n == name {
			return d, nil
		}
	}
	return Unassigned, errs.NewValueIsInvalidErrorWithCause(
		"delivery type is invalid",
		fmt.Errorf("%q is not a delivery type", name),
	)
}

func (d DeliveryType) String() string {
	return deliveryTypeNames[d]
}

package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetParcelTrackingQueryIsNotConstructed = errors.New(
	"GetParcelTrackingQuery must be created via NewGetParcelTrackingQuery constructor",
)

// GetParcelTrackingQuery returns a parcel's current status and full track log.
//
// Example:
//
//	query, err := NewGetParcelTrackingQuery(parcelID)
//	if err != nil {
//	    return err
//	}
//	tracking, err := handler.Handle(ctx, query)
type GetParcelTrackingQuery struct {
	parcelID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetParcelTrackingQuery(parcelID kernel.UUID) (GetParcelTrackingQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelTrackingQuery{}, err
	}
	return GetParcelTrackingQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelTrackingQueryIsNotConstructed)
}

func (q GetParcelTrackingQuery) ParcelID() kernel.UUID { return q.parcelID }

// TrackEntryView is one entry of the log. BranchID is nil for courier custody.
type TrackEntryView struct {
	Status    string
	BranchID  *kernel.UUID
	Timestamp time.Time
}

type GetParcelTrackingQueryResponse struct {
	ID           kernel.UUID
	Type         string
	Status       string
	AssignedTo   *kernel.UUID
	DeliveryType string
	Track        []TrackEntryView
}

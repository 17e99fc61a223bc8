package parcel

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// TrackEntry is one append-only row of a parcel's transition log.
// BranchID is nil while the parcel is in a courier's hands.
type TrackEntry struct {
	status    Status
	branchID  *kernel.UUID
	timestamp time.Time
}

// NewTrackEntry builds an entry. The branch id is copied so later changes to the
// caller's value cannot rewrite history.
func NewTrackEntry(status Status, branchID *kernel.UUID, at time.Time) (TrackEntry, error) {
	if err := status.Validate(); err != nil {
		return TrackEntry{}, err
	}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return TrackEntry{}, err
		}
		id := *branchID
		branchID = &id
	}
	return TrackEntry{status: status, branchID: branchID, timestamp: at.UTC()}, nil
}

func (e TrackEntry) Status() Status { return e.status }

// BranchID returns the custodian branch recorded on the entry, or nil.
func (e TrackEntry) BranchID() *kernel.UUID {
	if e.branchID == nil {
		return nil
	}
	id := *e.branchID
	return &id
}

func (e TrackEntry) Timestamp() time.Time { return e.timestamp }

// ResolveCustodian applies the custodian rule to a log prefix: the branch on the
// last entry, or the branch on the second-to-last entry when the last one
// records courier custody. It returns nil when neither names a branch.
func ResolveCustodian(track []TrackEntry) *kernel.UUID {
	n := len(track)
	if n == 0 {
		return nil
	}
	if id := track[n-1].BranchID(); id != nil {
		return id
	}
	if n >= 2 {
		return track[n-2].BranchID()
	}
	return nil
}

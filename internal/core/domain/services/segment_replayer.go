package services

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

// CreditKind tells a replayed handling interval apart from a single-status trigger.
type CreditKind int

const (
	CreditSegment CreditKind = iota + 1
	CreditEvent
)

func (k CreditKind) String() string {
	switch k {
	case CreditSegment:
		return "segment"
	case CreditEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Credit is one unit of accounting work derived from a parcel's track.
//
// Key is stable for a given track position, so the same parcel replayed twice
// produces the same keys.
type Credit struct {
	Kind     CreditKind
	Key      string
	BranchID *kernel.UUID
	// From and To are the statuses matched against the tier allow-list. For events
	// both hold the trigger status.
	From  parcel.Status
	To    parcel.Status
	Hours float64
	At    time.Time
}

// SegmentReplayer walks a parcel's track with the (current, next, evaluated)
// window and returns what should be credited.
type SegmentReplayer struct{}

func NewSegmentReplayer() SegmentReplayer {
	return SegmentReplayer{}
}

// Replay returns the credited segments followed by the single-status triggers.
//
// For each window starting at i, next is track[i+1]. When next is a held status the
// evaluated entry is track[i+2], otherwise it is next itself. The window stops when
// no evaluated entry exists. The interval length is |next - current| so the held stay
// is excluded. The window then moves to the evaluated entry.
func (r SegmentReplayer) Replay(p *parcel.Parcel) ([]Credit, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	track := p.Track()
	credits := r.segments(p.Type(), track)
	return append(credits, r.events(track)...), nil
}

func (r SegmentReplayer) segments(t parcel.Type, track []parcel.TrackEntry) []Credit {
	var credits []Credit
	for i := 0; i+1 < len(track); {
		current, next := track[i], track[i+1]

		evaluated := i + 1
		if next.Status().IsHeld() {
			evaluated = i + 2
		}
		if evaluated >= len(track) {
			break
		}

		to := track[evaluated].Status()
		if parcel.IsCreditedSegment(current.Status(), t, to) {
			credits = append(credits, Credit{
				Kind:     CreditSegment,
				Key:      SegmentKey(i),
				BranchID: current.BranchID(),
				From:     current.Status(),
				To:       to,
				Hours:    next.Timestamp().Sub(current.Timestamp()).Abs().Hours(),
				At:       track[evaluated].Timestamp(),
			})
		}

		i = evaluated
	}
	return credits
}

func (r SegmentReplayer) events(track []parcel.TrackEntry) []Credit {
	var credits []Credit
	for j := 1; j < len(track); j++ {
		s := track[j].Status()
		if !s.TriggersAccounting() {
			continue
		}
		credits = append(credits, Credit{
			Kind:     CreditEvent,
			Key:      EventKey(j),
			BranchID: parcel.ResolveCustodian(track[:j+1]),
			From:     s,
			To:       s,
			At:       track[j].Timestamp(),
		})
	}
	return credits
}

// SegmentKey identifies the window starting at track index i.
func SegmentKey(i int) string { return fmt.Sprintf("segment:%d", i) }

// EventKey identifies the trigger at track index i.
func EventKey(i int) string { return fmt.Sprintf("event:%d", i) }

// ErrNoAttributableBranch is returned for a credit whose branch cannot be resolved.
var ErrNoAttributableBranch = errors.New("credit has no attributable branch")

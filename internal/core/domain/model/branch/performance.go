package branch

import (
	"math"
	"time"

	"logistics/internal/core/domain/model/parcel"
)

// Performance holds the counters shared by a branch's cumulative record and by
// each daily snapshot of its performance log. Averages are in hours, except
// AverageCustomerRating.
type Performance struct {
	TotalParcels          int64
	TotalDelivered        int64
	OnTimeDeliveries      int64
	TotalPickups          int64
	DeliveryAttempts      int64
	DamagedParcels        int64
	LostParcels           int64
	AverageDeliveryTime   float64
	AverageProcessingTime float64
	AverageCustomerRating float64
	ComplaintCount        int64
	CustomerCount         int64
	AssignDeliveryCount   int64
}

// SegmentOutcome reports how a credited segment was folded into the counters.
type SegmentOutcome struct {
	OnTime   bool
	Averaged bool
}

// RecordSegment counts one completed handling interval of the given length.
//
// The delivery is always counted. It is on time when hours <= promised (inclusive).
// The running average is only updated for finite, non-negative durations, using
// the post-increment delivered count.
func (p *Performance) RecordSegment(hours float64, promised time.Duration) SegmentOutcome {
	p.TotalDelivered++

	var outcome SegmentOutcome
	if !isUsableDuration(hours) {
		return outcome
	}

	if hours <= promised.Hours() {
		p.OnTimeDeliveries++
		outcome.OnTime = true
	}

	p.AverageDeliveryTime = IncrementalMean(p.AverageDeliveryTime, p.TotalDelivered, hours)
	outcome.Averaged = true
	return outcome
}

// RecordEvent counts a single-status trigger. It reports false for statuses
// that carry no branch counter.
func (p *Performance) RecordEvent(status parcel.Status) bool {
	switch status {
	case parcel.PickedUp:
		p.TotalPickups++
	case parcel.DeliveryAttempted:
		p.DeliveryAttempts++
	case parcel.DamagedInTransit:
		p.DamagedParcels++
	case parcel.LostInTransit:
		p.LostParcels++
	case parcel.Delivered:
	default:
		return false
	}
	p.TotalParcels++
	return true
}

// OnTimeRate returns the share of delivered parcels handled within the promise.
func (p Performance) OnTimeRate() float64 {
	if p.TotalDelivered == 0 {
		return 0
	}
	return float64(p.OnTimeDeliveries) / float64(p.TotalDelivered)
}

// IncrementalMean folds x into a running mean over n samples, n counting x.
func IncrementalMean(oldMean float64, n int64, x float64) float64 {
	if n <= 0 {
		return oldMean
	}
	return (oldMean*float64(n-1) + x) / float64(n)
}

func isUsableDuration(hours float64) bool {
	return !math.IsNaN(hours) && !math.IsInf(hours, 0) && hours >= 0
}

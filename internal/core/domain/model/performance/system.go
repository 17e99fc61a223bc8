package performance

import "logistics/internal/core/domain/model/branch"

// SystemPerformance is the singleton network-wide record. Totals are additive,
// best-of fields are recomputed from the top-tier branches by the rollup.
type SystemPerformance struct {
	TotalDelivered            int64
	TotalPickups              int64
	BestAverageDeliveryTime   float64
	BestAverageProcessingTime float64
	BestAverageCustomerRating float64
	TotalComplaints           int64
	TotalCustomers            int64
}

// Rollup is the result of scanning all top-tier branches.
type Rollup struct {
	BestAverageDeliveryTime   float64
	BestAverageProcessingTime float64
	BestAverageCustomerRating float64
	TotalComplaints           int64
	TotalCustomers            int64
	BranchCount               int
}

func (s *SystemPerformance) RecordDelivered() { s.TotalDelivered++ }

func (s *SystemPerformance) RecordPickup() { s.TotalPickups++ }

// Apply overwrites the best-of fields and the complaint and customer totals.
func (s *SystemPerformance) Apply(r Rollup) {
	s.BestAverageDeliveryTime = r.BestAverageDeliveryTime
	s.BestAverageProcessingTime = r.BestAverageProcessingTime
	s.BestAverageCustomerRating = r.BestAverageCustomerRating
	s.TotalComplaints = r.TotalComplaints
	s.TotalCustomers = r.TotalCustomers
}

// ComputeRollup takes the minimum average delivery and processing times, the
// maximum rating and the sum of complaints and customers over the top-tier
// branches. Branches of other kinds are ignored. With no top-tier branches all
// fields are zero.
func ComputeRollup(branches []*branch.Branch) Rollup {
	var r Rollup
	for _, b := range branches {
		if !b.Kind().IsTopTier() {
			continue
		}
		p := b.Performance()
		if r.BranchCount == 0 {
			r.BestAverageDeliveryTime = p.AverageDeliveryTime
			r.BestAverageProcessingTime = p.AverageProcessingTime
			r.BestAverageCustomerRating = p.AverageCustomerRating
		} else {
			r.BestAverageDeliveryTime = min(r.BestAverageDeliveryTime, p.AverageDeliveryTime)
			r.BestAverageProcessingTime = min(r.BestAverageProcessingTime, p.AverageProcessingTime)
			r.BestAverageCustomerRating = max(r.BestAverageCustomerRating, p.AverageCustomerRating)
		}
		r.TotalComplaints += p.ComplaintCount
		r.TotalCustomers += p.CustomerCount
		r.BranchCount++
	}
	return r
}

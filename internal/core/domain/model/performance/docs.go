// Package performance provides the per-branch daily performance log and the
// network-wide SystemPerformance record maintained by the aggregation run.
//
// Days are UTC calendar days.
package performance

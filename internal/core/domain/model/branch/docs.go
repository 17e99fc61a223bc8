// Package branch provides the Branch aggregate shared by the three tiers of the
// logistics hierarchy (Main Branch, Regional Hub, Local Office) and the
// Performance counters it accumulates.
//
// Counters are additive. Averages use the incremental mean
// new = (old*(n-1) + x) / n, applied independently to the cumulative record and
// to each daily snapshot.
package branch

// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - SegmentReplayer: turns a parcel's transition log into segment and event credits
//     for the performance aggregation run
package services

// Package parcel provides the Parcel aggregate and its status state machine.
//
// The package includes:
//   - Status: the closed status vocabulary and the class table that drives
//     transition side effects (clears-assignment, held, branch-custody,
//     accounting-trigger)
//   - Type and DeliveryType: parcel and courier-leg classifications
//   - TrackEntry: one row of the append-only transition log
//   - Parcel: the aggregate that validates and appends transitions
//   - IsCreditedSegment: the tier allow-list replayed by performance aggregation
//
// Key business rules:
//   - A parcel is created with a single Created entry and Created is never applied again
//   - Held statuses may only be applied by the current custodian branch
//   - The custodian is the branch on the last entry, falling back to the one before it
//     when the last entry records courier custody
package parcel

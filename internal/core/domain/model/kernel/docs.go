// Package kernel provides the identifier value object shared by every aggregate
// of the logistics domain: parcels, branches and couriers.
//
// UUID is immutable and safe for concurrent use. Its zero value is invalid, so a
// missing identifier is detected by Validate rather than silently persisted.
package kernel

// Package courier provides the Courier aggregate: a delivery person attached to a
// home branch, with the list of parcel sub-assignments they carry.
//
// The package includes:
//   - Courier: the aggregate root holding identity, home branch and assignments
//   - Assignment: an entity recording one parcel handed over, and when it was completed
//
// Assignments are created by AssignParcel and completed by the status transition
// engine when a parcel reaches a status that clears its assignment.
package courier

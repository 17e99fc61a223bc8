package parcel

// segmentKey is one row of the tier allow-list: the status that opened a handling
// interval, the parcel type, and the status that closed it.
type segmentKey struct {
	from       Status
	parcelType Type
	to         Status
}

// creditedSegments lists the tier transitions that count as a completed handling
// interval for the branch named on the opening entry.
//
// The Pickup rows do not mirror the Deliver rows: a pickup parcel moving from the
// destination regional hub to the destination local office is not credited, while
// the same move of a deliver parcel is. This matches the production rule table and
// is kept on purpose until product confirms it.
var creditedSegments = map[segmentKey]struct{}{
	// outbound, both types
	{AtLocalOffice, TypeDeliver, AtRegionalHub}: {},
	{AtRegionalHub, TypeDeliver, AtMainBranch}:  {},
	{AtLocalOffice, TypePickup, AtRegionalHub}:  {},
	{AtRegionalHub, TypePickup, AtMainBranch}:   {},

	// destination side, deliver parcels
	{AtDestinationMainBranch, TypeDeliver, AtDestinationRegionalHub}:  {},
	{AtDestinationRegionalHub, TypeDeliver, AtDestinationLocalOffice}: {},
	{AtDestinationLocalOffice, TypeDeliver, Delivered}:                {},

	// destination side, pickup parcels
	{AtDestinationMainBranch, TypePickup, AtDestinationRegionalHub}: {},
	{AtDestinationLocalOffice, TypePickup, PickedUp}:                {},
}

// IsCreditedSegment reports whether moving a parcel of type t from status from
// to status to completes a handling interval attributable to a branch.
func IsCreditedSegment(from Status, t Type, to Status) bool {
	_, ok := creditedSegments[segmentKey{from: from, parcelType: t, to: to}]
	return ok
}

package branch

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const maxPromisedDeliveryTime = 30 * 24 * time.Hour

var (
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
)

// Branch is a Main Branch, Regional Hub or Local Office. The tiers differ only by
// Kind, so aggregation code handles all of them through this one type.
//
// Membership in the parcel set is written by the branch repository with an atomic
// append; the aggregate only exposes it for reading.
type Branch struct {
	id                   kernel.UUID
	kind                 Kind
	name                 string
	promisedDeliveryTime time.Duration
	performance          Performance
	parcelIDs            []kernel.UUID
	guard                guard.ConstructorGuard
}

// NewBranch creates a branch with zeroed counters and an empty parcel set.
func NewBranch(id kernel.UUID, kind Kind, name string, promised time.Duration) (*Branch, error) {
	return RestoreBranch(id, kind, name, promised, Performance{}, nil)
}

// RestoreBranch rebuilds a branch from persistence.
func RestoreBranch(
	id kernel.UUID,
	kind Kind,
	name string,
	promised time.Duration,
	performance Performance,
	parcelIDs []kernel.UUID,
) (*Branch, error) {
	b := &Branch{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		b.setID(id),
		b.setKind(kind),
		b.setName(name),
		b.setPromisedDeliveryTime(promised),
	); err != nil {
		return nil, err
	}

	b.performance = performance
	b.parcelIDs = append([]kernel.UUID(nil), parcelIDs...)
	return b, nil
}

func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b *Branch) ID() kernel.UUID { return b.id }

func (b *Branch) Kind() Kind { return b.kind }

func (b *Branch) Name() string { return b.name }

// PromisedDeliveryTime is the SLA threshold a handling interval is compared against.
func (b *Branch) PromisedDeliveryTime() time.Duration { return b.promisedDeliveryTime }

// Performance returns a copy of the cumulative counters.
func (b *Branch) Performance() Performance { return b.performance }

// ParcelIDs returns the parcels currently or historically in the branch's custody.
func (b *Branch) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), b.parcelIDs...)
}

// HasParcel reports whether the parcel ever arrived at this branch.
func (b *Branch) HasParcel(id kernel.UUID) bool {
	for _, p := range b.parcelIDs {
		if p.IsEqual(id) {
			return true
		}
	}
	return false
}

// RecordSegment credits the branch with one completed handling interval.
func (b *Branch) RecordSegment(hours float64) SegmentOutcome {
	return b.performance.RecordSegment(hours, b.promisedDeliveryTime)
}

// RecordEvent counts a single-status trigger attributed to the branch.
func (b *Branch) RecordEvent(status parcel.Status) bool {
	return b.performance.RecordEvent(status)
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	b.kind = kind
	return nil
}

func (b *Branch) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}

func (b *Branch) setPromisedDeliveryTime(promised time.Duration) error {
	if promised <= 0 || promised > maxPromisedDeliveryTime {
		return errs.NewValueIsOutOfRangeError("promised delivery time", promised, time.Duration(1), maxPromisedDeliveryTime)
	}
	b.promisedDeliveryTime = promised
	return nil
}

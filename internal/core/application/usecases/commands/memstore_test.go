package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/performance"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// memStore is an in-memory backing for every port. It has no transactions:
// writes are visible immediately and Rollback is a no-op.
type memStore struct {
	mu       sync.Mutex
	parcels  map[kernel.UUID]*parcel.Parcel
	branches map[kernel.UUID]*branch.Branch
	couriers map[kernel.UUID]*courier.Courier
	logs     map[kernel.UUID]*performance.Log
	system   *performance.SystemPerformance
	queue    map[kernel.UUID]*queueRow
	ledger   map[string]struct{}
	locks    map[kernel.UUID]bool

	// onParcelGet runs outside the store mutex before every parcel read.
	onParcelGet func()
	// parcelGetErr makes reads of the listed parcels fail.
	parcelGetErr map[kernel.UUID]error
}

type queueRow struct {
	enqueuedAt  time.Time
	processedAt *time.Time
}

func newMemStore() *memStore {
	return &memStore{
		parcels:  make(map[kernel.UUID]*parcel.Parcel),
		branches: make(map[kernel.UUID]*branch.Branch),
		couriers: make(map[kernel.UUID]*courier.Courier),
		logs:     make(map[kernel.UUID]*performance.Log),
		system:   &performance.SystemPerformance{},
		queue:    make(map[kernel.UUID]*queueRow),
		ledger:   make(map[string]struct{}),
		locks:    make(map[kernel.UUID]bool),
	}
}

func (s *memStore) Create() commands.UoW { return memUoW{s} }

func copyParcel(p *parcel.Parcel) *parcel.Parcel {
	c, err := parcel.RestoreParcel(p.ID(), p.Type(), p.Track(), p.AssignedTo(), p.DeliveryType())
	if err != nil {
		panic(err)
	}
	return c
}

func copyBranch(b *branch.Branch, perf branch.Performance, ids []kernel.UUID) *branch.Branch {
	c, err := branch.RestoreBranch(b.ID(), b.Kind(), b.Name(), b.PromisedDeliveryTime(), perf, ids)
	if err != nil {
		panic(err)
	}
	return c
}

func copyCourier(c *courier.Courier) *courier.Courier {
	var as []*courier.Assignment
	for _, a := range c.Assignments() {
		ca, err := courier.RestoreAssignment(a.ID(), a.ParcelID(), a.DeliveryType(), a.AssignedAt(), a.CompletedAt())
		if err != nil {
			panic(err)
		}
		as = append(as, ca)
	}
	cc, err := courier.RestoreCourier(c.ID(), c.Name(), c.BranchID(), as)
	if err != nil {
		panic(err)
	}
	return cc
}

func copyLog(l *performance.Log) *performance.Log {
	c, err := performance.RestoreLog(l.BranchID(), l.Kind(), l.Snapshots())
	if err != nil {
		panic(err)
	}
	return c
}

func notFound(kind string, id kernel.UUID) error {
	return errs.NewObjectNotFoundError(kind, id.String())
}

type memUoW struct{ s *memStore }

func (memUoW) Begin(context.Context) error    { return nil }
func (memUoW) Commit(context.Context) error   { return nil }
func (memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) ParcelRepository() ports.ParcelRepository   { return memParcels{u.s} }
func (u memUoW) BranchRepository() ports.BranchRepository   { return memBranches{u.s} }
func (u memUoW) CourierRepository() ports.CourierRepository { return memCouriers{u.s} }
func (u memUoW) DeliveryQueue() ports.DeliveryQueue         { return memQueue{u.s} }
func (u memUoW) PerformanceLogRepository() ports.PerformanceLogRepository {
	return memLogs{u.s}
}
func (u memUoW) SystemPerformanceRepository() ports.SystemPerformanceRepository {
	return memSystem{u.s}
}
func (u memUoW) SegmentLedger() ports.SegmentLedger { return memLedger{u.s} }

type memParcels struct{ s *memStore }

func (r memParcels) Add(_ context.Context, p *parcel.Parcel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parcels[p.ID()]; ok {
		return errs.NewConflictError("parcel", p.ID().String())
	}
	r.s.parcels[p.ID()] = copyParcel(p)
	return nil
}

func (r memParcels) Update(_ context.Context, p *parcel.Parcel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parcels[p.ID()]; !ok {
		return notFound("parcel", p.ID())
	}
	r.s.parcels[p.ID()] = copyParcel(p)
	return nil
}

func (r memParcels) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if r.s.onParcelGet != nil {
		r.s.onParcelGet()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err, ok := r.s.parcelGetErr[id]; ok {
		return nil, err
	}
	p, ok := r.s.parcels[id]
	if !ok {
		return nil, notFound("parcel", id)
	}
	return copyParcel(p), nil
}

type memBranches struct{ s *memStore }

func (r memBranches) Add(_ context.Context, b *branch.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.branches[b.ID()] = copyBranch(b, b.Performance(), b.ParcelIDs())
	return nil
}

func (r memBranches) UpdatePerformance(_ context.Context, b *branch.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.branches[b.ID()]
	if !ok {
		return notFound("branch", b.ID())
	}
	perf := b.Performance()
	perf.AssignDeliveryCount = stored.Performance().AssignDeliveryCount
	r.s.branches[b.ID()] = copyBranch(stored, perf, stored.ParcelIDs())
	return nil
}

func (r memBranches) Get(_ context.Context, id kernel.UUID) (*branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.branches[id]
	if !ok {
		return nil, notFound("branch", id)
	}
	return copyBranch(b, b.Performance(), b.ParcelIDs()), nil
}

func (r memBranches) GetAllByKind(_ context.Context, kind branch.Kind) ([]*branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*branch.Branch
	for _, b := range r.s.branches {
		if b.Kind() == kind {
			out = append(out, copyBranch(b, b.Performance(), b.ParcelIDs()))
		}
	}
	return out, nil
}

func (r memBranches) AddParcel(_ context.Context, branchID, parcelID kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.branches[branchID]
	if !ok {
		return notFound("branch", branchID)
	}
	if b.HasParcel(parcelID) {
		return nil
	}
	r.s.branches[branchID] = copyBranch(b, b.Performance(), append(b.ParcelIDs(), parcelID))
	return nil
}

func (r memBranches) IncrementAssignCount(_ context.Context, branchID kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.branches[branchID]
	if !ok {
		return notFound("branch", branchID)
	}
	perf := b.Performance()
	perf.AssignDeliveryCount++
	r.s.branches[branchID] = copyBranch(b, perf, b.ParcelIDs())
	return nil
}

type memCouriers struct{ s *memStore }

func (r memCouriers) Add(_ context.Context, c *courier.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.couriers[c.ID()] = copyCourier(c)
	return nil
}

func (r memCouriers) Update(_ context.Context, c *courier.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.couriers[c.ID()]; !ok {
		return notFound("courier", c.ID())
	}
	r.s.couriers[c.ID()] = copyCourier(c)
	return nil
}

func (r memCouriers) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[id]
	if !ok {
		return nil, notFound("courier", id)
	}
	return copyCourier(c), nil
}

type memQueue struct{ s *memStore }

func (q memQueue) Enqueue(_ context.Context, parcelID kernel.UUID, at time.Time) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if row, ok := q.s.queue[parcelID]; ok && row.processedAt == nil {
		return nil
	}
	q.s.queue[parcelID] = &queueRow{enqueuedAt: at}
	return nil
}

func queueItemLess(a, b ports.QueueItem) bool {
	if !a.EnqueuedAt.Equal(b.EnqueuedAt) {
		return a.EnqueuedAt.Before(b.EnqueuedAt)
	}
	return a.ParcelID.String() < b.ParcelID.String()
}

func (q memQueue) Pending(_ context.Context, after *ports.QueueItem, limit int) ([]ports.QueueItem, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var items []ports.QueueItem
	for id, row := range q.s.queue {
		item := ports.QueueItem{ParcelID: id, EnqueuedAt: row.enqueuedAt}
		if row.processedAt == nil && (after == nil || queueItemLess(*after, item)) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return queueItemLess(items[i], items[j]) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (q memQueue) Ack(_ context.Context, item ports.QueueItem, at time.Time) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	row, ok := q.s.queue[item.ParcelID]
	if ok && row.processedAt == nil && row.enqueuedAt.Equal(item.EnqueuedAt) {
		row.processedAt = &at
	}
	return nil
}

func (q memQueue) PendingCount(ctx context.Context) (int64, error) {
	items, err := q.Pending(ctx, nil, 0)
	return int64(len(items)), err
}

type memLogs struct{ s *memStore }

func (r memLogs) Add(_ context.Context, l *performance.Log) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs[l.BranchID()] = copyLog(l)
	return nil
}

func (r memLogs) Get(_ context.Context, branchID kernel.UUID) (*performance.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.logs[branchID]
	if !ok {
		return nil, notFound("performance log", branchID)
	}
	return copyLog(l), nil
}

func (r memLogs) Save(_ context.Context, l *performance.Log) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs[l.BranchID()] = copyLog(l)
	return nil
}

type memSystem struct{ s *memStore }

func (r memSystem) Get(context.Context) (*performance.SystemPerformance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.system == nil {
		return nil, errs.NewObjectNotFoundError("system performance", "singleton")
	}
	c := *r.s.system
	return &c, nil
}

func (r memSystem) Save(_ context.Context, sp *performance.SystemPerformance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *sp
	r.s.system = &c
	return nil
}

func (r memSystem) Ensure(context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.system == nil {
		r.s.system = &performance.SystemPerformance{}
	}
	return nil
}

type memLedger struct{ s *memStore }

func (l memLedger) MarkProcessed(_ context.Context, parcelID kernel.UUID, key string) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	k := parcelID.String() + "/" + key
	if _, ok := l.s.ledger[k]; ok {
		return false, nil
	}
	l.s.ledger[k] = struct{}{}
	return true, nil
}

// memLocker acquires the parcel flag atomically under the store mutex.
type memLocker struct{ s *memStore }

func (l memLocker) WithUpdateLock(ctx context.Context, id kernel.UUID, fn func(context.Context) error) error {
	l.s.mu.Lock()
	if _, ok := l.s.parcels[id]; !ok {
		l.s.mu.Unlock()
		return notFound("parcel", id)
	}
	if l.s.locks[id] {
		l.s.mu.Unlock()
		return errs.NewConflictError("parcel", id.String())
	}
	l.s.locks[id] = true
	l.s.mu.Unlock()

	defer func() {
		l.s.mu.Lock()
		delete(l.s.locks, id)
		l.s.mu.Unlock()
	}()

	return fn(ctx)
}

type memRunLocker struct{ mu sync.Mutex }

func (l *memRunLocker) TryLock(context.Context) (func(), bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}
	return l.mu.Unlock, true, nil
}

// seedBranch stores a branch with an empty performance log.
func (s *memStore) seedBranch(kind branch.Kind, promised time.Duration) *branch.Branch {
	b, err := branch.NewBranch(kernel.NewUUID(), kind, kind.String(), promised)
	if err != nil {
		panic(err)
	}
	l, err := performance.NewLog(b.ID(), kind)
	if err != nil {
		panic(err)
	}
	s.branches[b.ID()] = b
	s.logs[b.ID()] = l
	return b
}

func (s *memStore) branch(id kernel.UUID) *branch.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branches[id]
}

func (s *memStore) parcel(id kernel.UUID) *parcel.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcels[id]
}

func (s *memStore) pending() int {
	n, _ := memQueue{s}.PendingCount(context.Background())
	return int(n)
}

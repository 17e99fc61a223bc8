package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/performance"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing.
type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Add(ctx context.Context, b *branch.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) UpdatePerformance(ctx context.Context, b *branch.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*branch.Branch)
	return b, args.Error(1)
}

func (m *MockBranchRepository) GetAllByKind(ctx context.Context, kind branch.Kind) ([]*branch.Branch, error) {
	args := m.Called(ctx, kind)
	bs, _ := args.Get(0).([]*branch.Branch)
	return bs, args.Error(1)
}

func (m *MockBranchRepository) AddParcel(ctx context.Context, branchID, parcelID kernel.UUID) error {
	return m.Called(ctx, branchID, parcelID).Error(0)
}

func (m *MockBranchRepository) IncrementAssignCount(ctx context.Context, branchID kernel.UUID) error {
	return m.Called(ctx, branchID).Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

type MockDeliveryQueue struct{ mock.Mock }

func (m *MockDeliveryQueue) Enqueue(ctx context.Context, parcelID kernel.UUID, at time.Time) error {
	return m.Called(ctx, parcelID, at).Error(0)
}

func (m *MockDeliveryQueue) Pending(ctx context.Context, after *ports.QueueItem, limit int) ([]ports.QueueItem, error) {
	args := m.Called(ctx, after, limit)
	items, _ := args.Get(0).([]ports.QueueItem)
	return items, args.Error(1)
}

func (m *MockDeliveryQueue) Ack(ctx context.Context, item ports.QueueItem, at time.Time) error {
	return m.Called(ctx, item, at).Error(0)
}

func (m *MockDeliveryQueue) PendingCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPerformanceLogRepository struct{ mock.Mock }

func (m *MockPerformanceLogRepository) Add(ctx context.Context, l *performance.Log) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockPerformanceLogRepository) Get(ctx context.Context, branchID kernel.UUID) (*performance.Log, error) {
	args := m.Called(ctx, branchID)
	l, _ := args.Get(0).(*performance.Log)
	return l, args.Error(1)
}

func (m *MockPerformanceLogRepository) Save(ctx context.Context, l *performance.Log) error {
	return m.Called(ctx, l).Error(0)
}

type MockSystemPerformanceRepository struct{ mock.Mock }

func (m *MockSystemPerformanceRepository) Get(ctx context.Context) (*performance.SystemPerformance, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*performance.SystemPerformance)
	return s, args.Error(1)
}

func (m *MockSystemPerformanceRepository) Save(ctx context.Context, s *performance.SystemPerformance) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSystemPerformanceRepository) Ensure(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSegmentLedger struct{ mock.Mock }

func (m *MockSegmentLedger) MarkProcessed(ctx context.Context, parcelID kernel.UUID, key string) (bool, error) {
	args := m.Called(ctx, parcelID, key)
	return args.Bool(0), args.Error(1)
}

// MockUoW implements every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	return m.Called().Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) BranchRepository() ports.BranchRepository {
	return m.Called().Get(0).(ports.BranchRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) DeliveryQueue() ports.DeliveryQueue {
	return m.Called().Get(0).(ports.DeliveryQueue)
}

func (m *MockUoW) PerformanceLogRepository() ports.PerformanceLogRepository {
	return m.Called().Get(0).(ports.PerformanceLogRepository)
}

func (m *MockUoW) SystemPerformanceRepository() ports.SystemPerformanceRepository {
	return m.Called().Get(0).(ports.SystemPerformanceRepository)
}

func (m *MockUoW) SegmentLedger() ports.SegmentLedger {
	return m.Called().Get(0).(ports.SegmentLedger)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockBranchUoWFactory struct{ mock.Mock }

func (m *MockBranchUoWFactory) Create() commands.BranchUoW {
	return m.Called().Get(0).(commands.BranchUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	return m.Called().Get(0).(commands.CourierUoW)
}

// passThroughLocker runs fn without locking, for handlers tested with mocks.
type passThroughLocker struct{}

func (passThroughLocker) WithUpdateLock(ctx context.Context, _ kernel.UUID, fn func(context.Context) error) error {
	return fn(ctx)
}

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

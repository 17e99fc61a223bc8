package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.DiscardHandler)

func newTransitionCmd(t *testing.T, id kernel.UUID, s parcel.Status, branchID, requester *kernel.UUID) commands.ApplyTransitionCommand {
	t.Helper()
	cmd, err := commands.NewApplyTransitionCommand(id, s, branchID, requester)
	require.NoError(t, err)
	return cmd
}

func TestApplyTransitionCommandHandler_Handle_WithMocks(t *testing.T) {
	origin := kernel.NewUUID()
	hub := kernel.NewUUID()

	setup := func(t *testing.T, p *parcel.Parcel) (*MockUoW, *MockUoWFactory, *MockParcelRepository, *MockBranchRepository, *MockDeliveryQueue) {
		t.Helper()
		uow, factory := new(MockUoW), new(MockUoWFactory)
		parcels, branches, queue := new(MockParcelRepository), new(MockBranchRepository), new(MockDeliveryQueue)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.On("ParcelRepository").Return(parcels).Maybe()
		uow.On("BranchRepository").Return(branches).Maybe()
		uow.On("DeliveryQueue").Return(queue).Maybe()
		parcels.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
		return uow, factory, parcels, branches, queue
	}

	t.Run("should append entry, add to branch set and commit", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), parcel.TypeDeliver, origin, fixedNow.Add(-time.Hour))
		require.NoError(t, err)
		uow, factory, parcels, branches, queue := setup(t, p)

		parcels.On("Update", mock.Anything, p).Return(nil).Once()
		branches.On("AddParcel", mock.Anything, hub, p.ID()).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewApplyTransitionCommandHandler(passThroughLocker{}, factory, fixedClock, testLogger)
		track, err := handler.Handle(t.Context(), newTransitionCmd(t, p.ID(), parcel.AtRegionalHub, &hub, nil))

		require.NoError(t, err)
		require.Len(t, track, 2)
		assert.Equal(t, parcel.AtRegionalHub, track[1].Status())
		assert.Equal(t, fixedNow, track[1].Timestamp())
		queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
		parcels.AssertExpectations(t)
		branches.AssertExpectations(t)
	})

	t.Run("should skip a missing branch and still commit", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), parcel.TypeDeliver, origin, fixedNow)
		require.NoError(t, err)
		uow, factory, parcels, branches, _ := setup(t, p)

		parcels.On("Update", mock.Anything, p).Return(nil).Once()
		branches.On("AddParcel", mock.Anything, hub, p.ID()).
			Return(errs.NewObjectNotFoundError("branch", hub.String())).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewApplyTransitionCommandHandler(passThroughLocker{}, factory, fixedClock, testLogger)
		_, err = handler.Handle(t.Context(), newTransitionCmd(t, p.ID(), parcel.AtRegionalHub, &hub, nil))

		require.NoError(t, err)
		uow.AssertExpectations(t)
	})

	t.Run("should enqueue accounting triggers", func(t *testing.T) {
		p, err := parcel.NewParcel(kernel.NewUUID(), parcel.TypeDeliver, origin, fixedNow)
		require.NoError(t, err)
		uow, factory, parcels, _, queue := setup(t, p)

		parcels.On("Update", mock.Anything, p).Return(nil).Once()
		queue.On("Enqueue", mock.Anything, p.ID(), fixedNow).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		handler := commands.NewApplyTransitionCommandHandler(passThroughLocker{}, factory, fixedClock, testLogger)
		_, err = handler.Handle(t.Context(), newTransitionCmd(t, p.ID(), parcel.DamagedInTransit, nil, nil))

		require.NoError(t, err)
		queue.AssertExpectations(t)
	})

	t.Run("should not commit when the parcel is missing", func(t *testing.T) {
		id := kernel.NewUUID()
		uow, factory := new(MockUoW), new(MockUoWFactory)
		parcels := new(MockParcelRepository)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.On("ParcelRepository").Return(parcels).Once()
		parcels.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("parcel", id.String())).Once()

		handler := commands.NewApplyTransitionCommandHandler(passThroughLocker{}, factory, fixedClock, testLogger)
		_, err := handler.Handle(t.Context(), newTransitionCmd(t, id, parcel.AtLocalOffice, nil, nil))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

type transitionFixture struct {
	store   *memStore
	handler commands.ApplyTransitionCommandHandler
	office  *branch.Branch
	hub     *branch.Branch
	parcel  *parcel.Parcel
}

func newTransitionFixture(t *testing.T) *transitionFixture {
	t.Helper()
	store := newMemStore()
	office := store.seedBranch(branch.LocalOffice, 24*time.Hour)
	hub := store.seedBranch(branch.RegionalHub, 24*time.Hour)

	p, err := parcel.NewParcel(kernel.NewUUID(), parcel.TypeDeliver, office.ID(), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	store.parcels[p.ID()] = p

	return &transitionFixture{
		store:   store,
		handler: commands.NewApplyTransitionCommandHandler(memLocker{store}, store, fixedClock, testLogger),
		office:  office,
		hub:     hub,
		parcel:  p,
	}
}

func (f *transitionFixture) apply(t *testing.T, s parcel.Status, branchID, requester *kernel.UUID) error {
	t.Helper()
	_, err := f.handler.Handle(t.Context(), newTransitionCmd(t, f.parcel.ID(), s, branchID, requester))
	return err
}

func TestApplyTransitionCommandHandler_Handle(t *testing.T) {
	t.Run("should keep the track invariant across transitions", func(t *testing.T) {
		f := newTransitionFixture(t)
		officeID, hubID := f.office.ID(), f.hub.ID()

		require.NoError(t, f.apply(t, parcel.AtLocalOffice, &officeID, nil))
		require.NoError(t, f.apply(t, parcel.AtRegionalHub, &hubID, nil))
		require.NoError(t, f.apply(t, parcel.HeldAtRegionalHub, nil, &hubID))

		p := f.store.parcel(f.parcel.ID())
		track := p.Track()
		require.Len(t, track, 4)
		assert.Equal(t, parcel.Created, track[0].Status())
		assert.Equal(t, parcel.HeldAtRegionalHub, p.Status())
		assert.True(t, hubID.IsEqual(*track[3].BranchID()))
		assert.True(t, f.store.branch(hubID).HasParcel(p.ID()))
	})

	t.Run("should deny a held status to a non-custodian and release the lock", func(t *testing.T) {
		f := newTransitionFixture(t)
		hubID, officeID := f.hub.ID(), f.office.ID()
		require.NoError(t, f.apply(t, parcel.AtRegionalHub, &hubID, nil))

		err := f.apply(t, parcel.HeldAtRegionalHub, nil, &officeID)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Len(t, f.store.parcel(f.parcel.ID()).Track(), 2)
		require.NoError(t, f.apply(t, parcel.HeldAtRegionalHub, nil, &hubID))
	})

	t.Run("should deny a held status without a requester branch", func(t *testing.T) {
		f := newTransitionFixture(t)

		err := f.apply(t, parcel.HeldAtMainBranch, nil, nil)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("should enqueue the same parcel once", func(t *testing.T) {
		f := newTransitionFixture(t)

		require.NoError(t, f.apply(t, parcel.DeliveryAttempted, nil, nil))
		require.NoError(t, f.apply(t, parcel.DeliveryAttempted, nil, nil))

		assert.Equal(t, 1, f.store.pending())
	})

	t.Run("should complete the courier assignment on a clearing status", func(t *testing.T) {
		f := newTransitionFixture(t)
		c, err := courier.NewCourier(kernel.NewUUID(), "Ann", f.office.ID())
		require.NoError(t, err)
		_, err = c.AddAssignment(f.parcel.ID(), parcel.FirstMile, fixedNow)
		require.NoError(t, err)
		f.store.couriers[c.ID()] = c
		require.NoError(t, f.parcel.Assign(c.ID(), parcel.FirstMile))

		officeID := f.office.ID()
		require.NoError(t, f.apply(t, parcel.AtLocalOffice, &officeID, nil))

		assert.Nil(t, f.store.parcel(f.parcel.ID()).AssignedTo())
		stored, err := memCouriers{f.store}.Get(t.Context(), c.ID())
		require.NoError(t, err)
		assert.Empty(t, stored.PendingAssignments())
	})

	t.Run("should skip a missing courier", func(t *testing.T) {
		f := newTransitionFixture(t)
		require.NoError(t, f.parcel.Assign(kernel.NewUUID(), parcel.LastMile))

		require.NoError(t, f.apply(t, parcel.DeliveryAttempted, nil, nil))

		assert.Nil(t, f.store.parcel(f.parcel.ID()).AssignedTo())
	})

	t.Run("should return not found for an unknown parcel", func(t *testing.T) {
		f := newTransitionFixture(t)

		_, err := f.handler.Handle(t.Context(), newTransitionCmd(t, kernel.NewUUID(), parcel.AtLocalOffice, nil, nil))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestApplyTransitionCommandHandler_Handle_MutualExclusion(t *testing.T) {
	f := newTransitionFixture(t)
	hubID := f.hub.ID()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.store.onParcelGet = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	firstCmd := newTransitionCmd(t, f.parcel.ID(), parcel.AtRegionalHub, &hubID, nil)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.handler.Handle(context.Background(), firstCmd)
	}()

	<-entered
	_, secondErr := f.handler.Handle(t.Context(), newTransitionCmd(t, f.parcel.ID(), parcel.AtMainBranch, nil, nil))
	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	require.ErrorIs(t, secondErr, errs.ErrConflict)
	assert.True(t, errs.IsRetryable(secondErr))

	require.NoError(t, f.apply(t, parcel.AtMainBranch, nil, nil))
	assert.Len(t, f.store.parcel(f.parcel.ID()).Track(), 3)
}

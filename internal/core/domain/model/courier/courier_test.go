package courier_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// Test helper functions.
func createValidCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Test Courier", kernel.NewUUID())
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestNewCourier(t *testing.T) {
	validID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	t.Run("should create courier with valid parameters", func(t *testing.T) {
		c, err := courier.NewCourier(validID, "Alice", branchID)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(validID))
		assert.True(t, c.BranchID().IsEqual(branchID))
		assert.Equal(t, "Alice", c.Name())
		assert.Empty(t, c.Assignments())
	})

	t.Run("should return error for empty name", func(t *testing.T) {
		c, err := courier.NewCourier(validID, " ", branchID)

		require.ErrorIs(t, err, courier.ErrNameIsRequired)
		assert.Nil(t, c)
	})

	t.Run("should return error for missing branch", func(t *testing.T) {
		_, err := courier.NewCourier(validID, "Alice", kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCourier_IsEqual(t *testing.T) {
	c := createValidCourier(t)
	same, err := courier.RestoreCourier(c.ID(), "Other", kernel.NewUUID(), nil)
	require.NoError(t, err)

	assert.True(t, c.IsEqual(same))
	assert.False(t, c.IsEqual(createValidCourier(t)))
	assert.False(t, c.IsEqual(nil))
}

func TestCourier_AddAssignment(t *testing.T) {
	t.Run("should add a pending assignment", func(t *testing.T) {
		c := createValidCourier(t)
		parcelID := kernel.NewUUID()

		a, err := c.AddAssignment(parcelID, parcel.LastMile, assignedAt)

		require.NoError(t, err)
		assert.True(t, a.IsPending())
		assert.True(t, a.ParcelID().IsEqual(parcelID))
		assert.Equal(t, parcel.LastMile, a.DeliveryType())
		assert.Len(t, c.PendingAssignments(), 1)
	})

	t.Run("should reject a parcel that is already pending", func(t *testing.T) {
		c := createValidCourier(t)
		parcelID := kernel.NewUUID()
		_, err := c.AddAssignment(parcelID, parcel.FirstMile, assignedAt)
		require.NoError(t, err)

		_, err = c.AddAssignment(parcelID, parcel.LastMile, assignedAt)

		require.ErrorIs(t, err, courier.ErrParcelAlreadyPending)
	})

	t.Run("should require a delivery type", func(t *testing.T) {
		c := createValidCourier(t)

		_, err := c.AddAssignment(kernel.NewUUID(), parcel.Unassigned, assignedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Empty(t, c.Assignments())
	})
}

func TestCourier_CompleteAssignment(t *testing.T) {
	t.Run("should mark the pending entry completed and keep history", func(t *testing.T) {
		c := createValidCourier(t)
		parcelID := kernel.NewUUID()
		_, err := c.AddAssignment(parcelID, parcel.FirstMile, assignedAt)
		require.NoError(t, err)

		err = c.CompleteAssignment(parcelID, assignedAt.Add(time.Hour))

		require.NoError(t, err)
		assert.Empty(t, c.PendingAssignments())
		require.Len(t, c.Assignments(), 1)
		require.NotNil(t, c.Assignments()[0].CompletedAt())
		assert.Equal(t, assignedAt.Add(time.Hour), *c.Assignments()[0].CompletedAt())
	})

	t.Run("should allow the same parcel to be assigned again after completion", func(t *testing.T) {
		c := createValidCourier(t)
		parcelID := kernel.NewUUID()
		_, _ = c.AddAssignment(parcelID, parcel.FirstMile, assignedAt)
		require.NoError(t, c.CompleteAssignment(parcelID, assignedAt))

		_, err := c.AddAssignment(parcelID, parcel.LastMile, assignedAt)

		require.NoError(t, err)
		assert.Len(t, c.Assignments(), 2)
		assert.Len(t, c.PendingAssignments(), 1)
	})

	t.Run("should return not found for unknown parcel", func(t *testing.T) {
		c := createValidCourier(t)

		err := c.CompleteAssignment(kernel.NewUUID(), assignedAt)

		require.ErrorIs(t, err, courier.ErrAssignmentNotFound)
	})
}

func TestRestoreCourier(t *testing.T) {
	done := assignedAt.Add(2 * time.Hour)
	completed, err := courier.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), parcel.LastMile, assignedAt, &done)
	require.NoError(t, err)
	pending, err := courier.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), parcel.FirstMile, assignedAt)
	require.NoError(t, err)

	c, err := courier.RestoreCourier(kernel.NewUUID(), "Bob", kernel.NewUUID(), []*courier.Assignment{completed, pending})

	require.NoError(t, err)
	assert.Len(t, c.Assignments(), 2)
	require.Len(t, c.PendingAssignments(), 1)
	assert.True(t, c.PendingAssignments()[0].ID().IsEqual(pending.ID()))

	_, err = courier.RestoreCourier(kernel.NewUUID(), "Bob", kernel.NewUUID(), []*courier.Assignment{nil})
	require.ErrorIs(t, err, courier.ErrAssignmentIsNotConstructed)
}

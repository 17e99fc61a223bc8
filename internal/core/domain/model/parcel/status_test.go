package parcel_test

import (
	"fmt"
	"testing"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Vocabulary(t *testing.T) {
	t.Run("should expose every status with its verbatim name", func(t *testing.T) {
		expected := []string{
			"Created",
			"At Local Office",
			"At Regional Hub",
			"At Main Branch",
			"At Destination Local Office",
			"At Destination Regional Hub",
			"At Destination Main Branch",
			"Held at Main Branch",
			"Held at Regional Hub",
			"Ready to Pickup (at the branch)",
			"Pickup",
			"Delivery Attempted",
			"Damaged in Transit",
			"Lost in Transit",
			"Delivered",
		}

		all := parcel.AllStatuses()
		require.Len(t, all, len(expected))
		for i, s := range all {
			assert.Equal(t, expected[i], s.String())
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should round trip names through ParseStatus", func(t *testing.T) {
		for _, s := range parcel.AllStatuses() {
			parsed, err := parcel.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := parcel.ParseStatus("In Orbit")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), `"In Orbit" is not a known status`)
	})

	t.Run("should reject values outside the vocabulary", func(t *testing.T) {
		for _, s := range []parcel.Status{parcel.Unknown, parcel.Status(-1), parcel.Status(99)} {
			t.Run(fmt.Sprintf("value %d", int(s)), func(t *testing.T) {
				err := s.Validate()
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, "Unknown", s.String())
			})
		}
	})
}

func TestStatus_Classes(t *testing.T) {
	t.Run("every transition status except Delivered clears the assignment", func(t *testing.T) {
		for _, s := range parcel.AllStatuses() {
			expected := s != parcel.Delivered && s != parcel.Created
			assert.Equal(t, expected, s.ClearsAssignment(), s.String())
		}
	})

	t.Run("held statuses", func(t *testing.T) {
		held := map[parcel.Status]bool{
			parcel.HeldAtMainBranch:  true,
			parcel.HeldAtRegionalHub: true,
			parcel.ReadyToPickup:     true,
		}
		for _, s := range parcel.AllStatuses() {
			assert.Equal(t, held[s], s.IsHeld(), s.String())
		}
	})

	t.Run("branch custody statuses are the six tier arrivals", func(t *testing.T) {
		custody := map[parcel.Status]bool{
			parcel.AtLocalOffice:            true,
			parcel.AtRegionalHub:            true,
			parcel.AtMainBranch:             true,
			parcel.AtDestinationLocalOffice: true,
			parcel.AtDestinationRegionalHub: true,
			parcel.AtDestinationMainBranch:  true,
		}
		for _, s := range parcel.AllStatuses() {
			assert.Equal(t, custody[s], s.IsBranchCustody(), s.String())
		}
	})

	t.Run("accounting triggers", func(t *testing.T) {
		triggers := map[parcel.Status]bool{
			parcel.Delivered:         true,
			parcel.PickedUp:          true,
			parcel.DeliveryAttempted: true,
			parcel.DamagedInTransit:  true,
			parcel.LostInTransit:     true,
		}
		for _, s := range parcel.AllStatuses() {
			assert.Equal(t, triggers[s], s.TriggersAccounting(), s.String())
		}
	})
}

func TestStatus_ValidateTransitionTarget(t *testing.T) {
	t.Run("should reject Created", func(t *testing.T) {
		err := parcel.Created.ValidateTransitionTarget()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "Created is only written on parcel creation")
	})

	t.Run("should accept every other status", func(t *testing.T) {
		for _, s := range parcel.AllStatuses()[1:] {
			require.NoError(t, s.ValidateTransitionTarget(), s.String())
		}
	})
}

func TestType(t *testing.T) {
	deliver, err := parcel.ParseType("Deliver")
	require.NoError(t, err)
	assert.Equal(t, parcel.TypeDeliver, deliver)

	pickup, err := parcel.ParseType("Pickup")
	require.NoError(t, err)
	assert.Equal(t, parcel.TypePickup, pickup)

	_, err = parcel.ParseType("Teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, parcel.UnknownType.Validate())
}

func TestDeliveryType(t *testing.T) {
	first, err := parcel.ParseDeliveryType("first_mile")
	require.NoError(t, err)
	assert.Equal(t, parcel.FirstMile, first)

	last, err := parcel.ParseDeliveryType("last_mile")
	require.NoError(t, err)
	assert.Equal(t, parcel.LastMile, last)

	_, err = parcel.ParseDeliveryType("")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

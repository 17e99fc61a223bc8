package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplyTransitionCommand_ValidInput(t *testing.T) {
	// Arrange
	parcelID, branchID, requester := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	// Act
	cmd, err := commands.NewApplyTransitionCommand(parcelID, parcel.AtRegionalHub, &branchID, &requester)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.ParcelID().IsEqual(parcelID))
	assert.Equal(t, parcel.AtRegionalHub, cmd.Status())
	assert.True(t, cmd.BranchID().IsEqual(branchID))
	assert.True(t, cmd.RequesterBranchID().IsEqual(requester))
}

func TestNewApplyTransitionCommand_OptionalBranches(t *testing.T) {
	cmd, err := commands.NewApplyTransitionCommand(kernel.NewUUID(), parcel.Delivered, nil, nil)

	require.NoError(t, err)
	assert.Nil(t, cmd.BranchID())
	assert.Nil(t, cmd.RequesterBranchID())
}

func TestNewApplyTransitionCommand_CopiesBranchPointers(t *testing.T) {
	branchID := kernel.NewUUID()
	cmd, err := commands.NewApplyTransitionCommand(kernel.NewUUID(), parcel.AtLocalOffice, &branchID, nil)
	require.NoError(t, err)

	original := branchID
	branchID = kernel.NewUUID()

	assert.True(t, cmd.BranchID().IsEqual(original))
}

func TestNewApplyTransitionCommand_InvalidInput(t *testing.T) {
	zero := kernel.UUID{}
	testCases := []struct {
		name     string
		parcelID kernel.UUID
		status   parcel.Status
		branchID *kernel.UUID
		wantErr  []error
	}{
		{
			name:     "Created is not a transition target",
			parcelID: kernel.NewUUID(),
			status:   parcel.Created,
			wantErr:  []error{errs.ErrValueIsInvalid},
		},
		{
			name:     "unknown status and zero parcel id",
			parcelID: kernel.UUID{},
			status:   parcel.Status(99),
			wantErr:  []error{errs.ErrValueIsInvalid, kernel.ErrUUIDIsNotConstructed},
		},
		{
			name:     "zero branch id",
			parcelID: kernel.NewUUID(),
			status:   parcel.AtLocalOffice,
			branchID: &zero,
			wantErr:  []error{kernel.ErrUUIDIsNotConstructed},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := commands.NewApplyTransitionCommand(tc.parcelID, tc.status, tc.branchID, nil)

			for _, want := range tc.wantErr {
				require.ErrorIs(t, err, want)
			}
			assert.Zero(t, cmd)
		})
	}
}

func TestApplyTransitionCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.ApplyTransitionCommand
	handler := commands.NewApplyTransitionCommandHandler(passThroughLocker{}, new(MockUoWFactory), fixedClock, testLogger)

	_, err := handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrApplyTransitionCommandIsNotConstructed)
}

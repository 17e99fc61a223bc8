package queries_test

import (
	"testing"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetParcelTrackingQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetParcelTrackingQuery(id)

	require.NoError(t, err)
	assert.Equal(t, id, q.ParcelID())
	assert.NoError(t, q.Validate())
}

func TestNewGetParcelTrackingQuery_ZeroID(t *testing.T) {
	_, err := queries.NewGetParcelTrackingQuery(kernel.UUID{})

	assert.Error(t, err)
}

func TestGetParcelTrackingQuery_NotConstructed(t *testing.T) {
	var q queries.GetParcelTrackingQuery

	assert.ErrorIs(t, q.Validate(), queries.ErrGetParcelTrackingQueryIsNotConstructed)
}

func TestNewGetBranchPerformanceQuery_TruncatesToDays(t *testing.T) {
	from := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC)

	q, err := queries.NewGetBranchPerformanceQuery(kernel.NewUUID(), from, to)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), q.From())
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), q.To())
}

func TestNewGetBranchPerformanceQuery_SameDayRange(t *testing.T) {
	day := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)

	_, err := queries.NewGetBranchPerformanceQuery(kernel.NewUUID(), day, day.Add(-time.Hour))

	assert.NoError(t, err)
}

func TestNewGetBranchPerformanceQuery_InvertedRange(t *testing.T) {
	from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetBranchPerformanceQuery(kernel.NewUUID(), from, from.AddDate(0, 0, -1))

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetBranchPerformanceQuery_NotConstructed(t *testing.T) {
	var q queries.GetBranchPerformanceQuery

	assert.ErrorIs(t, q.Validate(), queries.ErrGetBranchPerformanceQueryIsNotConstructed)
}

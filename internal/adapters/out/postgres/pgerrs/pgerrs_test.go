package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key"})
	other := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"unique violation becomes conflict", unique, errs.ErrConflict},
		{"gorm duplicated key becomes conflict", gorm.ErrDuplicatedKey, errs.ErrConflict},
		{"record not found becomes not found", gorm.ErrRecordNotFound, errs.ErrObjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pgerrs.Translate(tt.err, "parcel", "42")
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		err := pgerrs.Translate(other, "parcel", "42")
		var pgErr *pgconn.PgError
		assert.True(t, errors.As(err, &pgErr))
		assert.False(t, errs.IsRetryable(err))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, pgerrs.Translate(nil, "parcel", "42"))
	})
}

package parcelrepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelLocker implements ParcelLocker with the parcels.update_lock flag.
// It must be given the plain connection, not a transaction, so the flag is
// visible to other writers as soon as it is set.
type GormParcelLocker struct {
	db *gorm.DB
}

func NewGormParcelLocker(db *gorm.DB) *GormParcelLocker {
	return &GormParcelLocker{db: db}
}

// WithUpdateLock sets the flag with a single conditional UPDATE, runs fn and
// clears the flag on every exit path. The release uses a context detached from
// cancellation so a cancelled request still unlocks the parcel.
func (l *GormParcelLocker) WithUpdateLock(
	ctx context.Context,
	id kernel.UUID,
	fn func(ctx context.Context) error,
) (err error) {
	if err = id.Validate(); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND update_lock = ?", id.Bytes(), false).
		Update("update_lock", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return l.lockFailure(ctx, id)
	}

	defer func() {
		releaseErr := l.db.WithContext(context.WithoutCancel(ctx)).
			Model(&ParcelDTO{}).
			Where("id = ?", id.Bytes()).
			Update("update_lock", false).Error
		if err == nil {
			err = releaseErr
		}
	}()

	return fn(ctx)
}

// lockFailure tells a missing parcel apart from one that is already locked.
func (l *GormParcelLocker) lockFailure(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := l.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}
	return errs.NewConflictError("parcel", id.String())
}

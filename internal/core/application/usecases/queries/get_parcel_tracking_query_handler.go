package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelTrackingQueryHandler reads the parcels and parcel_track_entries tables.
type GetParcelTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelTrackingQueryHandler(db *gorm.DB) GetParcelTrackingQueryHandler {
	return GetParcelTrackingQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when the parcel does not exist.
func (h GetParcelTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetParcelTrackingQuery,
) (GetParcelTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelTrackingQueryResponse{}, err
	}

	var head struct {
		Type         int
		Status       int
		AssignedTo   *uuid.UUID
		DeliveryType int
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT type, status, assigned_to, delivery_type
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Scan(&head)
	if result.Error != nil {
		return GetParcelTrackingQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetParcelTrackingQueryResponse{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
	}

	assignedTo, err := kernel.OptionalUUIDFromBytes(head.AssignedTo)
	if err != nil {
		return GetParcelTrackingQueryResponse{}, err
	}

	track, err := h.track(ctx, query.ParcelID())
	if err != nil {
		return GetParcelTrackingQueryResponse{}, err
	}

	return GetParcelTrackingQueryResponse{
		ID:           query.ParcelID(),
		Type:         parcel.Type(head.Type).String(),
		Status:       parcel.Status(head.Status).String(),
		AssignedTo:   assignedTo,
		DeliveryType: parcel.DeliveryType(head.DeliveryType).String(),
		Track:        track,
	}, nil
}

func (h GetParcelTrackingQueryHandler) track(ctx context.Context, parcelID kernel.UUID) ([]TrackEntryView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			branch_id,
			recorded_at
		FROM parcel_track_entries
		WHERE parcel_id = ?
		ORDER BY seq
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	track := make([]TrackEntryView, 0)
	for rows.Next() {
		var (
			status     int
			branchID   *uuid.UUID
			recordedAt time.Time
		)
		if err = rows.Scan(&status, &branchID, &recordedAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.OptionalUUIDFromBytes(branchID)
		if idErr != nil {
			return nil, idErr
		}

		track = append(track, TrackEntryView{
			Status:    parcel.Status(status).String(),
			BranchID:  id,
			Timestamp: recordedAt.UTC(),
		})
	}

	return track, rows.Err()
}

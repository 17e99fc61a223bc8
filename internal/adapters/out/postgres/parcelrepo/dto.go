// Package parcelrepo persists the parcel aggregate: one row per parcel plus its
// append-only transition log in parcel_track_entries.
package parcelrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the parcels row. Status mirrors the last track entry so read
// queries can filter on it without touching the log.
type ParcelDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type         int             `gorm:"type:smallint;not null"`
	Status       int             `gorm:"type:smallint;not null;index"`
	AssignedTo   *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryType int             `gorm:"type:smallint;not null"`
	UpdateLock   bool            `gorm:"not null;default:false"`
	Track        []TrackEntryDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// TrackEntryDTO is one row of the transition log, keyed by its position.
type TrackEntryDTO struct {
	ParcelID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq        int        `gorm:"primaryKey;autoIncrement:false"`
	Status     int        `gorm:"type:smallint;not null"`
	BranchID   *uuid.UUID `gorm:"type:uuid;index"`
	RecordedAt time.Time  `gorm:"not null"`
}

func (TrackEntryDTO) TableName() string {
	return "parcel_track_entries"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	id := p.ID().Bytes()

	var assignedTo *uuid.UUID
	if c := p.AssignedTo(); c != nil {
		raw := c.Bytes()
		assignedTo = &raw
	}

	track := p.Track()
	entries := make([]TrackEntryDTO, 0, len(track))
	for i, e := range track {
		entries = append(entries, trackEntryFromDomain(id, i, e))
	}

	return ParcelDTO{
		ID:           id,
		Type:         int(p.Type()),
		Status:       int(p.Status()),
		AssignedTo:   assignedTo,
		DeliveryType: int(p.DeliveryType()),
		Track:        entries,
	}
}

func trackEntryFromDomain(parcelID uuid.UUID, seq int, e parcel.TrackEntry) TrackEntryDTO {
	var branchID *uuid.UUID
	if b := e.BranchID(); b != nil {
		raw := b.Bytes()
		branchID = &raw
	}
	return TrackEntryDTO{
		ParcelID:   parcelID,
		Seq:        seq,
		Status:     int(e.Status()),
		BranchID:   branchID,
		RecordedAt: e.Timestamp(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernel.OptionalUUIDFromBytes(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	track := make([]parcel.TrackEntry, 0, len(dto.Track))
	for _, e := range dto.Track {
		branchID, branchErr := kernel.OptionalUUIDFromBytes(e.BranchID)
		if branchErr != nil {
			return nil, branchErr
		}

		entry, entryErr := parcel.NewTrackEntry(parcel.Status(e.Status), branchID, e.RecordedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		track = append(track, entry)
	}

	return parcel.RestoreParcel(id, parcel.Type(dto.Type), track, assignedTo, parcel.DeliveryType(dto.DeliveryType))
}

// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// A courier row owns its assignment rows, which are saved together with it.
package courierrepo

import (
	"time"

	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	BranchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Assignments []AssignmentDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// AssignmentDTO is one parcel handed to the courier. CompletedAt stays NULL
// while the assignment is pending.
type AssignmentDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParcelID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryType int        `gorm:"type:smallint;not null"`
	AssignedAt   time.Time  `gorm:"not null"`
	CompletedAt  *time.Time `gorm:"index"`
}

func (AssignmentDTO) TableName() string {
	return "courier_assignments"
}

func fromDomain(c *courier.Courier) CourierDTO {
	courierID := c.ID().Bytes()

	assignments := make([]AssignmentDTO, 0, len(c.Assignments()))
	for _, a := range c.Assignments() {
		assignments = append(assignments, AssignmentDTO{
			ID:           a.ID().Bytes(),
			CourierID:    courierID,
			ParcelID:     a.ParcelID().Bytes(),
			DeliveryType: int(a.DeliveryType()),
			AssignedAt:   a.AssignedAt(),
			CompletedAt:  a.CompletedAt(),
		})
	}

	return CourierDTO{
		ID:          courierID,
		Name:        c.Name(),
		BranchID:    c.BranchID().Bytes(),
		Assignments: assignments,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	assignments := make([]*courier.Assignment, 0, len(dto.Assignments))
	for _, aDto := range dto.Assignments {
		a, aErr := assignmentToDomain(aDto)
		if aErr != nil {
			return nil, aErr
		}
		assignments = append(assignments, a)
	}

	return courier.RestoreCourier(id, dto.Name, branchID, assignments)
}

func assignmentToDomain(dto AssignmentDTO) (*courier.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreAssignment(id, parcelID, parcel.DeliveryType(dto.DeliveryType), dto.AssignedAt, dto.CompletedAt)
}

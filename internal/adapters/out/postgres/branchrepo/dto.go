// Package branchrepo persists branches with their cumulative counters and the
// parcel set, stored as a Postgres text[] column.
package branchrepo

import (
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PerformanceDTO holds the counter columns shared by branches and daily snapshots.
type PerformanceDTO struct {
	TotalParcels          int64   `gorm:"not null"`
	TotalDelivered        int64   `gorm:"not null"`
	OnTimeDeliveries      int64   `gorm:"not null"`
	TotalPickups          int64   `gorm:"not null"`
	DeliveryAttempts      int64   `gorm:"not null"`
	DamagedParcels        int64   `gorm:"not null"`
	LostParcels           int64   `gorm:"not null"`
	AverageDeliveryTime   float64 `gorm:"not null"`
	AverageProcessingTime float64 `gorm:"not null"`
	AverageCustomerRating float64 `gorm:"not null"`
	ComplaintCount        int64   `gorm:"not null"`
	CustomerCount         int64   `gorm:"not null"`
	AssignDeliveryCount   int64   `gorm:"not null"`
}

type BranchDTO struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Kind                    int            `gorm:"type:smallint;not null;index"`
	Name                    string         `gorm:"type:varchar(255);not null"`
	PromisedDeliverySeconds int64          `gorm:"not null"`
	ParcelIDs               pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Performance             PerformanceDTO `gorm:"embedded"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

func PerformanceFromDomain(p branch.Performance) PerformanceDTO {
	return PerformanceDTO{
		TotalParcels:          p.TotalParcels,
		TotalDelivered:        p.TotalDelivered,
		OnTimeDeliveries:      p.OnTimeDeliveries,
		TotalPickups:          p.TotalPickups,
		DeliveryAttempts:      p.DeliveryAttempts,
		DamagedParcels:        p.DamagedParcels,
		LostParcels:           p.LostParcels,
		AverageDeliveryTime:   p.AverageDeliveryTime,
		AverageProcessingTime: p.AverageProcessingTime,
		AverageCustomerRating: p.AverageCustomerRating,
		ComplaintCount:        p.ComplaintCount,
		CustomerCount:         p.CustomerCount,
		AssignDeliveryCount:   p.AssignDeliveryCount,
	}
}

func (d PerformanceDTO) ToDomain() branch.Performance {
	return branch.Performance{
		TotalParcels:          d.TotalParcels,
		TotalDelivered:        d.TotalDelivered,
		OnTimeDeliveries:      d.OnTimeDeliveries,
		TotalPickups:          d.TotalPickups,
		DeliveryAttempts:      d.DeliveryAttempts,
		DamagedParcels:        d.DamagedParcels,
		LostParcels:           d.LostParcels,
		AverageDeliveryTime:   d.AverageDeliveryTime,
		AverageProcessingTime: d.AverageProcessingTime,
		AverageCustomerRating: d.AverageCustomerRating,
		ComplaintCount:        d.ComplaintCount,
		CustomerCount:         d.CustomerCount,
		AssignDeliveryCount:   d.AssignDeliveryCount,
	}
}

// Columns lists the counter columns for a partial update. The assignment
// count is only included when withAssignCount is set.
func (d PerformanceDTO) Columns(withAssignCount bool) map[string]any {
	cols := map[string]any{
		"total_parcels":           d.TotalParcels,
		"total_delivered":         d.TotalDelivered,
		"on_time_deliveries":      d.OnTimeDeliveries,
		"total_pickups":           d.TotalPickups,
		"delivery_attempts":       d.DeliveryAttempts,
		"damaged_parcels":         d.DamagedParcels,
		"lost_parcels":            d.LostParcels,
		"average_delivery_time":   d.AverageDeliveryTime,
		"average_processing_time": d.AverageProcessingTime,
		"average_customer_rating": d.AverageCustomerRating,
		"complaint_count":         d.ComplaintCount,
		"customer_count":          d.CustomerCount,
	}
	if withAssignCount {
		cols["assign_delivery_count"] = d.AssignDeliveryCount
	}
	return cols
}

func fromDomain(b *branch.Branch) BranchDTO {
	ids := b.ParcelIDs()
	parcelIDs := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		parcelIDs = append(parcelIDs, id.String())
	}

	return BranchDTO{
		ID:                      b.ID().Bytes(),
		Kind:                    int(b.Kind()),
		Name:                    b.Name(),
		PromisedDeliverySeconds: int64(b.PromisedDeliveryTime() / time.Second),
		ParcelIDs:               parcelIDs,
		Performance:             PerformanceFromDomain(b.Performance()),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.ParcelIDs))
	for _, raw := range dto.ParcelIDs {
		parcelID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	return branch.RestoreBranch(
		id,
		branch.Kind(dto.Kind),
		dto.Name,
		time.Duration(dto.PromisedDeliverySeconds)*time.Second,
		dto.Performance.ToDomain(),
		parcelIDs,
	)
}

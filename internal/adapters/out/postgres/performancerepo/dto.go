// Package performancerepo persists per-branch daily performance logs, the
// system-wide performance singleton and the ledger of processed credits.
package performancerepo

import (
	"time"

	"logistics/internal/adapters/out/postgres/branchrepo"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/performance"

	"github.com/google/uuid"
)

// systemRowID is the primary key of the only system_performance row.
const systemRowID = 1

type LogDTO struct {
	BranchID  uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Kind      int           `gorm:"type:smallint;not null"`
	Snapshots []SnapshotDTO `gorm:"foreignKey:BranchID;references:BranchID;constraint:OnDelete:CASCADE"`
}

func (LogDTO) TableName() string {
	return "performance_logs"
}

type SnapshotDTO struct {
	BranchID    uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	Day         time.Time                 `gorm:"type:date;primaryKey"`
	Performance branchrepo.PerformanceDTO `gorm:"embedded"`
}

func (SnapshotDTO) TableName() string {
	return "performance_snapshots"
}

type SystemDTO struct {
	ID                        int     `gorm:"primaryKey;autoIncrement:false"`
	TotalDelivered            int64   `gorm:"not null"`
	TotalPickups              int64   `gorm:"not null"`
	BestAverageDeliveryTime   float64 `gorm:"not null"`
	BestAverageProcessingTime float64 `gorm:"not null"`
	BestAverageCustomerRating float64 `gorm:"not null"`
	TotalComplaints           int64   `gorm:"not null"`
	TotalCustomers            int64   `gorm:"not null"`
	UpdatedAt                 time.Time
}

func (SystemDTO) TableName() string {
	return "system_performance"
}

// ProcessedSegmentDTO marks one credit of a parcel as applied.
type ProcessedSegmentDTO struct {
	ParcelID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SegmentKey  string    `gorm:"type:varchar(64);primaryKey"`
	ProcessedAt time.Time `gorm:"autoCreateTime"`
}

func (ProcessedSegmentDTO) TableName() string {
	return "processed_segments"
}

func snapshotFromDomain(branchID uuid.UUID, s performance.DailySnapshot) SnapshotDTO {
	return SnapshotDTO{
		BranchID:    branchID,
		Day:         s.Day,
		Performance: branchrepo.PerformanceFromDomain(s.Performance),
	}
}

func logToDomain(dto LogDTO) (*performance.Log, error) {
	id, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	snapshots := make([]performance.DailySnapshot, 0, len(dto.Snapshots))
	for _, s := range dto.Snapshots {
		snapshots = append(snapshots, performance.DailySnapshot{
			Day:         performance.DayOf(s.Day),
			Performance: s.Performance.ToDomain(),
		})
	}

	return performance.RestoreLog(id, branch.Kind(dto.Kind), snapshots)
}

func systemFromDomain(s *performance.SystemPerformance) SystemDTO {
	return SystemDTO{
		ID:                        systemRowID,
		TotalDelivered:            s.TotalDelivered,
		TotalPickups:              s.TotalPickups,
		BestAverageDeliveryTime:   s.BestAverageDeliveryTime,
		BestAverageProcessingTime: s.BestAverageProcessingTime,
		BestAverageCustomerRating: s.BestAverageCustomerRating,
		TotalComplaints:           s.TotalComplaints,
		TotalCustomers:            s.TotalCustomers,
	}
}

func systemToDomain(dto SystemDTO) *performance.SystemPerformance {
	return &performance.SystemPerformance{
		TotalDelivered:            dto.TotalDelivered,
		TotalPickups:              dto.TotalPickups,
		BestAverageDeliveryTime:   dto.BestAverageDeliveryTime,
		BestAverageProcessingTime: dto.BestAverageProcessingTime,
		BestAverageCustomerRating: dto.BestAverageCustomerRating,
		TotalComplaints:           dto.TotalComplaints,
		TotalCustomers:            dto.TotalCustomers,
	}
}

package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

const performanceColumns = `
	total_parcels,
	total_delivered,
	on_time_deliveries,
	total_pickups,
	delivery_attempts,
	damaged_parcels,
	lost_parcels,
	average_delivery_time,
	average_processing_time,
	average_customer_rating,
	complaint_count,
	customer_count,
	assign_delivery_count`

// performanceRow scans the counter columns shared by branches and snapshots.
type performanceRow struct {
	TotalParcels          int64
	TotalDelivered        int64
	OnTimeDeliveries      int64
	TotalPickups          int64
	DeliveryAttempts      int64
	DamagedParcels        int64
	LostParcels           int64
	AverageDeliveryTime   float64
	AverageProcessingTime float64
	AverageCustomerRating float64
	ComplaintCount        int64
	CustomerCount         int64
	AssignDeliveryCount   int64
}

func (r performanceRow) toDomain() branch.Performance {
	return branch.Performance(r)
}

// GetBranchPerformanceQueryHandler reads the branches and performance_snapshots tables.
type GetBranchPerformanceQueryHandler struct {
	db *gorm.DB
}

func NewGetBranchPerformanceQueryHandler(db *gorm.DB) GetBranchPerformanceQueryHandler {
	return GetBranchPerformanceQueryHandler{db: db}
}

func (h GetBranchPerformanceQueryHandler) Handle(
	ctx context.Context,
	query GetBranchPerformanceQuery,
) (GetBranchPerformanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBranchPerformanceQueryResponse{}, err
	}

	var head struct {
		Kind                    int
		Name                    string
		PromisedDeliverySeconds int64
		Counters                performanceRow `gorm:"embedded"`
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT kind, name, promised_delivery_seconds, `+performanceColumns+`
		FROM branches
		WHERE id = ?
	`, query.BranchID().Bytes()).Scan(&head)
	if result.Error != nil {
		return GetBranchPerformanceQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetBranchPerformanceQueryResponse{}, errs.NewObjectNotFoundError("branch", query.BranchID().String())
	}

	var days []struct {
		Day      time.Time
		Counters performanceRow `gorm:"embedded"`
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT day, `+performanceColumns+`
		FROM performance_snapshots
		WHERE branch_id = ? AND day BETWEEN ? AND ?
		ORDER BY day
	`, query.BranchID().Bytes(), query.From(), query.To()).Scan(&days).Error
	if err != nil {
		return GetBranchPerformanceQueryResponse{}, err
	}

	daily := make([]DailyPerformanceView, 0, len(days))
	for _, d := range days {
		daily = append(daily, DailyPerformanceView{Day: d.Day.UTC(), Performance: d.Counters.toDomain()})
	}

	cumulative := head.Counters.toDomain()
	return GetBranchPerformanceQueryResponse{
		BranchID:             query.BranchID(),
		Kind:                 branch.Kind(head.Kind).String(),
		Name:                 head.Name,
		PromisedDeliveryTime: time.Duration(head.PromisedDeliverySeconds) * time.Second,
		OnTimeRate:           cumulative.OnTimeRate(),
		Cumulative:           cumulative,
		Daily:                daily,
	}, nil
}

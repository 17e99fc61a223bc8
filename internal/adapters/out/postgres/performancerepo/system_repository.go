package performancerepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/performance"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSystemRepository implements SystemPerformanceRepository over a single row.
type GormSystemRepository struct {
	db *gorm.DB
}

func NewGormSystemRepository(db *gorm.DB) *GormSystemRepository {
	return &GormSystemRepository{db: db}
}

func (r *GormSystemRepository) Get(ctx context.Context) (*performance.SystemPerformance, error) {
	var dto SystemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", systemRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("system performance", systemRowID)
		}
		return nil, err
	}
	return systemToDomain(dto), nil
}

func (r *GormSystemRepository) Save(ctx context.Context, system *performance.SystemPerformance) error {
	dto := systemFromDomain(system)
	result := r.db.WithContext(ctx).Model(&SystemDTO{}).Where("id = ?", systemRowID).Updates(map[string]any{
		"total_delivered":              dto.TotalDelivered,
		"total_pickups":                dto.TotalPickups,
		"best_average_delivery_time":   dto.BestAverageDeliveryTime,
		"best_average_processing_time": dto.BestAverageProcessingTime,
		"best_average_customer_rating": dto.BestAverageCustomerRating,
		"total_complaints":             dto.TotalComplaints,
		"total_customers":              dto.TotalCustomers,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("system performance", systemRowID)
	}
	return nil
}

// Ensure inserts the zeroed row when it does not exist yet.
func (r *GormSystemRepository) Ensure(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SystemDTO{ID: systemRowID}).Error
}

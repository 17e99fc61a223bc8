package postgres

import (
	"logistics/internal/adapters/out/postgres/branchrepo"
	"logistics/internal/adapters/out/postgres/courierrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/performancerepo"
	"logistics/internal/adapters/out/postgres/queuerepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&branchrepo.BranchDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.TrackEntryDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.AssignmentDTO{},
		&queuerepo.QueueItemDTO{},
		&performancerepo.LogDTO{},
		&performancerepo.SnapshotDTO{},
		&performancerepo.SystemDTO{},
		&performancerepo.ProcessedSegmentDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

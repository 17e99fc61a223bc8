package cmd

import (
	"context"
	"log/slog"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/queuerepo"
	"logistics/internal/adapters/out/postgres/runlock"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     *parcelrepo.GormParcelLocker
	runLocker  *runlock.AdvisoryLocker
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     parcelrepo.NewGormParcelLocker(gormDB),
		runLocker:  runlock.NewAdvisoryLocker(gormDB, runlock.AggregationLockKey),
		clock:      commands.SystemClock,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateBranchCommandHandler() commands.CreateBranchCommandHandler {
	var f commands.BranchUoWFactory = FuncBranchUoWFactory(func() commands.BranchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBranchCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.newUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.locker, c.newUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	return commands.NewAssignParcelCommandHandler(c.locker, c.newUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRunAggregationCommandHandler() commands.RunAggregationCommandHandler {
	return commands.NewRunAggregationCommandHandler(c.newUoWFactory(), c.runLocker, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetParcelTrackingQueryHandler() queries.GetParcelTrackingQueryHandler {
	return queries.NewGetParcelTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBranchPerformanceQueryHandler() queries.GetBranchPerformanceQueryHandler {
	return queries.NewGetBranchPerformanceQueryHandler(c.gormDB)
}

// CreateRouter wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	createBranch := c.CreateCreateBranchCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()
	createParcel := c.CreateCreateParcelCommandHandler()
	applyTransition := c.CreateApplyTransitionCommandHandler()
	assignParcel := c.CreateAssignParcelCommandHandler()
	runAggregation := c.CreateRunAggregationCommandHandler()
	getParcelTracking := c.CreateGetParcelTrackingQueryHandler()
	getBranchPerformance := c.CreateGetBranchPerformanceQueryHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateBranch:         &createBranch,
		CreateCourier:        &createCourier,
		CreateParcel:         &createParcel,
		ApplyTransition:      &applyTransition,
		AssignParcel:         &assignParcel,
		RunAggregation:       &runAggregation,
		GetParcelTracking:    &getParcelTracking,
		GetBranchPerformance: &getBranchPerformance,
	}, c.logger)

	return httpadapter.NewRouter(ctx, server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	runAggregation := c.CreateRunAggregationCommandHandler()
	return jobs.NewJobManager(jobs.Config{
		AggregationEnabled:  c.config.AggregationEnabled,
		AggregationSchedule: c.config.AggregationSchedule,
	}, &runAggregation, queuerepo.NewGormDeliveryQueue(c.gormDB), c.logger)
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

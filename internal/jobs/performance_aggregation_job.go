package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const triggerCron = "cron"

// AggregationRunner is the aggregation use case the job drives.
type AggregationRunner interface {
	Handle(ctx context.Context, cmd commands.RunAggregationCommand) (commands.AggregationReport, error)
}

// PerformanceAggregationJob runs the performance aggregation on a UTC cron
// schedule. A tick that fires while the previous run is still going is skipped;
// runs in other processes are excluded by the handler's run lock.
type PerformanceAggregationJob struct {
	handler  AggregationRunner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPerformanceAggregationJob(handler AggregationRunner, schedule string, logger *slog.Logger) *PerformanceAggregationJob {
	logger = logger.With("component", "performance_aggregation_job")
	return &PerformanceAggregationJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger: logger,
	}
}

// Start schedules the job. An invalid cron expression is returned as is.
func (j *PerformanceAggregationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Performance aggregation job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running aggregation to finish.
func (j *PerformanceAggregationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Performance aggregation job stopped")
}

func (j *PerformanceAggregationJob) run() {
	ctx := context.Background()

	_, err := j.handler.Handle(ctx, commands.NewRunAggregationCommand(triggerCron))
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrAggregationInProgress):
		j.logger.WarnContext(ctx, "Performance aggregation skipped, another run holds the lock")
	default:
		j.logger.ErrorContext(ctx, "Performance aggregation job failed", "error", err)
	}
}

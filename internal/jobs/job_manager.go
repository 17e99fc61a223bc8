package jobs

import (
	"fmt"
	"log/slog"

	"logistics/internal/pkg/metrics"
)

// Config selects which jobs run and when.
type Config struct {
	AggregationEnabled  bool
	AggregationSchedule string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	aggregationJob *PerformanceAggregationJob
	backlogJob     *QueueBacklogJob
}

// NewJobManager wires the jobs. With aggregation disabled only the backlog
// gauge is refreshed; runs can still be started over HTTP.
func NewJobManager(
	cfg Config,
	aggregation AggregationRunner,
	queue PendingCounter,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		backlogJob: NewQueueBacklogJob(queue, metrics.QueuePending, logger),
	}
	if cfg.AggregationEnabled {
		jm.aggregationJob = NewPerformanceAggregationJob(aggregation, cfg.AggregationSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backlogJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue backlog job: %w", err)
	}

	if jm.aggregationJob == nil {
		return nil
	}
	if err := jm.aggregationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.backlogJob.Stop()
		return fmt.Errorf("failed to start performance aggregation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.aggregationJob != nil {
		jm.aggregationJob.Stop()
	}
	jm.backlogJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

const (
	queueBacklogSchedule = "@every 1m"
	queueBacklogTimeout  = 10 * time.Second
)

// PendingCounter reports how many parcels wait for aggregation.
type PendingCounter interface {
	PendingCount(ctx context.Context) (int64, error)
}

// QueueBacklogJob keeps the queue backlog gauge fresh between daily runs.
type QueueBacklogJob struct {
	counter PendingCounter
	gauge   prometheus.Gauge
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewQueueBacklogJob(counter PendingCounter, gauge prometheus.Gauge, logger *slog.Logger) *QueueBacklogJob {
	logger = logger.With("component", "queue_backlog_job")
	return &QueueBacklogJob{
		counter: counter,
		gauge:   gauge,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:  logger,
	}
}

func (j *QueueBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(queueBacklogSchedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Queue backlog job started", "schedule", queueBacklogSchedule)
	return nil
}

func (j *QueueBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Queue backlog job stopped")
}

func (j *QueueBacklogJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), queueBacklogTimeout)
	defer cancel()

	count, err := j.counter.PendingCount(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue backlog job failed", "error", err)
		return
	}
	j.gauge.Set(float64(count))
}

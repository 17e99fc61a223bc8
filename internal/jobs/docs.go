// Package jobs provides scheduled background tasks for the logistics service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PerformanceAggregationJob - Drains the delivery completion queue into branch
// performance counters, daily snapshots and the system rollup. Runs on
// AGGREGATION_SCHEDULE (default "0 0 * * *", midnight UTC).
// 2. QueueBacklogJob - Refreshes the queue backlog gauge every minute.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Config{
//		AggregationEnabled:  true,
//		AggregationSchedule: "0 0 * * *",
//	}, runAggregationHandler, deliveryQueue, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A run refused because another process holds the run lock is logged as a warning
// - Any other aggregation failure is logged as an error and recovered by the next run
// - Failed job starts will stop any already running jobs
package jobs

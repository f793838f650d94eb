// Package jobs provides scheduled background tasks for the lab order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle service.
//
// # Available Jobs
//
// 1. StatusReconciliationJob - Runs every minute to re-derive cached order
// statuses from the history ledger and repair any drift
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileStatusesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Orders with an empty ledger or a concurrent write are skipped; the
//   next sweep picks them up
// - Sweep failures are logged, never fatal
package jobs

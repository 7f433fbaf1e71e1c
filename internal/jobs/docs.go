// Package jobs provides scheduled background tasks for the freight system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the challan service.
//
// # Available Jobs
//
// 1. CountReconciliationJob - Runs every five minutes to recompute each active
// challan's bilty count from its live transit records and repair any drift.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, branchIDs, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "0 */5 * * * *", running at
// every fifth minute. Counter drift is rare, so a tighter schedule would only
// add load on the store.
//
// # Error Handling
//
// A failed run for one branch is logged and does not stop the sweep of the
// remaining branches. Every applied correction is logged at warn level.
package jobs

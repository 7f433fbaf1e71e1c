package jobs

import (
	"fmt"
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	countReconciliationJob *CountReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileHandler commands.ReconcileChallanCountsCommandHandler,
	reconcileBranchIDs []kernel.UUID,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		countReconciliationJob: NewCountReconciliationJob(reconcileHandler, reconcileBranchIDs, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.countReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start count reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.countReconciliationJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// CountReconciliationJob periodically repairs bilty-count drift on the active
// challans of the configured branches. Runs every five minutes.
type CountReconciliationJob struct {
	handler   commands.ReconcileChallanCountsCommandHandler
	branchIDs []kernel.UUID
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCountReconciliationJob creates a new job for count reconciliation.
// branchIDs lists the branches whose challans the job sweeps each run.
func NewCountReconciliationJob(
	handler commands.ReconcileChallanCountsCommandHandler,
	branchIDs []kernel.UUID,
	logger *slog.Logger,
) *CountReconciliationJob {
	return &CountReconciliationJob{
		handler:   handler,
		branchIDs: branchIDs,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "count_reconciliation_job"),
	}
}

// Start begins the count reconciliation job to run every five minutes.
func (j *CountReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()

		for _, branchID := range j.branchIDs {
			cmd, cmdErr := commands.NewReconcileChallanCountsCommand(branchID)
			if cmdErr != nil {
				j.logger.ErrorContext(ctx, "Count reconciliation command rejected",
					"branchId", branchID.String(), "error", cmdErr)
				continue
			}

			result, handleErr := j.handler.Handle(ctx, cmd)
			if handleErr != nil {
				j.logger.ErrorContext(ctx, "Count reconciliation run failed",
					"branchId", branchID.String(), "error", handleErr)
				continue
			}

			for _, correction := range result.Corrections {
				j.logger.WarnContext(ctx, "Corrected challan bilty count",
					"branchId", branchID.String(),
					"challanId", correction.ChallanID.String(),
					"challanNo", correction.ChallanNo,
					"from", correction.From,
					"to", correction.To)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Count reconciliation job started (running every five minutes)",
		"branches", len(j.branchIDs))
	return nil
}

// Stop stops the count reconciliation job.
func (j *CountReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Count reconciliation job stopped")
}

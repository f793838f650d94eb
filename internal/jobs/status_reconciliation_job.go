package jobs

import (
	"context"
	"log/slog"

	"dentallab/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically re-derives cached order statuses
// from the history ledger. Runs every minute; drift is rare, so the sweep
// is cheap in the common case.
type StatusReconciliationJob struct {
	handler commands.ReconcileStatusesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatusReconciliationJob creates a new job for reconciling statuses.
// Uses ReconcileStatusesCommandHandler to sweep all active orders.
func NewStatusReconciliationJob(
	handler commands.ReconcileStatusesCommandHandler,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every minute.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileStatusesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Status reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}

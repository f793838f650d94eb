package commands

import (
	"context"
	"errors"

	"dentallab/internal/core/domain/services"
	"dentallab/internal/pkg/errs"
)

// ReconcileStatusesCommandHandler sweeps all active orders and repairs any
// cached status that drifted from the history ledger. Drift should not
// happen under normal operation; this is the safety net for partial writes
// and out-of-band data fixes.
//
// Example:
//
//	handler := NewReconcileStatusesCommandHandler(uowFactory)
//	cmd := NewReconcileStatusesCommand()
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status reconciliation failed: %w", err)
//	}
//
//	// This would typically be called periodically by a scheduler
type ReconcileStatusesCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileStatusesCommandHandler creates a handler for reconciliation
// sweeps. Requires a UoWFactory for coordinating reads of the ledger with
// repairs of the cached status.
func NewReconcileStatusesCommandHandler(uowFactory UoWFactory) ReconcileStatusesCommandHandler {
	return ReconcileStatusesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command.
// Retrieves all orders in a non-terminal status, compares each cached
// status against the latest ledger entry, and saves the ledger-derived
// status where they disagree. All repairs occur within a single
// transaction. Orders whose ledger is empty or that were modified
// concurrently are skipped; the next sweep picks them up.
func (h *ReconcileStatusesCommandHandler) Handle(ctx context.Context, cmd ReconcileStatusesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	historyRepo := uow.HistoryRepository()

	orders, err := orderRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	reconciler := services.NewStatusReconciler()

	for _, aggregate := range orders {
		latest, latestErr := historyRepo.GetLatest(ctx, aggregate.ID())
		if errors.Is(latestErr, errs.ErrObjectNotFound) {
			continue
		}
		if latestErr != nil {
			return latestErr
		}

		repaired, reconcileErr := reconciler.Reconcile(aggregate, latest)
		if reconcileErr != nil {
			return reconcileErr
		}
		if repaired == nil {
			continue
		}

		if err = orderRepo.Save(ctx, repaired); err != nil {
			if errors.Is(err, errs.ErrConcurrentModification) {
				continue
			}
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

package commands

import (
	"errors"

	"dentallab/internal/pkg/guard"
)

// ReconcileStatusesCommand triggers a sweep that re-derives the cached
// status of every active order from its history ledger. The ledger is the
// source of truth; a cached status that disagrees with the latest entry is
// repaired in place.
//
// Example:
//
//	cmd := NewReconcileStatusesCommand()
//	handler := NewReconcileStatusesCommandHandler(uowFactory)
//
//	// Run periodically to keep cached statuses honest
//	ticker := time.NewTicker(time.Minute)
//	for range ticker.C {
//	    if err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("Reconciliation failed: %v", err)
//	    }
//	}
type ReconcileStatusesCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrReconcileStatusesCommandIsNotConstructed = errors.New(
		"ReconcileStatusesCommand must be created via NewReconcileStatusesCommand constructor",
	)
)

// NewReconcileStatusesCommand creates a command to trigger a reconciliation
// sweep. This is a parameterless command covering all active orders.
func NewReconcileStatusesCommand() ReconcileStatusesCommand {
	command := ReconcileStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileStatusesCommandIsNotConstructed if validation fails.
func (c *ReconcileStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStatusesCommandIsNotConstructed)
}

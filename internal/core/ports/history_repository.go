// Package ports defines the outbound contracts of the order lifecycle core:
// repositories, the unit of work, and the event publisher. These interfaces
// establish contracts between the domain layer and infrastructure, enabling
// dependency inversion and testability.
package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for the append-only
// history ledger. Entries are only ever inserted; there is no update or
// delete operation by design.
type HistoryRepository interface {
	// Append persists one ledger entry. Within a transition this must run
	// in the same transaction as the order update so an entry never exists
	// without the corresponding status change.
	Append(ctx context.Context, entry order.HistoryEntry) error

	// GetByOrderID retrieves the full ledger for an order, oldest first.
	// Returns an empty slice for an order with no entries.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)

	// GetLatest retrieves the most recent ledger entry for an order.
	// Returns errs.ObjectNotFoundError when the order has no entries.
	GetLatest(ctx context.Context, orderID kernel.UUID) (order.HistoryEntry, error)
}

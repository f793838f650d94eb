package ports

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders based on
// their lifecycle state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate with an
	// optimistic concurrency check: the write is conditioned on the stored
	// version being exactly one less than the aggregate's. A stale version
	// returns errs.ConcurrentModificationError; a missing row returns
	// errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Save persists the aggregate as-is, conditioned on the stored version
	// equalling the aggregate's. Used by reconciliation, which repairs the
	// cached status without producing a new version.
	Save(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders in a non-terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}

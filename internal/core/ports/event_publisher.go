package ports

import (
	"context"

	"dentallab/internal/core/domain/model/order"
)

// EventPublisher delivers StatusChanged events to external consumers
// (notification, chat). Publication is fire-and-forget: implementations
// must not fail the transition when the channel is unavailable, and callers
// invoke Publish only after the transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, event order.StatusChanged) error
}

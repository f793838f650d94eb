package commands

import (
	"context"
	"log/slog"
	"time"

	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/core/ports"
)

// TransitionOrderCommandHandler orchestrates a single lifecycle transition.
// Loads the order, lets the aggregate validate and apply the move, then
// persists the updated status and the new ledger entry in one transaction.
// The status update is conditioned on the version read at load time, so a
// concurrent transition on the same order surfaces as
// errs.ConcurrentModificationError instead of a silent overwrite.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Rejected, qa, "margin gap on 24")
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    log.Println("Move not allowed from the current status")
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    log.Println("Someone else changed the order, re-read and retry")
//	case err != nil:
//	    log.Printf("Transition failed: %v", err)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for notifying consumers after commit.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "transition_order"),
	}
}

// Handle processes the transition command.
// Appending the ledger entry and updating the cached status share one
// transaction. StatusChanged events are published only after a successful
// commit; publication failures are logged and never fail the transition.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	entry, err := aggregate.TransitionTo(
		cmd.TargetStatus(),
		cmd.PerformedBy(),
		cmd.Reason(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishEvents(ctx, aggregate)

	return nil
}

// publishEvents drains the aggregate's StatusChanged events to the
// publisher. Best effort only: the transition already committed.
func (h TransitionOrderCommandHandler) publishEvents(ctx context.Context, aggregate *order.Order) {
	for _, event := range aggregate.DomainEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.Warn("failed to publish status changed event",
				"order_id", event.OrderID.String(),
				"error", err,
			)
		}
	}

	aggregate.ClearDomainEvents()
}

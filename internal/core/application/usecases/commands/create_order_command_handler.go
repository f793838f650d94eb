package commands

import (
	"context"
	"time"

	"dentallab/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order registration.
// New orders start in "pending" status and receive their first history ledger
// entry in the same transaction, so the ledger is never empty for an order
// that exists.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID := kernel.NewUUID()
//	cmd, _ := NewCreateOrderCommand(orderID, clinicID, "bridge", 3, clinicActor)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and ready to be taken into work
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order registration.
// Requires a UoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Builds the order aggregate in "pending" status and persists it together
// with the seed ledger entry, or rolls both back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.ClinicID(), cmd.Category(), cmd.ToothCount())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	seedEntry := newOrder.SeedHistoryEntry(cmd.CreatedBy(), time.Now().UTC())
	if err = uow.HistoryRepository().Append(ctx, seedEntry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

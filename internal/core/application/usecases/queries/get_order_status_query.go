package queries

import (
	"errors"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery retrieves the current status of one order.
// The answer is derived from the history ledger, which is the source of
// truth; the cached column on the orders table is a read optimization only.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderStatusQueryHandler(db)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get status: %w", err)
//	}
//	fmt.Printf("Order %s is %s (version %d)\n", status.OrderID, status.Status, status.Version)
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's current status.
// Validates the order identifier.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose status is requested.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderStatusQueryResponse represents the current lifecycle position of
// an order. AllowedTargets lists the statuses the order may move to next,
// so callers can render available actions without replicating the
// transition rules.
type GetOrderStatusQueryResponse struct {
	OrderID        kernel.UUID
	Status         order.Status
	Version        int
	AllowedTargets []order.Status
}

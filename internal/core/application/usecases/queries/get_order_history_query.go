// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the full status history of one order.
// Returns every ledger entry, oldest first, starting with the seed entry
// written when the order was registered.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve history: %w", err)
//	}
//
//	for _, entry := range history {
//	    fmt.Printf("%s -> %s by %s at %s\n",
//	        entry.FromStatus, entry.ToStatus, entry.PerformedBy, entry.OccurredAt)
//	}
type GetOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query to retrieve the ledger of one order.
// Validates the order identifier.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderHistoryQueryIsNotConstructed if validation fails.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose ledger is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderHistoryQueryResponse represents one ledger entry in the read model.
// FromStatus is nil for the seed entry written at order registration.
type GetOrderHistoryQueryResponse struct {
	OrderID     kernel.UUID
	FromStatus  *order.Status
	ToStatus    order.Status
	PerformedBy string
	Role        string
	OccurredAt  time.Time
	Reason      string
}

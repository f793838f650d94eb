package queries

import (
	"context"
	"database/sql"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves the status ledger of an order from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(orderID)
//
//	history, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    log.Printf("Unknown order %s", orderID)
//	    return err
//	}
//
//	fmt.Printf("Order has %d ledger entries\n", len(history))
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the full ledger of one order.
// Entries are returned oldest first so the slice reads as the order's
// lifecycle. Returns errs.ObjectNotFoundError when the order does not
// exist; an existing order always has at least the seed entry.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)
	`, query.OrderID().Bytes()).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			from_status,
			to_status,
			performed_by,
			performed_by_role,
			occurred_at,
			reason
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var id uuid.UUID
		var fromStatus sql.NullString
		var toStatus string

		err = rows.Scan(
			&id,
			&fromStatus,
			&toStatus,
			&entry.PerformedBy,
			&entry.Role,
			&entry.OccurredAt,
			&entry.Reason,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.OrderID = orderID

		if fromStatus.Valid {
			from, fromErr := order.StatusFromName(fromStatus.String)
			if fromErr != nil {
				return nil, fromErr
			}
			entry.FromStatus = &from
		}

		to, toErr := order.StatusFromName(toStatus)
		if toErr != nil {
			return nil, toErr
		}
		entry.ToStatus = to

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

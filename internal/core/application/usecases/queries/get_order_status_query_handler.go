package queries

import (
	"context"
	"database/sql"
	"errors"

	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler answers "where is this order now".
// Reads the cached status together with the latest ledger entry and trusts
// the ledger when the two disagree, so a stale cache can never misreport a
// status that the ledger already recorded.
//
// Example:
//
//	handler := NewGetOrderStatusQueryHandler(db)
//	query, _ := NewGetOrderStatusQuery(orderID)
//
//	status, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    log.Printf("Unknown order %s", orderID)
//	    return err
//	}
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for current status queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query for one order's current status.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var row struct {
		Status       string
		Version      int
		LedgerStatus sql.NullString
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			o.version,
			(
				SELECT h.to_status
				FROM order_history h
				WHERE h.order_id = o.id
				ORDER BY h.occurred_at DESC, h.id DESC
				LIMIT 1
			) AS ledger_status
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row().Scan(&row.Status, &row.Version, &row.LedgerStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	// the ledger wins over the cached column
	statusName := row.Status
	if row.LedgerStatus.Valid {
		statusName = row.LedgerStatus.String
	}

	status, err := order.StatusFromName(statusName)
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	return GetOrderStatusQueryResponse{
		OrderID:        query.OrderID(),
		Status:         status,
		Version:        row.Version,
		AllowedTargets: status.AllowedTargets(),
	}, nil
}

package queries

import (
	"context"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves non-terminal orders from the database.
// Filters out delivered and cancelled orders to provide active workload
// visibility.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	query := NewGetActiveOrdersQuery()
//
//	activeOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active orders: %v", err)
//	    return err
//	}
//
//	if len(activeOrders) > 0 {
//	    fmt.Printf("%d orders in the lab\n", len(activeOrders))
//	}
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all active orders.
// Returns orders in any status except the terminal ones.
// Results are sorted by order ID for consistent output.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			clinic_id,
			category,
			tooth_count,
			status,
			version
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY id
	`, order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id, clinicID uuid.UUID
		var status string

		err = rows.Scan(
			&id,
			&clinicID,
			&orderResp.Category,
			&orderResp.ToothCount,
			&status,
			&orderResp.Version,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		ordererID, clinicErr := kernel.UUIDFromBytes(clinicID[:])
		if clinicErr != nil {
			return nil, clinicErr
		}
		orderResp.ClinicID = ordererID

		parsedStatus, statusErr := order.StatusFromName(status)
		if statusErr != nil {
			return nil, statusErr
		}
		orderResp.Status = parsedStatus

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

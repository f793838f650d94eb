package http

import "time"

// Actor identifies who performs an operation, as seen on the wire.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ClinicID    string `json:"clinicId"`
	Category    string `json:"category"`
	ToothCount  int    `json:"toothCount"`
	PerformedBy Actor  `json:"performedBy"`
}

// CreateOrderResponse confirms registration of a new order.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/status.
// Reason is required when targetStatus is "rejected".
type TransitionOrderRequest struct {
	TargetStatus string `json:"targetStatus"`
	Reason       string `json:"reason"`
	PerformedBy  Actor  `json:"performedBy"`
}

// OrderStatus reports where an order currently is in its lifecycle and
// which statuses it may move to next.
type OrderStatus struct {
	OrderID        string   `json:"orderId"`
	Status         string   `json:"status"`
	Version        int      `json:"version"`
	AllowedTargets []string `json:"allowedTargets"`
}

// HistoryEntry is one ledger record in an order's history.
// FromStatus is null for the entry written at order registration.
type HistoryEntry struct {
	OrderID     string    `json:"orderId"`
	FromStatus  *string   `json:"fromStatus"`
	ToStatus    string    `json:"toStatus"`
	PerformedBy Actor     `json:"performedBy"`
	OccurredAt  time.Time `json:"occurredAt"`
	Reason      string    `json:"reason,omitempty"`
}

// ActiveOrder is one row of GET /api/v1/orders/active.
type ActiveOrder struct {
	ID         string `json:"id"`
	ClinicID   string `json:"clinicId"`
	Category   string `json:"category"`
	ToothCount int    `json:"toothCount"`
	Status     string `json:"status"`
	Version    int    `json:"version"`
}

// Error is the uniform error body for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Package http exposes the order lifecycle over a small JSON API.
// It coordinates between HTTP handlers and application use cases and maps
// the domain failure taxonomy onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/application/usecases/queries"
	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP endpoints to command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler

	// Query handlers
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	getOrderStatusHandler  queries.GetOrderStatusQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		getOrderStatusHandler:  getOrderStatusHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)
}

// CreateOrder handles POST /api/v1/orders - registers a new lab order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clinicID, err := kernel.UUIDFromString(req.ClinicID)
	if err != nil {
		return badRequest(ctx, "Invalid clinic id: "+err.Error())
	}

	createdBy, err := toActor(req.PerformedBy)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clinicID, req.Category, req.ToothCount, createdBy)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     orderID.String(),
		Status: order.Pending.String(),
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/status - applies one
// lifecycle transition and returns the resulting position.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromName(req.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	performedBy, err := toActor(req.PerformedBy)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, performedBy, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return s.respondWithStatus(ctx, orderID)
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	return s.respondWithStatus(ctx, orderID)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the full
// ledger of one order, oldest entry first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]HistoryEntry, len(history))
	for i, entry := range history {
		var fromStatus *string
		if entry.FromStatus != nil {
			name := entry.FromStatus.String()
			fromStatus = &name
		}

		response[i] = HistoryEntry{
			OrderID:     entry.OrderID.String(),
			FromStatus:  fromStatus,
			ToStatus:    entry.ToStatus.String(),
			PerformedBy: Actor{ID: entry.PerformedBy, Role: entry.Role},
			OccurredAt:  entry.OccurredAt,
			Reason:      entry.Reason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all orders
// in a non-terminal status.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			ID:         o.ID.String(),
			ClinicID:   o.ClinicID.String(),
			Category:   o.Category,
			ToothCount: o.ToothCount,
			Status:     o.Status.String(),
			Version:    o.Version,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) respondWithStatus(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	targets := make([]string, len(status.AllowedTargets))
	for i, target := range status.AllowedTargets {
		targets[i] = target.String()
	}

	return ctx.JSON(http.StatusOK, OrderStatus{
		OrderID:        status.OrderID.String(),
		Status:         status.Status.String(),
		Version:        status.Version,
		AllowedTargets: targets,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates the failure taxonomy into HTTP status codes.
// Unknown order -> 404; transition and version conflicts -> 409; a missing
// rejection reason -> 422; other validation failures -> 400; everything
// else is a storage failure and stays a generic 500.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrentModification):
		// losing a version race is transient; a re-read and retry resolves it
		ctx.Response().Header().Set("Retry-After", "0")
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrReasonIsRequired):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func toActor(dto Actor) (actor.Actor, error) {
	role, err := actor.RoleFromName(dto.Role)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(dto.ID, role)
}

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2)
	require.NoError(t, err)
	return aggregate
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate := pendingOrder(t)
	technician, _ := actor.NewActor("tech-7", actor.RoleTechnician)
	cmd, err := commands.NewTransitionOrderCommand(aggregate.ID(), order.InProgress, technician, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("order.StatusChanged")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, aggregate.Status())
	assert.Equal(t, 2, aggregate.Version())
	assert.Empty(t, aggregate.DomainEvents(), "events must be drained after publishing")

	appended := historyRepo.Calls[0].Arguments.Get(1).(order.HistoryEntry)
	require.NotNil(t, appended.FromStatus())
	assert.Equal(t, order.Pending, *appended.FromStatus())
	assert.Equal(t, order.InProgress, appended.ToStatus())

	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_PublishFailureDoesNotFailTransition(t *testing.T) {
	ctx := t.Context()

	aggregate := pendingOrder(t)
	technician, _ := actor.NewActor("tech-7", actor.RoleTechnician)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.InProgress, technician, "")

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", ctx, aggregate).Return(nil).Once()
	historyRepo.On("Append", ctx, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once()
	publisher.On("Publish", ctx, mock.AnythingOfType("order.StatusChanged")).
		Return(errors.New("broker unavailable")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, publisher, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, aggregate.Status())
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	aggregate := pendingOrder(t)
	technician, _ := actor.NewActor("tech-7", actor.RoleTechnician)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.Delivered, technician, "")

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, publisher, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, aggregate.Status())
	assert.Equal(t, 1, aggregate.Version())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_RejectWithoutReason(t *testing.T) {
	ctx := t.Context()

	aggregate := pendingOrder(t)
	qa, _ := actor.NewActor("qa-1", actor.RoleQA)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.Rejected, qa, "   ")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrReasonIsRequired)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	technician, _ := actor.NewActor("tech-7", actor.RoleTechnician)
	cmd, _ := commands.NewTransitionOrderCommand(orderID, order.InProgress, technician, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order_id", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()

	aggregate := pendingOrder(t)
	technician, _ := actor.NewActor("tech-7", actor.RoleTechnician)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.InProgress, technician, "")

	orderRepo := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).
			Return(errs.NewConcurrentModificationError("order_id", aggregate.ID(), 1)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, publisher, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

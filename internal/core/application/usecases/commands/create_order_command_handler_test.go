package commands_test

import (
	"context"
	"errors"
	"testing"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommand_Validation(t *testing.T) {
	requester := kernel.NewUUID()

	_, err := commands.NewCreateOrderCommand(requester, "Jeddah Islamic Port", "2 containers")
	require.NoError(t, err)

	_, err = commands.NewCreateOrderCommand(requester, "", "")
	require.ErrorIs(t, err, commands.ErrLocationIsRequired)

	var zero kernel.UUID
	_, err = commands.NewCreateOrderCommand(zero, "port", "")
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Dammam Port", "1 container")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := context.Background()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "port", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit", ctx)
}

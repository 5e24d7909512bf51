package commands_test

import (
	"context"
	"testing"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkCheckpointCommand_Validation(t *testing.T) {
	broker := kernel.NewUUID()

	_, err := commands.NewMarkCheckpointCommand(10, broker, order.RoleBroker, 2)
	require.NoError(t, err)

	_, err = commands.NewMarkCheckpointCommand(10, broker, order.RoleBroker, 0)
	require.Error(t, err)

	_, err = commands.NewMarkCheckpointCommand(10, broker, order.RoleBroker, 4)
	require.Error(t, err)
}

func TestMarkCheckpointCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.UnderExecution,
		&broker, [order.CheckpointCount]bool{})

	cmd, err := commands.NewMarkCheckpointCommand(10, broker, order.RoleBroker, 1)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once()

	handler := commands.NewMarkCheckpointCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, [order.CheckpointCount]bool{true, false, false}, testOrder.Checkpoints())
	uow.AssertExpectations(t)
}

func TestMarkCheckpointCommandHandler_Handle_RepeatedStepIsNoOp(t *testing.T) {
	ctx := context.Background()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.UnderExecution,
		&broker, [order.CheckpointCount]bool{true, false, false})

	cmd, err := commands.NewMarkCheckpointCommand(10, broker, order.RoleBroker, 1)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkCheckpointCommandHandler(factory, newSideEffects().applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestMarkCheckpointCommandHandler_Handle_ForeignBroker(t *testing.T) {
	ctx := context.Background()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.UnderExecution,
		&broker, [order.CheckpointCount]bool{})

	cmd, err := commands.NewMarkCheckpointCommand(10, kernel.NewUUID(), order.RoleBroker, 1)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkCheckpointCommandHandler(factory, newSideEffects().applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrActorIsNotAcceptedBroker)
}

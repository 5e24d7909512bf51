package commands_test

import (
	"context"
	"testing"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteExecutionCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	broker := kernel.NewUUID()
	bidHandle := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.UnderExecution,
		&broker, [order.CheckpointCount]bool{true, true, true})

	acceptedBid, err := bid.RestoreBid(2, 10, broker, decimal.NewFromInt(100), true, &bidHandle)
	require.NoError(t, err)

	cmd, err := commands.NewCompleteExecutionCommand(10, broker, order.RoleBroker)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("GetByOrder", ctx, int64(10)).Return([]*bid.Bid{acceptedBid}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once()
	fx.scheduler.On("Cancel", ctx, bidHandle).Return(nil).Once()

	handler := commands.NewCompleteExecutionCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Executed, testOrder.Status())
	fx.scheduler.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteExecutionCommandHandler_Handle_CheckpointsIncomplete(t *testing.T) {
	ctx := context.Background()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.UnderExecution,
		&broker, [order.CheckpointCount]bool{true, true, false})

	cmd, err := commands.NewCompleteExecutionCommand(10, broker, order.RoleBroker)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("GetByOrder", ctx, int64(10)).Return([]*bid.Bid{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBiddingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteExecutionCommandHandler(factory, newSideEffects().applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrCheckpointsIncomplete)
	require.Equal(t, order.UnderExecution, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

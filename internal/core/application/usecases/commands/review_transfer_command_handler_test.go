package commands_test

import (
	"context"
	"testing"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewTransferCommandHandler_Handle_Approve(t *testing.T) {
	ctx := context.Background()
	accountant := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.AccountingTransferred,
		&broker, [order.CheckpointCount]bool{true, true, true})

	cmd, err := commands.NewReviewTransferCommand(10, accountant, order.RoleAccountant, true, "", "", "")
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

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once()

	handler := commands.NewReviewTransferCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Completed, testOrder.Status())
	uow.AssertExpectations(t)
}

func TestReviewTransferCommandHandler_Handle_ReasonOnlyRejection_PersistsNote(t *testing.T) {
	ctx := context.Background()
	accountant := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.AccountingTransferred,
		&broker, [order.CheckpointCount]bool{true, true, true})

	// No separate note text; the rejection reason must still end up as the stage note.
	cmd, err := commands.NewReviewTransferCommand(10, accountant, order.RoleAccountant,
		false, "amounts do not reconcile", "", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	noteRepo := new(MockNoteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("NoteRepository").Return(noteRepo).Once(),
		noteRepo.On("GetByOrderAndStage", ctx, int64(10), note.StageAccounting).
			Return(nil, errs.ErrObjectNotFound).
			Once(),
		noteRepo.On("Add", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.Text() == "amounts do not reconcile" && n.Stage() == note.StageAccounting
		})).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Twice()

	handler := commands.NewReviewTransferCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.AccountingRejected, testOrder.Status())
	noteRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReviewTransferCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := context.Background()
	accountant := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.Executed,
		&broker, [order.CheckpointCount]bool{true, true, true})

	cmd, err := commands.NewReviewTransferCommand(10, accountant, order.RoleAccountant, true, "", "", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReviewTransferCommandHandler(factory, newSideEffects().applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

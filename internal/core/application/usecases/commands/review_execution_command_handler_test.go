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

func TestReviewExecutionCommand_Validation(t *testing.T) {
	reviewer := kernel.NewUUID()

	_, err := commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService, true, "", "", "")
	require.NoError(t, err)

	_, err = commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService,
		false, "documents missing", "", "")
	require.NoError(t, err)

	// Rejections must carry a reason.
	_, err = commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService, false, "", "", "")
	require.ErrorIs(t, err, commands.ErrReasonIsRequired)
}

func TestReviewExecutionCommandHandler_Handle_ApproveWithNote(t *testing.T) {
	ctx := context.Background()
	reviewer := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.Executed,
		&broker, [order.CheckpointCount]bool{true, true, true})

	cmd, err := commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService,
		true, "", "paperwork verified", "files/scan.pdf")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	noteRepo := new(MockNoteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("NoteRepository").Return(noteRepo).Once(),
		noteRepo.On("GetByOrderAndStage", ctx, int64(10), note.StageCustomerService).
			Return(nil, errs.ErrObjectNotFound).
			Once(),
		noteRepo.On("Add", ctx, mock.AnythingOfType("*note.Note")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Once()

	handler := commands.NewReviewExecutionCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.AccountingTransferred, testOrder.Status())
	noteRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReviewExecutionCommandHandler_Handle_RejectRevisesExistingNote(t *testing.T) {
	ctx := context.Background()
	reviewer := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.Executed,
		&broker, [order.CheckpointCount]bool{true, true, true})

	existingNote, err := note.RestoreNote(5, 10, kernel.NewUUID(), note.StageCustomerService, "first pass", "")
	require.NoError(t, err)

	cmd, err := commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService,
		false, "documents missing", "resubmit the invoice", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	noteRepo := new(MockNoteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("NoteRepository").Return(noteRepo).Once(),
		noteRepo.On("GetByOrderAndStage", ctx, int64(10), note.StageCustomerService).
			Return(existingNote, nil).
			Once(),
		noteRepo.On("Update", ctx, mock.AnythingOfType("*note.Note")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReviewUoWFactory)
	factory.On("Create").Return(uow).Once()

	fx := newSideEffects()
	// Rejection writes the verdict line and the reason line.
	fx.auditLog.On("Append", ctx, mock.AnythingOfType("ports.AuditEntry")).Return(nil).Twice()

	handler := commands.NewReviewExecutionCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.AccountingRejected, testOrder.Status())
	require.Equal(t, "resubmit the invoice", existingNote.Text())
	fx.auditLog.AssertExpectations(t)
}

func TestReviewExecutionCommandHandler_Handle_ReasonOnlyRejection_PersistsNote(t *testing.T) {
	ctx := context.Background()
	reviewer := kernel.NewUUID()
	broker := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.Executed,
		&broker, [order.CheckpointCount]bool{true, true, true})

	// No separate note text; the rejection reason must still end up as the stage note.
	cmd, err := commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService,
		false, "documents missing", "", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	noteRepo := new(MockNoteRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(10)).Return(testOrder, nil).Once(),
		uow.On("NoteRepository").Return(noteRepo).Once(),
		noteRepo.On("GetByOrderAndStage", ctx, int64(10), note.StageCustomerService).
			Return(nil, errs.ErrObjectNotFound).
			Once(),
		noteRepo.On("Add", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.Text() == "documents missing" && n.Stage() == note.StageCustomerService
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

	handler := commands.NewReviewExecutionCommandHandler(factory, fx.applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.AccountingRejected, testOrder.Status())
	noteRepo.AssertExpectations(t)
}

func TestReviewExecutionCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := context.Background()
	reviewer := kernel.NewUUID()
	testOrder := restoreOrderInStatus(t, 10, kernel.NewUUID(), order.Pending, nil, [order.CheckpointCount]bool{})

	cmd, err := commands.NewReviewExecutionCommand(10, reviewer, order.RoleCustomerService, true, "", "", "")
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

	handler := commands.NewReviewExecutionCommandHandler(factory, newSideEffects().applier(), zerolog.Nop())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

package commands

import (
	"context"
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"
	"clearance/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// ReviewExecutionCommandHandler handles the customer-service review verdict
// and the stage note upsert in one transaction.
type ReviewExecutionCommandHandler struct {
	uowFactory ReviewUoWFactory
	effects    EffectApplier
	log        zerolog.Logger
}

// NewReviewExecutionCommandHandler creates a handler for customer-service reviews.
func NewReviewExecutionCommandHandler(
	uowFactory ReviewUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) ReviewExecutionCommandHandler {
	return ReviewExecutionCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		log:        log,
	}
}

// Handle processes the verdict.
func (h *ReviewExecutionCommandHandler) Handle(ctx context.Context, cmd ReviewExecutionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var transitionEffects []order.Effect
	action := order.ActionApproveExecution
	if cmd.Approved() {
		transitionEffects, err = orderAggregate.ApproveExecution(cmd.Role(), cmd.ActorID())
	} else {
		action = order.ActionRejectExecution
		transitionEffects, err = orderAggregate.RejectExecution(cmd.Role(), cmd.ActorID(), cmd.Reason())
	}
	observeTransition(action, err)
	if err != nil {
		return err
	}

	// Rejections always leave a stage note; the verdict reason stands in
	// when the reviewer attached no separate note.
	noteText := cmd.NoteText()
	if !cmd.Approved() && noteText == "" {
		noteText = cmd.Reason()
	}
	if noteText != "" {
		if err = upsertNote(ctx, uow.NoteRepository(), cmd.OrderID(), cmd.ActorID(),
			note.StageCustomerService, noteText, cmd.AttachmentURL()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	target := EffectTarget{
		OrderID: cmd.OrderID(),
		ActorID: cmd.ActorID(),
		Action:  action,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("execution reviewed, side effects incomplete")
	}

	return nil
}

// upsertNote revises the stage's existing note or creates the first one.
func upsertNote(
	ctx context.Context,
	notes ports.NoteRepository,
	orderID int64,
	authorID kernel.UUID,
	stage note.Stage,
	text, attachmentURL string,
) error {
	existing, err := notes.GetByOrderAndStage(ctx, orderID, stage)
	switch {
	case err == nil:
		if err = existing.Revise(authorID, text, attachmentURL); err != nil {
			return err
		}
		return notes.Update(ctx, existing)
	case errors.Is(err, errs.ErrObjectNotFound):
		fresh, noteErr := note.NewNote(orderID, authorID, stage, text, attachmentURL)
		if noteErr != nil {
			return noteErr
		}
		return notes.Add(ctx, fresh)
	default:
		return err
	}
}

package commands

import (
	"context"

	"clearance/internal/core/domain/model/note"
	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// ReviewTransferCommandHandler handles the accounting review verdict and the
// accounting-stage note upsert in one transaction.
type ReviewTransferCommandHandler struct {
	uowFactory ReviewUoWFactory
	effects    EffectApplier
	log        zerolog.Logger
}

// NewReviewTransferCommandHandler creates a handler for accounting reviews.
func NewReviewTransferCommandHandler(
	uowFactory ReviewUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) ReviewTransferCommandHandler {
	return ReviewTransferCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		log:        log,
	}
}

// Handle processes the verdict.
func (h *ReviewTransferCommandHandler) Handle(ctx context.Context, cmd ReviewTransferCommand) error {
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
	action := order.ActionApproveTransfer
	if cmd.Approved() {
		transitionEffects, err = orderAggregate.ApproveTransfer(cmd.Role(), cmd.ActorID())
	} else {
		action = order.ActionRejectTransfer
		transitionEffects, err = orderAggregate.RejectTransfer(cmd.Role(), cmd.ActorID(), cmd.Reason())
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
			note.StageAccounting, noteText, cmd.AttachmentURL()); err != nil {
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
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("transfer reviewed, side effects incomplete")
	}

	return nil
}

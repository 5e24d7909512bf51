package commands

import (
	"context"

	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// MarkCheckpointCommandHandler handles checkpoint progress reports from the
// accepted broker.
type MarkCheckpointCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    EffectApplier
	log        zerolog.Logger
}

// NewMarkCheckpointCommandHandler creates a handler for checkpoint reports.
func NewMarkCheckpointCommandHandler(
	uowFactory OrderUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) MarkCheckpointCommandHandler {
	return MarkCheckpointCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		log:        log,
	}
}

// Handle processes the checkpoint report. A repeated report of an already-done
// step commits nothing and succeeds.
func (h *MarkCheckpointCommandHandler) Handle(ctx context.Context, cmd MarkCheckpointCommand) error {
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

	transitionEffects, err := orderAggregate.MarkCheckpoint(cmd.Role(), cmd.ActorID(), cmd.Step())
	observeTransition(order.ActionMarkCheckpoint, err)
	if err != nil {
		return err
	}

	if len(transitionEffects) == 0 {
		// Step was already done; nothing changed.
		return nil
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
		Action:  order.ActionMarkCheckpoint,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("checkpoint marked, side effects incomplete")
	}

	return nil
}

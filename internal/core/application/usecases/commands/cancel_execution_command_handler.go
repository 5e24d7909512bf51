package commands

import (
	"context"

	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// CancelExecutionCommandHandler handles the broker's withdrawal from an order
// under execution.
type CancelExecutionCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    EffectApplier
	log        zerolog.Logger
}

// NewCancelExecutionCommandHandler creates a handler for execution cancellation.
func NewCancelExecutionCommandHandler(
	uowFactory OrderUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) CancelExecutionCommandHandler {
	return CancelExecutionCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		log:        log,
	}
}

// Handle processes the cancellation.
func (h *CancelExecutionCommandHandler) Handle(ctx context.Context, cmd CancelExecutionCommand) error {
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

	transitionEffects, err := orderAggregate.CancelExecution(cmd.Role(), cmd.ActorID())
	observeTransition(order.ActionCancelExecution, err)
	if err != nil {
		return err
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
		Action:  order.ActionCancelExecution,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("execution cancelled, side effects incomplete")
	}

	return nil
}

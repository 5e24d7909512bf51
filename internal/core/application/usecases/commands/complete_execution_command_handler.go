package commands

import (
	"context"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// CompleteExecutionCommandHandler handles the broker's completion declaration.
// The checkpoint guard is enforced by the aggregate; reminder cancellation
// happens after commit and its failure never fails the completion.
type CompleteExecutionCommandHandler struct {
	uowFactory BiddingUoWFactory
	effects    EffectApplier
	log        zerolog.Logger
}

// NewCompleteExecutionCommandHandler creates a handler for execution completion.
func NewCompleteExecutionCommandHandler(
	uowFactory BiddingUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) CompleteExecutionCommandHandler {
	return CompleteExecutionCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
		log:        log,
	}
}

// Handle processes the completion declaration.
func (h *CompleteExecutionCommandHandler) Handle(ctx context.Context, cmd CompleteExecutionCommand) error {
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

	orderBids, err := uow.BidRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var acceptedBidHandle *kernel.UUID
	for _, b := range orderBids {
		if b.IsAccepted() {
			acceptedBidHandle = b.JobHandle()
			break
		}
	}

	transitionEffects, err := orderAggregate.CompleteExecution(cmd.Role(), cmd.ActorID(), acceptedBidHandle)
	observeTransition(order.ActionCompleteExecution, err)
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
		Action:  order.ActionCompleteExecution,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("execution completed, side effects incomplete")
	}

	return nil
}

package commands

import (
	"context"

	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/domain/services"

	"github.com/rs/zerolog"
)

// AcceptBidCommandHandler handles bid acceptance. The order row is locked for
// the duration of the transaction so that two concurrent accepts serialize:
// the loser observes the winner's accepted bid and fails with AlreadyAccepted.
type AcceptBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	ledger     services.BidLedger
	effects    EffectApplier
	log        zerolog.Logger
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
func NewAcceptBidCommandHandler(
	uowFactory BiddingUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewBidLedger(),
		effects:    effects,
		log:        log,
	}
}

// Handle processes the acceptance. On success the order is UnderExecution,
// exactly one bid of the order is accepted, and the accepted broker has been
// notified best-effort.
func (h *AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
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

	orderAggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	orderBids, err := uow.BidRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	winner, transitionEffects, err := h.ledger.Accept(
		orderAggregate, cmd.Role(), cmd.ActorID(), orderBids, cmd.BidID())
	observeTransition(order.ActionAcceptBid, err)
	if err != nil {
		return err
	}

	if err = uow.BidRepository().Update(ctx, winner); err != nil {
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
		Action:  order.ActionAcceptBid,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("bid accepted, side effects incomplete")
	}

	return nil
}

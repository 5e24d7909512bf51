package commands

import (
	"context"

	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/domain/services"

	"github.com/rs/zerolog"
)

// SubmitBidCommandHandler handles broker bid submission. The bid is persisted
// in the same transaction as the legality check; the broker's first bid on an
// order additionally books the expiry reminder after commit.
type SubmitBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	ledger     services.BidLedger
	effects    EffectApplier
	log        zerolog.Logger
}

// NewSubmitBidCommandHandler creates a handler for bid submission.
func NewSubmitBidCommandHandler(
	uowFactory BiddingUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewBidLedger(),
		effects:    effects,
		log:        log,
	}
}

// Handle processes the bid submission and returns the new bid's id.
// Side-effect failures after commit are logged and never fail the call.
func (h *SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	brokerBids, err := uow.BidRepository().GetByOrderAndBroker(ctx, cmd.OrderID(), cmd.ActorID())
	if err != nil {
		return 0, err
	}

	newBid, transitionEffects, err := h.ledger.Submit(
		orderAggregate, cmd.Role(), cmd.ActorID(), cmd.Value(), brokerBids)
	observeTransition(order.ActionSubmitBid, err)
	if err != nil {
		return 0, err
	}

	if err = uow.BidRepository().Add(ctx, newBid); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	target := EffectTarget{
		OrderID:           cmd.OrderID(),
		ActorID:           cmd.ActorID(),
		Action:            order.ActionSubmitBid,
		BidID:             newBid.ID(),
		AttachOrderHandle: orderAggregate.JobHandle() == nil,
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("bid submitted, side effects incomplete")
	}

	return newBid.ID(), nil
}

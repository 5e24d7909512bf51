package commands

import (
	"context"

	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/domain/services"

	"github.com/rs/zerolog"
)

// RouteBackCommandHandler handles routing decisions on executed or
// accounting-rejected orders. Reopening runs through the bid ledger so the
// rejected broker's accepted bids are purged in the same transaction.
type RouteBackCommandHandler struct {
	uowFactory BiddingUoWFactory
	ledger     services.BidLedger
	effects    EffectApplier
	log        zerolog.Logger
}

// NewRouteBackCommandHandler creates a handler for routing decisions.
func NewRouteBackCommandHandler(
	uowFactory BiddingUoWFactory,
	effects EffectApplier,
	log zerolog.Logger,
) RouteBackCommandHandler {
	return RouteBackCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewBidLedger(),
		effects:    effects,
		log:        log,
	}
}

// Handle processes the routing decision.
func (h *RouteBackCommandHandler) Handle(ctx context.Context, cmd RouteBackCommand) error {
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
	switch cmd.Route() {
	case order.ActionRouteTransfer:
		transitionEffects, err = orderAggregate.RouteTransfer(cmd.Role())
	case order.ActionRouteDelete:
		transitionEffects, err = orderAggregate.RouteDelete(cmd.Role())
	case order.ActionRouteReopen:
		transitionEffects, err = h.reopen(ctx, uow, orderAggregate, cmd)
	}
	observeTransition(cmd.Route(), err)
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
		Action:  cmd.Route(),
	}
	if err = h.effects.Apply(ctx, target, transitionEffects); err != nil {
		h.log.Warn().Err(err).Int64("orderId", cmd.OrderID()).Msg("order routed, side effects incomplete")
	}

	return nil
}

func (h *RouteBackCommandHandler) reopen(
	ctx context.Context,
	uow BiddingUoW,
	orderAggregate *order.Order,
	cmd RouteBackCommand,
) ([]order.Effect, error) {
	// Legality first: orders that never accepted a broker (Pending, terminal)
	// have no broker to reject, and must fail as an invalid transition rather
	// than dereference a nil acceptance.
	if err := orderAggregate.Status().Authorize(cmd.Role(), order.ActionRouteReopen); err != nil {
		return nil, err
	}
	rejectedBroker := *orderAggregate.Broker()

	orderBids, err := uow.BidRepository().GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	purgeIDs, transitionEffects, err := h.ledger.Reopen(orderAggregate, cmd.Role(), rejectedBroker, orderBids)
	if err != nil {
		return nil, err
	}

	if len(purgeIDs) > 0 {
		if err = uow.BidRepository().Delete(ctx, purgeIDs); err != nil {
			return nil, err
		}
	}

	return transitionEffects, nil
}

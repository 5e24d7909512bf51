package services

import (
	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BidLedger is the domain service coordinating an order with its bid rows.
// It works over aggregates the caller already loaded inside the transaction;
// persistence of the returned entities stays with the caller.
type BidLedger struct{}

// NewBidLedger creates a BidLedger instance.
func NewBidLedger() BidLedger {
	return BidLedger{}
}

// Submit validates a broker's offer against the order and returns the new bid
// plus the transition's side effects. existingBids must be the broker's bids
// on this order as loaded before the insert; the first-bid reminder is derived
// from them, so retried or repeat submissions never double-schedule it.
func (BidLedger) Submit(
	o *order.Order,
	role order.Role,
	brokerID kernel.UUID,
	value decimal.Decimal,
	existingBids []*bid.Bid,
) (*bid.Bid, []order.Effect, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	effects, err := o.RegisterBid(role, brokerID, len(existingBids) == 0)
	if err != nil {
		return nil, nil, err
	}

	newBid, err := bid.NewBid(o.ID(), brokerID, value)
	if err != nil {
		return nil, nil, err
	}

	return newBid, effects, nil
}

// Accept marks exactly one bid accepted and moves the order to UnderExecution.
// bids must be all bids of the order loaded under the transaction's row lock;
// if any of them is already accepted the call fails with bid.ErrAlreadyAccepted,
// which is what the loser of two concurrent accepts observes.
func (BidLedger) Accept(
	o *order.Order,
	role order.Role,
	requesterID kernel.UUID,
	bids []*bid.Bid,
	bidID int64,
) (*bid.Bid, []order.Effect, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	var winner *bid.Bid
	for _, b := range bids {
		if b.IsAccepted() {
			return nil, nil, bid.ErrAlreadyAccepted
		}
		if b.ID() == bidID {
			winner = b
		}
	}
	if winner == nil {
		return nil, nil, errs.NewObjectNotFoundError("bid", bidID)
	}

	effects, err := o.AcceptBid(role, requesterID, winner.BrokerID())
	if err != nil {
		return nil, nil, err
	}
	if err := winner.Accept(); err != nil {
		return nil, nil, err
	}

	return winner, effects, nil
}

// Reopen rejects the named broker and returns the order to Pending, reporting
// which of the broker's bids must be purged. Only that broker's accepted bids
// are removed; every other bid on the order is untouched.
func (BidLedger) Reopen(
	o *order.Order,
	role order.Role,
	brokerID kernel.UUID,
	bids []*bid.Bid,
) ([]int64, []order.Effect, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	effects, err := o.RouteReopen(role, brokerID)
	if err != nil {
		return nil, nil, err
	}

	var purge []int64
	for _, b := range bids {
		if b.IsAccepted() && b.BrokerID().IsEqual(brokerID) {
			purge = append(purge, b.ID())
		}
	}
	return purge, effects, nil
}

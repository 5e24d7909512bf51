package commands

import (
	"errors"
	"fmt"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"
	"clearance/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand represents the requester's choice of a winning bid.
// Acceptance moves the order to UnderExecution and binds the bid's broker.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	bidID   int64
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid on a pending order.
func NewAcceptBidCommand(
	orderID, bidID int64,
	actorID kernel.UUID,
	role order.Role,
) (AcceptBidCommand, error) {
	acceptCommand := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&acceptCommand.orderID, orderID),
		acceptCommand.setBidID(bidID),
		setActor(&acceptCommand.actorID, &acceptCommand.role, actorID, role),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c AcceptBidCommand) OrderID() int64 {
	return c.orderID
}

// BidID returns the chosen bid's identity.
func (c AcceptBidCommand) BidID() int64 {
	return c.bidID
}

// ActorID returns the accepting requester's identity.
func (c AcceptBidCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c AcceptBidCommand) Role() order.Role {
	return c.role
}

func (c *AcceptBidCommand) setBidID(bidID int64) error {
	if bidID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("bidId", fmt.Errorf("%d is not a valid bid id", bidID))
	}

	c.bidID = bidID
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"
	"clearance/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrSubmitBidCommandIsNotConstructed = errors.New(
		"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
	)
	ErrBidValueIsInvalid = errors.New("bid value must be greater than 0")
)

// SubmitBidCommand represents a broker's monetary offer against a pending
// order. The broker's first offer on an order books the expiry reminder.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actorID kernel.UUID
	role    order.Role
	value   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to register a broker's bid.
// Validates the order id, actor identity, role, and that the value is positive.
func NewSubmitBidCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
	value decimal.Decimal,
) (SubmitBidCommand, error) {
	bidCommand := SubmitBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&bidCommand.orderID, orderID),
		setActor(&bidCommand.actorID, &bidCommand.role, actorID, role),
		bidCommand.setValue(value),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return bidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c SubmitBidCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the bidding broker's identity.
func (c SubmitBidCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c SubmitBidCommand) Role() order.Role {
	return c.role
}

// Value returns the monetary offer.
func (c SubmitBidCommand) Value() decimal.Decimal {
	return c.value
}

func (c *SubmitBidCommand) setValue(value decimal.Decimal) error {
	if !value.IsPositive() {
		return ErrBidValueIsInvalid
	}

	c.value = value
	return nil
}

func setOrderID(dst *int64, orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a valid order id", orderID))
	}

	*dst = orderID
	return nil
}

func setActor(dstID *kernel.UUID, dstRole *order.Role, actorID kernel.UUID, role order.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	*dstID = actorID
	*dstRole = role
	return nil
}

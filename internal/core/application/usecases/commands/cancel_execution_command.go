package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/guard"
)

var ErrCancelExecutionCommandIsNotConstructed = errors.New(
	"CancelExecutionCommand must be created via NewCancelExecutionCommand constructor",
)

// CancelExecutionCommand represents the accepted broker withdrawing from an
// order under execution. Cancellation is terminal; the order is not re-opened
// for bidding.
type CancelExecutionCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewCancelExecutionCommand creates a command to cancel an order's execution.
func NewCancelExecutionCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
) (CancelExecutionCommand, error) {
	cancelCommand := CancelExecutionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&cancelCommand.orderID, orderID),
		setActor(&cancelCommand.actorID, &cancelCommand.role, actorID, role),
	); err != nil {
		return CancelExecutionCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelExecutionCommand) Validate() error {
	return c.guard.Validate(ErrCancelExecutionCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c CancelExecutionCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the withdrawing broker's identity.
func (c CancelExecutionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c CancelExecutionCommand) Role() order.Role {
	return c.role
}

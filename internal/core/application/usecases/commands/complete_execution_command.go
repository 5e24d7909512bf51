package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/guard"
)

var ErrCompleteExecutionCommandIsNotConstructed = errors.New(
	"CompleteExecutionCommand must be created via NewCompleteExecutionCommand constructor",
)

// CompleteExecutionCommand represents the accepted broker declaring execution
// finished. Legal only after all three checkpoints are done; completion also
// revokes any outstanding expiry reminders.
type CompleteExecutionCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actorID kernel.UUID
	role    order.Role

	guard guard.ConstructorGuard
}

// NewCompleteExecutionCommand creates a command to complete an order's execution.
func NewCompleteExecutionCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
) (CompleteExecutionCommand, error) {
	completeCommand := CompleteExecutionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&completeCommand.orderID, orderID),
		setActor(&completeCommand.actorID, &completeCommand.role, actorID, role),
	); err != nil {
		return CompleteExecutionCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteExecutionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteExecutionCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c CompleteExecutionCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the declaring broker's identity.
func (c CompleteExecutionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c CompleteExecutionCommand) Role() order.Role {
	return c.role
}

package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"
	"clearance/internal/pkg/guard"
)

var ErrMarkCheckpointCommandIsNotConstructed = errors.New(
	"MarkCheckpointCommand must be created via NewMarkCheckpointCommand constructor",
)

// MarkCheckpointCommand represents the accepted broker reporting one of the
// three execution checkpoints as done. Re-reporting a done checkpoint is a
// harmless no-op, so retried requests stay safe.
type MarkCheckpointCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actorID kernel.UUID
	role    order.Role
	step    int

	guard guard.ConstructorGuard
}

// NewMarkCheckpointCommand creates a command to mark checkpoint step (1..3).
func NewMarkCheckpointCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
	step int,
) (MarkCheckpointCommand, error) {
	checkpointCommand := MarkCheckpointCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&checkpointCommand.orderID, orderID),
		setActor(&checkpointCommand.actorID, &checkpointCommand.role, actorID, role),
		checkpointCommand.setStep(step),
	); err != nil {
		return MarkCheckpointCommand{}, err
	}

	return checkpointCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrMarkCheckpointCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c MarkCheckpointCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the reporting broker's identity.
func (c MarkCheckpointCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c MarkCheckpointCommand) Role() order.Role {
	return c.role
}

// Step returns the 1-based checkpoint number.
func (c MarkCheckpointCommand) Step() int {
	return c.step
}

func (c *MarkCheckpointCommand) setStep(step int) error {
	if step < 1 || step > order.CheckpointCount {
		return errs.NewValueIsOutOfRangeError("step", step, 1, order.CheckpointCount)
	}

	c.step = step
	return nil
}

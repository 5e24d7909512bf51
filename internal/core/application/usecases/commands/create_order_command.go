package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLocationIsRequired = errors.New("location is required")
)

// CreateOrderCommand represents a requester's application for a new clearance
// order. Encapsulates the clearance location and the declared line items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(requesterID, "Jeddah Islamic Port", "2 containers, HS 8471")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UUID
	location    string
	lineItems   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new clearance order.
// Validates that the requester id is valid and the location is not empty.
func NewCreateOrderCommand(requesterID kernel.UUID, location, lineItems string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setRequesterID(requesterID),
		orderCommand.setLocation(location),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.lineItems = lineItems
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// RequesterID returns the applying requester's identity.
func (c CreateOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Location returns the clearance location.
func (c CreateOrderCommand) Location() string {
	return c.location
}

// LineItems returns the declared goods description, possibly empty.
func (c CreateOrderCommand) LineItems() string {
	return c.lineItems
}

func (c *CreateOrderCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateOrderCommand) setLocation(location string) error {
	if location == "" {
		return ErrLocationIsRequired
	}

	c.location = location
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/guard"
)

var (
	ErrRouteBackCommandIsNotConstructed = errors.New(
		"RouteBackCommand must be created via NewRouteBackCommand constructor",
	)
	ErrRouteIsInvalid = errors.New("route must be RouteTransfer, RouteDelete or RouteReopen")
)

// RouteBackCommand represents a customer-service or admin decision on what to
// do with an executed or accounting-rejected order: hand it over as
// transferred, delete it, or reopen it for bidding. Reopening purges the
// rejected broker's accepted bids so the order is biddable again.
type RouteBackCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actorID kernel.UUID
	role    order.Role
	route   order.Action

	guard guard.ConstructorGuard
}

// NewRouteBackCommand creates a command carrying the routing decision.
// Route must be one of the three routing actions.
func NewRouteBackCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
	route order.Action,
) (RouteBackCommand, error) {
	routeCommand := RouteBackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&routeCommand.orderID, orderID),
		setActor(&routeCommand.actorID, &routeCommand.role, actorID, role),
		routeCommand.setRoute(route),
	); err != nil {
		return RouteBackCommand{}, err
	}

	return routeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteBackCommand) Validate() error {
	return c.guard.Validate(ErrRouteBackCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c RouteBackCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the deciding actor's identity.
func (c RouteBackCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c RouteBackCommand) Role() order.Role {
	return c.role
}

// Route returns the chosen routing action.
func (c RouteBackCommand) Route() order.Action {
	return c.route
}

func (c *RouteBackCommand) setRoute(route order.Action) error {
	switch route {
	case order.ActionRouteTransfer, order.ActionRouteDelete, order.ActionRouteReopen:
		c.route = route
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrRouteIsInvalid, route)
	}
}

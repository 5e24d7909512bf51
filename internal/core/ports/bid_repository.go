package ports

import (
	"context"

	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid entities.
type BidRepository interface {
	// Add persists a new bid and assigns its integer identity back onto
	// the entity.
	Add(ctx context.Context, entity *bid.Bid) error

	// Update persists changes to an existing bid.
	Update(ctx context.Context, entity *bid.Bid) error

	// Get retrieves a bid by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such bid exists.
	Get(ctx context.Context, id int64) (*bid.Bid, error)

	// GetByOrder retrieves every bid submitted against an order,
	// ordered by id.
	GetByOrder(ctx context.Context, orderID int64) ([]*bid.Bid, error)

	// GetByOrderAndBroker retrieves one broker's bids against an order.
	// Used to detect the broker's first bid.
	GetByOrderAndBroker(ctx context.Context, orderID int64, brokerID kernel.UUID) ([]*bid.Bid, error)

	// Delete removes the bids with the given identifiers. Missing ids
	// are ignored.
	Delete(ctx context.Context, ids []int64) error

	// SetJobHandle records the bid's scheduled reminder handle outside the
	// transition transaction. Used after post-commit scheduling succeeds.
	SetJobHandle(ctx context.Context, id int64, handle kernel.UUID) error
}

package ports

import (
	"context"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and locking order entities
// through their clearance lifecycle.
type OrderRepository interface {
	// Add persists a new order aggregate to storage and assigns its
	// integer identity back onto the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order under a row lock held until the
	// surrounding transaction ends. Used to serialize bid acceptance.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// SetJobHandle records the order's scheduled reminder handle outside the
	// transition transaction. Used after post-commit scheduling succeeds.
	SetJobHandle(ctx context.Context, id int64, handle kernel.UUID) error
}

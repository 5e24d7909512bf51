// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"clearance/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BidRepoFactory provides access to bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// NoteRepoFactory provides access to note repository within a transaction.
	NoteRepoFactory interface {
		NoteRepository() ports.NoteRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BiddingUoW manages transactions spanning an order and its bids.
	// Used by bid submission, acceptance, and order reopening.
	BiddingUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
	}

	// BiddingUoWFactory creates new bidding unit of work instances.
	BiddingUoWFactory interface {
		Create() BiddingUoW
	}

	// ReviewUoW manages transactions spanning an order and its review notes.
	// Used by the customer-service and accounting review commands.
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		NoteRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}
)

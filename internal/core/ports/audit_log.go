package ports

import (
	"context"
	"time"

	"clearance/internal/core/domain/model/kernel"
)

// AuditEntry is one human-readable line in an order's history.
type AuditEntry struct {
	OrderID int64
	ActorID kernel.UUID
	Action  string
	Message string
	Notes   string
	At      time.Time
}

// AuditLog appends history lines emitted by lifecycle transitions. Appends
// happen after the transition committed and are best effort.
type AuditLog interface {
	Append(ctx context.Context, entry AuditEntry) error
}

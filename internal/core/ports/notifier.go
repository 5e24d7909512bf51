package ports

import (
	"context"
	"errors"

	"clearance/internal/core/domain/model/kernel"
)

// ErrNotificationFailure is the stable error kind wrapping any failure to
// deliver an actor notification. Delivery is best effort: callers log the
// failure and keep going.
var ErrNotificationFailure = errors.New("notification failure")

// Notifier delivers short messages to actors about lifecycle events.
type Notifier interface {
	// Notify sends message to the recipient. Failures wrap
	// ErrNotificationFailure.
	Notify(ctx context.Context, recipient kernel.UUID, message string) error
}

package ports

import (
	"context"

	"clearance/internal/core/domain/model/kernel"
)

// UserInfo is the display projection of an actor held by the external
// identity service.
type UserInfo struct {
	ID    kernel.UUID
	Name  string
	Email string
}

// UserDirectory resolves actor identifiers to display information.
type UserDirectory interface {
	// Resolve looks up the given ids and returns the ones it found. Ids the
	// directory does not know are simply absent from the result; a failed
	// lookup returns an error and callers degrade to empty display fields.
	Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]UserInfo, error)
}

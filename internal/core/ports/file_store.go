package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded review attachments and returns a stable URL
// for later retrieval.
type FileStore interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
}

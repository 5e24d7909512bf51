package ports

import (
	"context"

	"clearance/internal/core/domain/model/note"
)

// NoteRepository defines the persistence contract for review notes.
// At most one note exists per (order, stage); writers load the existing
// note first and revise it rather than inserting duplicates.
type NoteRepository interface {
	// Add persists a new note and assigns its integer identity back onto
	// the entity.
	Add(ctx context.Context, entity *note.Note) error

	// Update persists changes to an existing note.
	Update(ctx context.Context, entity *note.Note) error

	// GetByOrderAndStage retrieves the note an actor wrote for the order at
	// the given review stage. Returns errs.ObjectNotFoundError when the
	// stage has no note yet.
	GetByOrderAndStage(ctx context.Context, orderID int64, stage note.Stage) (*note.Note, error)

	// GetByOrder retrieves all notes of an order, ordered by stage.
	GetByOrder(ctx context.Context, orderID int64) ([]*note.Note, error)
}

// Package noterepo persists review notes and maps them to the note entity.
package noterepo

import (
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"

	"github.com/google/uuid"
)

// NoteDTO represents the database structure for persisting review notes.
// A unique index on (order_id, stage) backs the upsert-per-stage contract.
type NoteDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	OrderID       int64     `gorm:"index;uniqueIndex:idx_notes_order_stage"`
	AuthorID      uuid.UUID `gorm:"type:uuid"`
	Stage         int       `gorm:"uniqueIndex:idx_notes_order_stage"`
	Text          string    `gorm:"type:text"`
	AttachmentURL string    `gorm:"type:text"`
}

// TableName specifies the database table name for note entities.
func (NoteDTO) TableName() string {
	return "notes"
}

// fromDomain converts a note entity to its database representation.
func fromDomain(entity *note.Note) NoteDTO {
	return NoteDTO{
		ID:            entity.ID(),
		OrderID:       entity.OrderID(),
		AuthorID:      entity.AuthorID().Bytes(),
		Stage:         int(entity.Stage()),
		Text:          entity.Text(),
		AttachmentURL: entity.AttachmentURL(),
	}
}

// toDomain converts a database DTO to a note entity using RestoreNote.
func toDomain(dto NoteDTO) (*note.Note, error) {
	authorID, err := kernel.UUIDFromBytes(dto.AuthorID[:])
	if err != nil {
		return nil, err
	}

	return note.RestoreNote(dto.ID, dto.OrderID, authorID, note.Stage(dto.Stage), dto.Text, dto.AttachmentURL)
}

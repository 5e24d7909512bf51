package noterepo

import (
	"context"
	"errors"

	"clearance/internal/core/domain/model/note"
	"clearance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNoteRepository implements NoteRepository using GORM.
type GormNoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormNoteRepository creates a new GORM note repository.
func NewGormNoteRepository(db *gorm.DB, tracker aggregateTracker) *GormNoteRepository {
	return &GormNoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new note and assigns the store identity back onto the entity.
func (r *GormNoteRepository) Add(ctx context.Context, entity *note.Note) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := entity.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves an existing note to the database.
func (r *GormNoteRepository) Update(ctx context.Context, entity *note.Note) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&NoteDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// GetByOrderAndStage retrieves the note written for the order at the given
// review stage.
func (r *GormNoteRepository) GetByOrderAndStage(
	ctx context.Context, orderID int64, stage note.Stage,
) (*note.Note, error) {
	var dto NoteDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ? AND stage = ?", orderID, int(stage)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("note", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves all notes of an order, ordered by stage.
func (r *GormNoteRepository) GetByOrder(ctx context.Context, orderID int64) ([]*note.Note, error) {
	var dtos []NoteDTO
	if err := r.db.WithContext(ctx).Order("stage").Find(&dtos, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}

	notes := make([]*note.Note, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, nil
}

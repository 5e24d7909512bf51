// Package note contains the review note entity written by customer-service and
// accounting actors against an order. At most one note exists per (order, stage);
// repeated writes revise the existing note.
package note

import (
	"errors"
	"fmt"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/errs"
)

var (
	// ErrNoteIsNotConstructed is returned when a Note was not created through
	// NewNote or RestoreNote.
	ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote or RestoreNote")

	// ErrTextIsRequired rejects empty note text.
	ErrTextIsRequired = errors.New("note text is required")
)

// Stage identifies which review stage authored the note.
type Stage int

const (
	StageUnknown Stage = iota
	StageCustomerService
	StageAccounting
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:         "Unknown",
		StageCustomerService: "CustomerService",
		StageAccounting:      "Accounting",
	}
}

// String implements fmt.Stringer; safe on any value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects Unknown and out-of-range stages.
func (s Stage) Validate() error {
	if s == StageUnknown {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// Note is a free-text annotation plus optional uploaded-file reference owned by
// an order.
type Note struct {
	id            int64
	orderID       int64
	authorID      kernel.UUID
	stage         Stage
	text          string
	attachmentURL string

	isConstructed bool
}

// NewNote creates a note for an order's review stage.
func NewNote(orderID int64, authorID kernel.UUID, stage Stage, text, attachmentURL string) (*Note, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a valid order id", orderID))
	}
	if err := authorID.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrTextIsRequired
	}

	return &Note{
		orderID:       orderID,
		authorID:      authorID,
		stage:         stage,
		text:          text,
		attachmentURL: attachmentURL,
		isConstructed: true,
	}, nil
}

// RestoreNote reconstructs a note from persistence.
func RestoreNote(id, orderID int64, authorID kernel.UUID, stage Stage, text, attachmentURL string) (*Note, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid note id", id))
	}
	restored, err := NewNote(orderID, authorID, stage, text, attachmentURL)
	if err != nil {
		return nil, err
	}

	restored.id = id
	return restored, nil
}

// Validate ensures the Note was constructed properly.
func (n *Note) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNoteIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned identity, 0 before first persistence.
func (n *Note) ID() int64 {
	return n.id
}

// AssignID records the store-assigned identity right after the first insert.
func (n *Note) AssignID(id int64) error {
	if n.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("note already has id %d", n.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid note id", id))
	}
	n.id = id
	return nil
}

// OrderID returns the owning order's identity.
func (n *Note) OrderID() int64 {
	return n.orderID
}

// AuthorID returns the writing actor's identity.
func (n *Note) AuthorID() kernel.UUID {
	return n.authorID
}

// Stage returns the authoring review stage.
func (n *Note) Stage() Stage {
	return n.stage
}

// Text returns the note text.
func (n *Note) Text() string {
	return n.text
}

// AttachmentURL returns the uploaded-file reference, empty when absent.
func (n *Note) AttachmentURL() string {
	return n.attachmentURL
}

// Revise replaces the note's text and attachment, keeping author and stage.
// Used by the upsert-by-(order, stage) write path.
func (n *Note) Revise(authorID kernel.UUID, text, attachmentURL string) error {
	if err := authorID.Validate(); err != nil {
		return err
	}
	if text == "" {
		return ErrTextIsRequired
	}

	n.authorID = authorID
	n.text = text
	n.attachmentURL = attachmentURL
	return nil
}

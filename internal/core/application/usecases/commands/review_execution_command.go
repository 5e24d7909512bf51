package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/guard"
)

var (
	ErrReviewExecutionCommandIsNotConstructed = errors.New(
		"ReviewExecutionCommand must be created via NewReviewExecutionCommand constructor",
	)
	ErrReasonIsRequired = errors.New("a rejection reason is required")
)

// ReviewExecutionCommand represents the customer-service verdict on an
// executed order: approval routes it to accounting, rejection parks it in
// AccountingRejected with the stated reason. The reviewer may attach a note
// with an optional uploaded file; the note is upserted per review stage.
type ReviewExecutionCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	actorID       kernel.UUID
	role          order.Role
	approved      bool
	reason        string
	noteText      string
	attachmentURL string

	guard guard.ConstructorGuard
}

// NewReviewExecutionCommand creates a command carrying the customer-service
// verdict. A rejection must state its reason.
func NewReviewExecutionCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
	approved bool,
	reason, noteText, attachmentURL string,
) (ReviewExecutionCommand, error) {
	reviewCommand := ReviewExecutionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&reviewCommand.orderID, orderID),
		setActor(&reviewCommand.actorID, &reviewCommand.role, actorID, role),
		setVerdict(&reviewCommand.approved, &reviewCommand.reason, approved, reason),
	); err != nil {
		return ReviewExecutionCommand{}, err
	}

	reviewCommand.noteText = noteText
	reviewCommand.attachmentURL = attachmentURL
	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewExecutionCommand) Validate() error {
	return c.guard.Validate(ErrReviewExecutionCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c ReviewExecutionCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the reviewing actor's identity.
func (c ReviewExecutionCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c ReviewExecutionCommand) Role() order.Role {
	return c.role
}

// Approved reports the verdict.
func (c ReviewExecutionCommand) Approved() bool {
	return c.approved
}

// Reason returns the rejection reason, empty on approval.
func (c ReviewExecutionCommand) Reason() string {
	return c.reason
}

// NoteText returns the optional review note text.
func (c ReviewExecutionCommand) NoteText() string {
	return c.noteText
}

// AttachmentURL returns the optional uploaded-file reference.
func (c ReviewExecutionCommand) AttachmentURL() string {
	return c.attachmentURL
}

func setVerdict(dstApproved *bool, dstReason *string, approved bool, reason string) error {
	if !approved && reason == "" {
		return ErrReasonIsRequired
	}

	*dstApproved = approved
	*dstReason = reason
	return nil
}

package commands

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/guard"
)

var ErrReviewTransferCommandIsNotConstructed = errors.New(
	"ReviewTransferCommand must be created via NewReviewTransferCommand constructor",
)

// ReviewTransferCommand represents the accounting verdict on a transferred
// order: approval completes the lifecycle, rejection parks the order in
// AccountingRejected for customer-service routing. The accountant may attach
// a stage note, upserted like the customer-service one.
type ReviewTransferCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	actorID       kernel.UUID
	role          order.Role
	approved      bool
	reason        string
	noteText      string
	attachmentURL string

	guard guard.ConstructorGuard
}

// NewReviewTransferCommand creates a command carrying the accounting verdict.
// A rejection must state its reason.
func NewReviewTransferCommand(
	orderID int64,
	actorID kernel.UUID,
	role order.Role,
	approved bool,
	reason, noteText, attachmentURL string,
) (ReviewTransferCommand, error) {
	reviewCommand := ReviewTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setOrderID(&reviewCommand.orderID, orderID),
		setActor(&reviewCommand.actorID, &reviewCommand.role, actorID, role),
		setVerdict(&reviewCommand.approved, &reviewCommand.reason, approved, reason),
	); err != nil {
		return ReviewTransferCommand{}, err
	}

	reviewCommand.noteText = noteText
	reviewCommand.attachmentURL = attachmentURL
	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewTransferCommand) Validate() error {
	return c.guard.Validate(ErrReviewTransferCommandIsNotConstructed)
}

// OrderID returns the target order's identity.
func (c ReviewTransferCommand) OrderID() int64 {
	return c.orderID
}

// ActorID returns the reviewing accountant's identity.
func (c ReviewTransferCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the caller's declared role.
func (c ReviewTransferCommand) Role() order.Role {
	return c.role
}

// Approved reports the verdict.
func (c ReviewTransferCommand) Approved() bool {
	return c.approved
}

// Reason returns the rejection reason, empty on approval.
func (c ReviewTransferCommand) Reason() string {
	return c.reason
}

// NoteText returns the optional review note text.
func (c ReviewTransferCommand) NoteText() string {
	return c.noteText
}

// AttachmentURL returns the optional uploaded-file reference.
func (c ReviewTransferCommand) AttachmentURL() string {
	return c.attachmentURL
}

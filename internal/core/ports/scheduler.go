package ports

import (
	"context"
	"errors"
	"time"

	"clearance/internal/core/domain/model/kernel"
)

// ErrSchedulingFailure is the stable error kind wrapping any failure to
// schedule or cancel a reminder. Callers report it without rolling back the
// state transition that requested the scheduling.
var ErrSchedulingFailure = errors.New("scheduling failure")

// ScheduledJob is one durable one-shot reminder row. Attempts counts the
// delivery tries made by the dispatcher after FireAt passed.
type ScheduledJob struct {
	Handle    kernel.UUID
	OrderID   int64
	Recipient kernel.UUID
	FireAt    time.Time
	Deadline  time.Time
	Attempts  int
}

// Scheduler books and revokes durable one-shot reminders. Both operations are
// expected to survive process restarts: a booked reminder fires even if the
// service comes back up after FireAt.
type Scheduler interface {
	// ScheduleExpiryReminder books a reminder for the recipient about the
	// order expiring at deadline, firing at fireAt, and returns the handle
	// identifying the booking. Failures wrap ErrSchedulingFailure.
	ScheduleExpiryReminder(ctx context.Context, orderID int64, recipient kernel.UUID, fireAt, deadline time.Time) (kernel.UUID, error)

	// Cancel revokes a booked reminder. Cancelling an unknown, already
	// cancelled, or already fired handle is a no-op.
	Cancel(ctx context.Context, handle kernel.UUID) error
}

// JobStore is the persistence contract behind the scheduler: pending rows
// survive restarts and the dispatcher polls them by due time.
type JobStore interface {
	// Add persists a new pending job row.
	Add(ctx context.Context, job ScheduledJob) error

	// DuePending returns up to limit pending jobs with FireAt <= now,
	// oldest first.
	DuePending(ctx context.Context, now time.Time, limit int) ([]ScheduledJob, error)

	// RecordAttempt increments the job's delivery attempt counter.
	RecordAttempt(ctx context.Context, handle kernel.UUID) error

	// MarkFired settles the job after a successful delivery.
	MarkFired(ctx context.Context, handle kernel.UUID) error

	// MarkFailed settles the job after delivery gave up for good.
	MarkFailed(ctx context.Context, handle kernel.UUID) error

	// Cancel flips a pending job to cancelled. Unknown or settled handles
	// are left untouched and reported as no error.
	Cancel(ctx context.Context, handle kernel.UUID) error
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"
)

// DurableScheduler implements ports.Scheduler by persisting one row per
// booking. It does no timing itself; ExpiryReminderJob polls the store and
// delivers due rows.
type DurableScheduler struct {
	store ports.JobStore
}

// NewDurableScheduler creates a scheduler backed by the given job store.
func NewDurableScheduler(store ports.JobStore) (*DurableScheduler, error) {
	if store == nil {
		return nil, fmt.Errorf("job store is required")
	}
	return &DurableScheduler{store: store}, nil
}

// ScheduleExpiryReminder books a reminder row and returns its handle.
// Any store failure is reported as ports.ErrSchedulingFailure; the caller
// keeps the state transition that requested the booking.
func (s *DurableScheduler) ScheduleExpiryReminder(
	ctx context.Context, orderID int64, recipient kernel.UUID, fireAt, deadline time.Time,
) (kernel.UUID, error) {
	handle := kernel.NewUUID()

	err := s.store.Add(ctx, ports.ScheduledJob{
		Handle:    handle,
		OrderID:   orderID,
		Recipient: recipient,
		FireAt:    fireAt,
		Deadline:  deadline,
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: book reminder for order %d: %v", ports.ErrSchedulingFailure, orderID, err)
	}

	return handle, nil
}

// Cancel revokes a booking. The store treats unknown and settled handles as
// matching zero rows, which makes Cancel idempotent.
func (s *DurableScheduler) Cancel(ctx context.Context, handle kernel.UUID) error {
	if err := s.store.Cancel(ctx, handle); err != nil {
		return fmt.Errorf("%w: cancel reminder %s: %v", ports.ErrSchedulingFailure, handle, err)
	}
	return nil
}

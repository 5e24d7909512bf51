package commands

import (
	"context"
	"errors"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"
	"clearance/internal/pkg/metrics"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// observeTransition records the outcome of a lifecycle transition attempt.
func observeTransition(action order.Action, err error) {
	if err == nil {
		metrics.TransitionsApplied.WithLabelValues(action.String()).Inc()
		return
	}
	if errors.Is(err, order.ErrInvalidTransition) {
		metrics.TransitionsRejected.Inc()
	}
}

// EffectTarget tells the applier which persisted entities a transition's
// effects belong to. BidID and AttachOrderHandle parameterize reminder
// scheduling: a newly booked handle is written onto that bid, and onto the
// order as well when the order has no handle yet.
type EffectTarget struct {
	OrderID           int64
	ActorID           kernel.UUID
	Action            order.Action
	BidID             int64
	AttachOrderHandle bool
}

// EffectApplier carries out the side effects a committed transition emitted:
// audit lines, actor notifications, reminder scheduling and cancellation.
// Every failure is collected and logged by the caller; none of them undoes
// the committed state change.
type EffectApplier struct {
	auditLog  ports.AuditLog
	notifier  ports.Notifier
	scheduler ports.Scheduler
	orders    ports.OrderRepository
	bids      ports.BidRepository
	log       zerolog.Logger
}

// NewEffectApplier creates an applier over collaborator ports. The order and
// bid repositories must be bound to the base connection, not a transaction,
// because job handles are recorded after the transition committed.
func NewEffectApplier(
	auditLog ports.AuditLog,
	notifier ports.Notifier,
	scheduler ports.Scheduler,
	orders ports.OrderRepository,
	bids ports.BidRepository,
	log zerolog.Logger,
) EffectApplier {
	return EffectApplier{
		auditLog:  auditLog,
		notifier:  notifier,
		scheduler: scheduler,
		orders:    orders,
		bids:      bids,
		log:       log,
	}
}

// Apply runs the effects in order and returns the combined failures. Callers
// log the result; they do not propagate it as a command failure.
func (a EffectApplier) Apply(ctx context.Context, target EffectTarget, effects []order.Effect) error {
	var combined error
	for _, effect := range effects {
		var err error
		switch effect.Kind {
		case order.EffectAppendLog:
			err = a.appendLog(ctx, target, effect)
		case order.EffectNotifyActor:
			err = a.notify(ctx, effect)
		case order.EffectScheduleExpiryReminder:
			err = a.schedule(ctx, target, effect)
		case order.EffectCancelScheduledJobs:
			err = a.cancel(ctx, effect)
		}
		if err != nil {
			a.log.Warn().
				Err(err).
				Int64("orderId", target.OrderID).
				Str("action", target.Action.String()).
				Msg("transition side effect failed")
			combined = multierr.Append(combined, err)
		}
	}
	return combined
}

func (a EffectApplier) appendLog(ctx context.Context, target EffectTarget, effect order.Effect) error {
	return a.auditLog.Append(ctx, ports.AuditEntry{
		OrderID: target.OrderID,
		ActorID: target.ActorID,
		Action:  target.Action.String(),
		Message: effect.Message,
		Notes:   effect.Notes,
		At:      time.Now().UTC(),
	})
}

func (a EffectApplier) notify(ctx context.Context, effect order.Effect) error {
	return a.notifier.Notify(ctx, effect.Recipient, effect.Message)
}

func (a EffectApplier) schedule(ctx context.Context, target EffectTarget, effect order.Effect) error {
	handle, err := a.scheduler.ScheduleExpiryReminder(
		ctx, target.OrderID, effect.Recipient, effect.FireAt, effect.Deadline)
	if err != nil {
		return err
	}
	metrics.JobsScheduled.Inc()

	var handleErr error
	if target.BidID > 0 {
		handleErr = multierr.Append(handleErr, a.bids.SetJobHandle(ctx, target.BidID, handle))
	}
	if target.AttachOrderHandle {
		handleErr = multierr.Append(handleErr, a.orders.SetJobHandle(ctx, target.OrderID, handle))
	}
	return handleErr
}

func (a EffectApplier) cancel(ctx context.Context, effect order.Effect) error {
	var combined error
	for _, handle := range effect.Handles {
		if err := a.scheduler.Cancel(ctx, handle); err != nil {
			combined = multierr.Append(combined, err)
			continue
		}
		metrics.JobsCancelled.Inc()
	}
	return combined
}

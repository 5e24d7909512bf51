package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"
	"clearance/internal/pkg/errs"
	"clearance/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// maxDeliveryAttempts caps retries before a row is marked failed.
	maxDeliveryAttempts = 5

	// dueBatchSize limits how many due rows one tick picks up.
	dueBatchSize = 100

	// deliveryWorkers is the number of goroutines draining the dispatch queue.
	deliveryWorkers = 4
)

// ExpiryReminderJob polls the job store every second and delivers due expiry
// reminders. Delivery goes through a small worker pool so one slow
// notification does not stall the whole batch.
type ExpiryReminderJob struct {
	store    ports.JobStore
	orders   ports.OrderRepository
	notifier ports.Notifier
	cron     *cron.Cron
	queue    chan ports.ScheduledJob
	wg       sync.WaitGroup
	log      zerolog.Logger

	mu       sync.Mutex
	inFlight map[kernel.UUID]struct{}
}

// NewExpiryReminderJob creates the dispatcher. The order repository must not
// be transaction-bound; the job reads current order state on its own.
func NewExpiryReminderJob(
	store ports.JobStore,
	orders ports.OrderRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) (*ExpiryReminderJob, error) {
	if store == nil {
		return nil, fmt.Errorf("job store is required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}

	return &ExpiryReminderJob{
		store:    store,
		orders:   orders,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		queue:    make(chan ports.ScheduledJob, dueBatchSize),
		log:      log.With().Str("component", "expiry_reminder_job").Logger(),
		inFlight: make(map[kernel.UUID]struct{}),
	}, nil
}

// Start begins polling for due reminders every second.
func (j *ExpiryReminderJob) Start() error {
	for i := 0; i < deliveryWorkers; i++ {
		j.wg.Add(1)
		go j.worker()
	}

	_, err := j.cron.AddFunc("* * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Msg("expiry reminder job started (polling every second)")
	return nil
}

// Stop stops the poller and waits for in-flight deliveries to finish.
func (j *ExpiryReminderJob) Stop() {
	<-j.cron.Stop().Done()
	close(j.queue)
	j.wg.Wait()
	j.log.Info().Msg("expiry reminder job stopped")
}

func (j *ExpiryReminderJob) tick() {
	ctx := context.Background()

	due, err := j.store.DuePending(ctx, time.Now(), dueBatchSize)
	if err != nil {
		j.log.Error().Err(err).Msg("polling due reminders failed")
		return
	}

	for _, job := range due {
		if !j.claim(job.Handle) {
			continue
		}
		j.queue <- job
	}
}

// claim reserves a handle for delivery. A row stays pending until its worker
// settles it, so later ticks keep reading the same due row; handles already
// queued or in delivery must not be dispatched a second time.
func (j *ExpiryReminderJob) claim(handle kernel.UUID) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, busy := j.inFlight[handle]; busy {
		return false
	}
	j.inFlight[handle] = struct{}{}
	return true
}

func (j *ExpiryReminderJob) release(handle kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.inFlight, handle)
}

func (j *ExpiryReminderJob) worker() {
	defer j.wg.Done()
	for job := range j.queue {
		j.deliver(context.Background(), job)
	}
}

// deliver fires one reminder. A row whose attempt counter is exhausted is
// marked failed; a reminder whose order already left the bidding phase is
// settled silently. Notification failures leave the row pending so the next
// tick retries it.
func (j *ExpiryReminderJob) deliver(ctx context.Context, job ports.ScheduledJob) {
	defer j.release(job.Handle)

	log := j.log.With().
		Str("handle", job.Handle.String()).
		Int64("order_id", job.OrderID).
		Logger()

	if job.Attempts >= maxDeliveryAttempts {
		if err := j.store.MarkFailed(ctx, job.Handle); err != nil {
			log.Error().Err(err).Msg("marking exhausted reminder failed")
			return
		}
		log.Warn().Int("attempts", job.Attempts).Msg("reminder gave up after repeated delivery failures")
		return
	}

	if err := j.store.RecordAttempt(ctx, job.Handle); err != nil {
		log.Error().Err(err).Msg("recording delivery attempt failed")
		return
	}

	stale, err := j.isStale(ctx, job.OrderID)
	if err != nil {
		log.Error().Err(err).Msg("reading order state failed, reminder stays pending")
		return
	}
	if stale {
		if err = j.store.Cancel(ctx, job.Handle); err != nil {
			log.Error().Err(err).Msg("settling stale reminder failed")
		}
		log.Debug().Msg("reminder is stale, order already left the bidding phase")
		return
	}

	message := fmt.Sprintf(
		"clearance order %d expires at %s, accept a bid or the order will lapse",
		job.OrderID, job.Deadline.Format(time.RFC3339),
	)
	if err = j.notifier.Notify(ctx, job.Recipient, message); err != nil {
		log.Warn().Err(err).Int("attempts", job.Attempts+1).Msg("reminder delivery failed, will retry")
		return
	}

	if err = j.store.MarkFired(ctx, job.Handle); err != nil {
		log.Error().Err(err).Msg("settling fired reminder failed")
		return
	}

	metrics.JobsFired.Inc()
	log.Info().Msg("expiry reminder delivered")
}

// isStale reports whether the order no longer needs its expiry reminder.
// Deleted orders and orders past the bidding phase do not get reminded.
func (j *ExpiryReminderJob) isStale(ctx context.Context, orderID int64) (bool, error) {
	aggregate, err := j.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return true, nil
		}
		return false, err
	}

	return aggregate.Status() != order.Pending, nil
}

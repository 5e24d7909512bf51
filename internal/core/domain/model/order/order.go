package order

import (
	"errors"
	"fmt"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/errs"
)

const (
	// ExpiryTTL is how long an order stays open for bidding before it is
	// considered stale.
	ExpiryTTL = 7 * 24 * time.Hour

	// ReminderLead is how long before expiry the reminder job fires.
	ReminderLead = 24 * time.Hour

	// CheckpointCount is the number of execution milestones a broker reports.
	CheckpointCount = 3
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCheckpointsIncomplete is the guard error for completing execution before
	// all three checkpoints are set.
	ErrCheckpointsIncomplete = errors.New("finish the remaining execution steps before completing the order")

	// ErrActorIsNotAcceptedBroker rejects broker actions by anyone other than the
	// broker whose bid was accepted.
	ErrActorIsNotAcceptedBroker = errors.New("only the accepted broker may act on this order")

	// ErrActorIsNotOrderRequester rejects bid acceptance by anyone other than the
	// requester who created the order.
	ErrActorIsNotOrderRequester = errors.New("only the order's requester may accept a bid")

	// ErrLocationIsRequired rejects orders created without clearance location details.
	ErrLocationIsRequired = errors.New("location is required")
)

// Order is the aggregate root for a clearance request. It owns the lifecycle
// status, the execution checkpoints, the accepted actors for each stage, and the
// handle of its scheduled expiry-reminder job.
//
// Invariants:
//   - The accepted broker is non-nil exactly when Status().RequiresBroker()
//   - Status only changes through the transitions defined in transitions.go
//   - Orders are soft-deleted: Deleted is a status, not row removal
type Order struct {
	id          int64
	requesterID kernel.UUID
	createdAt   time.Time
	location    string
	lineItems   string
	notes       string
	status      Status

	brokerID          *kernel.UUID
	customerServiceID *kernel.UUID
	accountantID      *kernel.UUID

	checkpoints [CheckpointCount]bool
	jobHandle   *kernel.UUID

	isConstructed bool
}

// NewOrder creates a Pending order for a requester. The store assigns the
// integer identity on first persistence; until then ID() returns 0.
func NewOrder(requesterID kernel.UUID, location, lineItems string, createdAt time.Time) (*Order, error) {
	if err := requesterID.Validate(); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, ErrLocationIsRequired
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		requesterID:   requesterID,
		createdAt:     createdAt.UTC(),
		location:      location,
		lineItems:     lineItems,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence, re-checking the
// status/broker consistency invariant.
func RestoreOrder(
	id int64,
	requesterID kernel.UUID,
	createdAt time.Time,
	location, lineItems, notes string,
	status Status,
	brokerID, customerServiceID, accountantID *kernel.UUID,
	checkpoints [CheckpointCount]bool,
	jobHandle *kernel.UUID,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	if err := requesterID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveBroker(brokerID != nil); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, ErrLocationIsRequired
	}

	return &Order{
		id:                id,
		requesterID:       requesterID,
		createdAt:         createdAt.UTC(),
		location:          location,
		lineItems:         lineItems,
		notes:             notes,
		status:            status,
		brokerID:          brokerID,
		customerServiceID: customerServiceID,
		accountantID:      accountantID,
		checkpoints:       checkpoints,
		jobHandle:         jobHandle,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was constructed properly and its invariants hold.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	if err := o.status.Validate(); err != nil {
		return err
	}
	return o.status.ValidateCanHaveBroker(o.brokerID != nil)
}

// ID returns the store-assigned identity, 0 before first persistence.
func (o *Order) ID() int64 {
	return o.id
}

// AssignID records the store-assigned identity right after the first insert.
// Reassigning an already-assigned id is rejected.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// RequesterID returns the creating requester's identity.
func (o *Order) RequesterID() kernel.UUID {
	return o.requesterID
}

// CreatedAt returns the creation instant (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Location returns the free-text clearance location metadata.
func (o *Order) Location() string {
	return o.location
}

// LineItems returns the free-text line-item metadata.
func (o *Order) LineItems() string {
	return o.lineItems
}

// Notes returns the order's free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Broker returns the accepted broker's identity, nil while no bid is accepted.
func (o *Order) Broker() *kernel.UUID {
	return o.brokerID
}

// CustomerService returns the reviewing customer-service actor, nil before review.
func (o *Order) CustomerService() *kernel.UUID {
	return o.customerServiceID
}

// Accountant returns the reviewing accountant, nil before accounting review.
func (o *Order) Accountant() *kernel.UUID {
	return o.accountantID
}

// Checkpoints returns the broker-reported execution milestones.
func (o *Order) Checkpoints() [CheckpointCount]bool {
	return o.checkpoints
}

// JobHandle returns the handle of the order's scheduled expiry reminder, if any.
func (o *Order) JobHandle() *kernel.UUID {
	return o.jobHandle
}

// ExpiryDate is the instant at which a still-Pending order counts as stale.
func (o *Order) ExpiryDate() time.Time {
	return o.createdAt.Add(ExpiryTTL)
}

// ReminderAt is the fire time for the expiry reminder. It can be in the past
// when the first bid arrives late; the scheduler then fires on its next tick.
func (o *Order) ReminderAt() time.Time {
	return o.ExpiryDate().Add(-ReminderLead)
}

// AttachJobHandle records the scheduled reminder's handle on the order.
// Called after the scheduler persisted the job; scheduling is best effort, so
// a missing handle is a logged degradation, never an invariant violation.
func (o *Order) AttachJobHandle(handle kernel.UUID) error {
	if err := handle.Validate(); err != nil {
		return err
	}
	o.jobHandle = &handle
	return nil
}

// RegisterBid validates that a broker may bid on this order and returns the
// side effects of the submission. The bid row itself is created by the bid
// ledger; firstBidByBroker must reflect the rows existing before the insert,
// so a broker's repeat bids never double-schedule the reminder.
func (o *Order) RegisterBid(role Role, brokerID kernel.UUID, firstBidByBroker bool) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionSubmitBid); err != nil {
		return nil, err
	}
	if err := brokerID.Validate(); err != nil {
		return nil, err
	}

	effects := []Effect{logEffect("new bid submitted")}
	if firstBidByBroker {
		effects = append(effects, Effect{
			Kind:      EffectScheduleExpiryReminder,
			Recipient: brokerID,
			FireAt:    o.ReminderAt(),
			Deadline:  o.ExpiryDate(),
		})
	}
	return effects, nil
}

// AcceptBid accepts a broker's bid on behalf of the order's requester and moves
// the order to UnderExecution. Marking the bid row accepted is the ledger's job.
func (o *Order) AcceptBid(role Role, requesterID, brokerID kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionAcceptBid); err != nil {
		return nil, err
	}
	if !o.requesterID.IsEqual(requesterID) {
		return nil, ErrActorIsNotOrderRequester
	}
	if err := brokerID.Validate(); err != nil {
		return nil, err
	}

	o.brokerID = &brokerID
	o.status = UnderExecution

	return []Effect{
		logEffect("bid accepted, order moved to execution"),
		notifyEffect(brokerID, "bid-accepted"),
	}, nil
}

// MarkCheckpoint sets execution step (1..CheckpointCount). Re-setting an
// already-set step is a no-op so retried client calls stay harmless.
func (o *Order) MarkCheckpoint(role Role, actorID kernel.UUID, step int) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionMarkCheckpoint); err != nil {
		return nil, err
	}
	if err := o.requireAcceptedBroker(actorID); err != nil {
		return nil, err
	}
	if step < 1 || step > CheckpointCount {
		return nil, errs.NewValueIsOutOfRangeError("step", step, 1, CheckpointCount)
	}

	if o.checkpoints[step-1] {
		return nil, nil
	}
	o.checkpoints[step-1] = true

	return []Effect{logEffect(fmt.Sprintf("execution step %d reached", step))}, nil
}

// CompleteExecution moves the order to Executed once all checkpoints are set,
// and emits cancellation for the order's and accepted bid's scheduled jobs.
func (o *Order) CompleteExecution(role Role, actorID kernel.UUID, bidJobHandle *kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionCompleteExecution); err != nil {
		return nil, err
	}
	if err := o.requireAcceptedBroker(actorID); err != nil {
		return nil, err
	}
	for _, done := range o.checkpoints {
		if !done {
			return nil, ErrCheckpointsIncomplete
		}
	}

	o.status = Executed

	var handles []kernel.UUID
	if o.jobHandle != nil {
		handles = append(handles, *o.jobHandle)
		o.jobHandle = nil
	}
	if bidJobHandle != nil {
		handles = append(handles, *bidJobHandle)
	}

	effects := []Effect{logEffect("execution completed, order awaits customer service review")}
	if len(handles) > 0 {
		effects = append(effects, cancelJobsEffect(handles...))
	}
	return effects, nil
}

// CancelExecution abandons an order under execution. Cancelled is terminal:
// the order is not reopened for bidding and other bidders are not re-notified.
func (o *Order) CancelExecution(role Role, actorID kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionCancelExecution); err != nil {
		return nil, err
	}
	if err := o.requireAcceptedBroker(actorID); err != nil {
		return nil, err
	}

	o.status = Cancelled
	o.brokerID = nil

	return []Effect{logEffect("execution cancelled by broker")}, nil
}

// ApproveExecution records customer-service approval and hands the order to accounting.
func (o *Order) ApproveExecution(role Role, customerServiceID kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionApproveExecution); err != nil {
		return nil, err
	}
	if err := customerServiceID.Validate(); err != nil {
		return nil, err
	}

	o.customerServiceID = &customerServiceID
	o.status = AccountingTransferred

	return []Effect{logEffect("execution approved, order transferred to accounting")}, nil
}

// RejectExecution records customer-service rejection with a reason note.
func (o *Order) RejectExecution(role Role, customerServiceID kernel.UUID, reason string) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionRejectExecution); err != nil {
		return nil, err
	}
	if err := customerServiceID.Validate(); err != nil {
		return nil, err
	}

	o.customerServiceID = &customerServiceID
	o.status = AccountingRejected

	return []Effect{
		logEffect("execution rejected by customer service"),
		logEffectWithNotes("rejection note recorded", reason),
	}, nil
}

// ApproveTransfer records accounting approval; the order reaches Completed.
func (o *Order) ApproveTransfer(role Role, accountantID kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionApproveTransfer); err != nil {
		return nil, err
	}
	if err := accountantID.Validate(); err != nil {
		return nil, err
	}

	o.accountantID = &accountantID
	o.status = Completed

	return []Effect{logEffect("transfer approved, order completed")}, nil
}

// RejectTransfer records accounting rejection with a reason note.
func (o *Order) RejectTransfer(role Role, accountantID kernel.UUID, reason string) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionRejectTransfer); err != nil {
		return nil, err
	}
	if err := accountantID.Validate(); err != nil {
		return nil, err
	}

	o.accountantID = &accountantID
	o.status = AccountingRejected

	return []Effect{
		logEffect("transfer rejected by accounting"),
		logEffectWithNotes("rejection note recorded", reason),
	}, nil
}

// RouteTransfer routes a reviewed order out of the lifecycle. Terminal.
func (o *Order) RouteTransfer(role Role) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionRouteTransfer); err != nil {
		return nil, err
	}

	o.status = Transferred

	return []Effect{logEffect("order routed to transferred")}, nil
}

// RouteDelete soft-deletes the order. Terminal; the row is never removed.
func (o *Order) RouteDelete(role Role) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionRouteDelete); err != nil {
		return nil, err
	}

	o.status = Deleted
	o.brokerID = nil

	return []Effect{logEffect("order deleted")}, nil
}

// RouteReopen rejects the named broker and reopens the order for bidding:
// the acceptance and checkpoints are cleared and the status returns to Pending.
// Purging the broker's accepted bid rows is the ledger's job.
func (o *Order) RouteReopen(role Role, brokerID kernel.UUID) ([]Effect, error) {
	if err := o.status.Authorize(role, ActionRouteReopen); err != nil {
		return nil, err
	}
	if err := brokerID.Validate(); err != nil {
		return nil, err
	}

	o.brokerID = nil
	o.customerServiceID = nil
	o.accountantID = nil
	o.checkpoints = [CheckpointCount]bool{}
	o.status = Pending

	return []Effect{logEffect("order reopened for bidding")}, nil
}

func (o *Order) requireAcceptedBroker(actorID kernel.UUID) error {
	if o.brokerID == nil || !o.brokerID.IsEqual(actorID) {
		return ErrActorIsNotAcceptedBroker
	}
	return nil
}

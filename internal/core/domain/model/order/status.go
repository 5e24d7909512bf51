package order

import (
	"fmt"

	"clearance/internal/pkg/errs"
)

// Status represents the lifecycle state of a clearance order.
//
// State transitions:
//
//	Pending ──> UnderExecution ──> Executed ──> AccountingTransferred ──> Completed
//	   ^              │               │                   │
//	   │              └──> Cancelled  └───────┬───────────┴──> AccountingRejected
//	   │                                      │                      │
//	   └──────────── (send: reopen) ──────────┴──────────────────────┤
//	                                                 transfer ──> Transferred
//	                                                 delete ────> Deleted
//
// Completed, Cancelled, Deleted and Transferred are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is open for broker bids.
	Pending

	// UnderExecution indicates a bid was accepted and the broker is working
	// through the three execution checkpoints.
	UnderExecution

	// Executed indicates the broker finished all checkpoints and the order
	// awaits customer-service review.
	Executed

	// AccountingTransferred indicates customer service approved the execution
	// and handed the order to accounting.
	AccountingTransferred

	// AccountingRejected indicates customer service or accounting rejected
	// the order; customer service can still route it onward.
	AccountingRejected

	// Transferred indicates customer service routed the rejected/executed
	// order out of the lifecycle. Terminal.
	Transferred

	// Completed indicates accounting approved the transfer. Terminal.
	Completed

	// Cancelled indicates the broker abandoned execution. Terminal.
	Cancelled

	// Deleted is the soft-delete status; the row is never removed. Terminal.
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "Unknown",
		Pending:               "Pending",
		UnderExecution:        "UnderExecution",
		Executed:              "Executed",
		AccountingTransferred: "AccountingTransferred",
		AccountingRejected:    "AccountingRejected",
		Transferred:           "Transferred",
		Completed:             "Completed",
		Cancelled:             "Cancelled",
		Deleted:               "Deleted",
	}
}

// StatusFromString parses a status name as carried by the transport layer.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are accepted from s.
func (s Status) IsTerminal() bool {
	switch s {
	case Completed, Cancelled, Deleted, Transferred:
		return true
	default:
		return false
	}
}

// RequiresBroker reports whether an order in this status must have an accepted broker.
// The invariant "accepted broker is non-nil iff RequiresBroker" is checked on every
// reconstruction and after every transition.
func (s Status) RequiresBroker() bool {
	switch s {
	case UnderExecution, Executed, AccountingTransferred, AccountingRejected, Transferred, Completed:
		return true
	default:
		return false
	}
}

// ValidateCanHaveBroker validates the consistency between status and broker assignment.
func (s Status) ValidateCanHaveBroker(hasBroker bool) error {
	if hasBroker && !s.RequiresBroker() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an accepted broker", s),
		)
	}

	if !hasBroker && s.RequiresBroker() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no accepted broker", s),
		)
	}

	return nil
}

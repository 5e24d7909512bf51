// Package bid contains the broker bid entity owned by a clearance order.
package bid

import (
	"errors"
	"fmt"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid was not created through
	// NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")

	// ErrAlreadyAccepted is the stable error kind for accepting a bid on an
	// order that already has an accepted bid.
	ErrAlreadyAccepted = errors.New("a bid for this order is already accepted")

	// ErrValueIsNotPositive rejects non-positive monetary offers.
	ErrValueIsNotPositive = errors.New("bid value must be greater than 0")
)

// Bid is one broker's monetary offer against a Pending order. A broker may
// submit several bids on the same order; only the one later marked accepted
// matters for the lifecycle.
type Bid struct {
	id        int64
	orderID   int64
	brokerID  kernel.UUID
	value     decimal.Decimal
	accepted  bool
	jobHandle *kernel.UUID

	isConstructed bool
}

// NewBid creates an unaccepted bid. The store assigns the integer identity.
func NewBid(orderID int64, brokerID kernel.UUID, value decimal.Decimal) (*Bid, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a valid order id", orderID))
	}
	if err := brokerID.Validate(); err != nil {
		return nil, err
	}
	if !value.IsPositive() {
		return nil, ErrValueIsNotPositive
	}

	return &Bid{
		orderID:       orderID,
		brokerID:      brokerID,
		value:         value,
		isConstructed: true,
	}, nil
}

// RestoreBid reconstructs a bid from persistence.
func RestoreBid(
	id, orderID int64,
	brokerID kernel.UUID,
	value decimal.Decimal,
	accepted bool,
	jobHandle *kernel.UUID,
) (*Bid, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid bid id", id))
	}
	restored, err := NewBid(orderID, brokerID, value)
	if err != nil {
		return nil, err
	}

	restored.id = id
	restored.accepted = accepted
	restored.jobHandle = jobHandle
	return restored, nil
}

// Validate ensures the Bid was constructed properly.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned identity, 0 before first persistence.
func (b *Bid) ID() int64 {
	return b.id
}

// AssignID records the store-assigned identity right after the first insert.
func (b *Bid) AssignID(id int64) error {
	if b.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("bid already has id %d", b.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid bid id", id))
	}
	b.id = id
	return nil
}

// OrderID returns the owning order's identity.
func (b *Bid) OrderID() int64 {
	return b.orderID
}

// BrokerID returns the submitting broker's identity.
func (b *Bid) BrokerID() kernel.UUID {
	return b.brokerID
}

// Value returns the monetary offer.
func (b *Bid) Value() decimal.Decimal {
	return b.value
}

// IsAccepted reports whether this bid won acceptance.
func (b *Bid) IsAccepted() bool {
	return b.accepted
}

// JobHandle returns the handle of the bid's scheduled reminder, if any.
func (b *Bid) JobHandle() *kernel.UUID {
	return b.jobHandle
}

// Accept marks the bid accepted. Accepting an already-accepted bid fails with
// ErrAlreadyAccepted; order-wide uniqueness is enforced by the bid ledger.
func (b *Bid) Accept() error {
	if b.accepted {
		return ErrAlreadyAccepted
	}
	b.accepted = true
	return nil
}

// AttachJobHandle records the scheduled reminder's handle on the bid.
func (b *Bid) AttachJobHandle(handle kernel.UUID) error {
	if err := handle.Validate(); err != nil {
		return err
	}
	b.jobHandle = &handle
	return nil
}

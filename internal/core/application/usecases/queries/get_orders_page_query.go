// Package queries contains read-only operations over the clearance store.
// Query handlers read the database directly and shape rows into transport
// DTOs; they never go through the aggregate repositories.
package queries

import (
	"errors"

	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"
	"clearance/internal/pkg/guard"
)

var ErrGetOrdersPageQueryIsNotConstructed = errors.New(
	"GetOrdersPageQuery must be created via NewGetOrdersPageQuery constructor",
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// GetOrdersPageQuery retrieves one page of orders, optionally filtered by
// status, newest first. Display names of the requester and accepted broker
// are resolved against the user directory; when resolution fails the page is
// served with empty display fields.
type GetOrdersPageQuery struct {
	page    int
	perPage int
	status  order.Status // Unknown means no filter

	guard guard.ConstructorGuard
}

// NewGetOrdersPageQuery creates a paging query. Page is 1-based; perPage is
// clamped to sane defaults when zero. Status Unknown disables the filter.
func NewGetOrdersPageQuery(page, perPage int, status order.Status) (GetOrdersPageQuery, error) {
	if page < 1 {
		return GetOrdersPageQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, int(^uint(0)>>1))
	}
	if perPage < 0 || perPage > maxPerPage {
		return GetOrdersPageQuery{}, errs.NewValueIsOutOfRangeError("perPage", perPage, 0, maxPerPage)
	}
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersPageQuery{}, err
		}
	}

	return GetOrdersPageQuery{
		page:    page,
		perPage: perPage,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersPageQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersPageQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetOrdersPageQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q GetOrdersPageQuery) PerPage() int {
	return q.perPage
}

// Status returns the status filter, Unknown when unfiltered.
func (q GetOrdersPageQuery) Status() order.Status {
	return q.status
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID            int64
	Status        string
	Location      string
	LineItems     string
	CreatedAt     string
	RequesterID   string
	RequesterName string
	BrokerID      string
	BrokerName    string
}

// OrdersPage is the listing response.
type OrdersPage struct {
	Items   []OrderSummary
	Total   int64
	Page    int
	PerPage int
}

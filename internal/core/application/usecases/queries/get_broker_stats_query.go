package queries

import (
	"errors"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/guard"
)

var ErrGetBrokerStatsQueryIsNotConstructed = errors.New(
	"GetBrokerStatsQuery must be created via NewGetBrokerStatsQuery constructor",
)

// GetBrokerStatsQuery retrieves one broker's bidding track record: how many
// bids they submitted, how many were accepted, and how many orders they
// carried to completion.
type GetBrokerStatsQuery struct {
	brokerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBrokerStatsQuery creates a stats query for the given broker.
func NewGetBrokerStatsQuery(brokerID kernel.UUID) (GetBrokerStatsQuery, error) {
	if err := brokerID.Validate(); err != nil {
		return GetBrokerStatsQuery{}, err
	}

	return GetBrokerStatsQuery{
		brokerID: brokerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBrokerStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetBrokerStatsQueryIsNotConstructed)
}

// BrokerID returns the broker being asked about.
func (q GetBrokerStatsQuery) BrokerID() kernel.UUID {
	return q.brokerID
}

// BrokerStats is the stats response.
type BrokerStats struct {
	BrokerID        string
	BidsSubmitted   int64
	BidsAccepted    int64
	OrdersCompleted int64
}

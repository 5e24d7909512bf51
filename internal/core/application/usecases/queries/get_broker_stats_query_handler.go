package queries

import (
	"context"

	"clearance/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetBrokerStatsQueryHandler computes broker success counters straight from
// the bids and orders tables.
type GetBrokerStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetBrokerStatsQueryHandler creates a handler for broker stats queries.
func NewGetBrokerStatsQueryHandler(db *gorm.DB) GetBrokerStatsQueryHandler {
	return GetBrokerStatsQueryHandler{db: db}
}

// Handle executes the stats query.
func (h GetBrokerStatsQueryHandler) Handle(
	ctx context.Context,
	query GetBrokerStatsQuery,
) (BrokerStats, error) {
	if err := query.Validate(); err != nil {
		return BrokerStats{}, err
	}

	stats := BrokerStats{BrokerID: query.BrokerID().String()}
	brokerID := query.BrokerID().Bytes()

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE accepted)
		FROM bids
		WHERE broker_id = ?
	`, brokerID).Row()
	if err := row.Scan(&stats.BidsSubmitted, &stats.BidsAccepted); err != nil {
		return BrokerStats{}, err
	}

	row = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE broker_id = ? AND status = ?
	`, brokerID, order.Completed).Row()
	if err := row.Scan(&stats.OrdersCompleted); err != nil {
		return BrokerStats{}, err
	}

	return stats, nil
}

package queries

import (
	"context"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GetOrdersPageQueryHandler serves the order listing straight from the
// database and decorates the rows with display names from the user directory.
type GetOrdersPageQueryHandler struct {
	db        *gorm.DB
	directory ports.UserDirectory
	log       zerolog.Logger
}

// NewGetOrdersPageQueryHandler creates a handler for the order listing.
// Requires a GORM database connection and the user directory port.
func NewGetOrdersPageQueryHandler(
	db *gorm.DB,
	directory ports.UserDirectory,
	log zerolog.Logger,
) GetOrdersPageQueryHandler {
	return GetOrdersPageQueryHandler{db: db, directory: directory, log: log}
}

// Handle executes the listing query. Directory failures degrade to empty
// display names; the listing itself always reflects the store.
func (h GetOrdersPageQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersPageQuery,
) (OrdersPage, error) {
	if err := query.Validate(); err != nil {
		return OrdersPage{}, err
	}

	page := OrdersPage{Page: query.Page(), PerPage: query.PerPage(), Items: make([]OrderSummary, 0)}

	countSQL := h.db.WithContext(ctx).Table("orders").Where("status != ?", order.Deleted)
	listSQL := h.db.WithContext(ctx).Table("orders").Where("status != ?", order.Deleted)
	if query.Status() != order.Unknown {
		countSQL = countSQL.Where("status = ?", query.Status())
		listSQL = listSQL.Where("status = ?", query.Status())
	}

	if err := countSQL.Count(&page.Total).Error; err != nil {
		return OrdersPage{}, err
	}

	rows, err := listSQL.
		Select("id, status, location, line_items, created_at, requester_id, broker_id").
		Order("id DESC").
		Limit(query.PerPage()).
		Offset((query.Page() - 1) * query.PerPage()).
		Rows()
	if err != nil {
		return OrdersPage{}, err
	}
	defer rows.Close()

	var actorIDs []kernel.UUID
	for rows.Next() {
		var summary OrderSummary
		var status int
		var createdAt time.Time
		var requesterID uuid.UUID
		var brokerID *uuid.UUID

		if err = rows.Scan(&summary.ID, &status, &summary.Location, &summary.LineItems,
			&createdAt, &requesterID, &brokerID); err != nil {
			return OrdersPage{}, err
		}

		summary.Status = order.Status(status).String()
		summary.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		summary.RequesterID = requesterID.String()
		requester, idErr := kernel.UUIDFromBytes(requesterID[:])
		if idErr != nil {
			return OrdersPage{}, idErr
		}
		actorIDs = append(actorIDs, requester)

		if brokerID != nil {
			summary.BrokerID = brokerID.String()
			broker, brokerErr := kernel.UUIDFromBytes((*brokerID)[:])
			if brokerErr != nil {
				return OrdersPage{}, brokerErr
			}
			actorIDs = append(actorIDs, broker)
		}

		page.Items = append(page.Items, summary)
	}
	if err = rows.Err(); err != nil {
		return OrdersPage{}, err
	}

	h.decorate(ctx, &page, actorIDs)
	return page, nil
}

// decorate fills display names best-effort. Repeated ids are resolved once.
func (h GetOrdersPageQueryHandler) decorate(ctx context.Context, page *OrdersPage, actorIDs []kernel.UUID) {
	if len(actorIDs) == 0 {
		return
	}

	seen := make(map[kernel.UUID]bool, len(actorIDs))
	unique := make([]kernel.UUID, 0, len(actorIDs))
	for _, id := range actorIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	resolved, err := h.directory.Resolve(ctx, unique)
	if err != nil {
		h.log.Warn().Err(err).Msg("user directory unavailable, serving listing without display names")
		return
	}

	byString := make(map[string]string, len(resolved))
	for id, info := range resolved {
		byString[id.String()] = info.Name
	}
	for i := range page.Items {
		page.Items[i].RequesterName = byString[page.Items[i].RequesterID]
		if page.Items[i].BrokerID != "" {
			page.Items[i].BrokerName = byString[page.Items[i].BrokerID]
		}
	}
}

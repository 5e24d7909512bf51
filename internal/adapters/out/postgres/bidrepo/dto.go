// Package bidrepo persists broker bids and maps them to the bid entity.
package bidrepo

import (
	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidDTO represents the database structure for persisting bids.
type BidDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"index"`
	BrokerID  uuid.UUID       `gorm:"type:uuid;index"`
	Value     decimal.Decimal `gorm:"type:numeric(18,2)"`
	Accepted  bool            `gorm:"index"`
	JobHandle *uuid.UUID      `gorm:"type:uuid"`
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid entity to its database representation.
func fromDomain(entity *bid.Bid) BidDTO {
	var jobHandle *uuid.UUID
	if h := entity.JobHandle(); h != nil {
		raw := h.Bytes()
		jobHandle = &raw
	}

	return BidDTO{
		ID:        entity.ID(),
		OrderID:   entity.OrderID(),
		BrokerID:  entity.BrokerID().Bytes(),
		Value:     entity.Value(),
		Accepted:  entity.IsAccepted(),
		JobHandle: jobHandle,
	}
}

// toDomain converts a database DTO to a bid entity using RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	brokerID, err := kernel.UUIDFromBytes(dto.BrokerID[:])
	if err != nil {
		return nil, err
	}

	var jobHandle *kernel.UUID
	if dto.JobHandle != nil {
		handle, handleErr := kernel.UUIDFromBytes((*dto.JobHandle)[:])
		if handleErr != nil {
			return nil, handleErr
		}
		jobHandle = &handle
	}

	return bid.RestoreBid(dto.ID, dto.OrderID, brokerID, dto.Value, dto.Accepted, jobHandle)
}

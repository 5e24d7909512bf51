// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The integer identity is assigned by the store on insert. Deleted orders stay
// in the table with the Deleted status; rows are never removed.
type OrderDTO struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	RequesterID       uuid.UUID  `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"index"`
	Location          string     `gorm:"type:text"`
	LineItems         string     `gorm:"type:text"`
	Notes             string     `gorm:"type:text"`
	Status            int        `gorm:"index"`
	BrokerID          *uuid.UUID `gorm:"type:uuid;index"`
	CustomerServiceID *uuid.UUID `gorm:"type:uuid"`
	AccountantID      *uuid.UUID `gorm:"type:uuid"`
	Step1             bool
	Step2             bool
	Step3             bool
	JobHandle         *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func rawPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	checkpoints := aggregate.Checkpoints()

	return OrderDTO{
		ID:                aggregate.ID(),
		RequesterID:       aggregate.RequesterID().Bytes(),
		CreatedAt:         aggregate.CreatedAt(),
		Location:          aggregate.Location(),
		LineItems:         aggregate.LineItems(),
		Notes:             aggregate.Notes(),
		Status:            int(aggregate.Status()),
		BrokerID:          rawPtr(aggregate.Broker()),
		CustomerServiceID: rawPtr(aggregate.CustomerService()),
		AccountantID:      rawPtr(aggregate.Accountant()),
		Step1:             checkpoints[0],
		Step2:             checkpoints[1],
		Step3:             checkpoints[2],
		JobHandle:         rawPtr(aggregate.JobHandle()),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	brokerID, err := kernelPtr(dto.BrokerID)
	if err != nil {
		return nil, err
	}
	customerServiceID, err := kernelPtr(dto.CustomerServiceID)
	if err != nil {
		return nil, err
	}
	accountantID, err := kernelPtr(dto.AccountantID)
	if err != nil {
		return nil, err
	}
	jobHandle, err := kernelPtr(dto.JobHandle)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		requesterID,
		dto.CreatedAt,
		dto.Location, dto.LineItems, dto.Notes,
		order.Status(dto.Status),
		brokerID, customerServiceID, accountantID,
		[order.CheckpointCount]bool{dto.Step1, dto.Step2, dto.Step3},
		jobHandle,
	)
}

// Package jobrepo persists durable one-shot reminder jobs for the scheduler.
package jobrepo

import (
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"

	"github.com/google/uuid"
)

// Job row statuses. Pending rows are the only ones the dispatcher picks up.
const (
	statusPending   = 1
	statusFired     = 2
	statusCancelled = 3
	statusFailed    = 4
)

// JobDTO represents the database structure for persisting scheduled jobs.
type JobDTO struct {
	Handle    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"index"`
	Recipient uuid.UUID `gorm:"type:uuid"`
	FireAt    time.Time `gorm:"index"`
	Deadline  time.Time
	Status    int `gorm:"index"`
	Attempts  int
}

// TableName specifies the database table name for scheduled jobs.
func (JobDTO) TableName() string {
	return "scheduled_jobs"
}

func fromPort(job ports.ScheduledJob) JobDTO {
	return JobDTO{
		Handle:    job.Handle.Bytes(),
		OrderID:   job.OrderID,
		Recipient: job.Recipient.Bytes(),
		FireAt:    job.FireAt,
		Deadline:  job.Deadline,
		Status:    statusPending,
		Attempts:  job.Attempts,
	}
}

func toPort(dto JobDTO) (ports.ScheduledJob, error) {
	handle, err := kernel.UUIDFromBytes(dto.Handle[:])
	if err != nil {
		return ports.ScheduledJob{}, err
	}

	recipient, err := kernel.UUIDFromBytes(dto.Recipient[:])
	if err != nil {
		return ports.ScheduledJob{}, err
	}

	return ports.ScheduledJob{
		Handle:    handle,
		OrderID:   dto.OrderID,
		Recipient: recipient,
		FireAt:    dto.FireAt,
		Deadline:  dto.Deadline,
		Attempts:  dto.Attempts,
	}, nil
}

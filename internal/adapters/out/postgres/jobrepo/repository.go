package jobrepo

import (
	"context"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"

	"gorm.io/gorm"
)

// GormJobStore implements ports.JobStore on a postgres table so booked
// reminders survive restarts.
type GormJobStore struct {
	db *gorm.DB
}

// NewGormJobStore creates a new GORM job store.
func NewGormJobStore(db *gorm.DB) *GormJobStore {
	return &GormJobStore{db: db}
}

// Add persists a new pending job row.
func (s *GormJobStore) Add(ctx context.Context, job ports.ScheduledJob) error {
	dto := fromPort(job)
	return s.db.WithContext(ctx).Create(&dto).Error
}

// DuePending returns up to limit pending jobs whose fire time has passed,
// oldest first.
func (s *GormJobStore) DuePending(ctx context.Context, now time.Time, limit int) ([]ports.ScheduledJob, error) {
	var dtos []JobDTO
	err := s.db.WithContext(ctx).
		Where("status = ? AND fire_at <= ?", statusPending, now).
		Order("fire_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]ports.ScheduledJob, 0, len(dtos))
	for _, dto := range dtos {
		job, convErr := toPort(dto)
		if convErr != nil {
			return nil, convErr
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// RecordAttempt increments the job's delivery attempt counter.
func (s *GormJobStore) RecordAttempt(ctx context.Context, handle kernel.UUID) error {
	return s.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("handle = ?", handle.Bytes()).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// MarkFired settles the job after a successful delivery.
func (s *GormJobStore) MarkFired(ctx context.Context, handle kernel.UUID) error {
	return s.settle(ctx, handle, statusFired)
}

// MarkFailed settles the job after delivery gave up for good.
func (s *GormJobStore) MarkFailed(ctx context.Context, handle kernel.UUID) error {
	return s.settle(ctx, handle, statusFailed)
}

// Cancel flips a pending job to cancelled. Unknown or already settled handles
// match zero rows, which is not an error.
func (s *GormJobStore) Cancel(ctx context.Context, handle kernel.UUID) error {
	return s.settle(ctx, handle, statusCancelled)
}

func (s *GormJobStore) settle(ctx context.Context, handle kernel.UUID, status int) error {
	return s.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("handle = ? AND status = ?", handle.Bytes(), statusPending).
		Update("status", status).Error
}

package jobs

import (
	"context"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockJobStore is a mock implementation of ports.JobStore.
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) Add(ctx context.Context, job ports.ScheduledJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) DuePending(ctx context.Context, now time.Time, limit int) ([]ports.ScheduledJob, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ScheduledJob), args.Error(1)
}

func (m *MockJobStore) RecordAttempt(ctx context.Context, handle kernel.UUID) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

func (m *MockJobStore) MarkFired(ctx context.Context, handle kernel.UUID) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

func (m *MockJobStore) MarkFailed(ctx context.Context, handle kernel.UUID) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

func (m *MockJobStore) Cancel(ctx context.Context, handle kernel.UUID) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) SetJobHandle(ctx context.Context, id int64, handle kernel.UUID) error {
	args := m.Called(ctx, id, handle)
	return args.Error(0)
}

// MockNotifier is a mock implementation of ports.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipient kernel.UUID, message string) error {
	args := m.Called(ctx, recipient, message)
	return args.Error(0)
}

package commands_test

import (
	"context"
	"time"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
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

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Get(ctx context.Context, id int64) (*bid.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetByOrder(ctx context.Context, orderID int64) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetByOrderAndBroker(
	ctx context.Context, orderID int64, brokerID kernel.UUID,
) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID, brokerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) Delete(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockBidRepository) SetJobHandle(ctx context.Context, id int64, handle kernel.UUID) error {
	args := m.Called(ctx, id, handle)
	return args.Error(0)
}

type MockNoteRepository struct{ mock.Mock }

func (m *MockNoteRepository) Add(ctx context.Context, n *note.Note) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, n *note.Note) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNoteRepository) GetByOrderAndStage(
	ctx context.Context, orderID int64, stage note.Stage,
) (*note.Note, error) {
	args := m.Called(ctx, orderID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockNoteRepository) GetByOrder(ctx context.Context, orderID int64) ([]*note.Note, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*note.Note), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BidRepository() ports.BidRepository {
	args := m.Called()
	return args.Get(0).(ports.BidRepository)
}

func (m *MockUoW) NoteRepository() ports.NoteRepository {
	args := m.Called()
	return args.Get(0).(ports.NoteRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBiddingUoWFactory struct{ mock.Mock }

func (m *MockBiddingUoWFactory) Create() commands.BiddingUoW {
	args := m.Called()
	return args.Get(0).(commands.BiddingUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	args := m.Called()
	return args.Get(0).(commands.ReviewUoW)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) ScheduleExpiryReminder(
	ctx context.Context, orderID int64, recipient kernel.UUID, fireAt, deadline time.Time,
) (kernel.UUID, error) {
	args := m.Called(ctx, orderID, recipient, fireAt, deadline)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockScheduler) Cancel(ctx context.Context, handle kernel.UUID) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipient kernel.UUID, message string) error {
	args := m.Called(ctx, recipient, message)
	return args.Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Append(ctx context.Context, entry ports.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

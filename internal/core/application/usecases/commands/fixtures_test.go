package commands_test

import (
	"testing"
	"time"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// sideEffects bundles the collaborator mocks behind an EffectApplier.
type sideEffects struct {
	auditLog  *MockAuditLog
	notifier  *MockNotifier
	scheduler *MockScheduler
	orders    *MockOrderRepository
	bids      *MockBidRepository
}

func newSideEffects() *sideEffects {
	return &sideEffects{
		auditLog:  new(MockAuditLog),
		notifier:  new(MockNotifier),
		scheduler: new(MockScheduler),
		orders:    new(MockOrderRepository),
		bids:      new(MockBidRepository),
	}
}

func (s *sideEffects) applier() commands.EffectApplier {
	return commands.NewEffectApplier(s.auditLog, s.notifier, s.scheduler, s.orders, s.bids, zerolog.Nop())
}

func restoreOrderInStatus(
	t *testing.T,
	id int64,
	requesterID kernel.UUID,
	status order.Status,
	brokerID *kernel.UUID,
	checkpoints [order.CheckpointCount]bool,
) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		id, requesterID, time.Now(), "Jeddah Islamic Port", "", "",
		status, brokerID, nil, nil, checkpoints, nil)
	require.NoError(t, err)
	return o
}

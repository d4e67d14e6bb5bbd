package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"fulfillment-ledger/internal/adapter/storage/memory"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func ptr[T any](v T) *T { return &v }

// mockTx implements pgx.Tx for testing; only Commit and Rollback are used.
type mockTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (m *mockTx) Commit(ctx context.Context) error {
	m.committed = true
	return nil
}

func (m *mockTx) Rollback(ctx context.Context) error {
	if m.committed || m.rolledBack {
		return pgx.ErrTxClosed
	}
	m.rolledBack = true
	return nil
}

// requireCode asserts err is an AppError with the given code and returns it.
func requireCode(t *testing.T, err error, code string) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

// stubOrderSource serves upstream orders from a map.
type stubOrderSource struct {
	mu     sync.Mutex
	orders map[string]*domain.UpstreamOrder
	err    error
	calls  int
}

func (s *stubOrderSource) FetchOrder(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.UpstreamOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

// recordingSink keeps every notification it receives.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.Notification
}

func (r *recordingSink) Notify(ctx context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

func (r *recordingSink) Events() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.events...)
}

// fixture wires every service over one in-memory store.
type fixture struct {
	store        *memory.Store
	source       *stubOrderSource
	sink         *recordingSink
	owner        uuid.UUID
	costs        *OrderCostServiceImpl
	submissions  *SubmissionServiceImpl
	status       *StatusServiceImpl
	fulfillments *FulfillmentServiceImpl
	wallets      *WalletServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	log := newTestLogger()
	f := &fixture{
		store:  store,
		source: &stubOrderSource{orders: map[string]*domain.UpstreamOrder{}},
		sink:   &recordingSink{},
		owner:  uuid.New(),
	}
	f.costs = NewOrderCostService(store.OrderCosts(), f.source, nil, log)
	f.submissions = NewSubmissionService(SubmissionDeps{
		OrderCosts:   f.costs,
		OrderRepo:    store.OrderCosts(),
		Wallets:      store.Wallets(),
		Ledger:       store.Ledger(),
		Fulfillments: store.Fulfillments(),
		Transactor:   store,
		Notifier:     f.sink,
		Logger:       log,
	})
	f.status = NewStatusService(StatusDeps{
		Fulfillments: store.Fulfillments(),
		OrderRepo:    store.OrderCosts(),
		Transactor:   store,
		Notifier:     f.sink,
		Logger:       log,
	})
	f.fulfillments = NewFulfillmentService(store.Fulfillments(), nil, log)
	f.wallets = NewWalletService(store.Wallets(), store.Ledger(), store, nil, log)
	return f
}

func (f *fixture) addOrder(orderID string, subtotal int64) {
	f.source.mu.Lock()
	defer f.source.mu.Unlock()
	f.source.orders[orderID] = &domain.UpstreamOrder{
		OrderID:     orderID,
		OrderNumber: "#" + orderID,
		Currency:    "INR",
		Subtotal:    subtotal,
		Total:       subtotal * 2,
	}
}

func (f *fixture) fund(t *testing.T, amount int64) {
	t.Helper()
	_, err := f.wallets.TopUp(context.Background(), ports.TopUpRequest{
		OwnerID:   f.owner,
		Amount:    amount,
		Reference: uuid.NewString(),
	})
	require.NoError(t, err)
}

// submitted creates a charged order and returns its fulfillment id.
func (f *fixture) submitted(t *testing.T, orderID string) uuid.UUID {
	t.Helper()
	f.addOrder(orderID, 100)
	f.fund(t, 100)
	res, err := f.submissions.Submit(context.Background(), ports.SubmitRequest{OwnerID: f.owner, OrderID: orderID})
	require.NoError(t, err)
	return res.FulfillmentID
}

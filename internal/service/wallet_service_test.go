package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/core/ports/mocks"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTopUp_IdempotentOnReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := ports.TopUpRequest{OwnerID: f.owner, Amount: 2500, Reference: "bank-tx-77"}

	first, err := f.wallets.TopUp(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerCredit, first.Direction)
	assert.Equal(t, int64(0), first.BalanceBefore)
	assert.Equal(t, int64(2500), first.BalanceAfter)
	assert.Equal(t, domain.BuildTopUpRef(f.owner, "bank-tx-77"), first.IdempotencyRef)
	assert.Equal(t, "bank-tx-77", first.Metadata["reference"])

	again, err := f.wallets.TopUp(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	balance, err := f.wallets.GetBalance(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)

	req.Amount = 3000
	_, err = f.wallets.TopUp(ctx, req)
	requireCode(t, err, apperror.CodeDuplicateEntry)
}

func TestTopUp_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.wallets.TopUp(context.Background(), ports.TopUpRequest{OwnerID: f.owner, Amount: 0, Reference: "r"})
	requireCode(t, err, apperror.CodeValidation)

	_, err = f.wallets.TopUp(context.Background(), ports.TopUpRequest{OwnerID: f.owner, Amount: 10})
	requireCode(t, err, apperror.CodeValidation)

	_, err = f.wallets.TopUp(context.Background(), ports.TopUpRequest{OwnerID: f.owner, Amount: math.MaxInt64, Reference: "r"})
	requireCode(t, err, apperror.CodeValidation)
}

func TestTopUp_OverflowIsInvariantViolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// park the wallet just below the int64 ceiling
	tx, err := f.store.Begin(ctx)
	require.NoError(t, err)
	_, err = f.store.Wallets().Credit(ctx, tx, f.owner, math.MaxInt64-5)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	_, err = f.wallets.TopUp(ctx, ports.TopUpRequest{OwnerID: f.owner, Amount: 10, Reference: "late-deposit"})
	appErr := requireCode(t, err, apperror.CodeInvariantViolation)
	assert.False(t, appErr.Retryable())

	balance, err := f.wallets.GetBalance(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-5), balance)

	entry, err := f.store.Ledger().FindByRef(ctx, domain.BuildTopUpRef(f.owner, "late-deposit"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetBalance_NoWallet(t *testing.T) {
	f := newFixture(t)
	balance, err := f.wallets.GetBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestListEntries_NewestFirstWithDirectionFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submitted(t, "5001")
	f.fund(t, 40)

	entries, total, err := f.wallets.ListEntries(ctx, ports.LedgerListParams{OwnerID: f.owner})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(40), entries[0].Amount)
	assert.Equal(t, domain.LedgerDebit, entries[1].Direction)

	debit := domain.LedgerDebit
	entries, total, err = f.wallets.ListEntries(ctx, ports.LedgerListParams{OwnerID: f.owner, Direction: &debit})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "5001", entries[0].OrderID)
}

func TestTopUp_CreditFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallets := mocks.NewMockBalanceStore(ctrl)
	ledger := mocks.NewMockLedgerJournal(ctrl)
	transactor := mocks.NewMockDBTransactor(ctrl)
	svc := NewWalletService(wallets, ledger, transactor, nil, newTestLogger())

	ctx := context.Background()
	owner := uuid.New()
	tx := &mockTx{}

	ledger.EXPECT().FindByRef(ctx, domain.BuildTopUpRef(owner, "r1")).Return(nil, nil)
	transactor.EXPECT().Begin(ctx).Return(tx, nil)
	wallets.EXPECT().Credit(ctx, tx, owner, int64(100)).Return(nil, errors.New("disk full"))

	_, err := svc.TopUp(ctx, ports.TopUpRequest{OwnerID: owner, Amount: 100, Reference: "r1"})
	requireCode(t, err, apperror.CodeStorageFailure)
	assert.True(t, tx.rolledBack)
}

func TestTopUp_AuditsCredit(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mocks.NewMockAuditService(ctrl)
	f := newFixture(t)
	svc := NewWalletService(f.store.Wallets(), f.store.Ledger(), f.store, audit, newTestLogger())
	actor := uuid.New()

	audit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e *domain.AuditLog) {
		assert.Equal(t, domain.AuditActionTopUp, e.Action)
		assert.Equal(t, domain.AuditResourceWallet, e.ResourceType)
		assert.Equal(t, &actor, e.ActorID)
		assert.Contains(t, e.Details, `"amount":900`)
	})

	_, err := svc.TopUp(context.Background(), ports.TopUpRequest{OwnerID: f.owner, Amount: 900, Reference: "x", ActorID: &actor})
	require.NoError(t, err)
}

package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beginMockTx(t *testing.T, mock pgxmock.PgxPoolIface) pgx.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletRepo_EnsureWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectExec("INSERT INTO wallets .+ ON CONFLICT \\(owner_id\\) DO NOTHING").
		WithArgs(owner).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, repo.EnsureWallet(context.Background(), tx, owner))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_Applied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectQuery("UPDATE wallets SET balance = balance - .+ WHERE owner_id = .+ AND balance >= .+ RETURNING balance").
		WithArgs(owner, int64(10000)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(0)))

	change, err := repo.Debit(context.Background(), tx, owner, 10000)
	require.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, int64(10000), change.BalanceBefore)
	assert.Equal(t, int64(0), change.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_InsufficientReportsCurrentBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectQuery("UPDATE wallets SET balance").
		WithArgs(owner, int64(10000)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))
	mock.ExpectQuery("SELECT balance FROM wallets WHERE owner_id").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(5000)))

	change, err := repo.Debit(context.Background(), tx, owner, 10000)
	require.NoError(t, err)
	assert.False(t, change.Applied)
	assert.Equal(t, int64(5000), change.BalanceBefore)
	assert.Equal(t, int64(5000), change.BalanceAfter)
	assert.Equal(t, int64(5000), change.Shortage(10000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_MissingWalletIsZeroBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := uuid.New()
	tx := beginMockTx(t, mock)

	mock.ExpectQuery("UPDATE wallets SET balance").
		WithArgs(owner, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))
	mock.ExpectQuery("SELECT balance FROM wallets").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))

	change, err := repo.Debit(context.Background(), tx, owner, 1)
	require.NoError(t, err)
	assert.False(t, change.Applied)
	assert.Equal(t, int64(0), change.BalanceAfter)
}

func TestWalletRepo_Debit_RejectsNonPositive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tx := beginMockTx(t, mock)
	_, err = NewWalletRepo(mock).Debit(context.Background(), tx, uuid.New(), 0)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_StorageError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	tx := beginMockTx(t, mock)
	mock.ExpectQuery("UPDATE wallets SET balance").
		WithArgs(owner, int64(5)).
		WillReturnError(errors.New("connection reset"))

	_, err = NewWalletRepo(mock).Debit(context.Background(), tx, owner, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debit wallet")
}

func TestWalletRepo_Credit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	tx := beginMockTx(t, mock)
	mock.ExpectQuery("INSERT INTO wallets .+ ON CONFLICT \\(owner_id\\) DO UPDATE SET balance = wallets.balance \\+ EXCLUDED.balance").
		WithArgs(owner, int64(2500)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(7500)))

	change, err := NewWalletRepo(mock).Credit(context.Background(), tx, owner, 2500)
	require.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, int64(5000), change.BalanceBefore)
	assert.Equal(t, int64(7500), change.BalanceAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_CreditOutOfRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	tx := beginMockTx(t, mock)
	mock.ExpectQuery("INSERT INTO wallets").
		WithArgs(owner, int64(math.MaxInt64)).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "bigint out of range"})

	_, err = NewWalletRepo(mock).Credit(context.Background(), tx, owner, math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrBalanceOverflow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	owner := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT owner_id, balance, created_at, updated_at FROM wallets WHERE owner_id").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id", "balance", "created_at", "updated_at"}).
			AddRow(owner, int64(4200), now, now))

	w, err := repo.GetByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, int64(4200), w.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByOwner_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM wallets").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"owner_id", "balance", "created_at", "updated_at"}))

	w, err := NewWalletRepo(mock).GetByOwner(context.Background(), owner)
	assert.NoError(t, err)
	assert.Nil(t, w)
}

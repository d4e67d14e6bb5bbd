package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry() *domain.LedgerEntry {
	fid := uuid.New()
	return &domain.LedgerEntry{
		ID:             uuid.New(),
		IdempotencyRef: domain.BuildFulfillmentRef(uuid.New(), "1001"),
		OwnerID:        uuid.New(),
		OrderID:        "1001",
		FulfillmentID:  &fid,
		Amount:         10000,
		Direction:      domain.LedgerDebit,
		BalanceBefore:  10000,
		BalanceAfter:   0,
		Metadata:       map[string]string{"order_number": "#1001"},
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func ledgerRowColumns() []string {
	return []string{"id", "idempotency_ref", "owner_id", "order_id", "fulfillment_id", "amount", "direction",
		"balance_before", "balance_after", "metadata", "created_at"}
}

func ledgerRow(rows *pgxmock.Rows, e *domain.LedgerEntry) *pgxmock.Rows {
	return rows.AddRow(e.ID, e.IdempotencyRef, e.OwnerID, e.OrderID, e.FulfillmentID, e.Amount, e.Direction,
		e.BalanceBefore, e.BalanceAfter, []byte(`{"order_number":"#1001"}`), e.CreatedAt)
}

func TestLedgerRepo_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	tx := beginMockTx(t, mock)
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(e.ID, e.IdempotencyRef, e.OwnerID, e.OrderID, e.FulfillmentID, e.Amount, e.Direction,
			e.BalanceBefore, e.BalanceAfter, []byte(`{"order_number":"#1001"}`), e.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewLedgerRepo(mock).Record(context.Background(), tx, e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_Record_DuplicateRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	tx := beginMockTx(t, mock)
	mock.ExpectExec("INSERT INTO ledger_entries").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ledger_entries_idempotency_ref_key"})

	err = NewLedgerRepo(mock).Record(context.Background(), tx, e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEntry))
}

func TestLedgerRepo_Record_RejectsBadArithmetic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	e.BalanceAfter = 5
	tx := beginMockTx(t, mock)

	err = NewLedgerRepo(mock).Record(context.Background(), tx, e)
	var invalid *domain.InvalidEntryError
	assert.ErrorAs(t, err, &invalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_FindByRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE idempotency_ref").
		WithArgs(e.IdempotencyRef).
		WillReturnRows(ledgerRow(pgxmock.NewRows(ledgerRowColumns()), e))

	got, err := NewLedgerRepo(mock).FindByRef(context.Background(), e.IdempotencyRef)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "#1001", got.Metadata["order_number"])
	assert.Equal(t, *e.FulfillmentID, *got.FulfillmentID)
}

func TestLedgerRepo_FindByRef_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM ledger_entries").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(ledgerRowColumns()))

	got, err := NewLedgerRepo(mock).FindByRef(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLedgerRepo_ListByOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	mock.ExpectQuery("SELECT .+ FROM ledger_entries\\s+WHERE owner_id = \\$1 AND order_id = \\$2").
		WithArgs(e.OwnerID, "1001").
		WillReturnRows(ledgerRow(pgxmock.NewRows(ledgerRowColumns()), e))

	got, err := NewLedgerRepo(mock).ListByOrder(context.Background(), e.OwnerID, "1001")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLedgerRepo_ListByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	e := newTestEntry()
	dir := domain.LedgerDebit

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ledger_entries WHERE owner_id = \\$1 AND direction = \\$2").
		WithArgs(e.OwnerID, dir).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE .+ ORDER BY created_at DESC LIMIT \\$3 OFFSET \\$4").
		WithArgs(e.OwnerID, dir, 2, 2).
		WillReturnRows(ledgerRow(pgxmock.NewRows(ledgerRowColumns()), e))

	got, total, err := NewLedgerRepo(mock).ListByWallet(context.Background(), ports.LedgerListParams{
		OwnerID: e.OwnerID, Direction: &dir, Page: 2, PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

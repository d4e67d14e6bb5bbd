package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerJournal.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `id, idempotency_ref, owner_id, order_id, fulfillment_id, amount, direction,
		balance_before, balance_after, metadata, created_at`

// Record inserts an immutable entry. A reused idempotency ref yields domain.ErrDuplicateEntry.
func (r *LedgerRepo) Record(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	meta, err := json.Marshal(metadataOrEmpty(e.Metadata))
	if err != nil {
		return fmt.Errorf("marshal ledger metadata: %w", err)
	}

	query := `INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(ctx, query,
		e.ID, e.IdempotencyRef, e.OwnerID, e.OrderID, e.FulfillmentID, e.Amount, e.Direction,
		e.BalanceBefore, e.BalanceAfter, meta, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert ledger entry %s: %w", e.IdempotencyRef, domain.ErrDuplicateEntry)
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// FindByRef fetches the entry recorded under ref. Returns nil, nil when absent.
func (r *LedgerRepo) FindByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE idempotency_ref = $1`

	e, err := scanLedgerEntry(r.pool.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ledger entry by ref: %w", err)
	}
	return e, nil
}

// ListByOrder returns an order's entries, oldest first.
func (r *LedgerRepo) ListByOrder(ctx context.Context, ownerID uuid.UUID, orderID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE owner_id = $1 AND order_id = $2 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ownerID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries by order: %w", err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

// ListByWallet returns a page of a wallet's entries, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	conditions := []string{"owner_id = $1"}
	args := []any{params.OwnerID}
	argIdx := 2

	if params.Direction != nil {
		conditions = append(conditions, fmt.Sprintf("direction = $%d", argIdx))
		args = append(args, *params.Direction)
		argIdx++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ledger_entries "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		ledgerColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var meta []byte
	err := row.Scan(
		&e.ID, &e.IdempotencyRef, &e.OwnerID, &e.OrderID, &e.FulfillmentID, &e.Amount, &e.Direction,
		&e.BalanceBefore, &e.BalanceAfter, &meta, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode ledger metadata: %w", err)
		}
	}
	return e, nil
}

func metadataOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

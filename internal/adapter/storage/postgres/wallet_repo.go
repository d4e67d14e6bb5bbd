package postgres

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.BalanceStore.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// EnsureWallet creates a zero-balance wallet for ownerID if none exists.
func (r *WalletRepo) EnsureWallet(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	query := `INSERT INTO wallets (owner_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (owner_id) DO NOTHING`

	if _, err := tx.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("ensure wallet: %w", err)
	}
	return nil
}

// Debit subtracts amount in one conditional statement. When the balance does
// not cover amount nothing is written and the current balance is reported.
func (r *WalletRepo) Debit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit wallet: amount must be positive, got %d", amount)
	}

	query := `UPDATE wallets SET balance = balance - $2, updated_at = NOW()
		WHERE owner_id = $1 AND balance >= $2
		RETURNING balance`

	var after int64
	err := tx.QueryRow(ctx, query, ownerID, amount).Scan(&after)
	if err == nil {
		return &domain.BalanceChange{Applied: true, BalanceBefore: after + amount, BalanceAfter: after}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	var current int64
	err = tx.QueryRow(ctx, `SELECT balance FROM wallets WHERE owner_id = $1`, ownerID).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("read balance after rejected debit: %w", err)
	}
	return &domain.BalanceChange{Applied: false, BalanceBefore: current, BalanceAfter: current}, nil
}

// Credit adds amount, creating the wallet if needed.
func (r *WalletRepo) Credit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit wallet: amount must be positive, got %d", amount)
	}

	query := `INSERT INTO wallets (owner_id, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (owner_id) DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance`

	var after int64
	if err := tx.QueryRow(ctx, query, ownerID, amount).Scan(&after); err != nil {
		if hasCode(err, numericOutOfRange) {
			return nil, fmt.Errorf("credit wallet: %w", domain.ErrBalanceOverflow)
		}
		return nil, fmt.Errorf("credit wallet: %w", err)
	}
	return &domain.BalanceChange{Applied: true, BalanceBefore: after - amount, BalanceAfter: after}, nil
}

// GetByOwner fetches a wallet without locking. Returns nil, nil when absent.
func (r *WalletRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT owner_id, balance, created_at, updated_at FROM wallets WHERE owner_id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&w.OwnerID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by owner: %w", err)
	}
	return w, nil
}

package memory

import (
	"context"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.BalanceStore.
type WalletRepo struct {
	s *Store
}

// Wallets returns the store's BalanceStore.
func (s *Store) Wallets() *WalletRepo {
	return &WalletRepo{s: s}
}

func (r *WalletRepo) EnsureWallet(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return err
	}
	r.ensure(mt, ownerID)
	return nil
}

func (r *WalletRepo) ensure(mt *Tx, ownerID uuid.UUID) *domain.Wallet {
	if w, ok := r.s.wallets[ownerID]; ok {
		return w
	}
	now := r.s.now()
	w := &domain.Wallet{OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	r.s.wallets[ownerID] = w
	mt.onRollback(func() { delete(r.s.wallets, ownerID) })
	return w
}

func (r *WalletRepo) Debit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit wallet: amount must be positive, got %d", amount)
	}
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return nil, err
	}

	w, ok := r.s.wallets[ownerID]
	if !ok {
		return &domain.BalanceChange{}, nil
	}
	if w.Balance < amount {
		return &domain.BalanceChange{BalanceBefore: w.Balance, BalanceAfter: w.Balance}, nil
	}
	r.apply(mt, w, -amount)
	return &domain.BalanceChange{Applied: true, BalanceBefore: w.Balance + amount, BalanceAfter: w.Balance}, nil
}

func (r *WalletRepo) Credit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit wallet: amount must be positive, got %d", amount)
	}
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return nil, err
	}

	w := r.ensure(mt, ownerID)
	if !domain.CanCredit(w.Balance, amount) {
		return nil, fmt.Errorf("credit wallet: %w", domain.ErrBalanceOverflow)
	}
	r.apply(mt, w, amount)
	return &domain.BalanceChange{Applied: true, BalanceBefore: w.Balance - amount, BalanceAfter: w.Balance}, nil
}

func (r *WalletRepo) apply(mt *Tx, w *domain.Wallet, delta int64) {
	prevBalance, prevUpdated := w.Balance, w.UpdatedAt
	w.Balance += delta
	w.UpdatedAt = r.s.now()
	mt.onRollback(func() {
		w.Balance = prevBalance
		w.UpdatedAt = prevUpdated
	})
}

func (r *WalletRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.wallets[ownerID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

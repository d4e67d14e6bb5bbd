package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerJournal.
type LedgerRepo struct {
	s *Store
}

// Ledger returns the store's LedgerJournal.
func (s *Store) Ledger() *LedgerRepo {
	return &LedgerRepo{s: s}
}

func (r *LedgerRepo) Record(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return err
	}
	if _, exists := r.s.refs[e.IdempotencyRef]; exists {
		return fmt.Errorf("insert ledger entry %s: %w", e.IdempotencyRef, domain.ErrDuplicateEntry)
	}

	stored := cloneEntry(e)
	r.s.refs[stored.IdempotencyRef] = stored
	r.s.ledger = append(r.s.ledger, stored)
	mt.onRollback(func() {
		delete(r.s.refs, stored.IdempotencyRef)
		r.s.ledger = r.s.ledger[:len(r.s.ledger)-1]
	})
	return nil
}

func (r *LedgerRepo) FindByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.refs[ref]
	if !ok {
		return nil, nil
	}
	return cloneEntry(e), nil
}

// ListByOrder returns an order's entries, oldest first.
func (r *LedgerRepo) ListByOrder(ctx context.Context, ownerID uuid.UUID, orderID string) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entries := []domain.LedgerEntry{}
	for _, e := range r.s.ledger {
		if e.OwnerID == ownerID && e.OrderID == orderID {
			entries = append(entries, *cloneEntry(e))
		}
	}
	return entries, nil
}

// ListByWallet returns a page of a wallet's entries, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.LedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if e.OwnerID != params.OwnerID {
			continue
		}
		if params.Direction != nil && e.Direction != *params.Direction {
			continue
		}
		matched = append(matched, *cloneEntry(e))
	}

	start, end := pageBounds(params.Page, params.PageSize, len(matched))
	page := slices.Clone(matched[start:end])
	if page == nil {
		page = []domain.LedgerEntry{}
	}
	return page, int64(len(matched)), nil
}

func cloneEntry(e *domain.LedgerEntry) *domain.LedgerEntry {
	cp := *e
	cp.Metadata = maps.Clone(e.Metadata)
	return &cp
}

// Package memory is an in-process storage engine for development and tests.
// It carries the same guarantees as the PostgreSQL adapter: conditional
// balance updates, unique ledger refs, one fulfillment per order and
// all-or-nothing transactions. Transactions are serialized on one lock.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type orderKey struct {
	owner uuid.UUID
	order string
}

// Store holds every table in memory. The zero value is not usable, call New.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	wallets      map[uuid.UUID]*domain.Wallet
	ledger       []*domain.LedgerEntry
	refs         map[string]*domain.LedgerEntry
	orders       map[orderKey]*domain.OrderCostRecord
	fulfillments map[uuid.UUID]*domain.FulfillmentRecord
	byOrder      map[orderKey]uuid.UUID
	audit        []*domain.AuditLog
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		wallets:      make(map[uuid.UUID]*domain.Wallet),
		refs:         make(map[string]*domain.LedgerEntry),
		orders:       make(map[orderKey]*domain.OrderCostRecord),
		fulfillments: make(map[uuid.UUID]*domain.FulfillmentRecord),
		byOrder:      make(map[orderKey]uuid.UUID),
	}
}

// ErrForeignTx is returned when a repository gets a transaction it did not open.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

// Tx is a pgx.Tx over the Store. It holds the store lock from Begin until
// Commit or Rollback. Only Commit and Rollback are implemented; the embedded
// pgx.Tx is nil.
type Tx struct {
	pgx.Tx
	store *Store
	undo  []func()
	done  bool
}

// Begin opens a transaction, waiting for any other one to finish.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s}, nil
}

// Commit keeps every write made through tx.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

// Rollback reverts every write made through tx, newest first.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	t.store.mu.Unlock()
	return nil
}

func (t *Tx) onRollback(fn func()) {
	t.undo = append(t.undo, fn)
}

func (s *Store) txFrom(tx pgx.Tx) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt.store != s {
		return nil, ErrForeignTx
	}
	if mt.done {
		return nil, pgx.ErrTxClosed
	}
	return mt, nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "memory"
}

func pageBounds(page, pageSize, total int) (start, end int) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

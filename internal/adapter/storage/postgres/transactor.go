package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor. Every transaction runs at READ
// COMMITTED; the services serialise on row locks, not on isolation.
type Transactor struct {
	pool Pool
	opts pgx.TxOptions
}

func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.BeginTx(ctx, t.opts)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

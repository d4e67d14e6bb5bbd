package domain

import "errors"

// ErrDuplicateEntry is returned by stores when a uniqueness constraint
// (ledger idempotency ref, fulfillment per order) rejects an insert.
var ErrDuplicateEntry = errors.New("duplicate entry")

// ErrBalanceOverflow is returned by stores when a credit would push a wallet
// balance past what a bigint can hold.
var ErrBalanceOverflow = errors.New("wallet balance overflow")

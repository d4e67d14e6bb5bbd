package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerDirection tells whether an entry removed or added funds.
type LedgerDirection string

const (
	LedgerDebit  LedgerDirection = "debit"
	LedgerCredit LedgerDirection = "credit"
)

// LedgerEntry is an immutable record of one money movement on a wallet.
type LedgerEntry struct {
	ID             uuid.UUID         `json:"id"`
	IdempotencyRef string            `json:"idempotency_ref"`
	OwnerID        uuid.UUID         `json:"owner_id"`
	OrderID        string            `json:"order_id,omitempty"`
	FulfillmentID  *uuid.UUID        `json:"fulfillment_id,omitempty"`
	Amount         int64             `json:"amount"`
	Direction      LedgerDirection   `json:"direction"`
	BalanceBefore  int64             `json:"balance_before"`
	BalanceAfter   int64             `json:"balance_after"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Validate checks the arithmetic an entry must satisfy before it is recorded.
func (e *LedgerEntry) Validate() error {
	if e.IdempotencyRef == "" {
		return ErrInvalidEntry("idempotency ref is required")
	}
	if e.Amount <= 0 {
		return ErrInvalidEntry("amount must be positive")
	}
	switch e.Direction {
	case LedgerDebit:
		if e.BalanceAfter != e.BalanceBefore-e.Amount {
			return ErrInvalidEntry("debit balance mismatch")
		}
	case LedgerCredit:
		if e.BalanceAfter != e.BalanceBefore+e.Amount {
			return ErrInvalidEntry("credit balance mismatch")
		}
	default:
		return ErrInvalidEntry("unknown direction " + string(e.Direction))
	}
	if e.BalanceAfter < 0 {
		return ErrInvalidEntry("balance after must not be negative")
	}
	return nil
}

// InvalidEntryError reports a ledger entry that breaks an arithmetic rule.
type InvalidEntryError struct {
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return "invalid ledger entry: " + e.Reason
}

// ErrInvalidEntry builds an *InvalidEntryError.
func ErrInvalidEntry(reason string) error {
	return &InvalidEntryError{Reason: reason}
}

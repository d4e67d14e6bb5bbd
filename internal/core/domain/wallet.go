package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxAmount caps a single cost component or top-up, in minor units. Three
// capped components always sum without overflowing int64.
const MaxAmount int64 = 1_000_000_000_000_000

// CanCredit reports whether balance can take amount more without overflowing.
func CanCredit(balance, amount int64) bool {
	return amount <= math.MaxInt64-balance
}

// Wallet is a merchant's prepaid balance in minor currency units.
// One wallet per owner; it is created lazily with a zero balance.
type Wallet struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BalanceChange is the outcome of a conditional debit or a credit.
// When Applied is false the balance was left untouched and both fields hold
// the balance read at the time of the attempt.
type BalanceChange struct {
	Applied       bool  `json:"applied"`
	BalanceBefore int64 `json:"balance_before"`
	BalanceAfter  int64 `json:"balance_after"`
}

// Shortage returns how much more was needed for amount to be covered.
func (b BalanceChange) Shortage(amount int64) int64 {
	if b.Applied || b.BalanceBefore >= amount {
		return 0
	}
	return amount - b.BalanceBefore
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// BuildFulfillmentRef derives the ledger idempotency reference for charging
// an order's fulfillment. The same (owner, order) always yields the same ref.
func BuildFulfillmentRef(ownerID uuid.UUID, orderID string) string {
	return "ful_" + digest(ownerID.String()+":"+orderID)
}

// BuildTopUpRef derives the ledger reference for a client-referenced top-up.
func BuildTopUpRef(ownerID uuid.UUID, reference string) string {
	return "top_" + digest(ownerID.String()+":"+reference)
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

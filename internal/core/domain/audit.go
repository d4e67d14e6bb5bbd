package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionSubmit      AuditAction = "SUBMIT_FULFILLMENT"
	AuditActionTransition  AuditAction = "TRANSITION_STATUS"
	AuditActionTracking    AuditAction = "UPDATE_TRACKING"
	AuditActionAssign      AuditAction = "ASSIGN_STAFF"
	AuditActionFlags       AuditAction = "UPDATE_FLAGS"
	AuditActionTopUp       AuditAction = "WALLET_TOPUP"
	AuditActionUpdateCosts AuditAction = "UPDATE_COSTS"
)

// Audited resource types.
const (
	AuditResourceFulfillment = "fulfillment"
	AuditResourceOrder       = "order"
	AuditResourceWallet      = "wallet"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actor_id,omitempty"`
	OwnerID      *uuid.UUID  `json:"owner_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time   `json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEvent names what a notification is about.
type NotificationEvent string

const (
	EventFulfillmentCreated       NotificationEvent = "fulfillment.created"
	EventFulfillmentStatusChanged NotificationEvent = "fulfillment.status_changed"
)

// Notification is the payload delivered to the merchant-facing sink.
type Notification struct {
	ID             uuid.UUID         `json:"id"`
	Event          NotificationEvent `json:"event"`
	OwnerID        uuid.UUID         `json:"owner_id"`
	OrderID        string            `json:"order_id"`
	FulfillmentID  uuid.UUID         `json:"fulfillment_id"`
	PreviousStatus FulfillmentStatus `json:"previous_status,omitempty"`
	Status         FulfillmentStatus `json:"status"`
	OrderLifecycle OrderLifecycle    `json:"order_lifecycle"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

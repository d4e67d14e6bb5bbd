package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistoryEntry is one append-only step in a fulfillment's life.
type StatusHistoryEntry struct {
	Status  FulfillmentStatus `json:"status"`
	ActorID *uuid.UUID        `json:"actor_id,omitempty"`
	At      time.Time         `json:"at"`
	Note    string            `json:"note,omitempty"`
}

// Assignments names the staff handling a job.
type Assignments struct {
	PickerID         *uuid.UUID `json:"picker_id,omitempty"`
	PackerID         *uuid.UUID `json:"packer_id,omitempty"`
	QualityCheckerID *uuid.UUID `json:"quality_checker_id,omitempty"`
	CourierContact   *string    `json:"courier_contact,omitempty"`
}

// Tracking holds carrier details.
type Tracking struct {
	Carrier           *string    `json:"carrier,omitempty"`
	TrackingNumber    *string    `json:"tracking_number,omitempty"`
	TrackingURL       *string    `json:"tracking_url,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// Flags are operational markers on a job.
type Flags struct {
	Priority         bool    `json:"priority"`
	Delayed          bool    `json:"delayed"`
	HasIssue         bool    `json:"has_issue"`
	IssueDescription *string `json:"issue_description,omitempty"`
}

// FulfillmentRecord is the internal fulfillment job created when an order is charged.
type FulfillmentRecord struct {
	ID            uuid.UUID            `json:"id"`
	OwnerID       uuid.UUID            `json:"owner_id"`
	OrderID       string               `json:"order_id"`
	Status        FulfillmentStatus    `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`
	Assignments   Assignments          `json:"assignments"`
	Tracking      Tracking             `json:"tracking"`
	ReturnAddress *Address             `json:"return_address,omitempty"`
	Flags         Flags                `json:"flags"`
	OrderValue    int64                `json:"order_value"`
	OrderCost     int64                `json:"order_cost"`
	Profit        int64                `json:"profit"`
	LedgerEntryID uuid.UUID            `json:"ledger_entry_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewFulfillmentRecord builds a pending job for a charged order.
func NewFulfillmentRecord(id uuid.UUID, cost *OrderCostRecord, charged int64, ledgerEntryID uuid.UUID, actorID *uuid.UUID, now time.Time) *FulfillmentRecord {
	return &FulfillmentRecord{
		ID:      id,
		OwnerID: cost.OwnerID,
		OrderID: cost.OrderID,
		Status:  StatusPending,
		StatusHistory: []StatusHistoryEntry{{
			Status:  StatusPending,
			ActorID: actorID,
			At:      now,
			Note:    "submitted for fulfillment",
		}},
		ReturnAddress: cost.ShippingAddress,
		OrderValue:    cost.OrderTotal,
		OrderCost:     charged,
		Profit:        cost.OrderTotal - charged,
		LedgerEntryID: ledgerEntryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TrackingUpdate patches tracking fields; nil keeps the stored value.
type TrackingUpdate struct {
	Carrier           *string
	TrackingNumber    *string
	TrackingURL       *string
	EstimatedDelivery *time.Time
	ReturnAddress     *Address
}

// Apply merges the patch into r.
func (u TrackingUpdate) Apply(r *FulfillmentRecord) {
	if u.Carrier != nil {
		r.Tracking.Carrier = u.Carrier
	}
	if u.TrackingNumber != nil {
		r.Tracking.TrackingNumber = u.TrackingNumber
	}
	if u.TrackingURL != nil {
		r.Tracking.TrackingURL = u.TrackingURL
	}
	if u.EstimatedDelivery != nil {
		r.Tracking.EstimatedDelivery = u.EstimatedDelivery
	}
	if u.ReturnAddress != nil {
		r.ReturnAddress = u.ReturnAddress
	}
}

// IsEmpty reports whether the patch changes nothing.
func (u TrackingUpdate) IsEmpty() bool {
	return u.Carrier == nil && u.TrackingNumber == nil && u.TrackingURL == nil &&
		u.EstimatedDelivery == nil && u.ReturnAddress == nil
}

// AssignmentUpdate patches assignments; nil keeps the stored value.
type AssignmentUpdate struct {
	PickerID         *uuid.UUID
	PackerID         *uuid.UUID
	QualityCheckerID *uuid.UUID
	CourierContact   *string
}

// Apply merges the patch into r.
func (u AssignmentUpdate) Apply(r *FulfillmentRecord) {
	if u.PickerID != nil {
		r.Assignments.PickerID = u.PickerID
	}
	if u.PackerID != nil {
		r.Assignments.PackerID = u.PackerID
	}
	if u.QualityCheckerID != nil {
		r.Assignments.QualityCheckerID = u.QualityCheckerID
	}
	if u.CourierContact != nil {
		r.Assignments.CourierContact = u.CourierContact
	}
}

// IsEmpty reports whether the patch changes nothing.
func (u AssignmentUpdate) IsEmpty() bool {
	return u.PickerID == nil && u.PackerID == nil && u.QualityCheckerID == nil && u.CourierContact == nil
}

// FlagsUpdate patches flags; nil keeps the stored value.
type FlagsUpdate struct {
	Priority         *bool
	Delayed          *bool
	HasIssue         *bool
	IssueDescription *string
}

// Apply merges the patch into r. Clearing HasIssue drops the description.
func (u FlagsUpdate) Apply(r *FulfillmentRecord) {
	if u.Priority != nil {
		r.Flags.Priority = *u.Priority
	}
	if u.Delayed != nil {
		r.Flags.Delayed = *u.Delayed
	}
	if u.HasIssue != nil {
		r.Flags.HasIssue = *u.HasIssue
	}
	if u.IssueDescription != nil {
		r.Flags.IssueDescription = u.IssueDescription
	}
	if !r.Flags.HasIssue {
		r.Flags.IssueDescription = nil
	}
}

// IsEmpty reports whether the patch changes nothing.
func (u FlagsUpdate) IsEmpty() bool {
	return u.Priority == nil && u.Delayed == nil && u.HasIssue == nil && u.IssueDescription == nil
}

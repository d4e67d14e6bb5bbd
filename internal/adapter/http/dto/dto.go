package dto

import (
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// OrderURI binds the :orderId path parameter.
type OrderURI struct {
	OrderID string `uri:"orderId" binding:"required,order_ref"`
}

// FulfillmentURI binds the :id path parameter.
type FulfillmentURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// CostsRequest overrides cost components, in minor units. Omitted fields keep the stored value.
// The max bound is domain.MaxAmount; negative values are left to the domain
// so they report INV_001.
type CostsRequest struct {
	ProductCost  *int64 `json:"product_cost,omitempty" binding:"omitempty,max=1000000000000000"`
	ShippingCost *int64 `json:"shipping_cost,omitempty" binding:"omitempty,max=1000000000000000"`
	ServiceFee   *int64 `json:"service_fee,omitempty" binding:"omitempty,max=1000000000000000"`
}

// Overrides converts the request into domain overrides; nil when nothing is set.
func (r *CostsRequest) Overrides() *domain.CostOverrides {
	if r == nil || (r.ProductCost == nil && r.ShippingCost == nil && r.ServiceFee == nil) {
		return nil
	}
	return &domain.CostOverrides{
		ProductCost:  r.ProductCost,
		ShippingCost: r.ShippingCost,
		ServiceFee:   r.ServiceFee,
	}
}

// TransitionRequest is the body of POST /fulfillments/:id/status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required,fulfillment_status"`
	Note   string `json:"note" binding:"max=500"`
}

// BulkTransitionRequest is the body of POST /fulfillments/bulk.
type BulkTransitionRequest struct {
	FulfillmentIDs []string `json:"fulfillment_ids" binding:"required,min=1,dive,uuid"`
	Status         string   `json:"status" binding:"required,fulfillment_status"`
	Note           string   `json:"note" binding:"max=500"`
}

// AddressRequest is a postal address in a request body.
type AddressRequest struct {
	Name       string `json:"name" binding:"max=200"`
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Region     string `json:"region" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
	Phone      string `json:"phone" binding:"max=30"`
}

func (a *AddressRequest) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// TrackingRequest is the body of POST /fulfillments/:id/tracking.
type TrackingRequest struct {
	Carrier           *string         `json:"carrier,omitempty" binding:"omitempty,max=100"`
	TrackingNumber    *string         `json:"tracking_number,omitempty" binding:"omitempty,max=100"`
	TrackingURL       *string         `json:"tracking_url,omitempty" binding:"omitempty,safe_url,max=500"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	ReturnAddress     *AddressRequest `json:"return_address,omitempty"`
}

func (r TrackingRequest) Update() domain.TrackingUpdate {
	return domain.TrackingUpdate{
		Carrier:           r.Carrier,
		TrackingNumber:    r.TrackingNumber,
		TrackingURL:       r.TrackingURL,
		EstimatedDelivery: r.EstimatedDelivery,
		ReturnAddress:     r.ReturnAddress.toDomain(),
	}
}

// AssignRequest is the body of POST /fulfillments/:id/assign.
type AssignRequest struct {
	PickerID         *uuid.UUID `json:"picker_id,omitempty"`
	PackerID         *uuid.UUID `json:"packer_id,omitempty"`
	QualityCheckerID *uuid.UUID `json:"quality_checker_id,omitempty"`
	CourierContact   *string    `json:"courier_contact,omitempty" binding:"omitempty,max=100"`
}

func (r AssignRequest) Update() domain.AssignmentUpdate {
	return domain.AssignmentUpdate{
		PickerID:         r.PickerID,
		PackerID:         r.PackerID,
		QualityCheckerID: r.QualityCheckerID,
		CourierContact:   r.CourierContact,
	}
}

// FlagsRequest is the body of POST /fulfillments/:id/flags.
type FlagsRequest struct {
	Priority         *bool   `json:"priority,omitempty"`
	Delayed          *bool   `json:"delayed,omitempty"`
	HasIssue         *bool   `json:"has_issue,omitempty"`
	IssueDescription *string `json:"issue_description,omitempty" binding:"omitempty,max=1000"`
}

func (r FlagsRequest) Update() domain.FlagsUpdate {
	return domain.FlagsUpdate{
		Priority:         r.Priority,
		Delayed:          r.Delayed,
		HasIssue:         r.HasIssue,
		IssueDescription: r.IssueDescription,
	}
}

// TopUpRequest is the body of POST /wallet/topup. Reference is the caller's
// payment reference and makes the credit idempotent.
type TopUpRequest struct {
	Amount    int64      `json:"amount" binding:"required,gt=0,max=1000000000000000"`
	Reference string     `json:"reference" binding:"required,max=100,safe_id"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
}

// PageQuery holds common pagination query params.
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize fills defaults.
func (q *PageQuery) Normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}
}

// ListFulfillmentsQuery holds GET /fulfillments filters.
type ListFulfillmentsQuery struct {
	PageQuery
	Status   string `form:"status" binding:"omitempty,fulfillment_status"`
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	Priority *bool  `form:"priority"`
	HasIssue *bool  `form:"has_issue"`
}

// LedgerEntriesQuery holds GET /wallet/entries filters.
type LedgerEntriesQuery struct {
	PageQuery
	Direction string `form:"direction" binding:"omitempty,oneof=debit credit"`
}

// WalletBalanceResponse is the response for GET /wallet.
type WalletBalanceResponse struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Balance int64     `json:"balance"`
}

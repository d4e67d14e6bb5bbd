package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// OrderLifecycle is the coarse order-level fulfillment vocabulary shown to
// merchants. Submission owns the first three values, the rest mirror the
// fulfillment status.
type OrderLifecycle string

const (
	LifecycleUnsubmitted   OrderLifecycle = "unsubmitted"
	LifecycleAwaitingFunds OrderLifecycle = "awaiting_funds"
	LifecycleSubmitted     OrderLifecycle = "submitted"
	LifecycleSourcing      OrderLifecycle = "sourcing"
	LifecyclePacking       OrderLifecycle = "packing"
	LifecycleReadyToShip   OrderLifecycle = "ready_to_ship"
	LifecycleShipped       OrderLifecycle = "shipped"
	LifecycleDelivered     OrderLifecycle = "delivered"
	LifecycleRTO           OrderLifecycle = "rto"
	LifecycleReturned      OrderLifecycle = "returned"
	LifecycleCancelled     OrderLifecycle = "cancelled"
	LifecycleFailed        OrderLifecycle = "failed"
)

var validOrderLifecycles = []OrderLifecycle{
	LifecycleUnsubmitted,
	LifecycleAwaitingFunds,
	LifecycleSubmitted,
	LifecycleSourcing,
	LifecyclePacking,
	LifecycleReadyToShip,
	LifecycleShipped,
	LifecycleDelivered,
	LifecycleRTO,
	LifecycleReturned,
	LifecycleCancelled,
	LifecycleFailed,
}

// IsValid reports whether the value is a known OrderLifecycle.
func (l OrderLifecycle) IsValid() bool {
	for _, candidate := range validOrderLifecycles {
		if candidate == l {
			return true
		}
	}
	return false
}

// IsSubmittable reports whether an order in this lifecycle may still be charged.
func (l OrderLifecycle) IsSubmittable() bool {
	return l == LifecycleUnsubmitted || l == LifecycleAwaitingFunds
}

// ParseOrderLifecycle converts raw input into an OrderLifecycle.
func ParseOrderLifecycle(value string) (OrderLifecycle, error) {
	for _, candidate := range validOrderLifecycles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order lifecycle %q", value)
}

// Address is a postal destination, used for shipping and RTO.
type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Costs are the three components of the amount charged for fulfillment.
type Costs struct {
	ProductCost  int64 `json:"product_cost"`
	ShippingCost int64 `json:"shipping_cost"`
	ServiceFee   int64 `json:"service_fee"`
}

// Total is the amount to debit. It is only meaningful for costs that passed
// Validate.
func (c Costs) Total() int64 {
	return c.ProductCost + c.ShippingCost + c.ServiceFee
}

// Validate rejects negative components, components over MaxAmount and sums
// that overflow int64.
func (c Costs) Validate() error {
	var sum int64
	for _, v := range []int64{c.ProductCost, c.ShippingCost, c.ServiceFee} {
		if v < 0 {
			return fmt.Errorf("cost components must not be negative")
		}
		if v > MaxAmount {
			return fmt.Errorf("cost component %d exceeds the maximum of %d", v, MaxAmount)
		}
		if v > math.MaxInt64-sum {
			return fmt.Errorf("cost total overflows")
		}
		sum += v
	}
	return nil
}

// CostOverrides replaces individual cost components. Nil fields keep the stored value.
type CostOverrides struct {
	ProductCost  *int64 `json:"product_cost,omitempty"`
	ShippingCost *int64 `json:"shipping_cost,omitempty"`
	ServiceFee   *int64 `json:"service_fee,omitempty"`
}

// Validate rejects negative overrides and overrides over MaxAmount.
func (o *CostOverrides) Validate() error {
	if o == nil {
		return nil
	}
	for _, v := range []*int64{o.ProductCost, o.ShippingCost, o.ServiceFee} {
		switch {
		case v == nil:
		case *v < 0:
			return fmt.Errorf("cost overrides must not be negative")
		case *v > MaxAmount:
			return fmt.Errorf("cost override %d exceeds the maximum of %d", *v, MaxAmount)
		}
	}
	return nil
}

// Apply returns c with the non-nil overrides substituted.
func (o *CostOverrides) Apply(c Costs) Costs {
	if o == nil {
		return c
	}
	if o.ProductCost != nil {
		c.ProductCost = *o.ProductCost
	}
	if o.ShippingCost != nil {
		c.ShippingCost = *o.ShippingCost
	}
	if o.ServiceFee != nil {
		c.ServiceFee = *o.ServiceFee
	}
	return c
}

// IsEmpty reports whether no component is overridden.
func (o *CostOverrides) IsEmpty() bool {
	return o == nil || (o.ProductCost == nil && o.ShippingCost == nil && o.ServiceFee == nil)
}

// OrderCostRecord mirrors an upstream order plus its fulfillment billing state.
type OrderCostRecord struct {
	OwnerID         uuid.UUID      `json:"owner_id"`
	OrderID         string         `json:"order_id"`
	OrderNumber     string         `json:"order_number"`
	Currency        string         `json:"currency"`
	Subtotal        int64          `json:"subtotal"`
	OrderTotal      int64          `json:"order_total"`
	Costs           Costs          `json:"costs"`
	Lifecycle       OrderLifecycle `json:"lifecycle"`
	ChargeAmount    int64          `json:"wallet_charge_amount"`
	ChargedAt       *time.Time     `json:"wallet_charged_at,omitempty"`
	Shortage        int64          `json:"wallet_shortage"`
	FulfillmentID   *uuid.UUID     `json:"fulfillment_id,omitempty"`
	ShippingAddress *Address       `json:"shipping_address,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// UpstreamOrder is the storefront's view of an order, as fetched by an OrderSource.
type UpstreamOrder struct {
	OrderID         string   `json:"order_id"`
	OrderNumber     string   `json:"order_number"`
	Currency        string   `json:"currency"`
	Subtotal        int64    `json:"subtotal"`
	Total           int64    `json:"total"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

// NewOrderCostRecord seeds a record from an upstream order. Product cost
// defaults to the subtotal; shipping and service fee start at zero.
func NewOrderCostRecord(ownerID uuid.UUID, o *UpstreamOrder, now time.Time) *OrderCostRecord {
	return &OrderCostRecord{
		OwnerID:         ownerID,
		OrderID:         o.OrderID,
		OrderNumber:     o.OrderNumber,
		Currency:        o.Currency,
		Subtotal:        o.Subtotal,
		OrderTotal:      o.Total,
		Costs:           Costs{ProductCost: o.Subtotal},
		Lifecycle:       LifecycleUnsubmitted,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// WalletCharge is what MarkSubmitted persists on the cost record.
type WalletCharge struct {
	Costs         Costs
	Amount        int64
	ChargedAt     time.Time
	FulfillmentID uuid.UUID
}

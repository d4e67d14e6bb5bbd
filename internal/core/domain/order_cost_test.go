package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestOrderLifecycle_IsSubmittable(t *testing.T) {
	assert.True(t, LifecycleUnsubmitted.IsSubmittable())
	assert.True(t, LifecycleAwaitingFunds.IsSubmittable())
	assert.False(t, LifecycleSubmitted.IsSubmittable())
	assert.False(t, LifecycleCancelled.IsSubmittable())
	assert.False(t, LifecycleFailed.IsSubmittable())
}

func TestCostOverrides(t *testing.T) {
	base := Costs{ProductCost: 7000, ShippingCost: 2000, ServiceFee: 1000}

	var none *CostOverrides
	assert.Equal(t, base, none.Apply(base))
	assert.True(t, none.IsEmpty())
	assert.NoError(t, none.Validate())

	o := &CostOverrides{ShippingCost: int64Ptr(0)}
	got := o.Apply(base)
	assert.Equal(t, int64(8000), got.Total())
	assert.False(t, o.IsEmpty())

	assert.Error(t, (&CostOverrides{ServiceFee: int64Ptr(-1)}).Validate())
	assert.Error(t, Costs{ProductCost: -5}.Validate())
}

func TestCosts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		costs   Costs
		wantErr bool
	}{
		{"typical", Costs{ProductCost: 7000, ShippingCost: 2000, ServiceFee: 1000}, false},
		{"all at the cap", Costs{ProductCost: MaxAmount, ShippingCost: MaxAmount, ServiceFee: MaxAmount}, false},
		{"negative", Costs{ShippingCost: -1}, true},
		{"over the cap", Costs{ProductCost: MaxAmount + 1}, true},
		{"sum would wrap to 1", Costs{ProductCost: math.MaxInt64, ShippingCost: math.MaxInt64, ServiceFee: 3}, true},
		{"sum would wrap negative", Costs{ProductCost: math.MaxInt64, ShippingCost: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.costs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Positive(t, tt.costs.Total())
		})
	}

	assert.Error(t, (&CostOverrides{ProductCost: int64Ptr(math.MaxInt64)}).Validate())
	assert.NoError(t, (&CostOverrides{ProductCost: int64Ptr(MaxAmount)}).Validate())
}

func TestCanCredit(t *testing.T) {
	assert.True(t, CanCredit(10, math.MaxInt64-10))
	assert.False(t, CanCredit(10, math.MaxInt64))
	assert.True(t, CanCredit(0, MaxAmount))
}

func TestNewOrderCostRecord(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rec := NewOrderCostRecord(owner, &UpstreamOrder{
		OrderID: "1001", OrderNumber: "#1001", Currency: "USD", Subtotal: 9000, Total: 12000,
	}, now)

	assert.Equal(t, LifecycleUnsubmitted, rec.Lifecycle)
	assert.Equal(t, Costs{ProductCost: 9000}, rec.Costs)
	assert.Equal(t, int64(12000), rec.OrderTotal)
	assert.Equal(t, now, rec.CreatedAt)
}

func TestNewFulfillmentRecord(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()
	cost := &OrderCostRecord{OwnerID: uuid.New(), OrderID: "1001", OrderTotal: 15000}

	f := NewFulfillmentRecord(uuid.New(), cost, 10000, uuid.New(), &actor, now)

	assert.Equal(t, StatusPending, f.Status)
	assert.Len(t, f.StatusHistory, 1)
	assert.Equal(t, f.Status, f.StatusHistory[len(f.StatusHistory)-1].Status)
	assert.Equal(t, int64(5000), f.Profit)
	assert.Equal(t, int64(10000), f.OrderCost)
}

func TestFlagsUpdate_ClearingIssueDropsDescription(t *testing.T) {
	desc := "box crushed"
	yes, no := true, false
	r := &FulfillmentRecord{}

	FlagsUpdate{HasIssue: &yes, IssueDescription: &desc}.Apply(r)
	assert.True(t, r.Flags.HasIssue)
	assert.Equal(t, "box crushed", *r.Flags.IssueDescription)

	FlagsUpdate{HasIssue: &no}.Apply(r)
	assert.False(t, r.Flags.HasIssue)
	assert.Nil(t, r.Flags.IssueDescription)
}

func TestPatchesAreEmptyByDefault(t *testing.T) {
	assert.True(t, TrackingUpdate{}.IsEmpty())
	assert.True(t, AssignmentUpdate{}.IsEmpty())
	assert.True(t, FlagsUpdate{}.IsEmpty())

	carrier := "UPS"
	r := &FulfillmentRecord{}
	TrackingUpdate{Carrier: &carrier}.Apply(r)
	assert.Equal(t, "UPS", *r.Tracking.Carrier)
	assert.Nil(t, r.Tracking.TrackingNumber)
}

package postgres

import (
	"context"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderCostRowColumns() []string {
	return []string{"owner_id", "order_id", "order_number", "currency", "subtotal", "order_total",
		"product_cost", "shipping_cost", "service_fee", "lifecycle", "wallet_charge_amount", "wallet_charged_at",
		"wallet_shortage", "fulfillment_id", "shipping_address", "created_at", "updated_at"}
}

func orderCostRow(rec *domain.OrderCostRecord, addr []byte) *pgxmock.Rows {
	return pgxmock.NewRows(orderCostRowColumns()).AddRow(
		rec.OwnerID, rec.OrderID, rec.OrderNumber, rec.Currency, rec.Subtotal, rec.OrderTotal,
		rec.Costs.ProductCost, rec.Costs.ShippingCost, rec.Costs.ServiceFee, rec.Lifecycle,
		rec.ChargeAmount, rec.ChargedAt, rec.Shortage, rec.FulfillmentID, addr,
		rec.CreatedAt, rec.UpdatedAt,
	)
}

func newTestOrderCost() *domain.OrderCostRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.NewOrderCostRecord(uuid.New(), &domain.UpstreamOrder{
		OrderID: "1001", OrderNumber: "#1001", Currency: "USD", Subtotal: 7000, Total: 12000,
		ShippingAddress: &domain.Address{Line1: "1 Main St", City: "Austin", PostalCode: "78701", Country: "US"},
	}, now)
}

func TestOrderCostRepo_Create_ReturnsStoredRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := newTestOrderCost()
	addr, err := jsonOrNil(rec.ShippingAddress)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO order_costs .+ ON CONFLICT \\(owner_id, order_id\\) DO NOTHING").
		WithArgs(rec.OwnerID, rec.OrderID, rec.OrderNumber, rec.Currency, rec.Subtotal, rec.OrderTotal,
			rec.Costs.ProductCost, rec.Costs.ShippingCost, rec.Costs.ServiceFee, rec.Lifecycle,
			rec.ChargeAmount, rec.ChargedAt, rec.Shortage, rec.FulfillmentID, addr,
			rec.CreatedAt, rec.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT .+ FROM order_costs WHERE owner_id = \\$1 AND order_id = \\$2").
		WithArgs(rec.OwnerID, rec.OrderID).
		WillReturnRows(orderCostRow(rec, addr))

	stored, err := NewOrderCostRepo(mock).Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, domain.LifecycleUnsubmitted, stored.Lifecycle)
	require.NotNil(t, stored.ShippingAddress)
	assert.Equal(t, "Austin", stored.ShippingAddress.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCostRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM order_costs").
		WithArgs(owner, "404").
		WillReturnRows(pgxmock.NewRows(orderCostRowColumns()))

	rec, err := NewOrderCostRepo(mock).Get(context.Background(), owner, "404")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestOrderCostRepo_UpdateCosts_GuardedBySubmittableLifecycle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	costs := domain.Costs{ProductCost: 1, ShippingCost: 2, ServiceFee: 3}

	mock.ExpectExec("UPDATE order_costs SET product_cost .+ lifecycle IN \\('unsubmitted', 'awaiting_funds'\\)").
		WithArgs(owner, "1001", int64(1), int64(2), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := NewOrderCostRepo(mock).UpdateCosts(context.Background(), owner, "1001", costs)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCostRepo_MarkAwaitingFunds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	tx := beginMockTx(t, mock)
	mock.ExpectExec("UPDATE order_costs SET .+ lifecycle = 'awaiting_funds', wallet_shortage = \\$6").
		WithArgs(owner, "1001", int64(10000), int64(0), int64(0), int64(5000)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := NewOrderCostRepo(mock).MarkAwaitingFunds(context.Background(), tx, owner, "1001",
		domain.Costs{ProductCost: 10000}, 5000)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrderCostRepo_MarkSubmitted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	charge := domain.WalletCharge{
		Costs:         domain.Costs{ProductCost: 8000, ShippingCost: 1500, ServiceFee: 500},
		Amount:        10000,
		ChargedAt:     time.Now().UTC(),
		FulfillmentID: uuid.New(),
	}
	tx := beginMockTx(t, mock)
	mock.ExpectExec("UPDATE order_costs SET .+ lifecycle = 'submitted'").
		WithArgs(owner, "1001", int64(8000), int64(1500), int64(500), int64(10000), charge.ChargedAt, charge.FulfillmentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := NewOrderCostRepo(mock).MarkSubmitted(context.Background(), tx, owner, "1001", charge)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCostRepo_MirrorLifecycle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	owner := uuid.New()
	tx := beginMockTx(t, mock)
	mock.ExpectExec("UPDATE order_costs SET lifecycle = \\$3").
		WithArgs(owner, "1001", domain.LifecyclePacking).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = NewOrderCostRepo(mock).MirrorLifecycle(context.Background(), tx, owner, "1001", domain.LifecyclePacking)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderCostRepo implements ports.OrderCostRepository.
type OrderCostRepo struct {
	pool Pool
}

// NewOrderCostRepo creates a new OrderCostRepo.
func NewOrderCostRepo(pool Pool) *OrderCostRepo {
	return &OrderCostRepo{pool: pool}
}

const orderCostColumns = `owner_id, order_id, order_number, currency, subtotal, order_total,
		product_cost, shipping_cost, service_fee, lifecycle, wallet_charge_amount, wallet_charged_at,
		wallet_shortage, fulfillment_id, shipping_address, created_at, updated_at`

// submittableGuard restricts billing writes to orders not yet charged.
const submittableGuard = `lifecycle IN ('unsubmitted', 'awaiting_funds')`

// Create inserts rec unless the order is already known, then returns the stored row.
func (r *OrderCostRepo) Create(ctx context.Context, rec *domain.OrderCostRecord) (*domain.OrderCostRecord, error) {
	addr, err := jsonOrNil(rec.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping address: %w", err)
	}

	query := `INSERT INTO order_costs (` + orderCostColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (owner_id, order_id) DO NOTHING`

	_, err = r.pool.Exec(ctx, query,
		rec.OwnerID, rec.OrderID, rec.OrderNumber, rec.Currency, rec.Subtotal, rec.OrderTotal,
		rec.Costs.ProductCost, rec.Costs.ShippingCost, rec.Costs.ServiceFee, rec.Lifecycle,
		rec.ChargeAmount, rec.ChargedAt, rec.Shortage, rec.FulfillmentID, addr,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order cost: %w", err)
	}

	stored, err := r.Get(ctx, rec.OwnerID, rec.OrderID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("order cost %s vanished after insert", rec.OrderID)
	}
	return stored, nil
}

// Get fetches an order's cost record. Returns nil, nil when absent.
func (r *OrderCostRepo) Get(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, error) {
	query := `SELECT ` + orderCostColumns + ` FROM order_costs WHERE owner_id = $1 AND order_id = $2`

	rec, err := scanOrderCost(r.pool.QueryRow(ctx, query, ownerID, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order cost: %w", err)
	}
	return rec, nil
}

// UpdateCosts rewrites the cost components while the order is still submittable.
func (r *OrderCostRepo) UpdateCosts(ctx context.Context, ownerID uuid.UUID, orderID string, costs domain.Costs) (bool, error) {
	query := `UPDATE order_costs SET product_cost = $3, shipping_cost = $4, service_fee = $5, updated_at = NOW()
		WHERE owner_id = $1 AND order_id = $2 AND ` + submittableGuard

	tag, err := r.pool.Exec(ctx, query, ownerID, orderID, costs.ProductCost, costs.ShippingCost, costs.ServiceFee)
	if err != nil {
		return false, fmt.Errorf("update order costs: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAwaitingFunds records a rejected charge and its shortage.
func (r *OrderCostRepo) MarkAwaitingFunds(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, costs domain.Costs, shortage int64) (bool, error) {
	query := `UPDATE order_costs SET product_cost = $3, shipping_cost = $4, service_fee = $5,
		lifecycle = 'awaiting_funds', wallet_shortage = $6, updated_at = NOW()
		WHERE owner_id = $1 AND order_id = $2 AND ` + submittableGuard

	tag, err := tx.Exec(ctx, query, ownerID, orderID, costs.ProductCost, costs.ShippingCost, costs.ServiceFee, shortage)
	if err != nil {
		return false, fmt.Errorf("mark order awaiting funds: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSubmitted records a successful charge and links the fulfillment job.
func (r *OrderCostRepo) MarkSubmitted(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, charge domain.WalletCharge) (bool, error) {
	query := `UPDATE order_costs SET product_cost = $3, shipping_cost = $4, service_fee = $5,
		lifecycle = 'submitted', wallet_charge_amount = $6, wallet_charged_at = $7, wallet_shortage = 0,
		fulfillment_id = $8, updated_at = NOW()
		WHERE owner_id = $1 AND order_id = $2 AND ` + submittableGuard

	tag, err := tx.Exec(ctx, query, ownerID, orderID,
		charge.Costs.ProductCost, charge.Costs.ShippingCost, charge.Costs.ServiceFee,
		charge.Amount, charge.ChargedAt, charge.FulfillmentID,
	)
	if err != nil {
		return false, fmt.Errorf("mark order submitted: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MirrorLifecycle copies the coarse fulfillment state onto the order.
func (r *OrderCostRepo) MirrorLifecycle(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, lifecycle domain.OrderLifecycle) error {
	query := `UPDATE order_costs SET lifecycle = $3, updated_at = NOW() WHERE owner_id = $1 AND order_id = $2`

	if _, err := tx.Exec(ctx, query, ownerID, orderID, lifecycle); err != nil {
		return fmt.Errorf("mirror order lifecycle: %w", err)
	}
	return nil
}

func scanOrderCost(row pgx.Row) (*domain.OrderCostRecord, error) {
	rec := &domain.OrderCostRecord{}
	var addr []byte
	err := row.Scan(
		&rec.OwnerID, &rec.OrderID, &rec.OrderNumber, &rec.Currency, &rec.Subtotal, &rec.OrderTotal,
		&rec.Costs.ProductCost, &rec.Costs.ShippingCost, &rec.Costs.ServiceFee, &rec.Lifecycle,
		&rec.ChargeAmount, &rec.ChargedAt, &rec.Shortage, &rec.FulfillmentID, &addr,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(addr) > 0 {
		rec.ShippingAddress = &domain.Address{}
		if err := json.Unmarshal(addr, rec.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	return rec, nil
}

// jsonOrNil marshals v, mapping a nil address to SQL NULL.
func jsonOrNil(v *domain.Address) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

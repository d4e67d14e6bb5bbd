package memory

import (
	"context"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderCostRepo implements ports.OrderCostRepository.
type OrderCostRepo struct {
	s *Store
}

// OrderCosts returns the store's OrderCostRepository.
func (s *Store) OrderCosts() *OrderCostRepo {
	return &OrderCostRepo{s: s}
}

func (r *OrderCostRepo) Create(ctx context.Context, rec *domain.OrderCostRecord) (*domain.OrderCostRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := orderKey{rec.OwnerID, rec.OrderID}
	if existing, ok := r.s.orders[key]; ok {
		return cloneOrderCost(existing), nil
	}
	stored := cloneOrderCost(rec)
	r.s.orders[key] = stored
	return cloneOrderCost(stored), nil
}

func (r *OrderCostRepo) Get(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.orders[orderKey{ownerID, orderID}]
	if !ok {
		return nil, nil
	}
	return cloneOrderCost(rec), nil
}

func (r *OrderCostRepo) UpdateCosts(ctx context.Context, ownerID uuid.UUID, orderID string, costs domain.Costs) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.submittable(ownerID, orderID)
	if !ok {
		return false, nil
	}
	rec.Costs = costs
	rec.UpdatedAt = r.s.now()
	return true, nil
}

func (r *OrderCostRepo) MarkAwaitingFunds(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, costs domain.Costs, shortage int64) (bool, error) {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return false, err
	}
	rec, ok := r.submittable(ownerID, orderID)
	if !ok {
		return false, nil
	}
	r.snapshot(mt, rec)
	rec.Costs = costs
	rec.Lifecycle = domain.LifecycleAwaitingFunds
	rec.Shortage = shortage
	rec.UpdatedAt = r.s.now()
	return true, nil
}

func (r *OrderCostRepo) MarkSubmitted(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, charge domain.WalletCharge) (bool, error) {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return false, err
	}
	rec, ok := r.submittable(ownerID, orderID)
	if !ok {
		return false, nil
	}
	r.snapshot(mt, rec)
	chargedAt := charge.ChargedAt
	fulfillmentID := charge.FulfillmentID
	rec.Costs = charge.Costs
	rec.Lifecycle = domain.LifecycleSubmitted
	rec.ChargeAmount = charge.Amount
	rec.ChargedAt = &chargedAt
	rec.Shortage = 0
	rec.FulfillmentID = &fulfillmentID
	rec.UpdatedAt = r.s.now()
	return true, nil
}

func (r *OrderCostRepo) MirrorLifecycle(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, lifecycle domain.OrderLifecycle) error {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return err
	}
	rec, ok := r.s.orders[orderKey{ownerID, orderID}]
	if !ok {
		return nil
	}
	r.snapshot(mt, rec)
	rec.Lifecycle = lifecycle
	rec.UpdatedAt = r.s.now()
	return nil
}

func (r *OrderCostRepo) submittable(ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, bool) {
	rec, ok := r.s.orders[orderKey{ownerID, orderID}]
	if !ok || !rec.Lifecycle.IsSubmittable() {
		return nil, false
	}
	return rec, true
}

func (r *OrderCostRepo) snapshot(mt *Tx, rec *domain.OrderCostRecord) {
	prev := *rec
	mt.onRollback(func() { *rec = prev })
}

func cloneOrderCost(rec *domain.OrderCostRecord) *domain.OrderCostRecord {
	cp := *rec
	return &cp
}

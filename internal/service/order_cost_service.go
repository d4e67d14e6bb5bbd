package service

import (
	"context"
	"errors"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderCostServiceImpl implements ports.OrderCostService.
type OrderCostServiceImpl struct {
	repo   ports.OrderCostRepository
	source ports.OrderSource
	audit  ports.AuditService
	log    zerolog.Logger
	now    func() time.Time
}

// NewOrderCostService creates a new OrderCostServiceImpl. A nil source means
// orders must already be known locally.
func NewOrderCostService(
	repo ports.OrderCostRepository,
	source ports.OrderSource,
	audit ports.AuditService,
	log zerolog.Logger,
) *OrderCostServiceImpl {
	return &OrderCostServiceImpl{
		repo:   repo,
		source: source,
		audit:  audit,
		log:    log,
		now:    utcNow,
	}
}

// Sync returns the order's cost record, creating it from the upstream order on first access.
func (s *OrderCostServiceImpl) Sync(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, error) {
	rec, err := s.repo.Get(ctx, ownerID, orderID)
	if err != nil {
		return nil, storageFailure("get order cost", err)
	}
	if rec != nil {
		return rec, nil
	}
	if s.source == nil {
		return nil, apperror.ErrNotFound("order")
	}

	order, err := s.source.FetchOrder(ctx, ownerID, orderID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.ErrUpstreamFailure(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}
	if order.Subtotal < 0 || order.Total < 0 {
		return nil, apperror.ErrInvariantViolation("upstream order has negative amounts")
	}
	order.OrderID = orderID

	stored, err := s.repo.Create(ctx, domain.NewOrderCostRecord(ownerID, order, s.now()))
	if err != nil {
		return nil, storageFailure("create order cost", err)
	}

	s.log.Info().
		Str("owner_id", ownerID.String()).
		Str("order_id", orderID).
		Int64("subtotal", stored.Subtotal).
		Msg("order cost record synced")

	return stored, nil
}

// UpdateCosts applies overrides while the order has not been charged.
func (s *OrderCostServiceImpl) UpdateCosts(ctx context.Context, ownerID uuid.UUID, orderID string, overrides *domain.CostOverrides, actorID *uuid.UUID) (*domain.OrderCostRecord, error) {
	if err := overrides.Validate(); err != nil {
		return nil, apperror.ErrInvariantViolation(err.Error())
	}
	if overrides.IsEmpty() {
		return nil, apperror.Validation("at least one cost field is required")
	}

	rec, err := s.Sync(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}
	if !rec.Lifecycle.IsSubmittable() {
		return nil, apperror.ErrAlreadySubmitted()
	}

	costs := overrides.Apply(rec.Costs)
	ok, err := s.repo.UpdateCosts(ctx, ownerID, orderID, costs)
	if err != nil {
		return nil, storageFailure("update order costs", err)
	}
	if !ok {
		return nil, apperror.ErrAlreadySubmitted()
	}
	rec.Costs = costs
	rec.UpdatedAt = s.now()

	logAudit(ctx, s.audit, auditEntry(domain.AuditActionUpdateCosts, domain.AuditResourceOrder, orderID,
		actorID, &ownerID, costs, rec.UpdatedAt))

	return rec, nil
}

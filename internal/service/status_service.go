package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StatusDeps holds the collaborators of StatusServiceImpl.
// Notifier, Audit and Metrics are optional.
type StatusDeps struct {
	Fulfillments    ports.FulfillmentRepository
	OrderRepo       ports.OrderCostRepository
	Transactor      ports.DBTransactor
	Notifier        ports.NotificationSink
	Audit           ports.AuditService
	Metrics         *metrics.Metrics
	Retries         int
	BulkConcurrency int
	BulkMaxItems    int
	Logger          zerolog.Logger
}

// StatusServiceImpl implements ports.StatusService.
type StatusServiceImpl struct {
	fulfillments    ports.FulfillmentRepository
	orderRepo       ports.OrderCostRepository
	transactor      ports.DBTransactor
	notifier        ports.NotificationSink
	audit           ports.AuditService
	metrics         *metrics.Metrics
	retries         int
	bulkConcurrency int
	bulkMaxItems    int
	log             zerolog.Logger
	now             func() time.Time
}

// NewStatusService creates a new StatusServiceImpl.
func NewStatusService(deps StatusDeps) *StatusServiceImpl {
	s := &StatusServiceImpl{
		fulfillments:    deps.Fulfillments,
		orderRepo:       deps.OrderRepo,
		transactor:      deps.Transactor,
		notifier:        deps.Notifier,
		audit:           deps.Audit,
		metrics:         deps.Metrics,
		retries:         deps.Retries,
		bulkConcurrency: deps.BulkConcurrency,
		bulkMaxItems:    deps.BulkMaxItems,
		log:             deps.Logger,
		now:             utcNow,
	}
	if s.retries < 1 {
		s.retries = 3
	}
	if s.bulkConcurrency < 1 {
		s.bulkConcurrency = 8
	}
	if s.bulkMaxItems < 1 {
		s.bulkMaxItems = 200
	}
	return s
}

// transitionOutcome is what one committed attempt produced.
type transitionOutcome struct {
	record    *domain.FulfillmentRecord
	previous  domain.FulfillmentStatus
	lifecycle domain.OrderLifecycle
}

// Transition moves a job to req.NewStatus. A conditional update that loses a
// race is re-read and re-validated, up to the configured number of attempts.
func (s *StatusServiceImpl) Transition(ctx context.Context, req ports.TransitionRequest) (*domain.FulfillmentRecord, error) {
	if !req.NewStatus.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown fulfillment status %q", req.NewStatus))
	}

	for attempt := 1; ; attempt++ {
		out, err := s.attempt(ctx, req)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == apperror.CodeInvalidTransition {
				s.metrics.ObserveTransition(string(req.NewStatus), false)
			}
			return nil, err
		}
		if out != nil {
			s.metrics.ObserveTransition(string(req.NewStatus), true)
			s.afterTransition(ctx, req, out)
			return out.record, nil
		}
		if attempt >= s.retries {
			return nil, apperror.ErrStorageFailure(fmt.Errorf("transition %s: status changed concurrently %d times", req.FulfillmentID, attempt))
		}
		s.metrics.IncRetry("transition")
		s.log.Debug().
			Str("fulfillment_id", req.FulfillmentID.String()).
			Int("attempt", attempt).
			Msg("status changed concurrently, re-validating")
	}
}

// attempt runs one read-validate-write cycle. A nil outcome with a nil error
// means the conditional update found a different status.
func (s *StatusServiceImpl) attempt(ctx context.Context, req ports.TransitionRequest) (*transitionOutcome, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, storageFailure("begin tx", err)
	}
	defer rollback(ctx, dbTx, s.log)

	rec, err := s.fulfillments.GetByIDForUpdate(ctx, dbTx, req.FulfillmentID)
	if err != nil {
		return nil, storageFailure("get fulfillment for update", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("fulfillment")
	}

	if !domain.CanTransition(rec.Status, req.NewStatus) {
		return nil, apperror.ErrInvalidTransition(
			string(rec.Status), string(req.NewStatus),
			domain.StatusStrings(domain.ValidTransitions(rec.Status)),
		)
	}

	entry := domain.StatusHistoryEntry{
		Status:  req.NewStatus,
		ActorID: req.ActorID,
		At:      s.now(),
		Note:    req.Note,
	}
	ok, err := s.fulfillments.UpdateStatus(ctx, dbTx, rec.ID, rec.Status, entry)
	if err != nil {
		return nil, storageFailure("update fulfillment status", err)
	}
	if !ok {
		return nil, nil
	}

	lifecycle := domain.MirrorOrderLifecycle(req.NewStatus)
	if err := s.orderRepo.MirrorLifecycle(ctx, dbTx, rec.OwnerID, rec.OrderID, lifecycle); err != nil {
		return nil, storageFailure("mirror order lifecycle", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storageFailure("commit tx", err)
	}

	previous := rec.Status
	rec.Status = req.NewStatus
	rec.StatusHistory = append(rec.StatusHistory, entry)
	rec.UpdatedAt = entry.At
	return &transitionOutcome{record: rec, previous: previous, lifecycle: lifecycle}, nil
}

func (s *StatusServiceImpl) afterTransition(ctx context.Context, req ports.TransitionRequest, out *transitionOutcome) {
	rec := out.record

	notify(ctx, s.notifier, domain.Notification{
		ID:             uuid.New(),
		Event:          domain.EventFulfillmentStatusChanged,
		OwnerID:        rec.OwnerID,
		OrderID:        rec.OrderID,
		FulfillmentID:  rec.ID,
		PreviousStatus: out.previous,
		Status:         rec.Status,
		OrderLifecycle: out.lifecycle,
		OccurredAt:     rec.UpdatedAt,
	})
	logAudit(ctx, s.audit, auditEntry(domain.AuditActionTransition, domain.AuditResourceFulfillment, rec.ID.String(),
		req.ActorID, &rec.OwnerID, map[string]any{
			"from": out.previous,
			"to":   rec.Status,
			"note": req.Note,
		}, rec.UpdatedAt))

	s.log.Info().
		Str("fulfillment_id", rec.ID.String()).
		Str("from", string(out.previous)).
		Str("to", string(rec.Status)).
		Msg("fulfillment status changed")
}

// BulkTransition applies the same transition to every id independently.
// Items are reported in input order; one failure never fails the batch.
func (s *StatusServiceImpl) BulkTransition(ctx context.Context, req ports.BulkTransitionRequest) (*ports.BulkTransitionResult, error) {
	if len(req.FulfillmentIDs) == 0 {
		return nil, apperror.Validation("at least one fulfillment id is required")
	}
	if len(req.FulfillmentIDs) > s.bulkMaxItems {
		return nil, apperror.Validation(fmt.Sprintf("at most %d fulfillment ids per request", s.bulkMaxItems))
	}
	if !req.NewStatus.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown fulfillment status %q", req.NewStatus))
	}

	items := make([]ports.BulkTransitionOutcome, len(req.FulfillmentIDs))

	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency)
	for i, id := range req.FulfillmentIDs {
		g.Go(func() error {
			rec, err := s.Transition(ctx, ports.TransitionRequest{
				FulfillmentID: id,
				NewStatus:     req.NewStatus,
				ActorID:       req.ActorID,
				Note:          req.Note,
			})
			items[i] = bulkOutcome(id, rec, err)
			return nil
		})
	}
	_ = g.Wait()

	result := &ports.BulkTransitionResult{Items: items}
	for _, item := range items {
		if item.OK {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	s.log.Info().
		Str("status", string(req.NewStatus)).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("bulk status transition finished")

	return result, nil
}

func bulkOutcome(id uuid.UUID, rec *domain.FulfillmentRecord, err error) ports.BulkTransitionOutcome {
	out := ports.BulkTransitionOutcome{FulfillmentID: id}
	if err == nil {
		status := rec.Status
		out.OK = true
		out.Status = &status
		return out
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		out.ErrorCode = appErr.Code
		out.Message = appErr.Message
		return out
	}
	out.ErrorCode = apperror.CodeInternal
	out.Message = "Internal server error"
	return out
}

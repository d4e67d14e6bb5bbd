package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const defaultIdempotencyTTL = 24 * time.Hour

// SubmissionDeps holds the collaborators of SubmissionServiceImpl.
// Cache, Notifier, Audit and Metrics are optional.
type SubmissionDeps struct {
	OrderCosts   ports.OrderCostService
	OrderRepo    ports.OrderCostRepository
	Wallets      ports.BalanceStore
	Ledger       ports.LedgerJournal
	Fulfillments ports.FulfillmentRepository
	Transactor   ports.DBTransactor
	Cache        ports.IdempotencyCache
	Notifier     ports.NotificationSink
	Audit        ports.AuditService
	Metrics      *metrics.Metrics
	CacheTTL     time.Duration
	Logger       zerolog.Logger
}

// SubmissionServiceImpl implements ports.SubmissionService.
type SubmissionServiceImpl struct {
	orderCosts   ports.OrderCostService
	orderRepo    ports.OrderCostRepository
	wallets      ports.BalanceStore
	ledger       ports.LedgerJournal
	fulfillments ports.FulfillmentRepository
	transactor   ports.DBTransactor
	cache        ports.IdempotencyCache
	notifier     ports.NotificationSink
	audit        ports.AuditService
	metrics      *metrics.Metrics
	cacheTTL     time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

// NewSubmissionService creates a new SubmissionServiceImpl.
func NewSubmissionService(deps SubmissionDeps) *SubmissionServiceImpl {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &SubmissionServiceImpl{
		orderCosts:   deps.OrderCosts,
		orderRepo:    deps.OrderRepo,
		wallets:      deps.Wallets,
		ledger:       deps.Ledger,
		fulfillments: deps.Fulfillments,
		transactor:   deps.Transactor,
		cache:        deps.Cache,
		notifier:     deps.Notifier,
		audit:        deps.Audit,
		metrics:      deps.Metrics,
		cacheTTL:     ttl,
		log:          deps.Logger,
		now:          utcNow,
	}
}

// Submit charges the owner's wallet for the order once and opens its fulfillment job.
// Repeated calls for the same order replay the original charge.
func (s *SubmissionServiceImpl) Submit(ctx context.Context, req ports.SubmitRequest) (*ports.SubmissionResult, error) {
	res, err := s.submit(ctx, req)
	switch {
	case err == nil && res.Replayed:
		s.metrics.ObserveSubmission(metrics.OutcomeReplayed, 0)
	case err == nil:
		s.metrics.ObserveSubmission(metrics.OutcomeCharged, res.AmountCharged)
	default:
		s.metrics.ObserveSubmission(submissionOutcome(err), 0)
	}
	return res, err
}

func (s *SubmissionServiceImpl) submit(ctx context.Context, req ports.SubmitRequest) (*ports.SubmissionResult, error) {
	if err := req.Costs.Validate(); err != nil {
		return nil, apperror.ErrInvariantViolation(err.Error())
	}

	ref := domain.BuildFulfillmentRef(req.OwnerID, req.OrderID)

	// Layer 1: Redis response cache
	if res := s.cachedResult(ctx, ref); res != nil {
		return res, nil
	}

	rec, err := s.orderCosts.Sync(ctx, req.OwnerID, req.OrderID)
	if err != nil {
		return nil, err
	}

	if !rec.Lifecycle.IsSubmittable() {
		res, err := s.replay(ctx, req.OwnerID, req.OrderID, ref)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, apperror.ErrAlreadySubmitted()
		}
		return res, nil
	}

	costs := req.Costs.Apply(rec.Costs)
	if err := costs.Validate(); err != nil {
		return nil, apperror.ErrInvariantViolation(err.Error())
	}
	required := costs.Total()
	if required <= 0 {
		return nil, apperror.ErrZeroAmount()
	}

	// Layer 2: existing fulfillment or journal entry
	res, err := s.replay(ctx, req.OwnerID, req.OrderID, ref)
	if err != nil || res != nil {
		return res, err
	}

	return s.charge(ctx, req, rec, costs, ref)
}

// charge runs the debit, journal write, job creation and cost record update as one transaction.
func (s *SubmissionServiceImpl) charge(ctx context.Context, req ports.SubmitRequest, rec *domain.OrderCostRecord, costs domain.Costs, ref string) (*ports.SubmissionResult, error) {
	required := costs.Total()
	fulfillmentID := uuid.New()
	entryID := uuid.New()
	now := s.now()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, storageFailure("begin tx", err)
	}
	defer rollback(ctx, dbTx, s.log)

	if err := s.wallets.EnsureWallet(ctx, dbTx, req.OwnerID); err != nil {
		return nil, storageFailure("ensure wallet", err)
	}

	change, err := s.wallets.Debit(ctx, dbTx, req.OwnerID, required)
	if err != nil {
		return nil, storageFailure("debit wallet", err)
	}
	if !change.Applied {
		return s.rejectInsufficient(ctx, dbTx, req, costs, change, ref)
	}

	entry := &domain.LedgerEntry{
		ID:             entryID,
		IdempotencyRef: ref,
		OwnerID:        req.OwnerID,
		OrderID:        req.OrderID,
		FulfillmentID:  &fulfillmentID,
		Amount:         required,
		Direction:      domain.LedgerDebit,
		BalanceBefore:  change.BalanceBefore,
		BalanceAfter:   change.BalanceAfter,
		Metadata: map[string]string{
			"order_number":  rec.OrderNumber,
			"product_cost":  strconv.FormatInt(costs.ProductCost, 10),
			"shipping_cost": strconv.FormatInt(costs.ShippingCost, 10),
			"service_fee":   strconv.FormatInt(costs.ServiceFee, 10),
		},
		CreatedAt: now,
	}
	if err := s.ledger.Record(ctx, dbTx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return s.replayAfterConflict(ctx, dbTx, req, ref)
		}
		return nil, storageFailure("record ledger entry", err)
	}

	job := domain.NewFulfillmentRecord(fulfillmentID, rec, required, entryID, req.ActorID, now)
	if err := s.fulfillments.Create(ctx, dbTx, job); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return s.replayAfterConflict(ctx, dbTx, req, ref)
		}
		return nil, storageFailure("create fulfillment", err)
	}

	ok, err := s.orderRepo.MarkSubmitted(ctx, dbTx, req.OwnerID, req.OrderID, domain.WalletCharge{
		Costs:         costs,
		Amount:        required,
		ChargedAt:     now,
		FulfillmentID: fulfillmentID,
	})
	if err != nil {
		return nil, storageFailure("mark order submitted", err)
	}
	if !ok {
		return s.replayAfterConflict(ctx, dbTx, req, ref)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storageFailure("commit tx", err)
	}

	res := &ports.SubmissionResult{
		FulfillmentID: fulfillmentID,
		OrderID:       req.OrderID,
		Status:        job.Status,
		AmountCharged: required,
		NewBalance:    change.BalanceAfter,
	}

	s.cacheResult(ctx, ref, res)
	notify(ctx, s.notifier, domain.Notification{
		ID:             uuid.New(),
		Event:          domain.EventFulfillmentCreated,
		OwnerID:        req.OwnerID,
		OrderID:        req.OrderID,
		FulfillmentID:  fulfillmentID,
		Status:         job.Status,
		OrderLifecycle: domain.LifecycleSubmitted,
		OccurredAt:     now,
	})
	logAudit(ctx, s.audit, auditEntry(domain.AuditActionSubmit, domain.AuditResourceFulfillment, fulfillmentID.String(),
		req.ActorID, &req.OwnerID, map[string]any{
			"order_id":      req.OrderID,
			"amount":        required,
			"balance_after": change.BalanceAfter,
		}, now))

	s.log.Info().
		Str("fulfillment_id", fulfillmentID.String()).
		Str("owner_id", req.OwnerID.String()).
		Str("order_id", req.OrderID).
		Int64("amount", required).
		Int64("balance_after", change.BalanceAfter).
		Msg("order submitted for fulfillment")

	return res, nil
}

// rejectInsufficient records the shortage on the order and commits it.
func (s *SubmissionServiceImpl) rejectInsufficient(ctx context.Context, dbTx pgx.Tx, req ports.SubmitRequest, costs domain.Costs, change *domain.BalanceChange, ref string) (*ports.SubmissionResult, error) {
	required := costs.Total()
	shortage := change.Shortage(required)

	ok, err := s.orderRepo.MarkAwaitingFunds(ctx, dbTx, req.OwnerID, req.OrderID, costs, shortage)
	if err != nil {
		return nil, storageFailure("mark order awaiting funds", err)
	}
	if !ok {
		// a concurrent submission charged the order first
		return s.replayAfterConflict(ctx, dbTx, req, ref)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, storageFailure("commit tx", err)
	}

	s.log.Info().
		Str("owner_id", req.OwnerID.String()).
		Str("order_id", req.OrderID).
		Int64("balance", change.BalanceBefore).
		Int64("required", required).
		Int64("shortage", shortage).
		Msg("submission rejected: insufficient funds")

	return nil, apperror.ErrInsufficientFunds(change.BalanceBefore, required)
}

// replayAfterConflict abandons dbTx after losing a race and reports the winner's result.
func (s *SubmissionServiceImpl) replayAfterConflict(ctx context.Context, dbTx pgx.Tx, req ports.SubmitRequest, ref string) (*ports.SubmissionResult, error) {
	rollback(ctx, dbTx, s.log)
	s.metrics.IncRetry("submit")

	res, err := s.replay(ctx, req.OwnerID, req.OrderID, ref)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperror.ErrAlreadySubmitted()
	}
	return res, nil
}

// replay rebuilds the result of an earlier charge. Returns nil, nil when the
// order was never charged.
func (s *SubmissionServiceImpl) replay(ctx context.Context, ownerID uuid.UUID, orderID, ref string) (*ports.SubmissionResult, error) {
	job, err := s.fulfillments.GetByOrderID(ctx, ownerID, orderID)
	if err != nil {
		return nil, storageFailure("get fulfillment by order", err)
	}
	entry, err := s.ledger.FindByRef(ctx, ref)
	if err != nil {
		return nil, storageFailure("find ledger entry", err)
	}

	switch {
	case job == nil && entry == nil:
		return nil, nil
	case job == nil:
		return nil, apperror.ErrInvariantViolation(fmt.Sprintf("ledger entry %s has no fulfillment record", entry.ID))
	}

	res := &ports.SubmissionResult{
		FulfillmentID: job.ID,
		OrderID:       orderID,
		Status:        job.Status,
		AmountCharged: job.OrderCost,
		Replayed:      true,
	}
	if entry != nil {
		res.AmountCharged = entry.Amount
		res.NewBalance = entry.BalanceAfter
	}

	s.cacheResult(ctx, ref, res)
	return res, nil
}

// cachedResult returns a cached replay with its status refreshed, or nil.
func (s *SubmissionServiceImpl) cachedResult(ctx context.Context, ref string) *ports.SubmissionResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, ref)
	if err != nil {
		s.log.Warn().Err(err).Str("ref", ref).Msg("redis idempotency check failed, falling through to DB")
		return nil
	}
	if raw == nil {
		return nil
	}

	var res ports.SubmissionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		s.log.Warn().Err(err).Str("ref", ref).Msg("discarding unreadable cached submission")
		return nil
	}
	if job, err := s.fulfillments.GetByID(ctx, res.FulfillmentID); err == nil && job != nil {
		res.Status = job.Status
	}
	res.Replayed = true
	return &res
}

func (s *SubmissionServiceImpl) cacheResult(ctx context.Context, ref string, res *ports.SubmissionResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, ref, raw, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("ref", ref).Msg("failed to cache submission in redis")
	}
}

// GetStatus reports the order's billing state, the ledger entries charged
// against it and, once submitted, its job status.
func (s *SubmissionServiceImpl) GetStatus(ctx context.Context, ownerID uuid.UUID, orderID string) (*ports.OrderFulfillmentStatus, error) {
	rec, err := s.orderRepo.Get(ctx, ownerID, orderID)
	if err != nil {
		return nil, storageFailure("get order cost", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("order")
	}

	out := &ports.OrderFulfillmentStatus{
		OrderID:       orderID,
		Lifecycle:     rec.Lifecycle,
		Costs:         rec.Costs,
		ChargeAmount:  rec.ChargeAmount,
		ChargedAt:     rec.ChargedAt,
		Shortage:      rec.Shortage,
		FulfillmentID: rec.FulfillmentID,
	}

	job, err := s.fulfillments.GetByOrderID(ctx, ownerID, orderID)
	if err != nil {
		return nil, storageFailure("get fulfillment by order", err)
	}
	if job != nil {
		status := job.Status
		out.FulfillmentID = &job.ID
		out.Status = &status
		out.StatusHistory = job.StatusHistory
	}

	entries, err := s.ledger.ListByOrder(ctx, ownerID, orderID)
	if err != nil {
		return nil, storageFailure("list ledger entries by order", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	out.LedgerEntries = entries
	return out, nil
}

func submissionOutcome(err error) string {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return metrics.OutcomeError
	}
	switch appErr.Code {
	case apperror.CodeInsufficientFunds:
		return metrics.OutcomeInsufficientFunds
	case apperror.CodeStorageFailure, apperror.CodeInternal, apperror.CodeUpstreamFailure:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}

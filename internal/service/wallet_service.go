package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	wallets    ports.BalanceStore
	ledger     ports.LedgerJournal
	transactor ports.DBTransactor
	audit      ports.AuditService
	log        zerolog.Logger
	now        func() time.Time
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	wallets ports.BalanceStore,
	ledger ports.LedgerJournal,
	transactor ports.DBTransactor,
	audit ports.AuditService,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		wallets:    wallets,
		ledger:     ledger,
		transactor: transactor,
		audit:      audit,
		log:        log,
		now:        utcNow,
	}
}

// GetBalance returns the owner's balance; 0 when no wallet exists yet.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	w, err := s.wallets.GetByOwner(ctx, ownerID)
	if err != nil {
		return 0, storageFailure("get wallet", err)
	}
	if w == nil {
		return 0, nil
	}
	return w.Balance, nil
}

// ListEntries returns a page of ledger entries, newest first.
func (s *WalletServiceImpl) ListEntries(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerEntry, int64, error) {
	entries, total, err := s.ledger.ListByWallet(ctx, params)
	if err != nil {
		return nil, 0, storageFailure("list ledger entries", err)
	}
	return entries, total, nil
}

// TopUp credits the wallet once per reference. Reusing a reference with the
// same amount returns the original entry; a different amount is a DuplicateEntry.
func (s *WalletServiceImpl) TopUp(ctx context.Context, req ports.TopUpRequest) (*domain.LedgerEntry, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	if req.Amount > domain.MaxAmount {
		return nil, apperror.Validation(fmt.Sprintf("amount must not exceed %d", domain.MaxAmount))
	}
	if req.Reference == "" {
		return nil, apperror.Validation("reference is required")
	}

	ref := domain.BuildTopUpRef(req.OwnerID, req.Reference)
	if existing, err := s.existingTopUp(ctx, ref, req.Amount); existing != nil || err != nil {
		return existing, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, storageFailure("begin tx", err)
	}
	defer rollback(ctx, dbTx, s.log)

	change, err := s.wallets.Credit(ctx, dbTx, req.OwnerID, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrBalanceOverflow) {
			return nil, apperror.ErrInvariantViolation("top-up would overflow the wallet balance")
		}
		return nil, storageFailure("credit wallet", err)
	}

	entry := &domain.LedgerEntry{
		ID:             uuid.New(),
		IdempotencyRef: ref,
		OwnerID:        req.OwnerID,
		Amount:         req.Amount,
		Direction:      domain.LedgerCredit,
		BalanceBefore:  change.BalanceBefore,
		BalanceAfter:   change.BalanceAfter,
		Metadata:       map[string]string{"reference": req.Reference},
		CreatedAt:      s.now(),
	}
	if err := s.ledger.Record(ctx, dbTx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			rollback(ctx, dbTx, s.log)
			existing, err := s.existingTopUp(ctx, ref, req.Amount)
			if err == nil && existing == nil {
				err = apperror.ErrDuplicateEntry()
			}
			return existing, err
		}
		return nil, storageFailure("record ledger entry", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, storageFailure("commit tx", err)
	}

	logAudit(ctx, s.audit, auditEntry(domain.AuditActionTopUp, domain.AuditResourceWallet, req.OwnerID.String(),
		req.ActorID, &req.OwnerID, map[string]any{
			"amount":        req.Amount,
			"reference":     req.Reference,
			"balance_after": change.BalanceAfter,
		}, entry.CreatedAt))

	s.log.Info().
		Str("owner_id", req.OwnerID.String()).
		Int64("amount", req.Amount).
		Int64("balance_after", change.BalanceAfter).
		Msg("wallet topped up")

	return entry, nil
}

func (s *WalletServiceImpl) existingTopUp(ctx context.Context, ref string, amount int64) (*domain.LedgerEntry, error) {
	existing, err := s.ledger.FindByRef(ctx, ref)
	if err != nil {
		return nil, storageFailure("find ledger entry", err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.Amount != amount {
		return nil, apperror.ErrDuplicateEntry()
	}
	return existing, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// storageFailure wraps a repository fault. AppErrors pass through untouched.
func storageFailure(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.ErrStorageFailure(fmt.Errorf("%s: %w", op, err))
}

// rollback is deferred after Begin; after Commit it is a no-op.
func rollback(ctx context.Context, tx pgx.Tx, log zerolog.Logger) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Warn().Err(err).Msg("rollback failed")
	}
}

// auditEntry builds an audit log entry with JSON details.
func auditEntry(action domain.AuditAction, resourceType, resourceID string, actorID, ownerID *uuid.UUID, details any, now time.Time) *domain.AuditLog {
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      actorID,
		OwnerID:      ownerID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    now,
	}
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = string(b)
		}
	}
	return entry
}

func logAudit(ctx context.Context, svc ports.AuditService, entry *domain.AuditLog) {
	if svc != nil {
		svc.Log(ctx, entry)
	}
}

func notify(ctx context.Context, sink ports.NotificationSink, n domain.Notification) {
	if sink != nil {
		sink.Notify(ctx, n)
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

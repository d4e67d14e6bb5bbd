package service

import (
	"context"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FulfillmentServiceImpl implements ports.FulfillmentService.
type FulfillmentServiceImpl struct {
	repo  ports.FulfillmentRepository
	audit ports.AuditService
	log   zerolog.Logger
}

// NewFulfillmentService creates a new FulfillmentServiceImpl.
func NewFulfillmentService(repo ports.FulfillmentRepository, audit ports.AuditService, log zerolog.Logger) *FulfillmentServiceImpl {
	return &FulfillmentServiceImpl{repo: repo, audit: audit, log: log}
}

func (s *FulfillmentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.FulfillmentRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageFailure("get fulfillment", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("fulfillment")
	}
	return rec, nil
}

func (s *FulfillmentServiceImpl) List(ctx context.Context, params ports.FulfillmentListParams) ([]domain.FulfillmentRecord, int64, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, 0, apperror.Validation("unknown fulfillment status")
	}
	records, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, storageFailure("list fulfillments", err)
	}
	return records, total, nil
}

func (s *FulfillmentServiceImpl) UpdateTracking(ctx context.Context, id uuid.UUID, u domain.TrackingUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error) {
	if u.IsEmpty() {
		return nil, apperror.Validation("at least one tracking field is required")
	}
	rec, err := s.repo.UpdateTracking(ctx, id, u)
	return s.patched(ctx, rec, err, domain.AuditActionTracking, actorID, u)
}

func (s *FulfillmentServiceImpl) UpdateAssignments(ctx context.Context, id uuid.UUID, u domain.AssignmentUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error) {
	if u.IsEmpty() {
		return nil, apperror.Validation("at least one assignment field is required")
	}
	rec, err := s.repo.UpdateAssignments(ctx, id, u)
	return s.patched(ctx, rec, err, domain.AuditActionAssign, actorID, u)
}

// UpdateFlags patches flags. An issue description is only accepted while the
// job has, or is being given, the has_issue flag.
func (s *FulfillmentServiceImpl) UpdateFlags(ctx context.Context, id uuid.UUID, u domain.FlagsUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error) {
	if u.IsEmpty() {
		return nil, apperror.Validation("at least one flag is required")
	}
	if u.IssueDescription != nil {
		if u.HasIssue != nil && !*u.HasIssue {
			return nil, apperror.Validation("issue_description requires has_issue")
		}
		if u.HasIssue == nil {
			current, err := s.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			if !current.Flags.HasIssue {
				return nil, apperror.Validation("issue_description requires has_issue")
			}
		}
	}
	rec, err := s.repo.UpdateFlags(ctx, id, u)
	return s.patched(ctx, rec, err, domain.AuditActionFlags, actorID, u)
}

func (s *FulfillmentServiceImpl) patched(ctx context.Context, rec *domain.FulfillmentRecord, err error, action domain.AuditAction, actorID *uuid.UUID, patch any) (*domain.FulfillmentRecord, error) {
	if err != nil {
		return nil, storageFailure("update fulfillment", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("fulfillment")
	}

	logAudit(ctx, s.audit, auditEntry(action, domain.AuditResourceFulfillment, rec.ID.String(),
		actorID, &rec.OwnerID, patch, rec.UpdatedAt))
	s.log.Info().
		Str("fulfillment_id", rec.ID.String()).
		Str("action", string(action)).
		Msg("fulfillment updated")
	return rec, nil
}

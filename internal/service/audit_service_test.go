package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionTransition {
				t.Errorf("expected TRANSITION_STATUS, got %s", log.Action)
			}
			close(done)
			return nil
		},
	)

	// a cancelled request context must not stop the write
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	actorID := uuid.New()
	svc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      &actorID,
		Action:       domain.AuditActionTransition,
		ResourceType: domain.AuditResourceFulfillment,
		ResourceID:   uuid.New().String(),
		CreatedAt:    time.Now(),
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_RepoFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.AuditLog) error {
			defer close(done)
			return errors.New("db down")
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{ID: uuid.New(), Action: domain.AuditActionTopUp})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit repo not called")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionTopUp,
		ResourceType: domain.AuditResourceWallet,
		CreatedAt:    time.Now(),
	})

	time.Sleep(50 * time.Millisecond)
}

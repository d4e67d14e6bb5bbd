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

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	actor := uuid.New()
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      &actor,
		Action:       domain.AuditActionTransition,
		ResourceType: domain.AuditResourceFulfillment,
		ResourceID:   uuid.NewString(),
		Details:      `{"from":"pending","to":"packed"}`,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, entry.ActorID, entry.OwnerID, entry.Action, entry.ResourceType,
			entry.ResourceID, entry.Details, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewAuditRepo(mock).Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

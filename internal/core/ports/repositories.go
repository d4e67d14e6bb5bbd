package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BalanceStore holds wallet balances. Debit is a single conditional write,
// callers never read-then-write a balance.
// Methods accepting pgx.Tx run inside the caller's transaction.
type BalanceStore interface {
	EnsureWallet(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) error
	// Debit subtracts amount only if the balance covers it. An uncovered debit
	// is not an error: it returns Applied=false with the current balance.
	Debit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error)
	Credit(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, amount int64) (*domain.BalanceChange, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error)
}

// LedgerJournal is the append-only record of balance changes.
type LedgerJournal interface {
	// Record fails with domain.ErrDuplicateEntry when the ref already exists.
	Record(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	FindByRef(ctx context.Context, ref string) (*domain.LedgerEntry, error)
	ListByOrder(ctx context.Context, ownerID uuid.UUID, orderID string) ([]domain.LedgerEntry, error)
	ListByWallet(ctx context.Context, params LedgerListParams) ([]domain.LedgerEntry, int64, error)
}

// LedgerListParams holds filter + pagination for listing wallet entries.
type LedgerListParams struct {
	OwnerID   uuid.UUID
	Direction *domain.LedgerDirection
	Page      int
	PageSize  int
}

// OrderCostRepository persists the per-order billing mirror.
// The Mark* methods apply only while the lifecycle is still submittable and
// report whether a row changed.
type OrderCostRepository interface {
	// Create inserts rec unless it exists; the stored record is returned either way.
	Create(ctx context.Context, rec *domain.OrderCostRecord) (*domain.OrderCostRecord, error)
	Get(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, error)
	UpdateCosts(ctx context.Context, ownerID uuid.UUID, orderID string, costs domain.Costs) (bool, error)
	MarkAwaitingFunds(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, costs domain.Costs, shortage int64) (bool, error)
	MarkSubmitted(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, charge domain.WalletCharge) (bool, error)
	MirrorLifecycle(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, orderID string, lifecycle domain.OrderLifecycle) error
}

// FulfillmentRepository persists fulfillment jobs, one per (owner, order).
type FulfillmentRepository interface {
	// Create fails with domain.ErrDuplicateEntry when the order already has a job.
	Create(ctx context.Context, tx pgx.Tx, rec *domain.FulfillmentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FulfillmentRecord, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FulfillmentRecord, error)
	GetByOrderID(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.FulfillmentRecord, error)
	// UpdateStatus applies entry only if the stored status still equals expected.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected domain.FulfillmentStatus, entry domain.StatusHistoryEntry) (bool, error)
	UpdateTracking(ctx context.Context, id uuid.UUID, u domain.TrackingUpdate) (*domain.FulfillmentRecord, error)
	UpdateAssignments(ctx context.Context, id uuid.UUID, u domain.AssignmentUpdate) (*domain.FulfillmentRecord, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, u domain.FlagsUpdate) (*domain.FulfillmentRecord, error)
	List(ctx context.Context, params FulfillmentListParams) ([]domain.FulfillmentRecord, int64, error)
}

// FulfillmentListParams holds filter + pagination for the operations dashboard.
type FulfillmentListParams struct {
	OwnerID  *uuid.UUID
	Status   *domain.FulfillmentStatus
	Priority *bool
	HasIssue *bool
	Page     int
	PageSize int
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

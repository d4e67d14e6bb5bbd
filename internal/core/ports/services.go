package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// Roles carried by access tokens.
const (
	RoleMerchant = "merchant"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject uuid.UUID, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject uuid.UUID
	Role    string
}

// SignatureService signs outbound notification payloads. Verify is what a
// receiver runs against the signature header.
type SignatureService interface {
	Sign(secret string, at time.Time, body []byte) string
	Verify(secret string, header string, body []byte, now time.Time, tolerance time.Duration) error
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// OrderSource fetches orders from the upstream storefront.
// A nil order with a nil error means the storefront does not know the order.
type OrderSource interface {
	FetchOrder(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.UpstreamOrder, error)
}

// NotificationSink receives fulfillment events. Delivery is best effort and
// must not block the caller.
type NotificationSink interface {
	Notify(ctx context.Context, n domain.Notification)
}

// AuditService records audit entries asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// SubmissionService charges a wallet once per order and opens the fulfillment job.
type SubmissionService interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmissionResult, error)
	GetStatus(ctx context.Context, ownerID uuid.UUID, orderID string) (*OrderFulfillmentStatus, error)
}

// SubmitRequest holds validated input for a submission.
type SubmitRequest struct {
	OwnerID uuid.UUID
	OrderID string
	Costs   *domain.CostOverrides
	ActorID *uuid.UUID
}

// SubmissionResult is returned for both first submissions and replays.
// Replays report the amounts of the original charge.
type SubmissionResult struct {
	FulfillmentID uuid.UUID                `json:"fulfillment_id"`
	OrderID       string                   `json:"order_id"`
	Status        domain.FulfillmentStatus `json:"status"`
	AmountCharged int64                    `json:"amount_charged"`
	NewBalance    int64                    `json:"new_balance"`
	Replayed      bool                     `json:"replayed"`
}

// OrderFulfillmentStatus is the merchant-facing view of an order's fulfillment.
type OrderFulfillmentStatus struct {
	OrderID       string                      `json:"order_id"`
	Lifecycle     domain.OrderLifecycle       `json:"lifecycle"`
	Costs         domain.Costs                `json:"costs"`
	ChargeAmount  int64                       `json:"wallet_charge_amount"`
	ChargedAt     *time.Time                  `json:"wallet_charged_at,omitempty"`
	Shortage      int64                       `json:"wallet_shortage"`
	FulfillmentID *uuid.UUID                  `json:"fulfillment_id,omitempty"`
	Status        *domain.FulfillmentStatus   `json:"status,omitempty"`
	StatusHistory []domain.StatusHistoryEntry `json:"status_history,omitempty"`
	LedgerEntries []domain.LedgerEntry        `json:"ledger_entries"`
}

// OrderCostService resolves and edits order cost records.
type OrderCostService interface {
	Sync(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.OrderCostRecord, error)
	UpdateCosts(ctx context.Context, ownerID uuid.UUID, orderID string, overrides *domain.CostOverrides, actorID *uuid.UUID) (*domain.OrderCostRecord, error)
}

// StatusService drives the fulfillment status state machine.
type StatusService interface {
	Transition(ctx context.Context, req TransitionRequest) (*domain.FulfillmentRecord, error)
	BulkTransition(ctx context.Context, req BulkTransitionRequest) (*BulkTransitionResult, error)
}

// TransitionRequest asks for one status change.
type TransitionRequest struct {
	FulfillmentID uuid.UUID
	NewStatus     domain.FulfillmentStatus
	ActorID       *uuid.UUID
	Note          string
}

// BulkTransitionRequest applies the same status to many jobs.
type BulkTransitionRequest struct {
	FulfillmentIDs []uuid.UUID
	NewStatus      domain.FulfillmentStatus
	ActorID        *uuid.UUID
	Note           string
}

// BulkTransitionResult reports each id in input order.
type BulkTransitionResult struct {
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
	Items     []BulkTransitionOutcome `json:"items"`
}

// BulkTransitionOutcome is the per-id result of a bulk transition.
type BulkTransitionOutcome struct {
	FulfillmentID uuid.UUID                 `json:"fulfillment_id"`
	OK            bool                      `json:"ok"`
	Status        *domain.FulfillmentStatus `json:"status,omitempty"`
	ErrorCode     string                    `json:"error_code,omitempty"`
	Message       string                    `json:"message,omitempty"`
}

// FulfillmentService covers the operational edits on a fulfillment job.
type FulfillmentService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.FulfillmentRecord, error)
	List(ctx context.Context, params FulfillmentListParams) ([]domain.FulfillmentRecord, int64, error)
	UpdateTracking(ctx context.Context, id uuid.UUID, u domain.TrackingUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error)
	UpdateAssignments(ctx context.Context, id uuid.UUID, u domain.AssignmentUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, u domain.FlagsUpdate, actorID *uuid.UUID) (*domain.FulfillmentRecord, error)
}

// WalletService exposes balances, ledger history and top-ups.
type WalletService interface {
	GetBalance(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context, params LedgerListParams) ([]domain.LedgerEntry, int64, error)
	TopUp(ctx context.Context, req TopUpRequest) (*domain.LedgerEntry, error)
}

// TopUpRequest credits a wallet. Reference makes the credit idempotent.
type TopUpRequest struct {
	OwnerID   uuid.UUID
	Amount    int64
	Reference string
	ActorID   *uuid.UUID
}

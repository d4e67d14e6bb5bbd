package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FulfillmentRepo implements ports.FulfillmentRepository.
type FulfillmentRepo struct {
	pool Pool
}

// NewFulfillmentRepo creates a new FulfillmentRepo.
func NewFulfillmentRepo(pool Pool) *FulfillmentRepo {
	return &FulfillmentRepo{pool: pool}
}

const fulfillmentColumns = `id, owner_id, order_id, status, status_history,
		picker_id, packer_id, quality_checker_id, courier_contact,
		carrier, tracking_number, tracking_url, estimated_delivery, return_address,
		is_priority, is_delayed, has_issue, issue_description,
		order_value, order_cost, profit, ledger_entry_id, created_at, updated_at`

// Create inserts a job. A second job for the same order yields domain.ErrDuplicateEntry.
func (r *FulfillmentRepo) Create(ctx context.Context, tx pgx.Tx, f *domain.FulfillmentRecord) error {
	history, err := json.Marshal(f.StatusHistory)
	if err != nil {
		return fmt.Errorf("marshal status history: %w", err)
	}
	addr, err := jsonOrNil(f.ReturnAddress)
	if err != nil {
		return fmt.Errorf("marshal return address: %w", err)
	}

	query := `INSERT INTO fulfillments (` + fulfillmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err = tx.Exec(ctx, query,
		f.ID, f.OwnerID, f.OrderID, f.Status, history,
		f.Assignments.PickerID, f.Assignments.PackerID, f.Assignments.QualityCheckerID, f.Assignments.CourierContact,
		f.Tracking.Carrier, f.Tracking.TrackingNumber, f.Tracking.TrackingURL, f.Tracking.EstimatedDelivery, addr,
		f.Flags.Priority, f.Flags.Delayed, f.Flags.HasIssue, f.Flags.IssueDescription,
		f.OrderValue, f.OrderCost, f.Profit, f.LedgerEntryID, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert fulfillment for order %s: %w", f.OrderID, domain.ErrDuplicateEntry)
		}
		return fmt.Errorf("insert fulfillment: %w", err)
	}
	return nil
}

// GetByID fetches a job without locking. Returns nil, nil when absent.
func (r *FulfillmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FulfillmentRecord, error) {
	query := `SELECT ` + fulfillmentColumns + ` FROM fulfillments WHERE id = $1`
	return oneFulfillment(r.pool.QueryRow(ctx, query, id), "get fulfillment by id")
}

// GetByIDForUpdate fetches a job and locks its row until tx ends.
func (r *FulfillmentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FulfillmentRecord, error) {
	query := `SELECT ` + fulfillmentColumns + ` FROM fulfillments WHERE id = $1 FOR UPDATE`
	return oneFulfillment(tx.QueryRow(ctx, query, id), "get fulfillment for update")
}

// GetByOrderID fetches the job for an order. Returns nil, nil when absent.
func (r *FulfillmentRepo) GetByOrderID(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.FulfillmentRecord, error) {
	query := `SELECT ` + fulfillmentColumns + ` FROM fulfillments WHERE owner_id = $1 AND order_id = $2`
	return oneFulfillment(r.pool.QueryRow(ctx, query, ownerID, orderID), "get fulfillment by order")
}

// UpdateStatus sets the status and appends entry, only if the row still holds expected.
func (r *FulfillmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected domain.FulfillmentStatus, entry domain.StatusHistoryEntry) (bool, error) {
	appended, err := json.Marshal([]domain.StatusHistoryEntry{entry})
	if err != nil {
		return false, fmt.Errorf("marshal status history entry: %w", err)
	}

	query := `UPDATE fulfillments SET status = $3, status_history = status_history || $4::jsonb, updated_at = $5
		WHERE id = $1 AND status = $2`

	tag, err := tx.Exec(ctx, query, id, expected, entry.Status, appended, entry.At)
	if err != nil {
		return false, fmt.Errorf("update fulfillment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateTracking patches tracking fields. Returns nil, nil when the job does not exist.
func (r *FulfillmentRepo) UpdateTracking(ctx context.Context, id uuid.UUID, u domain.TrackingUpdate) (*domain.FulfillmentRecord, error) {
	addr, err := jsonOrNil(u.ReturnAddress)
	if err != nil {
		return nil, fmt.Errorf("marshal return address: %w", err)
	}

	query := `UPDATE fulfillments SET
		carrier = COALESCE($2, carrier),
		tracking_number = COALESCE($3, tracking_number),
		tracking_url = COALESCE($4, tracking_url),
		estimated_delivery = COALESCE($5, estimated_delivery),
		return_address = COALESCE($6::jsonb, return_address),
		updated_at = NOW()
		WHERE id = $1
		RETURNING ` + fulfillmentColumns

	row := r.pool.QueryRow(ctx, query, id, u.Carrier, u.TrackingNumber, u.TrackingURL, u.EstimatedDelivery, addr)
	return oneFulfillment(row, "update fulfillment tracking")
}

// UpdateAssignments patches staff assignments. Returns nil, nil when the job does not exist.
func (r *FulfillmentRepo) UpdateAssignments(ctx context.Context, id uuid.UUID, u domain.AssignmentUpdate) (*domain.FulfillmentRecord, error) {
	query := `UPDATE fulfillments SET
		picker_id = COALESCE($2, picker_id),
		packer_id = COALESCE($3, packer_id),
		quality_checker_id = COALESCE($4, quality_checker_id),
		courier_contact = COALESCE($5, courier_contact),
		updated_at = NOW()
		WHERE id = $1
		RETURNING ` + fulfillmentColumns

	row := r.pool.QueryRow(ctx, query, id, u.PickerID, u.PackerID, u.QualityCheckerID, u.CourierContact)
	return oneFulfillment(row, "update fulfillment assignments")
}

// UpdateFlags patches flags. Clearing has_issue clears the description.
// Returns nil, nil when the job does not exist.
func (r *FulfillmentRepo) UpdateFlags(ctx context.Context, id uuid.UUID, u domain.FlagsUpdate) (*domain.FulfillmentRecord, error) {
	query := `UPDATE fulfillments SET
		is_priority = COALESCE($2, is_priority),
		is_delayed = COALESCE($3, is_delayed),
		has_issue = COALESCE($4, has_issue),
		issue_description = CASE WHEN COALESCE($4, has_issue) THEN COALESCE($5, issue_description) ELSE NULL END,
		updated_at = NOW()
		WHERE id = $1
		RETURNING ` + fulfillmentColumns

	row := r.pool.QueryRow(ctx, query, id, u.Priority, u.Delayed, u.HasIssue, u.IssueDescription)
	return oneFulfillment(row, "update fulfillment flags")
}

// List returns a page of jobs, newest first.
func (r *FulfillmentRepo) List(ctx context.Context, params ports.FulfillmentListParams) ([]domain.FulfillmentRecord, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *params.OwnerID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("is_priority = $%d", argIdx))
		args = append(args, *params.Priority)
		argIdx++
	}
	if params.HasIssue != nil {
		conditions = append(conditions, fmt.Sprintf("has_issue = $%d", argIdx))
		args = append(args, *params.HasIssue)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM fulfillments "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fulfillments: %w", err)
	}

	limit, offset := pageBounds(params.Page, params.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM fulfillments %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		fulfillmentColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fulfillments: %w", err)
	}
	defer rows.Close()

	records := []domain.FulfillmentRecord{}
	for rows.Next() {
		f, err := scanFulfillment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan fulfillment row: %w", err)
		}
		records = append(records, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate fulfillment rows: %w", err)
	}
	return records, total, nil
}

func oneFulfillment(row pgx.Row, op string) (*domain.FulfillmentRecord, error) {
	f, err := scanFulfillment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func scanFulfillment(row pgx.Row) (*domain.FulfillmentRecord, error) {
	f := &domain.FulfillmentRecord{}
	var history, addr []byte
	var eta *time.Time
	err := row.Scan(
		&f.ID, &f.OwnerID, &f.OrderID, &f.Status, &history,
		&f.Assignments.PickerID, &f.Assignments.PackerID, &f.Assignments.QualityCheckerID, &f.Assignments.CourierContact,
		&f.Tracking.Carrier, &f.Tracking.TrackingNumber, &f.Tracking.TrackingURL, &eta, &addr,
		&f.Flags.Priority, &f.Flags.Delayed, &f.Flags.HasIssue, &f.Flags.IssueDescription,
		&f.OrderValue, &f.OrderCost, &f.Profit, &f.LedgerEntryID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Tracking.EstimatedDelivery = eta
	if len(history) > 0 {
		if err := json.Unmarshal(history, &f.StatusHistory); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}
	if len(addr) > 0 {
		f.ReturnAddress = &domain.Address{}
		if err := json.Unmarshal(addr, f.ReturnAddress); err != nil {
			return nil, fmt.Errorf("decode return address: %w", err)
		}
	}
	return f, nil
}

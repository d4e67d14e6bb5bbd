package memory

import (
	"context"
	"fmt"
	"slices"

	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FulfillmentRepo implements ports.FulfillmentRepository.
type FulfillmentRepo struct {
	s *Store
}

// Fulfillments returns the store's FulfillmentRepository.
func (s *Store) Fulfillments() *FulfillmentRepo {
	return &FulfillmentRepo{s: s}
}

func (r *FulfillmentRepo) Create(ctx context.Context, tx pgx.Tx, f *domain.FulfillmentRecord) error {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return err
	}
	key := orderKey{f.OwnerID, f.OrderID}
	if _, exists := r.s.byOrder[key]; exists {
		return fmt.Errorf("insert fulfillment for order %s: %w", f.OrderID, domain.ErrDuplicateEntry)
	}
	if _, exists := r.s.fulfillments[f.ID]; exists {
		return fmt.Errorf("insert fulfillment %s: %w", f.ID, domain.ErrDuplicateEntry)
	}

	r.s.fulfillments[f.ID] = cloneFulfillment(f)
	r.s.byOrder[key] = f.ID
	mt.onRollback(func() {
		delete(r.s.fulfillments, f.ID)
		delete(r.s.byOrder, key)
	})
	return nil
}

func (r *FulfillmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FulfillmentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.lookup(id), nil
}

// GetByIDForUpdate reads inside tx. The store lock already excludes other writers.
func (r *FulfillmentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.FulfillmentRecord, error) {
	if _, err := r.s.txFrom(tx); err != nil {
		return nil, err
	}
	return r.lookup(id), nil
}

func (r *FulfillmentRepo) GetByOrderID(ctx context.Context, ownerID uuid.UUID, orderID string) (*domain.FulfillmentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.byOrder[orderKey{ownerID, orderID}]
	if !ok {
		return nil, nil
	}
	return r.lookup(id), nil
}

func (r *FulfillmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected domain.FulfillmentStatus, entry domain.StatusHistoryEntry) (bool, error) {
	mt, err := r.s.txFrom(tx)
	if err != nil {
		return false, err
	}
	f, ok := r.s.fulfillments[id]
	if !ok || f.Status != expected {
		return false, nil
	}

	prev := cloneFulfillment(f)
	mt.onRollback(func() { r.s.fulfillments[id] = prev })

	f.Status = entry.Status
	f.StatusHistory = append(slices.Clone(f.StatusHistory), entry)
	f.UpdatedAt = entry.At
	return true, nil
}

func (r *FulfillmentRepo) UpdateTracking(ctx context.Context, id uuid.UUID, u domain.TrackingUpdate) (*domain.FulfillmentRecord, error) {
	return r.patch(id, u.Apply)
}

func (r *FulfillmentRepo) UpdateAssignments(ctx context.Context, id uuid.UUID, u domain.AssignmentUpdate) (*domain.FulfillmentRecord, error) {
	return r.patch(id, u.Apply)
}

func (r *FulfillmentRepo) UpdateFlags(ctx context.Context, id uuid.UUID, u domain.FlagsUpdate) (*domain.FulfillmentRecord, error) {
	return r.patch(id, u.Apply)
}

func (r *FulfillmentRepo) patch(id uuid.UUID, apply func(*domain.FulfillmentRecord)) (*domain.FulfillmentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.fulfillments[id]
	if !ok {
		return nil, nil
	}
	apply(f)
	f.UpdatedAt = r.s.now()
	return cloneFulfillment(f), nil
}

// List returns a page of jobs, newest first.
func (r *FulfillmentRepo) List(ctx context.Context, params ports.FulfillmentListParams) ([]domain.FulfillmentRecord, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.FulfillmentRecord
	for _, f := range r.s.fulfillments {
		if params.OwnerID != nil && f.OwnerID != *params.OwnerID {
			continue
		}
		if params.Status != nil && f.Status != *params.Status {
			continue
		}
		if params.Priority != nil && f.Flags.Priority != *params.Priority {
			continue
		}
		if params.HasIssue != nil && f.Flags.HasIssue != *params.HasIssue {
			continue
		}
		matched = append(matched, *cloneFulfillment(f))
	}
	slices.SortFunc(matched, func(a, b domain.FulfillmentRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})

	start, end := pageBounds(params.Page, params.PageSize, len(matched))
	page := slices.Clone(matched[start:end])
	if page == nil {
		page = []domain.FulfillmentRecord{}
	}
	return page, int64(len(matched)), nil
}

func (r *FulfillmentRepo) lookup(id uuid.UUID) *domain.FulfillmentRecord {
	f, ok := r.s.fulfillments[id]
	if !ok {
		return nil
	}
	return cloneFulfillment(f)
}

func cloneFulfillment(f *domain.FulfillmentRecord) *domain.FulfillmentRecord {
	cp := *f
	cp.StatusHistory = slices.Clone(f.StatusHistory)
	return &cp
}

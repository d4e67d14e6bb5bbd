package memory

import (
	"context"

	"fulfillment-ledger/internal/core/domain"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	s *Store
}

// Audit returns the store's AuditRepository.
func (s *Store) Audit() *AuditRepo {
	return &AuditRepo{s: s}
}

func (r *AuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *entry
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

// Entries returns a copy of every audit entry, oldest first.
func (r *AuditRepo) Entries() []domain.AuditLog {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.AuditLog, 0, len(r.s.audit))
	for _, e := range r.s.audit {
		out = append(out, *e)
	}
	return out
}

package numbers

import (
	"context"
	"strings"

	"leadflow_backend/platform/phone"

	"github.com/google/uuid"
)

// PoolStore is the data access needed by the service.
type PoolStore interface {
	GetByNumber(ctx context.Context, number string) (PoolNumber, error)
	Insert(ctx context.Context, number string) (PoolNumber, error)
	Assign(ctx context.Context, number string, agentID uuid.UUID) error
	List(ctx context.Context) ([]PoolNumber, error)
}

// Service resolves destination numbers to tenants and manages the pool.
type Service struct {
	store PoolStore
}

// NewService creates a new numbers service.
func NewService(store PoolStore) *Service {
	return &Service{store: store}
}

// ResolveTenant maps a destination phone number to the owning agent.
// Returns ErrNumberNotFound when the number is not pooled and
// ErrNumberUnassigned when no agent owns it.
func (s *Service) ResolveTenant(ctx context.Context, number string) (uuid.UUID, error) {
	n, err := s.store.GetByNumber(ctx, phone.NormalizeE164(number))
	if err != nil {
		return uuid.UUID{}, err
	}
	if n.AgentID == nil {
		return uuid.UUID{}, ErrNumberUnassigned
	}
	return *n.AgentID, nil
}

// AddResult reports the outcome of a bulk pool insert.
type AddResult struct {
	Added    []string
	Rejected []string
}

// AddNumbers normalizes and inserts the given numbers into the pool. Inputs
// that do not normalize to a plausible E.164 number are rejected; duplicates
// of pooled numbers are rejected without failing the batch.
func (s *Service) AddNumbers(ctx context.Context, inputs []string) (AddResult, error) {
	var result AddResult
	for _, raw := range inputs {
		normalized := phone.NormalizeE164(raw)
		if !strings.HasPrefix(normalized, "+") || len(normalized) < 10 {
			result.Rejected = append(result.Rejected, raw)
			continue
		}
		if _, err := s.store.Insert(ctx, normalized); err != nil {
			result.Rejected = append(result.Rejected, raw)
			continue
		}
		result.Added = append(result.Added, normalized)
	}
	return result, nil
}

// AssignNumber gives a pooled number to an agent.
func (s *Service) AssignNumber(ctx context.Context, number string, agentID uuid.UUID) error {
	return s.store.Assign(ctx, phone.NormalizeE164(number), agentID)
}

// ListPool returns all pool entries.
func (s *Service) ListPool(ctx context.Context) ([]PoolNumber, error) {
	return s.store.List(ctx)
}

package numbers

import (
	"context"
	"errors"
	"testing"

	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakePoolStore struct {
	numbers map[string]PoolNumber
}

func newFakePoolStore() *fakePoolStore {
	return &fakePoolStore{numbers: make(map[string]PoolNumber)}
}

func (s *fakePoolStore) GetByNumber(_ context.Context, number string) (PoolNumber, error) {
	n, ok := s.numbers[number]
	if !ok {
		return PoolNumber{}, ErrNumberNotFound
	}
	return n, nil
}

func (s *fakePoolStore) Insert(_ context.Context, number string) (PoolNumber, error) {
	if _, ok := s.numbers[number]; ok {
		return PoolNumber{}, apperr.Conflict("number already pooled")
	}
	n := PoolNumber{ID: uuid.New(), Number: number}
	s.numbers[number] = n
	return n, nil
}

func (s *fakePoolStore) Assign(_ context.Context, number string, agentID uuid.UUID) error {
	n, ok := s.numbers[number]
	if !ok {
		return ErrNumberNotFound
	}
	n.AgentID = &agentID
	s.numbers[number] = n
	return nil
}

func (s *fakePoolStore) List(_ context.Context) ([]PoolNumber, error) {
	var out []PoolNumber
	for _, n := range s.numbers {
		out = append(out, n)
	}
	return out, nil
}

func TestResolveTenant(t *testing.T) {
	store := newFakePoolStore()
	service := NewService(store)
	ctx := context.Background()

	agentID := uuid.New()
	store.numbers["+16502530001"] = PoolNumber{Number: "+16502530001", AgentID: &agentID}

	got, err := service.ResolveTenant(ctx, "+16502530001")
	if err != nil {
		t.Fatalf("ResolveTenant returned error: %v", err)
	}
	if got != agentID {
		t.Fatalf("tenant = %s, want %s", got, agentID)
	}
}

func TestResolveTenantNormalizesInput(t *testing.T) {
	store := newFakePoolStore()
	service := NewService(store)

	agentID := uuid.New()
	store.numbers["+16502530001"] = PoolNumber{Number: "+16502530001", AgentID: &agentID}

	got, err := service.ResolveTenant(context.Background(), "(650) 253-0001")
	if err != nil {
		t.Fatalf("ResolveTenant returned error: %v", err)
	}
	if got != agentID {
		t.Fatalf("tenant = %s, want %s", got, agentID)
	}
}

func TestResolveTenantUnknownNumber(t *testing.T) {
	service := NewService(newFakePoolStore())

	if _, err := service.ResolveTenant(context.Background(), "+16500000000"); !errors.Is(err, ErrNumberNotFound) {
		t.Fatalf("expected ErrNumberNotFound, got %v", err)
	}
}

func TestResolveTenantUnassignedNumber(t *testing.T) {
	store := newFakePoolStore()
	store.numbers["+16502530001"] = PoolNumber{Number: "+16502530001"}
	service := NewService(store)

	if _, err := service.ResolveTenant(context.Background(), "+16502530001"); !errors.Is(err, ErrNumberUnassigned) {
		t.Fatalf("expected ErrNumberUnassigned, got %v", err)
	}
}

func TestAddNumbers(t *testing.T) {
	store := newFakePoolStore()
	service := NewService(store)

	result, err := service.AddNumbers(context.Background(), []string{
		"+16502530000",
		"650-253-0001",
		"garbage",
		"+16502530000", // duplicate of the first
	})
	if err != nil {
		t.Fatalf("AddNumbers returned error: %v", err)
	}

	if len(result.Added) != 2 {
		t.Fatalf("added = %v", result.Added)
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("rejected = %v", result.Rejected)
	}
	if _, ok := store.numbers["+16502530001"]; !ok {
		t.Fatal("expected normalized number in pool")
	}
}

func TestAssignNumberNotFound(t *testing.T) {
	service := NewService(newFakePoolStore())

	err := service.AssignNumber(context.Background(), "+16500000000", uuid.New())
	if !errors.Is(err, ErrNumberNotFound) {
		t.Fatalf("expected ErrNumberNotFound, got %v", err)
	}
}

// Package numbers provides the phone-number pool bounded context.
// It resolves inbound destination numbers to the owning agent (tenant) and
// exposes admin management of the pool.
package numbers

import (
	"context"
	"errors"
	"time"

	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNumberNotFound means the destination number is not in the pool.
var ErrNumberNotFound = errors.New("phone number not found")

// ErrNumberUnassigned means the number exists but no agent owns it.
var ErrNumberUnassigned = errors.New("phone number not assigned to an agent")

const uniqueViolation = "23505"

// PoolNumber is one entry of the tenant phone-number pool.
type PoolNumber struct {
	ID         uuid.UUID
	Number     string
	AgentID    *uuid.UUID
	AssignedAt *time.Time
	CreatedAt  time.Time
}

// Repository provides data access for the phone-number pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new numbers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByNumber returns the pool entry for an E.164 number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (PoolNumber, error) {
	var n PoolNumber
	err := r.pool.QueryRow(ctx, `
		SELECT id, number, agent_id, assigned_at, created_at
		FROM phone_numbers
		WHERE number = $1
	`, number).Scan(&n.ID, &n.Number, &n.AgentID, &n.AssignedAt, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PoolNumber{}, ErrNumberNotFound
	}
	if err != nil {
		return PoolNumber{}, apperr.Wrap(apperr.KindInternal, "fetch number", err).WithOp("numbers.GetByNumber")
	}
	return n, nil
}

// Insert adds a number to the pool. Duplicates are reported via
// apperr.KindConflict.
func (r *Repository) Insert(ctx context.Context, number string) (PoolNumber, error) {
	var n PoolNumber
	err := r.pool.QueryRow(ctx, `
		INSERT INTO phone_numbers (number)
		VALUES ($1)
		RETURNING id, number, agent_id, assigned_at, created_at
	`, number).Scan(&n.ID, &n.Number, &n.AgentID, &n.AssignedAt, &n.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return PoolNumber{}, apperr.Conflict("number already in pool").WithOp("numbers.Insert")
		}
		return PoolNumber{}, apperr.Wrap(apperr.KindInternal, "insert number", err).WithOp("numbers.Insert")
	}
	return n, nil
}

// Assign gives a pool number to an agent.
func (r *Repository) Assign(ctx context.Context, number string, agentID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE phone_numbers
		SET agent_id = $2, assigned_at = now()
		WHERE number = $1
	`, number, agentID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "assign number", err).WithOp("numbers.Assign")
	}
	if tag.RowsAffected() == 0 {
		return ErrNumberNotFound
	}
	return nil
}

// List returns the whole pool, newest first.
func (r *Repository) List(ctx context.Context) ([]PoolNumber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, number, agent_id, assigned_at, created_at
		FROM phone_numbers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list numbers", err).WithOp("numbers.List")
	}
	defer rows.Close()

	var out []PoolNumber
	for rows.Next() {
		var n PoolNumber
		if err := rows.Scan(&n.ID, &n.Number, &n.AgentID, &n.AssignedAt, &n.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan number", err).WithOp("numbers.List")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

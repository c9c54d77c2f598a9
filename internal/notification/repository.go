// Package notification emails agents when one of their leads books an
// appointment.
package notification

import (
	"context"
	"errors"

	"leadflow_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AgentContact is the notification target for a tenant.
type AgentContact struct {
	Name  string
	Email string
}

// Repository looks up agent contact details.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new notification repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetAgentContact returns the agent's name and email.
func (r *Repository) GetAgentContact(ctx context.Context, agentID uuid.UUID) (AgentContact, error) {
	var contact AgentContact
	err := r.pool.QueryRow(ctx, `
		SELECT name, email
		FROM agents
		WHERE id = $1
	`, agentID).Scan(&contact.Name, &contact.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return AgentContact{}, apperr.NotFound("agent not found").WithOp("notification.GetAgentContact")
	}
	if err != nil {
		return AgentContact{}, apperr.Wrap(apperr.KindInternal, "fetch agent", err).WithOp("notification.GetAgentContact")
	}
	return contact, nil
}

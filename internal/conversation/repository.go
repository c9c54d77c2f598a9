// Package conversation provides the lead and message store. All operations
// are scoped by (tenant, phone number); messages are append-only and ordered
// by creation time.
package conversation

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

const uniqueViolation = "23505"

// Status is the lead lifecycle state.
type Status string

const (
	StatusNew       Status = "new"
	StatusEngaged   Status = "engaged"
	StatusQualified Status = "qualified"
	StatusAppointed Status = "appointed"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleLead Role = "lead"
	RoleAI   Role = "ai"
)

// Lead is a prospective customer tracked per tenant by phone number.
type Lead struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PhoneNumber string
	Name        *string
	Status      Status
	Budget      *string
	Timeline    *string
	Area        *string
	CreatedAt   time.Time
}

// Message is one entry of a lead's conversation history.
type Message struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	LeadPhone string
	Role      Role
	Text      string
	CreatedAt time.Time
}

// LeadPatch is a partial lead update; nil fields are left unchanged.
type LeadPatch struct {
	Status   *Status
	Budget   *string
	Timeline *string
	Area     *string
}

// Repository provides data access for leads and conversation messages.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new conversation repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, agent_id, phone_number, name, status, budget, timeline, area, created_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(&l.ID, &l.TenantID, &l.PhoneNumber, &l.Name, &l.Status,
		&l.Budget, &l.Timeline, &l.Area, &l.CreatedAt)
	return l, err
}

// GetOrCreateLead returns the lead for (tenant, phone), creating it with
// status new on first contact. A concurrent first-contact race is absorbed by
// treating the unique-constraint violation as "fetch existing". The second
// return value reports whether a new lead was created.
func (r *Repository) GetOrCreateLead(ctx context.Context, tenantID uuid.UUID, phone string) (Lead, bool, error) {
	lead, err := r.getLead(ctx, tenantID, phone)
	if err == nil {
		return lead, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, false, apperr.Wrap(apperr.KindInternal, "fetch lead", err).WithOp("conversation.GetOrCreateLead")
	}

	lead, err = scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (agent_id, phone_number, status)
		VALUES ($1, $2, 'new')
		RETURNING `+leadColumns,
		tenantID, phone))
	if err == nil {
		return lead, true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		lead, err = r.getLead(ctx, tenantID, phone)
		if err == nil {
			return lead, false, nil
		}
	}
	return Lead{}, false, apperr.Wrap(apperr.KindInternal, "create lead", err).WithOp("conversation.GetOrCreateLead")
}

func (r *Repository) getLead(ctx context.Context, tenantID uuid.UUID, phone string) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE agent_id = $1 AND phone_number = $2
	`, tenantID, phone))
}

// AppendMessage inserts a message at the end of the conversation.
func (r *Repository) AppendMessage(ctx context.Context, tenantID uuid.UUID, phone string, role Role, text string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO conversations (agent_id, lead_phone, role, message)
		VALUES ($1, $2, $3, $4)
	`, tenantID, phone, role, text)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "append message", err).WithOp("conversation.AppendMessage")
	}
	return nil
}

// History returns the conversation for (tenant, phone), oldest first.
func (r *Repository) History(ctx context.Context, tenantID uuid.UUID, phone string) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, agent_id, lead_phone, role, message, created_at
		FROM conversations
		WHERE agent_id = $1 AND lead_phone = $2
		ORDER BY created_at ASC, id ASC
	`, tenantID, phone)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "fetch history", err).WithOp("conversation.History")
	}
	defer rows.Close()

	var history []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TenantID, &m.LeadPhone, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan message", err).WithOp("conversation.History")
		}
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "fetch history", err).WithOp("conversation.History")
	}
	return history, nil
}

// UpdateLead applies a partial update; only non-nil patch fields change.
func (r *Repository) UpdateLead(ctx context.Context, tenantID uuid.UUID, phone string, patch LeadPatch) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET status   = COALESCE($3, status),
		    budget   = COALESCE($4, budget),
		    timeline = COALESCE($5, timeline),
		    area     = COALESCE($6, area)
		WHERE agent_id = $1 AND phone_number = $2
	`, tenantID, phone, patch.Status, patch.Budget, patch.Timeline, patch.Area)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "update lead", err).WithOp("conversation.UpdateLead")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lead not found").WithOp("conversation.UpdateLead")
	}
	return nil
}

// ListLeads returns all leads, newest first.
func (r *Repository) ListLeads(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list leads", err).WithOp("conversation.ListLeads")
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan lead", err).WithOp("conversation.ListLeads")
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// ListMessages returns every conversation message, oldest first, for the
// dashboard conversation feed.
func (r *Repository) ListMessages(ctx context.Context) ([]Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, agent_id, lead_phone, role, message, created_at
		FROM conversations
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list messages", err).WithOp("conversation.ListMessages")
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TenantID, &m.LeadPhone, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "scan message", err).WithOp("conversation.ListMessages")
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

package conversation

import (
	"time"

	"leadflow_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339

// Handler serves the dashboard read API for leads and conversations.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new conversation handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// LeadResponse is the wire shape of a lead.
type LeadResponse struct {
	ID          uuid.UUID `json:"id"`
	AgentID     uuid.UUID `json:"agentId"`
	PhoneNumber string    `json:"phoneNumber"`
	Name        *string   `json:"name"`
	Status      string    `json:"status"`
	Budget      *string   `json:"budget"`
	Timeline    *string   `json:"timeline"`
	Area        *string   `json:"area"`
	CreatedAt   string    `json:"createdAt"`
}

// MessageResponse is the wire shape of a conversation message.
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	AgentID   uuid.UUID `json:"agentId"`
	LeadPhone string    `json:"leadPhone"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
}

// HandleListLeads lists all leads, newest first.
// GET /api/v1/admin/leads
func (h *Handler) HandleListLeads(c *gin.Context) {
	leads, err := h.repo.ListLeads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]LeadResponse, len(leads))
	for i, l := range leads {
		result[i] = LeadResponse{
			ID:          l.ID,
			AgentID:     l.TenantID,
			PhoneNumber: l.PhoneNumber,
			Name:        l.Name,
			Status:      string(l.Status),
			Budget:      l.Budget,
			Timeline:    l.Timeline,
			Area:        l.Area,
			CreatedAt:   l.CreatedAt.UTC().Format(timeFormat),
		}
	}

	httpkit.OK(c, result)
}

// HandleListConversations lists every message, oldest first.
// GET /api/v1/admin/conversations
func (h *Handler) HandleListConversations(c *gin.Context) {
	messages, err := h.repo.ListMessages(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]MessageResponse, len(messages))
	for i, m := range messages {
		result[i] = MessageResponse{
			ID:        m.ID,
			AgentID:   m.TenantID,
			LeadPhone: m.LeadPhone,
			Role:      string(m.Role),
			Message:   m.Text,
			CreatedAt: m.CreatedAt.UTC().Format(timeFormat),
		}
	}

	httpkit.OK(c, result)
}

package numbers

import (
	"net/http"
	"time"

	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339

// Handler handles admin phone-number pool requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new numbers handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// AddNumbersRequest is the request body for bulk pool inserts.
type AddNumbersRequest struct {
	Numbers []string `json:"numbers" validate:"required,min=1,max=100,dive,min=5,max=20"`
}

// AddNumbersResponse reports the outcome of a bulk insert.
type AddNumbersResponse struct {
	Added    int      `json:"added"`
	Numbers  []string `json:"numbers"`
	Rejected []string `json:"rejected,omitempty"`
}

// HandleAddNumbers inserts numbers into the pool.
// POST /api/v1/admin/numbers
func (h *Handler) HandleAddNumbers(c *gin.Context) {
	var req AddNumbersRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.service.AddNumbers(c.Request.Context(), req.Numbers)
	if httpkit.HandleError(c, err) {
		return
	}
	if len(result.Added) == 0 {
		httpkit.Error(c, http.StatusBadRequest, "no valid phone numbers provided", result.Rejected)
		return
	}

	c.JSON(http.StatusCreated, AddNumbersResponse{
		Added:    len(result.Added),
		Numbers:  result.Added,
		Rejected: result.Rejected,
	})
}

// AssignNumberRequest is the request body for assigning a pool number.
type AssignNumberRequest struct {
	AgentID string `json:"agentId" validate:"required,uuid4"`
}

// HandleAssignNumber assigns a pooled number to an agent.
// PUT /api/v1/admin/numbers/:number/assign
func (h *Handler) HandleAssignNumber(c *gin.Context) {
	var req AssignNumberRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid agent ID", nil)
		return
	}

	if err := h.service.AssignNumber(c.Request.Context(), c.Param("number"), agentID); err != nil {
		if err == ErrNumberNotFound {
			httpkit.Error(c, http.StatusNotFound, "number not in pool", nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PoolNumberResponse is the wire shape of a pool entry.
type PoolNumberResponse struct {
	ID         uuid.UUID  `json:"id"`
	Number     string     `json:"number"`
	AgentID    *uuid.UUID `json:"agentId"`
	AssignedAt *string    `json:"assignedAt"`
	CreatedAt  string     `json:"createdAt"`
}

// HandleListNumbers lists the pool with assignment state.
// GET /api/v1/admin/numbers
func (h *Handler) HandleListNumbers(c *gin.Context) {
	pool, err := h.service.ListPool(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	result := make([]PoolNumberResponse, len(pool))
	for i, n := range pool {
		entry := PoolNumberResponse{
			ID:        n.ID,
			Number:    n.Number,
			AgentID:   n.AgentID,
			CreatedAt: n.CreatedAt.UTC().Format(timeFormat),
		}
		if n.AssignedAt != nil {
			formatted := n.AssignedAt.UTC().Format(timeFormat)
			entry.AssignedAt = &formatted
		}
		result[i] = entry
	}

	httpkit.OK(c, result)
}

func (h *Handler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

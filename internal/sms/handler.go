package sms

import (
	"io"
	"net/http"

	"leadflow_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps inbound webhook payloads at 64 KiB.
const maxWebhookBody = 64 << 10

// Handler exposes the inbound SMS webhook.
type Handler struct {
	service *Service
	log     *logger.Logger
}

// NewHandler creates a new SMS webhook handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// HandleIncoming receives a provider webhook delivery. The response is always
// 200 so providers never retry; the body reports whether a reply went out.
// POST /api/v1/sms/incoming
func (h *Handler) HandleIncoming(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.log.PipelineError("read_body", err)
		c.JSON(http.StatusOK, Ack{OK: false})
		return
	}

	ack := h.service.HandleInbound(c.Request.Context(), c.GetHeader("Content-Type"), body)
	c.JSON(http.StatusOK, ack)
}

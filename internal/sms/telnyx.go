package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
)

// TelnyxClient sends outbound SMS through the Telnyx messages API.
type TelnyxClient struct {
	baseURL    string
	apiKey     string
	fromNumber string
	client     *http.Client
	log        *logger.Logger
}

// NewTelnyxClient creates the outbound transport. Returns nil when no API key
// is configured so callers can degrade to a log-only mode.
func NewTelnyxClient(cfg config.SMSConfig, log *logger.Logger) *TelnyxClient {
	if cfg.GetTelnyxAPIKey() == "" {
		return nil
	}
	return &TelnyxClient{
		baseURL:    cfg.GetTelnyxBaseURL(),
		apiKey:     cfg.GetTelnyxAPIKey(),
		fromNumber: cfg.GetTelnyxFromNumber(),
		client:     &http.Client{Timeout: cfg.GetSMSSendTimeout()},
		log:        log,
	}
}

type sendMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send dispatches one SMS. An empty from falls back to the configured default
// sender. Non-2xx responses surface as unavailable errors so the pipeline can
// treat the provider as down.
func (c *TelnyxClient) Send(ctx context.Context, to, text, from string) error {
	if from == "" {
		from = c.fromNumber
	}

	payload := sendMessageRequest{
		From: from,
		To:   phone.NormalizeE164(to),
		Text: text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "marshal sms payload", err).WithOp("sms.Send")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "build sms request", err).WithOp("sms.Send")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "sms provider unreachable", err).WithOp("sms.Send")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Unavailable(fmt.Sprintf("sms provider returned %d: %s", resp.StatusCode, detail)).WithOp("sms.Send")
	}

	c.log.OutboundSMS(payload.To, len(text))
	return nil
}

// Package sms provides the inbound-message processing pipeline: webhook
// payload normalization, the qualification dialogue, structured extraction,
// lead status transitions, and outbound dispatch.
package sms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedPayload means the payload matched a known provider shape but is
// missing required fields or cannot be decoded.
var ErrMalformedPayload = errors.New("malformed inbound payload")

// ErrUnsupportedPayload means the payload matches no known provider shape.
var ErrUnsupportedPayload = errors.New("unsupported inbound payload")

// Provider tags which webhook shape an inbound message arrived in.
type Provider string

const (
	// ProviderTwilio is the form-encoded webhook shape.
	ProviderTwilio Provider = "twilio"
	// ProviderTelnyx is the JSON webhook shape.
	ProviderTelnyx Provider = "telnyx"
)

// Inbound is the canonical normalized inbound message.
type Inbound struct {
	From     string
	To       string
	Body     string
	Provider Provider
}

// telnyxWebhook mirrors the nested Telnyx inbound message payload. Unknown
// sibling fields are ignored for forward compatibility.
type telnyxWebhook struct {
	Data struct {
		Payload struct {
			From struct {
				PhoneNumber string `json:"phone_number"`
			} `json:"from"`
			To   json.RawMessage `json:"to"`
			Text string          `json:"text"`
		} `json:"payload"`
	} `json:"data"`
}

// ParseInbound normalizes a raw webhook body into the canonical inbound
// shape. Form-encoded bodies are treated as the Twilio format, JSON bodies as
// the Telnyx format; an unrecognized content type falls back to a best-effort
// JSON parse before being rejected as unsupported.
func ParseInbound(contentType string, body []byte) (Inbound, error) {
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		return parseFormInbound(body)
	case strings.Contains(ct, "application/json"):
		inbound, err := parseJSONInbound(body)
		if err != nil {
			return Inbound{}, err
		}
		return inbound, nil
	default:
		// Best-effort JSON sniff for providers that omit the header.
		inbound, err := parseJSONInbound(body)
		if errors.Is(err, ErrMalformedPayload) && !json.Valid(body) {
			return Inbound{}, fmt.Errorf("%w: content type %q", ErrUnsupportedPayload, contentType)
		}
		return inbound, err
	}
}

func parseFormInbound(body []byte) (Inbound, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	from := strings.TrimSpace(values.Get("From"))
	text := strings.TrimSpace(values.Get("Body"))
	if from == "" || text == "" {
		return Inbound{}, fmt.Errorf("%w: missing From/Body", ErrMalformedPayload)
	}

	return Inbound{
		From:     from,
		To:       strings.TrimSpace(values.Get("To")),
		Body:     text,
		Provider: ProviderTwilio,
	}, nil
}

func parseJSONInbound(body []byte) (Inbound, error) {
	var webhook telnyxWebhook
	if err := json.Unmarshal(body, &webhook); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	payload := webhook.Data.Payload
	from := strings.TrimSpace(payload.From.PhoneNumber)
	text := strings.TrimSpace(payload.Text)
	if from == "" || text == "" {
		return Inbound{}, fmt.Errorf("%w: missing from/text", ErrMalformedPayload)
	}

	return Inbound{
		From:     from,
		To:       parseTelnyxTo(payload.To),
		Body:     text,
		Provider: ProviderTelnyx,
	}, nil
}

// parseTelnyxTo accepts the recipient field as either a list or a scalar of
// {phone_number} objects.
func parseTelnyxTo(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	type recipient struct {
		PhoneNumber string `json:"phone_number"`
	}

	var list []recipient
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return strings.TrimSpace(list[0].PhoneNumber)
		}
		return ""
	}

	var single recipient
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single.PhoneNumber)
	}
	return ""
}

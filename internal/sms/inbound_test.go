package sms

import (
	"errors"
	"testing"
)

func TestParseInboundTwilioForm(t *testing.T) {
	body := []byte("From=%2B15551234567&Body=Hi+there&To=%2B15559876543")

	inbound, err := ParseInbound("application/x-www-form-urlencoded", body)
	if err != nil {
		t.Fatalf("ParseInbound returned error: %v", err)
	}
	if inbound.Provider != ProviderTwilio {
		t.Fatalf("expected twilio provider, got %q", inbound.Provider)
	}
	if inbound.From != "+15551234567" {
		t.Errorf("From = %q", inbound.From)
	}
	if inbound.To != "+15559876543" {
		t.Errorf("To = %q", inbound.To)
	}
	if inbound.Body != "Hi there" {
		t.Errorf("Body = %q", inbound.Body)
	}
}

func TestParseInboundFormMissingFields(t *testing.T) {
	cases := []string{
		"Body=hello",
		"From=%2B15551234567",
		"From=+%20&Body=%20",
	}
	for _, body := range cases {
		if _, err := ParseInbound("application/x-www-form-urlencoded", []byte(body)); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("body %q: expected ErrMalformedPayload, got %v", body, err)
		}
	}
}

func TestParseInboundTelnyxJSON(t *testing.T) {
	body := []byte(`{
		"data": {
			"payload": {
				"from": {"phone_number": "+15551234567"},
				"to": [{"phone_number": "+15559876543"}],
				"text": "Looking to buy"
			}
		}
	}`)

	inbound, err := ParseInbound("application/json", body)
	if err != nil {
		t.Fatalf("ParseInbound returned error: %v", err)
	}
	if inbound.Provider != ProviderTelnyx {
		t.Fatalf("expected telnyx provider, got %q", inbound.Provider)
	}
	if inbound.From != "+15551234567" {
		t.Errorf("From = %q", inbound.From)
	}
	if inbound.To != "+15559876543" {
		t.Errorf("To = %q", inbound.To)
	}
	if inbound.Body != "Looking to buy" {
		t.Errorf("Body = %q", inbound.Body)
	}
}

func TestParseInboundTelnyxScalarTo(t *testing.T) {
	body := []byte(`{
		"data": {
			"payload": {
				"from": {"phone_number": "+15551234567"},
				"to": {"phone_number": "+15550001111"},
				"text": "yes"
			}
		}
	}`)

	inbound, err := ParseInbound("application/json", body)
	if err != nil {
		t.Fatalf("ParseInbound returned error: %v", err)
	}
	if inbound.To != "+15550001111" {
		t.Errorf("To = %q", inbound.To)
	}
}

func TestParseInboundTelnyxMissingText(t *testing.T) {
	body := []byte(`{"data":{"payload":{"from":{"phone_number":"+15551234567"}}}}`)

	if _, err := ParseInbound("application/json", body); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestParseInboundNoContentTypeSniffsJSON(t *testing.T) {
	body := []byte(`{"data":{"payload":{"from":{"phone_number":"+15551234567"},"text":"hi"}}}`)

	inbound, err := ParseInbound("", body)
	if err != nil {
		t.Fatalf("ParseInbound returned error: %v", err)
	}
	if inbound.From != "+15551234567" || inbound.Body != "hi" {
		t.Errorf("unexpected inbound: %+v", inbound)
	}
}

func TestParseInboundUnsupported(t *testing.T) {
	if _, err := ParseInbound("text/plain", []byte("not a payload")); !errors.Is(err, ErrUnsupportedPayload) {
		t.Fatalf("expected ErrUnsupportedPayload, got %v", err)
	}
}

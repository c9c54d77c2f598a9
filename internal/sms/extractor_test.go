package sms

import (
	"context"
	"errors"
	"testing"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/platform/ai/groq"
)

type fakeCompleter struct {
	response string
	err      error
	messages []groq.Message
	opts     groq.Options
}

func (f *fakeCompleter) Complete(_ context.Context, messages []groq.Message, opts groq.Options) (string, error) {
	f.messages = messages
	f.opts = opts
	return f.response, f.err
}

func TestExtractParsesCleanJSON(t *testing.T) {
	completer := &fakeCompleter{response: `{"timeline":"next 30 days","budget":"$500k","area":"Austin"}`}
	extractor := NewExtractor(completer)

	q, err := extractor.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if q.Timeline == nil || *q.Timeline != "next 30 days" {
		t.Errorf("timeline = %v", q.Timeline)
	}
	if q.Budget == nil || *q.Budget != "$500k" {
		t.Errorf("budget = %v", q.Budget)
	}
	if q.Area == nil || *q.Area != "Austin" {
		t.Errorf("area = %v", q.Area)
	}
	if completer.opts.Temperature != 0 || completer.opts.MaxTokens != 120 {
		t.Errorf("unexpected options: %+v", completer.opts)
	}
}

func TestExtractAppendsInstructionAsLastUserMessage(t *testing.T) {
	completer := &fakeCompleter{response: `{}`}
	extractor := NewExtractor(completer)

	history := []conversation.Message{
		{Role: conversation.RoleLead, Text: "hi"},
		{Role: conversation.RoleAI, Text: "hello!"},
	}
	if _, err := extractor.Extract(context.Background(), history); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	last := completer.messages[len(completer.messages)-1]
	if last.Role != "user" || last.Content != extractionPrompt {
		t.Fatalf("unexpected final message: %+v", last)
	}
	if completer.messages[0].Role != "system" {
		t.Fatalf("expected system message first, got %q", completer.messages[0].Role)
	}
}

func TestExtractRecoversObjectFromProse(t *testing.T) {
	completer := &fakeCompleter{response: "Sure! Here is the JSON you asked for:\n{\"timeline\":null,\"budget\":\"$450k\",\"area\":\"round rock\"}\nLet me know if you need more."}
	extractor := NewExtractor(completer)

	q, err := extractor.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if q.Timeline != nil {
		t.Errorf("timeline = %v", q.Timeline)
	}
	if q.Budget == nil || *q.Budget != "$450k" {
		t.Errorf("budget = %v", q.Budget)
	}
}

func TestExtractUnparsableYieldsAllAbsent(t *testing.T) {
	completer := &fakeCompleter{response: "I could not determine that."}
	extractor := NewExtractor(completer)

	q, err := extractor.Extract(context.Background(), nil)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if q.Timeline != nil || q.Budget != nil || q.Area != nil {
		t.Fatalf("expected all-absent, got %+v", q)
	}
}

func TestExtractCompletionFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("boom")}
	extractor := NewExtractor(completer)

	if _, err := extractor.Extract(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestNormalizeFieldPlaceholders(t *testing.T) {
	cases := []interface{}{nil, "", "  ", "null", "NULL", "unknown", "N/A", 42, true}
	for _, v := range cases {
		if got := normalizeField(v); got != nil {
			t.Errorf("normalizeField(%v) = %q, want nil", v, *got)
		}
	}
	if got := normalizeField("  Austin  "); got == nil || *got != "Austin" {
		t.Errorf("expected trimmed value, got %v", got)
	}
}

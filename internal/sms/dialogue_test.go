package sms

import (
	"context"
	"errors"
	"testing"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/platform/apperr"
)

func TestReplyMapsRoles(t *testing.T) {
	completer := &fakeCompleter{response: "What's your timeline?"}
	engine := NewDialogueEngine(completer)

	history := []conversation.Message{
		{Role: conversation.RoleLead, Text: "hi, saw your listing"},
		{Role: conversation.RoleAI, Text: "Hey! What brought you to reach out?"},
		{Role: conversation.RoleLead, Text: "thinking about buying"},
	}

	reply, err := engine.Reply(context.Background(), history)
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if reply != "What's your timeline?" {
		t.Fatalf("reply = %q", reply)
	}

	if len(completer.messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(completer.messages))
	}
	if completer.messages[0].Role != "system" {
		t.Errorf("first role = %q", completer.messages[0].Role)
	}
	wantRoles := []string{"user", "assistant", "user"}
	for i, want := range wantRoles {
		if got := completer.messages[i+1].Role; got != want {
			t.Errorf("message %d role = %q, want %q", i+1, got, want)
		}
	}
	if completer.opts.Temperature != 0.7 || completer.opts.MaxTokens != 150 {
		t.Errorf("unexpected options: %+v", completer.opts)
	}
}

func TestReplyEmptyContentFallsBack(t *testing.T) {
	engine := NewDialogueEngine(&fakeCompleter{response: "   "})

	reply, err := engine.Reply(context.Background(), nil)
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if reply != apologyFallback {
		t.Fatalf("reply = %q, want apology fallback", reply)
	}
}

func TestReplyCompletionFailure(t *testing.T) {
	engine := NewDialogueEngine(&fakeCompleter{err: errors.New("timeout")})

	_, err := engine.Reply(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", err)
	}
}

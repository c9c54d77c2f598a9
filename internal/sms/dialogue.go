package sms

import (
	"context"
	"strings"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/platform/ai/groq"
	"leadflow_backend/platform/apperr"
)

// systemPrompt is the fixed persona driving the six-step qualification
// script. The appointment tag on step six is the single source of truth for
// booking detection and must never be emitted outside a genuine confirmation.
const systemPrompt = `You are Alex, a warm, professional, and highly skilled real estate Inside Sales Agent working for a top real estate agent. Your ONLY job is to engage new leads over SMS, build rapport quickly, qualify them, and book appointments.

Follow this exact sequence:
1. First, greet them warmly and ask what brought them to reach out today.
2. Second, once they respond, ask about their timeline — are they looking to buy/sell in the next 30 days, 3 months, or just exploring?
3. Third, ask about their budget or home price range.
4. Fourth, ask what area or neighborhood they're interested in.
5. Fifth, once you have timeline, budget, and area — transition to booking: say something like "Based on what you've shared, I'd love to set up a quick 15-minute call with our agent to show you exactly what's available in your budget. Are you free tomorrow morning or afternoon?"
6. Sixth, when they confirm a time, say "Perfect! I've got you booked. You'll receive a confirmation shortly. [APPOINTMENT_BOOKED]" — always include that exact tag when an appointment is confirmed.

Keep messages SHORT (under 2 sentences). Sound human, never robotic. Never mention you are an AI unless directly asked.`

// apologyFallback is sent when the completion service returns empty content.
const apologyFallback = "I apologize, I had trouble processing that. Could you repeat?"

// Completer is the completion-service contract the dialogue and extractor
// depend on.
type Completer interface {
	Complete(ctx context.Context, messages []groq.Message, opts groq.Options) (string, error)
}

// DialogueEngine produces the next reply of the qualification conversation.
type DialogueEngine struct {
	completer Completer
}

// NewDialogueEngine creates a dialogue engine over the given completer.
func NewDialogueEngine(completer Completer) *DialogueEngine {
	return &DialogueEngine{completer: completer}
}

// buildMessages maps the conversation history to completion-service roles.
// The persona is always the first message; lead messages become user turns
// and prior replies become assistant turns.
func buildMessages(history []conversation.Message) []groq.Message {
	messages := make([]groq.Message, 0, len(history)+1)
	messages = append(messages, groq.Message{Role: "system", Content: systemPrompt})

	for _, entry := range history {
		role := "assistant"
		if entry.Role == conversation.RoleLead {
			role = "user"
		}
		messages = append(messages, groq.Message{Role: role, Content: entry.Text})
	}

	return messages
}

// Reply generates the next agent reply from the full history, which must
// already include the just-received lead message. Completion failures and
// timeouts surface as errors and fail the turn; this engine never retries.
func (e *DialogueEngine) Reply(ctx context.Context, history []conversation.Message) (string, error) {
	content, err := e.completer.Complete(ctx, buildMessages(history), groq.Options{
		Temperature: 0.7,
		MaxTokens:   150,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnavailable, "completion service failed", err).WithOp("sms.Reply")
	}

	if strings.TrimSpace(content) == "" {
		return apologyFallback, nil
	}
	return content, nil
}

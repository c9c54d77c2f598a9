package sms

import (
	"context"
	"encoding/json"
	"strings"

	"leadflow_backend/internal/conversation"
	"leadflow_backend/platform/ai/groq"
	"leadflow_backend/platform/apperr"
)

// extractionPrompt instructs the model to answer with nothing but the
// qualification JSON object.
const extractionPrompt = `From the conversation so far, extract the lead's qualification info. Return ONLY valid JSON with keys: timeline, budget, area. Use null when unknown. Keep values short and literal. Example: {"timeline":"next 30 days","budget":"$500k","area":"Austin"}.`

// Qualification is the per-turn extraction snapshot. Absent fields are nil.
type Qualification struct {
	Timeline *string
	Budget   *string
	Area     *string
}

// Complete reports whether all three fields are present.
func (q Qualification) Complete() bool {
	return q.Timeline != nil && q.Budget != nil && q.Area != nil
}

// Extractor pulls structured qualification data out of the conversation with
// a second completion call over the same history.
type Extractor struct {
	completer Completer
}

// NewExtractor creates an extractor over the given completer.
func NewExtractor(completer Completer) *Extractor {
	return &Extractor{completer: completer}
}

// Extract runs the structured-output completion over the history (which must
// include the latest agent reply). Model-output variance is absorbed: any
// unparsable response yields an all-absent snapshot with no error. Only a
// completion-service failure is returned, for the caller to log; extraction
// is best-effort and must never abort a turn.
func (x *Extractor) Extract(ctx context.Context, history []conversation.Message) (Qualification, error) {
	messages := append(buildMessages(history), groq.Message{Role: "user", Content: extractionPrompt})

	raw, err := x.completer.Complete(ctx, messages, groq.Options{
		Temperature: 0,
		MaxTokens:   120,
	})
	if err != nil {
		return Qualification{}, apperr.Wrap(apperr.KindUnavailable, "qualification extraction failed", err).WithOp("sms.Extract")
	}

	return parseQualification(raw), nil
}

// rawQualification tolerates non-string values so placeholder junk can be
// normalized to absence instead of failing the parse.
type rawQualification struct {
	Timeline interface{} `json:"timeline"`
	Budget   interface{} `json:"budget"`
	Area     interface{} `json:"area"`
}

// parseQualification attempts a strict JSON parse of the full response, then
// of the first balanced object substring, and gives up to all-absent.
func parseQualification(raw string) Qualification {
	var parsed rawQualification
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		obj, ok := firstJSONObject(raw)
		if !ok {
			return Qualification{}
		}
		if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
			return Qualification{}
		}
	}

	return Qualification{
		Timeline: normalizeField(parsed.Timeline),
		Budget:   normalizeField(parsed.Budget),
		Area:     normalizeField(parsed.Area),
	}
}

// normalizeField collapses placeholder values to absence: non-strings, empty
// or whitespace-only strings, and the literals "null", "unknown" and "n/a"
// (case-insensitive) all become nil.
func normalizeField(value interface{}) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	switch strings.ToLower(trimmed) {
	case "null", "unknown", "n/a":
		return nil
	}
	return &trimmed
}

// firstJSONObject scans for the first balanced top-level {...} substring,
// honoring string literals and escapes.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

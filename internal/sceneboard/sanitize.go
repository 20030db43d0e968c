package sceneboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fence = "```"

// ParseFailure is the client-facing description of a ParseError.
const ParseFailure = "AI response parse failure"

// ParseError reports a model reply that is not valid JSON once code fences
// are removed. Raw is the reply as received.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ParseFailure, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripCodeFence removes a markdown code fence wrapped around a model reply.
// The opening fence line, including any language tag, and a trailing fence
// are dropped. Text without a leading fence is only trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, fence)
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

// DecodeJSON strips code fences from raw and unmarshals the result into v.
func DecodeJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Provider abstracts an LLM provider (Anthropic, OpenAI).
type Provider interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string
	Models() []string
}

// Gateway routes chat requests to the configured provider.
type Gateway interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Provider(name string) (Provider, error)
	DefaultProvider() string
	Configured() bool
}

// ErrProviderNotConfigured is returned when no credential was supplied for
// the requested provider.
var ErrProviderNotConfigured = errors.New("llm provider not configured")

// Message represents a single chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// ChatRequest is the input for chat completions. It is always sent to the
// gateway's default provider.
type ChatRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// ChatResponse is the output from chat completions.
type ChatResponse struct {
	ID           string
	Provider     string
	Model        string
	Content      string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	CostUSD      float64
	LatencyMs    int64
}

// KnownModel reports whether model is one of p's listed models.
func KnownModel(p Provider, model string) bool {
	return slices.Contains(p.Models(), model)
}

// UpstreamError is a non-success HTTP response from a provider API. Body
// holds the provider's error payload as received.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

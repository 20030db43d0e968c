// Package sceneboard asks an external language model to analyze and
// critique the scene structure of a screenplay.
package sceneboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilbhutani/screenplaybackend/internal/llm"
	"github.com/nikhilbhutani/screenplaybackend/internal/models"
	"github.com/nikhilbhutani/screenplaybackend/pkg/tokenizer"
)

const (
	DefaultTimeout = 60 * time.Second

	analyzeMaxTokens = 4096
	suggestMaxTokens = 2048
)

// ErrNotConfigured is returned, before any network call, when the selected
// provider has no API key.
var ErrNotConfigured = errors.New("scene board API key not configured")

// SceneAnalysis is the model's reading of one scene.
type SceneAnalysis struct {
	ID         int      `json:"id"`
	Summary    string   `json:"summary"`
	Characters []string `json:"characters"`
	Tone       string   `json:"tone"`
	Function   string   `json:"function"`
	Time       string   `json:"time"`
}

// Suggestions is the model's critique of the scene order.
type Suggestions struct {
	Assessment     string   `json:"assessment"`
	SuggestedOrder []int    `json:"suggestedOrder"`
	MissingBeats   []string `json:"missingBeats"`
	PacingNotes    string   `json:"pacingNotes"`
}

type Service struct {
	gateway llm.Gateway
	model   string
	timeout time.Duration
}

func NewService(gw llm.Gateway, model string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{gateway: gw, model: model, timeout: timeout}
}

// Configured reports whether the provider credential is present.
func (s *Service) Configured() bool {
	return s.gateway.Configured()
}

// Analyze returns one SceneAnalysis per scene as produced by the model.
func (s *Service) Analyze(ctx context.Context, title string, scenes []models.Scene, language string) ([]SceneAnalysis, error) {
	raw, err := s.complete(ctx, "analyze", buildAnalyzePrompt(title, scenes), language, analyzeMaxTokens)
	if err != nil {
		return nil, err
	}

	var analysis []SceneAnalysis
	if err := DecodeJSON(raw, &analysis); err != nil {
		return nil, err
	}
	if analysis == nil {
		analysis = []SceneAnalysis{}
	}
	return analysis, nil
}

// Suggest returns structural suggestions for the scene order.
func (s *Service) Suggest(ctx context.Context, title string, scenes []models.Scene, language string) (*Suggestions, error) {
	raw, err := s.complete(ctx, "suggest", buildSuggestPrompt(title, scenes), language, suggestMaxTokens)
	if err != nil {
		return nil, err
	}

	var sugg Suggestions
	if err := DecodeJSON(raw, &sugg); err != nil {
		return nil, err
	}
	if sugg.MissingBeats == nil {
		sugg.MissingBeats = []string{}
	}
	return &sugg, nil
}

// complete sends a single request with no retry and returns the raw reply.
func (s *Service) complete(ctx context.Context, op, userPrompt, language string, maxTokens int) (string, error) {
	if !s.gateway.Configured() {
		return "", ErrNotConfigured
	}

	runID := uuid.NewString()
	logger := slog.With("op", op, "run_id", runID, "provider", s.gateway.DefaultProvider())

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	system := buildSystemPrompt(language)
	logger.Debug("scene board request", "prompt_chars", len(userPrompt), "prompt_tokens_est", tokenizer.EstimateAll(system, userPrompt))
	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, llm.ErrProviderNotConfigured) {
			return "", ErrNotConfigured
		}
		if ctx.Err() == context.DeadlineExceeded && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		logger.Warn("scene board request failed", "error", err)
		return "", fmt.Errorf("scene board %s: %w", op, err)
	}

	logger.Info("scene board reply", "chars", len(resp.Content), "latency_ms", resp.LatencyMs)
	return resp.Content, nil
}

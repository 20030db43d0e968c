package handlers

import (
	"net/http"

	"github.com/nikhilbhutani/screenplaybackend/internal/config"
)

// Checker reports whether the scene board credential is configured.
type Checker interface {
	Configured() bool
}

type HealthHandler struct {
	provider string
	ai       Checker
}

func NewHealthHandler(provider string, ai Checker) *HealthHandler {
	return &HealthHandler{provider: provider, ai: ai}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": config.ServiceName,
		"version": config.Version,
		"status":  "running",
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"service":          config.ServiceName,
		"version":          config.Version,
		"provider":         h.provider,
		"apiKeyConfigured": h.ai.Configured(),
	})
}

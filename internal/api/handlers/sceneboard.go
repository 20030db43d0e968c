package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nikhilbhutani/screenplaybackend/internal/llm"
	"github.com/nikhilbhutani/screenplaybackend/internal/models"
	"github.com/nikhilbhutani/screenplaybackend/internal/sceneboard"
)

// SceneBoard is the scene analysis backend used by SceneBoardHandler.
type SceneBoard interface {
	Analyze(ctx context.Context, title string, scenes []models.Scene, language string) ([]sceneboard.SceneAnalysis, error)
	Suggest(ctx context.Context, title string, scenes []models.Scene, language string) (*sceneboard.Suggestions, error)
	Configured() bool
}

type SceneBoardHandler struct {
	board     SceneBoard
	staticDir string
}

func NewSceneBoardHandler(board SceneBoard, staticDir string) *SceneBoardHandler {
	return &SceneBoardHandler{board: board, staticDir: staticDir}
}

// sceneBoardFailure is the envelope for replies the model got wrong.
// RawResponse is always present, null when there is nothing to show.
type sceneBoardFailure struct {
	Success     bool    `json:"success"`
	Error       string  `json:"error"`
	RawResponse *string `json:"rawResponse"`
}

func (h *SceneBoardHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req sceneBoardRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	analysis, err := h.board.Analyze(r.Context(), *req.Title, toScenes(req.Scenes), req.language())
	if err != nil {
		writeSceneBoardError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"title":    *req.Title,
		"analysis": analysis,
	})
}

func (h *SceneBoardHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req sceneBoardRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	suggestions, err := h.board.Suggest(r.Context(), *req.Title, toScenes(req.Scenes), req.language())
	if err != nil {
		writeSceneBoardError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": suggestions,
	})
}

// Page serves the companion scene board page, or a placeholder when it has
// not been deployed.
func (h *SceneBoardHandler) Page(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, "sceneboard.html")
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, placeholderPage)
}

const placeholderPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Scene Board</title></head>
<body>
<h1>Scene Board</h1>
<p>The scene board page is not installed on this server.</p>
</body>
</html>
`

// writeSceneBoardError maps scene board failures to HTTP responses.
// Upstream errors keep the provider's status code and body.
func writeSceneBoardError(w http.ResponseWriter, err error) {
	var upErr *llm.UpstreamError
	var parseErr *sceneboard.ParseError

	switch {
	case errors.Is(err, sceneboard.ErrNotConfigured):
		slog.Error("scene board called without credential")
		writeDetail(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &parseErr):
		slog.Warn("scene board reply not parsed", "error", parseErr.Err)
		raw := parseErr.Raw
		writeJSON(w, http.StatusOK, sceneBoardFailure{Success: false, Error: sceneboard.ParseFailure, RawResponse: &raw})
	case errors.As(err, &upErr):
		writeDetail(w, upErr.StatusCode, upErr.Body)
	case errors.Is(err, context.DeadlineExceeded):
		writeDetail(w, http.StatusGatewayTimeout, err.Error())
	default:
		writeDetail(w, http.StatusBadGateway, err.Error())
	}
}

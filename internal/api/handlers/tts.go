package handlers

import (
	"net/http"

	"github.com/nikhilbhutani/screenplaybackend/internal/tts"
)

type TTSHandler struct {
	narrator *tts.Narrator
}

func NewTTSHandler(n *tts.Narrator) *TTSHandler {
	return &TTSHandler{narrator: n}
}

type prepareResponse struct {
	Success bool `json:"success"`
	tts.Script
}

// Prepare annotates every element with voice parameters for client-side
// speech synthesis.
func (h *TTSHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	script, err := safely(func() tts.Script {
		cast := tts.NewCast(toCharacters(req.Characters))
		return h.narrator.Prepare(*req.Title, toElements(req.Elements), cast)
	})
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, prepareResponse{Success: true, Script: script})
}

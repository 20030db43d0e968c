package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikhilbhutani/screenplaybackend/internal/llm"
	"github.com/nikhilbhutani/screenplaybackend/internal/models"
	"github.com/nikhilbhutani/screenplaybackend/internal/sceneboard"
	"github.com/nikhilbhutani/screenplaybackend/internal/tts"
)

func post(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestExportFDX(t *testing.T) {
	h := NewExportHandler()
	w := post(t, h.FDX, `{"title":"My Play","elements":[{"type":"SCENE_HEADING","text":"INT. ROOM - DAY"},{"type":"ACTION","text":"A & B"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/xml" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="My_Play.fdx"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	body := w.Body.String()
	if strings.Count(body, "<Paragraph ") != 2 || !strings.Contains(body, "A &amp; B") {
		t.Errorf("body = %s", body)
	}
	if strings.Contains(body, "My Play") {
		t.Error("title must not be embedded in the document")
	}
}

func TestExportFDXJSON(t *testing.T) {
	h := NewExportHandler()
	w := post(t, h.FDXJSON, `{"title":"My Play","elements":[]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := decode(t, w)
	if out["success"] != true || out["filename"] != "My_Play.fdx" || out["content_type"] != "application/xml" {
		t.Errorf("envelope = %v", out)
	}
	content, _ := out["content"].(string)
	if !strings.Contains(content, "<Content>\n</Content>") || strings.Contains(content, "<Paragraph") {
		t.Errorf("content = %q", content)
	}
}

func TestExportValidation(t *testing.T) {
	h := NewExportHandler()
	tests := map[string]string{
		"malformed":       `{"title":`,
		"missing title":   `{"elements":[]}`,
		"missing elems":   `{"title":"x"}`,
		"missing text":    `{"title":"x","elements":[{"type":"ACTION"}]}`,
		"wrong type":      `{"title":"x","elements":[{"type":"ACTION","text":42}]}`,
		"elements object": `{"title":"x","elements":{"type":"ACTION"}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			for _, fn := range []http.HandlerFunc{h.FDX, h.FDXJSON} {
				w := post(t, fn, body)
				if w.Code != http.StatusUnprocessableEntity {
					t.Errorf("status = %d, want 422", w.Code)
				}
				if decode(t, w)["detail"] == nil {
					t.Error("missing detail")
				}
			}
		})
	}
}

func TestExportAllowsEmptyStrings(t *testing.T) {
	h := NewExportHandler()
	w := post(t, h.FDXJSON, `{"title":"","elements":[{"type":"","text":""}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	content := decode(t, w)["content"].(string)
	if !strings.Contains(content, `<Paragraph Type="Action">`) || !strings.Contains(content, "<Text></Text>") {
		t.Errorf("content = %s", content)
	}
}

func TestTTSPrepare(t *testing.T) {
	h := NewTTSHandler(tts.NewNarrator(nil))
	w := post(t, h.Prepare, `{"title":"T","elements":[{"type":"CHARACTER","text":"SOPHIE (O.S.)"},{"type":"DIALOGUE","text":"Hello"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	out := decode(t, w)
	if out["success"] != true || out["title"] != "T" || out["totalElements"] != float64(2) {
		t.Fatalf("response = %v", out)
	}

	elems := out["elements"].([]interface{})
	cue := elems[0].(map[string]interface{})
	if cue["character"] != nil || cue["voice"].(map[string]interface{})["skip"] != true {
		t.Errorf("cue = %v", cue)
	}

	line := elems[1].(map[string]interface{})
	voice := line["voice"].(map[string]interface{})
	if line["character"] != "SOPHIE" {
		t.Errorf("character = %v", line["character"])
	}
	if voice["voiceType"] != "female" || voice["pitch"] != 1.3 || voice["rate"] != 1.1 || voice["pauseAfterMs"] != float64(300) {
		t.Errorf("voice = %v", voice)
	}
}

func TestTTSPrepareCharacters(t *testing.T) {
	h := NewTTSHandler(tts.NewNarrator(nil))
	w := post(t, h.Prepare, `{"title":"T","elements":[{"type":"CHARACTER","text":"Sophie"},{"type":"DIALOGUE","text":"Hi"}],"characters":[{"name":"sophie","gender":"male","voiceId":"v1"}]}`)

	out := decode(t, w)
	voice := out["elements"].([]interface{})[1].(map[string]interface{})["voice"].(map[string]interface{})
	if voice["voiceType"] != "male" {
		t.Errorf("explicit gender ignored: %v", voice)
	}
}

func TestTTSPrepareEmpty(t *testing.T) {
	h := NewTTSHandler(tts.NewNarrator(nil))
	w := post(t, h.Prepare, `{"title":"T","elements":[]}`)

	out := decode(t, w)
	if out["totalElements"] != float64(0) {
		t.Errorf("totalElements = %v", out["totalElements"])
	}
	if elems, ok := out["elements"].([]interface{}); !ok || len(elems) != 0 {
		t.Errorf("elements = %v, want []", out["elements"])
	}
}

func TestTTSPrepareValidation(t *testing.T) {
	h := NewTTSHandler(tts.NewNarrator(nil))
	w := post(t, h.Prepare, `{"title":"T","elements":[],"characters":[{"gender":"female"}]}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	if detail, _ := decode(t, w)["detail"].(string); !strings.Contains(detail, "characters[0].name") {
		t.Errorf("detail = %q", detail)
	}
}

type fakeBoard struct {
	analysis    []sceneboard.SceneAnalysis
	suggestions *sceneboard.Suggestions
	err         error
	gotLanguage string
	gotScenes   []models.Scene
}

func (f *fakeBoard) Configured() bool { return true }

func (f *fakeBoard) Analyze(_ context.Context, _ string, scenes []models.Scene, language string) ([]sceneboard.SceneAnalysis, error) {
	f.gotScenes, f.gotLanguage = scenes, language
	return f.analysis, f.err
}

func (f *fakeBoard) Suggest(_ context.Context, _ string, scenes []models.Scene, language string) (*sceneboard.Suggestions, error) {
	f.gotScenes, f.gotLanguage = scenes, language
	return f.suggestions, f.err
}

const analyzeBody = `{"title":"Noir","scenes":[{"id":1,"heading":"INT. BAR - NIGHT","content":"Smoke."}],"language":"en"}`

func TestSceneBoardAnalyze(t *testing.T) {
	board := &fakeBoard{analysis: []sceneboard.SceneAnalysis{{ID: 1, Summary: "Smoky bar", Characters: []string{}}}}
	h := NewSceneBoardHandler(board, t.TempDir())

	w := post(t, h.Analyze, analyzeBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	out := decode(t, w)
	if out["success"] != true || out["title"] != "Noir" {
		t.Errorf("response = %v", out)
	}
	if a := out["analysis"].([]interface{}); len(a) != 1 {
		t.Errorf("analysis = %v", a)
	}
	if board.gotLanguage != "en" || board.gotScenes[0].Content != "Smoke." {
		t.Errorf("board got %q %+v", board.gotLanguage, board.gotScenes)
	}
}

func TestSceneBoardDefaultLanguage(t *testing.T) {
	board := &fakeBoard{suggestions: &sceneboard.Suggestions{Assessment: "ok", MissingBeats: []string{}}}
	h := NewSceneBoardHandler(board, t.TempDir())

	w := post(t, h.Suggest, `{"title":"Noir","scenes":[{"id":1,"heading":"INT. BAR"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if board.gotLanguage != "fr" {
		t.Errorf("language = %q, want fr", board.gotLanguage)
	}
	sugg := decode(t, w)["suggestions"].(map[string]interface{})
	if _, ok := sugg["suggestedOrder"]; !ok || sugg["suggestedOrder"] != nil {
		t.Errorf("suggestedOrder should be present and null: %v", sugg)
	}
}

func TestSceneBoardErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not configured", sceneboard.ErrNotConfigured, http.StatusInternalServerError, "not configured"},
		{"upstream", fmt.Errorf("scene board analyze: %w", &llm.UpstreamError{Provider: "anthropic", StatusCode: 529, Body: `{"error":"overloaded"}`}), 529, `{"error":"overloaded"}`},
		{"timeout", fmt.Errorf("scene board analyze: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline"},
		{"transport", errors.New("dial tcp: connection refused"), http.StatusBadGateway, "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSceneBoardHandler(&fakeBoard{err: tt.err}, t.TempDir())
			w := post(t, h.Analyze, analyzeBody)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			detail, _ := decode(t, w)["detail"].(string)
			if !strings.Contains(detail, tt.detail) {
				t.Errorf("detail = %q, want it to contain %q", detail, tt.detail)
			}
		})
	}
}

func TestSceneBoardParseError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &sceneboard.ParseError{Raw: "not json", Err: errors.New("invalid character")})
	h := NewSceneBoardHandler(&fakeBoard{err: err}, t.TempDir())

	for _, fn := range []http.HandlerFunc{h.Analyze, h.Suggest} {
		w := post(t, fn, analyzeBody)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		out := decode(t, w)
		if out["success"] != false || out["rawResponse"] != "not json" {
			t.Errorf("response = %v", out)
		}
		if out["error"] != "AI response parse failure" {
			t.Errorf("error = %v, want the bare parse failure message", out["error"])
		}
	}
}

func TestSceneBoardValidation(t *testing.T) {
	h := NewSceneBoardHandler(&fakeBoard{}, t.TempDir())
	for _, body := range []string{
		`{"scenes":[]}`,
		`{"title":"x"}`,
		`{"title":"x","scenes":[{"heading":"h"}]}`,
		`{"title":"x","scenes":[{"id":"one","heading":"h"}]}`,
	} {
		if w := post(t, h.Analyze, body); w.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %s: status = %d, want 422", body, w.Code)
		}
	}
}

func TestSceneBoardPage(t *testing.T) {
	dir := t.TempDir()
	h := NewSceneBoardHandler(&fakeBoard{}, dir)

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, "/sceneboard", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "not installed") {
		t.Errorf("placeholder: %d %s", w.Code, w.Body.String())
	}

	os.WriteFile(filepath.Join(dir, "sceneboard.html"), []byte("<html>board</html>"), 0o644)
	w = httptest.NewRecorder()
	h.Page(w, httptest.NewRequest(http.MethodGet, "/sceneboard", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "board") {
		t.Errorf("static page: %d %s", w.Code, w.Body.String())
	}
}

type stubChecker bool

func (s stubChecker) Configured() bool { return bool(s) }

func TestHealth(t *testing.T) {
	h := NewHealthHandler("anthropic", stubChecker(false))

	w := httptest.NewRecorder()
	h.Root(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if out := decode(t, w); out["status"] != "running" || out["service"] == nil || out["version"] == nil {
		t.Errorf("root = %v", out)
	}

	w = httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	out := decode(t, w)
	if out["status"] != "healthy" || out["apiKeyConfigured"] != false || out["provider"] != "anthropic" {
		t.Errorf("health = %v", out)
	}
}

func TestSafelyRecovers(t *testing.T) {
	_, err := safely(func() string { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v", err)
	}
	got, err := safely(func() int { return 7 })
	if err != nil || got != 7 {
		t.Errorf("got %d, %v", got, err)
	}
}

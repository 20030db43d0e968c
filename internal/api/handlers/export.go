package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/screenplaybackend/internal/fdx"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

type fdxEnvelope struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename,omitempty"`
	Content     string `json:"content,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Error       string `json:"error,omitempty"`
}

// FDX returns the screenplay as a downloadable Final Draft file.
func (h *ExportHandler) FDX(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	doc, err := safely(func() string { return fdx.Generate(toElements(req.Elements)) })
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fdx.Filename(*req.Title)
	slog.Info("fdx export", "filename", filename, "elements", len(req.Elements))

	w.Header().Set("Content-Type", fdx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}

// FDXJSON returns the FDX document inside a JSON envelope for clients that
// cannot handle file downloads. Export failures are reported in the
// envelope with status 200.
func (h *ExportHandler) FDXJSON(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	doc, err := safely(func() string { return fdx.Generate(toElements(req.Elements)) })
	if err != nil {
		writeJSON(w, http.StatusOK, fdxEnvelope{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, fdxEnvelope{
		Success:     true,
		Filename:    fdx.Filename(*req.Title),
		Content:     doc,
		ContentType: fdx.ContentType,
	})
}

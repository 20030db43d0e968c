package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/screenplaybackend/internal/api/handlers"
	"github.com/nikhilbhutani/screenplaybackend/internal/api/middleware"
	"github.com/nikhilbhutani/screenplaybackend/internal/config"
	"github.com/nikhilbhutani/screenplaybackend/internal/llm"
	"github.com/nikhilbhutani/screenplaybackend/internal/sceneboard"
	"github.com/nikhilbhutani/screenplaybackend/internal/tts"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	llmGW    llm.Gateway
	narrator *tts.Narrator
}

// NewRouter wires the services from cfg. gw may be nil, in which case a
// gateway is built from cfg.LLM.
func NewRouter(cfg *config.Config, gw llm.Gateway, narrator *tts.Narrator) *Router {
	if gw == nil {
		gw = llm.NewGateway(cfg.LLM)
	}
	if narrator == nil {
		narrator = tts.NewNarrator(nil)
	}
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		llmGW:    gw,
		narrator: narrator,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)

	if rt.cfg.CORSWideOpen() {
		slog.Warn("CORS accepts requests from any origin; set CORS_ALLOWED_ORIGINS to restrict")
	}
	r.Use(middleware.CORS(rt.cfg.Server.AllowedOrigins))

	board := sceneboard.NewService(rt.llmGW, rt.cfg.LLM.Model, rt.cfg.LLM.Timeout)

	health := handlers.NewHealthHandler(rt.llmGW.DefaultProvider(), board)
	r.Get("/", health.Root)
	r.Get("/health", health.Health)

	exportH := handlers.NewExportHandler()
	r.Route("/export", func(r chi.Router) {
		r.Post("/fdx", exportH.FDX)
		r.Post("/fdx/json", exportH.FDXJSON)
	})

	ttsH := handlers.NewTTSHandler(rt.narrator)
	r.Post("/tts/prepare", ttsH.Prepare)

	boardH := handlers.NewSceneBoardHandler(board, rt.cfg.Server.StaticDir)
	r.Get("/sceneboard", boardH.Page)
	r.Route("/api/scene-board", func(r chi.Router) {
		r.Post("/analyze", boardH.Analyze)
		r.Post("/suggest", boardH.Suggest)
	})

	return r
}

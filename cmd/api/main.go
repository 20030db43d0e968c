package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilbhutani/screenplaybackend/internal/api"
	"github.com/nikhilbhutani/screenplaybackend/internal/config"
	"github.com/nikhilbhutani/screenplaybackend/internal/llm"
	"github.com/nikhilbhutani/screenplaybackend/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	// The credential is optional at startup; scene board calls fail until it is set.
	if cfg.APIKey() == "" {
		slog.Warn("scene board API key not set, analysis endpoints will return errors", "provider", cfg.LLM.Provider)
	}

	guesser := tts.DefaultGenderGuesser()
	if cfg.TTS.NamesFile != "" {
		guesser, err = tts.LoadNameSets(cfg.TTS.NamesFile)
		if err != nil {
			slog.Error("failed to load name sets", "path", cfg.TTS.NamesFile, "error", err)
			os.Exit(1)
		}
		slog.Info("loaded name sets", "path", cfg.TTS.NamesFile)
	}

	gw := llm.NewGateway(cfg.LLM)
	if p, err := gw.Provider(cfg.LLM.Provider); err == nil && !llm.KnownModel(p, cfg.LLM.Model) {
		slog.Warn("scene board model not in provider's known list", "provider", p.Name(), "model", cfg.LLM.Model, "known", p.Models())
	}

	router := api.NewRouter(cfg, gw, tts.NewNarrator(guesser))
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "version", config.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"saluz-foodbot/handler"
	"saluz-foodbot/internal/app/bootstrap"
	"saluz-foodbot/internal/integrations/gemini"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	ctx := context.Background()
	logger := slog.Default()

	cfg := bootstrap.Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiKeyParam:    os.Getenv("GEMINI_KEY_PARAM"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		CompletionTimeout: time.Duration(envInt("COMPLETION_TIMEOUT_SECONDS", 240)) * time.Second,
		StateTable:        os.Getenv("STATE_TABLE"),
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	registry := prometheus.NewRegistry()
	svc, cleanup, err := bootstrap.Build(ctx, cfg, logger, registry)
	if err != nil {
		logger.Error("failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	opts := []handler.Option{handler.WithLogger(logger)}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		opts = append(opts, handler.WithSignatureValidation(token))
	}
	h, err := handler.NewHandler(svc, opts...)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/", h.Health)
	r.Post("/whatsapp", h.WhatsApp)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// The webhook holds the connection for the whole turn, retries
	// included, so the response deadline follows the completion budget.
	writeTimeout := gemini.RetryBudget(cfg.CompletionTimeout) + 30*time.Second

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

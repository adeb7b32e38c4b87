package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"saluz-foodbot/handler"
	"saluz-foodbot/internal/app/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := slog.Default()

	cfg := bootstrap.Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiKeyParam:    os.Getenv("GEMINI_KEY_PARAM"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		CompletionTimeout: time.Duration(envInt("COMPLETION_TIMEOUT_SECONDS", 240)) * time.Second,
		StateTable:        os.Getenv("STATE_TABLE"),
	}

	svc, cleanup, err := bootstrap.Build(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Error("failed to build service", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	h, err := handler.NewHandler(svc, handler.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
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

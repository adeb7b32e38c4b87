package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/prometheus/client_golang/prometheus"

	"saluz-foodbot/internal/integrations/gemini"
	"saluz-foodbot/internal/integrations/paramstore"
	"saluz-foodbot/internal/menu"
	"saluz-foodbot/internal/observability/metrics"
	"saluz-foodbot/internal/repository"
	"saluz-foodbot/internal/usecase"
)

// Config carries everything the process needs at startup. Both optional
// capabilities degrade gracefully: no Gemini key means every turn answers
// with the fixed not-connected reply, no state table means the bot runs
// stateless.
type Config struct {
	GeminiAPIKey      string
	GeminiKeyParam    string
	GeminiModel       string
	CompletionTimeout time.Duration
	StateTable        string
}

// Build wires the conversation service from configuration. The returned
// cleanup releases the Gemini client; it is safe to call even on partial
// construction.
func Build(ctx context.Context, cfg Config, logger *slog.Logger, reg prometheus.Registerer) (*usecase.Service, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanup := func() {}

	var llm usecase.CompletionClient
	var store usecase.StateStore

	var awsCfg aws.Config
	if cfg.StateTable != "" || (cfg.GeminiAPIKey == "" && cfg.GeminiKeyParam != "") {
		loaded, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, cleanup, fmt.Errorf("bootstrap: load AWS config: %w", err)
		}
		awsCfg = loaded
	}

	apiKey := cfg.GeminiAPIKey
	if apiKey == "" && cfg.GeminiKeyParam != "" {
		ps, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, cleanup, fmt.Errorf("bootstrap: create paramstore client: %w", err)
		}
		apiKey, err = ps.Value(ctx, cfg.GeminiKeyParam)
		if err != nil {
			logger.Error("failed to fetch gemini api key from parameter store", "param", cfg.GeminiKeyParam, "err", err)
			apiKey = ""
		}
	}

	if apiKey != "" {
		var opts []gemini.Option
		if cfg.CompletionTimeout > 0 {
			opts = append(opts, gemini.WithTimeout(cfg.CompletionTimeout))
		}
		client, err := gemini.NewClient(ctx, apiKey, cfg.GeminiModel, opts...)
		if err != nil {
			logger.Error("failed to initialize gemini client; AI replies disabled", "err", err)
		} else {
			llm = client
			cleanup = func() { _ = client.Close() }
		}
	} else {
		logger.Error("gemini api key not configured; AI replies disabled")
	}

	if cfg.StateTable != "" {
		st, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.StateTable)
		if err != nil {
			return nil, cleanup, fmt.Errorf("bootstrap: create state store: %w", err)
		}
		store = st
	} else {
		logger.Warn("state table not configured; conversation history disabled")
	}

	svc, err := usecase.NewService(menu.Default(), llm, store, logger, metrics.NewTurnMetrics(reg))
	if err != nil {
		return nil, cleanup, fmt.Errorf("bootstrap: create service: %w", err)
	}

	logger.Info("order bot wired",
		"gemini", statusString(llm != nil),
		"persistence", statusString(store != nil),
	)
	return svc, cleanup, nil
}

func statusString(ok bool) string {
	if ok {
		return "connected"
	}
	return "disabled"
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/portfolio-term/internal/ai"
	"github.com/nhle/portfolio-term/internal/api"
	"github.com/nhle/portfolio-term/internal/credential"
	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/portfolio"
)

// Environment variables consulted before the keyring.
const (
	EnvAIToken      = "PORTFOLIO_AI_TOKEN"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Wire builds the collaborators described by cfg. Secrets come from the
// environment (via getenv) or the system keyring. A data source that
// cannot be opened is logged and left nil so the terminal still starts.
// The returned closer releases whatever the source holds open.
func Wire(ctx context.Context, cfg *model.AppConfig, getenv func(string) string, logger *zap.Logger) (Deps, io.Closer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	deps := Deps{Config: cfg, Logger: logger}

	token := credential.Lookup(getenv, EnvAIToken, credential.KeyAIToken)
	opts := []api.Option{api.WithSessionID(uuid.NewString())}
	if token != "" {
		opts = append(opts, api.WithToken(token))
	}

	src, err := portfolio.Open(cfg, opts...)
	if err != nil {
		logger.Error("opening portfolio source", zap.String("source", cfg.Data.Source), zap.Error(err))
	} else {
		deps.Source = src
	}

	switch {
	case cfg.AI.Provider == "remote" && cfg.API.BaseURL != "":
		timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
		deps.Responder = ai.NewRemoteResponder(api.NewClient(cfg.API.BaseURL, timeout, opts...))
		logger.Info("ai responder", zap.String("provider", "remote"), zap.String("base_url", cfg.API.BaseURL))

	default:
		key := credential.Lookup(getenv, EnvGeminiAPIKey, credential.KeyGeminiAPIKey)
		if key == "" {
			if cfg.AI.Provider == "gemini" {
				return Deps{}, nil, errors.New("ai.provider is \"gemini\" but no Gemini API key is set")
			}
			logger.Warn("no ai responder configured")
			break
		}
		assistant, err := ai.NewAssistant(ctx, key, cfg.AI.Model, cfg.AI.DailyCredits)
		if err != nil {
			return Deps{}, nil, fmt.Errorf("creating assistant: %w", err)
		}
		deps.Responder = assistant
		deps.Sinks = append(deps.Sinks, assistant)
		logger.Info("ai responder", zap.String("provider", "gemini"), zap.String("model", cfg.AI.Model))
	}

	return deps, closerOf(deps.Source), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func closerOf(src portfolio.Source) io.Closer {
	if c, ok := src.(io.Closer); ok {
		return c
	}
	return nopCloser{}
}

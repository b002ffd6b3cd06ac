package cmd

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/config"
	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/rocketdigital/taskpilot/internal/telemetry"
)

// newEngine builds the suggestion engine. It fails with a MissingError,
// before any network call, when no AI key is configured.
func newEngine(ctx context.Context, cfg *config.AppConfig) (*suggest.Engine, error) {
	if err := cfg.RequireAIKey(); err != nil {
		return nil, err
	}
	provider, err := llm.ValidateProvider(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	chatModel, err := llm.NewChatModel(ctx, llm.Config{
		Provider: provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return suggest.NewEngine(chatModel,
		suggest.WithModelID(cfg.LLM.Model),
		suggest.WithStrictValidation(cfg.Suggest.StrictValidation),
		suggest.WithLogger(slog.Default()),
	), nil
}

// newClickUpService builds the ClickUp service. It fails with a
// MissingError when no token is configured.
func newClickUpService(cfg *config.AppConfig, tracker clickup.Tracker) (*clickup.Service, error) {
	if err := cfg.RequireClickUpToken(); err != nil {
		return nil, err
	}
	client := clickup.NewClient(cfg.ClickUp.BaseURL, cfg.ClickUp.Token,
		clickup.WithTimeout(cfg.ClickUp.Timeout),
		clickup.WithMaxRetries(cfg.ClickUp.MaxRetries),
	)
	opts := []clickup.ServiceOption{
		clickup.WithConventions(cfg.ClickUp.Conventions()),
		clickup.WithLogger(slog.Default()),
	}
	if tracker != nil {
		opts = append(opts, clickup.WithTracker(tracker))
	}
	return clickup.NewService(client, opts...), nil
}

// newTelemetry returns the PostHog client, or a no-op client when
// telemetry is not configured or cannot start.
func newTelemetry(cfg *config.AppConfig) telemetry.Client {
	client, err := telemetry.New(cfg.Telemetry.APIKey, cfg.Telemetry.Endpoint, version)
	if err != nil {
		slog.Warn("telemetry disabled", "error", err)
		return telemetry.NewNoopClient()
	}
	return client
}

// lazy builds a value on first successful use. Failures are not cached, so
// a long-running server picks up a credential once it is configured.
type lazy[T any] struct {
	mu    sync.Mutex
	value T
	ok    bool
	build func(ctx context.Context) (T, error)
}

func (l *lazy[T]) get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ok {
		return l.value, nil
	}
	v, err := l.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.ok = v, true
	return v, nil
}

package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/posthog/posthog-go"
)

// Client records usage events. clickup.Tracker and the HTTP server both
// accept it.
type Client interface {
	Track(event string, properties map[string]any)
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// enqueuer is the part of posthog.Client we use; tests swap in a recorder.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient sends events to PostHog in the background.
type PostHogClient struct {
	enq     enqueuer
	config  *Config
	version string
	closed  atomic.Bool
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	APIKey  string
	Version string
	Config  *Config

	// Endpoint overrides the PostHog cloud endpoint (self-hosted instances).
	Endpoint string
}

// NewPostHogClient creates a PostHog client. Without an APIKey or Config
// the client drops every event.
func NewPostHogClient(cfg ClientConfig) (*PostHogClient, error) {
	c := &PostHogClient{config: cfg.Config, version: cfg.Version}
	if cfg.APIKey == "" || cfg.Config == nil {
		return c, nil
	}

	phConfig := posthog.Config{
		BatchSize: 10,
		// CLI invocations exit quickly; serve flushes on the same cadence.
		Interval: time.Second,
		Endpoint: cfg.Endpoint,
		Logger:   slogPostHogLogger{},
	}
	enq, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}
	c.enq = enq
	return c, nil
}

func newPostHogClientWithEnqueuer(enq enqueuer, cfg *Config, version string) *PostHogClient {
	return &PostHogClient{enq: enq, config: cfg, version: version}
}

// Track enqueues event with the caller's properties plus os, arch and
// taskpilot_version. Events are anonymous: no person profile is created.
func (c *PostHogClient) Track(event string, properties map[string]any) {
	if c.enq == nil || !c.config.IsEnabled() || c.closed.Load() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS).
		Set("arch", runtime.GOARCH).
		Set("taskpilot_version", c.version).
		Set("$process_person_profile", false)

	if err := c.enq.Enqueue(posthog.Capture{
		DistinctId: c.config.AnonymousID,
		Event:      event,
		Properties: props,
	}); err != nil {
		slog.Debug("telemetry event dropped", "event", event, "error", err)
	}
}

// Close flushes pending events. Later Track calls are dropped.
func (c *PostHogClient) Close() error {
	if c.enq == nil || c.closed.Swap(true) {
		return nil
	}
	return c.enq.Close()
}

// NoopClient is a telemetry client that does nothing.
type NoopClient struct{}

func (c *NoopClient) Track(event string, properties map[string]any) {}

func (c *NoopClient) Close() error { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// slogPostHogLogger routes PostHog transport messages to slog at debug
// level so they never reach normal CLI output.
type slogPostHogLogger struct{}

func (slogPostHogLogger) Debugf(format string, args ...any) { debugf(format, args...) }
func (slogPostHogLogger) Logf(format string, args ...any)   { debugf(format, args...) }
func (slogPostHogLogger) Warnf(format string, args ...any)  { debugf(format, args...) }
func (slogPostHogLogger) Errorf(format string, args ...any) { debugf(format, args...) }

func debugf(format string, args ...any) {
	slog.Debug("posthog: " + fmt.Sprintf(format, args...))
}

// New returns a PostHog client when apiKey is set and a NoopClient otherwise.
func New(apiKey, endpoint, version string) (Client, error) {
	if apiKey == "" {
		return NewNoopClient(), nil
	}
	client, err := NewPostHogClient(ClientConfig{
		APIKey:   apiKey,
		Version:  version,
		Config:   NewConfig(true),
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

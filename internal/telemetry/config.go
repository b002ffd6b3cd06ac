// Package telemetry sends anonymous usage events to PostHog. It is enabled
// only when a PostHog project key is configured.
package telemetry

import "github.com/google/uuid"

// Config holds the telemetry state.
type Config struct {
	// Enabled indicates whether events are sent.
	Enabled bool

	// AnonymousID is a random UUID identifying this process.
	// Not tied to any personally identifiable information.
	AnonymousID string
}

// NewConfig returns a Config with a fresh anonymous ID.
func NewConfig(enabled bool) *Config {
	return &Config{Enabled: enabled, AnonymousID: uuid.NewString()}
}

// IsEnabled returns true if telemetry is currently enabled.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}

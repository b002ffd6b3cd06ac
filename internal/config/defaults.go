// Package config provides centralized configuration for taskpilot.
// All default values should be defined here to ensure a single source of truth.
package config

import (
	"time"

	"github.com/rocketdigital/taskpilot/internal/clickup"
)

// EnvPrefix is the prefix viper uses when binding environment variables
// (e.g. TASKPILOT_CLICKUP_TOKEN -> clickup.token).
const EnvPrefix = "TASKPILOT"

// ConfigName is the base name of the optional config file (.taskpilot.yaml).
const ConfigName = ".taskpilot"

// LLM defaults
const (
	// DefaultProvider is the default LLM provider
	DefaultProvider = "gemini"

	// APIKeyPlaceholder is the value shipped in example env files; it counts as "not configured".
	APIKeyPlaceholder = "your_gemini_api_key_here"
)

// ClickUp defaults
const (
	// DefaultClickUpBaseURL is the ClickUp REST API v2 root.
	DefaultClickUpBaseURL = "https://api.clickup.com/api/v2"

	// DefaultWorkspaceName is the workspace the UI operates on.
	DefaultWorkspaceName = clickup.DefaultWorkspaceName

	// DefaultSprintSpace is the space (matched case-insensitively) that holds sprint folders.
	DefaultSprintSpace = clickup.DefaultSprintSpace

	// DefaultSprintFolderKeyword must be contained (case-insensitively) in the sprint folder name.
	DefaultSprintFolderKeyword = clickup.DefaultSprintFolderKeyword

	// DefaultClickUpTimeout bounds every ClickUp HTTP request.
	DefaultClickUpTimeout = 30 * time.Second

	// DefaultClickUpMaxRetries applies to idempotent GET requests only.
	DefaultClickUpMaxRetries = 2

	// ClickUpTokenEnv is the conventional env var for the ClickUp personal token.
	ClickUpTokenEnv = "CLICKUP_API_TOKEN"
)

// Server defaults
const (
	DefaultServerAddr = ":3000"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// DefaultAllowedOrigins are the dev origins allowed by the CORS middleware.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

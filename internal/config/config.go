package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/spf13/viper"
)

// AppConfig is the fully resolved application configuration.
type AppConfig struct {
	LLM       LLMConfig       `mapstructure:"llm"`
	ClickUp   ClickUpConfig   `mapstructure:"clickup"`
	Server    ServerConfig    `mapstructure:"server"`
	Suggest   SuggestConfig   `mapstructure:"suggest"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// LLMConfig selects the completion provider.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=gemini openai anthropic ollama"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"apiKey"`
	BaseURL  string `mapstructure:"baseURL" validate:"omitempty,url"`
}

// ClickUpConfig holds the ClickUp credentials and the naming conventions
// used to locate sprints and the team workspace.
type ClickUpConfig struct {
	Token               string        `mapstructure:"token"`
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	WorkspaceName       string        `mapstructure:"workspace_name" validate:"required"`
	SprintSpace         string        `mapstructure:"sprint_space" validate:"required"`
	SprintFolderKeyword string        `mapstructure:"sprint_folder_keyword" validate:"required"`
	Timeout             time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries          int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SuggestConfig tunes the suggestion engine.
type SuggestConfig struct {
	// StrictValidation rejects AI replies missing required fields.
	StrictValidation bool `mapstructure:"strict_validation"`
}

// TelemetryConfig enables PostHog usage events when APIKey is set.
type TelemetryConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", DefaultProvider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")

	v.SetDefault("clickup.token", "")
	v.SetDefault("clickup.base_url", DefaultClickUpBaseURL)
	v.SetDefault("clickup.workspace_name", DefaultWorkspaceName)
	v.SetDefault("clickup.sprint_space", DefaultSprintSpace)
	v.SetDefault("clickup.sprint_folder_keyword", DefaultSprintFolderKeyword)
	v.SetDefault("clickup.timeout", DefaultClickUpTimeout)
	v.SetDefault("clickup.max_retries", DefaultClickUpMaxRetries)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("suggest.strict_validation", false)

	v.SetDefault("telemetry.api_key", "")
	v.SetDefault("telemetry.endpoint", "")

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Load unmarshals v into an AppConfig, resolves credentials from the
// conventional environment variables and validates the result.
// Missing credentials are not an error here: they are reported per
// operation through RequireAIKey / RequireClickUpToken.
func Load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llm.DefaultModelForProvider(cfg.LLM.Provider)
	} else if err := checkModelProvider(cfg.LLM); err != nil {
		return nil, err
	}
	cfg.LLM.APIKey = ResolveAPIKey(v, cfg.LLM.Provider)
	cfg.ClickUp.Token = ResolveClickUpToken(v)
	cfg.ClickUp.BaseURL = strings.TrimRight(cfg.ClickUp.BaseURL, "/")

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// checkModelProvider rejects a model that clearly belongs to another
// provider. Custom endpoints (baseURL) may serve any model name.
func checkModelProvider(c LLMConfig) error {
	if c.BaseURL != "" {
		return nil
	}
	if owner, ok := llm.InferProvider(c.Model); ok && owner != c.Provider {
		return fmt.Errorf("invalid configuration: model %q belongs to provider %q, not %q", c.Model, owner, c.Provider)
	}
	return nil
}

// RequireAIKey returns a MissingError when no usable AI key is configured.
// Providers that do not authenticate (ollama) always pass.
func (c *AppConfig) RequireAIKey() error {
	if c.LLM.Provider == llm.ProviderOllama {
		return nil
	}
	key := strings.TrimSpace(c.LLM.APIKey)
	if key == "" || key == APIKeyPlaceholder {
		return &MissingError{Key: "llm.apiKey", Env: providerEnvName(c.LLM.Provider)}
	}
	return nil
}

// RequireClickUpToken returns a MissingError when the ClickUp token is absent.
func (c *AppConfig) RequireClickUpToken() error {
	if strings.TrimSpace(c.ClickUp.Token) == "" {
		return &MissingError{Key: "clickup.token", Env: ClickUpTokenEnv}
	}
	return nil
}

// Conventions returns the hierarchy naming conventions for the ClickUp service.
func (c ClickUpConfig) Conventions() clickup.Conventions {
	return clickup.Conventions{
		WorkspaceName:       c.WorkspaceName,
		SprintSpace:         c.SprintSpace,
		SprintFolderKeyword: c.SprintFolderKeyword,
	}
}

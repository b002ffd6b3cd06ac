package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv(ClickUpTokenEnv, "")

	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newTestViper(t)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q, want gemini-2.0-flash", cfg.LLM.Model)
	}
	if cfg.ClickUp.BaseURL != DefaultClickUpBaseURL {
		t.Errorf("base url = %q", cfg.ClickUp.BaseURL)
	}
	if cfg.ClickUp.WorkspaceName != "Rocket Digital" {
		t.Errorf("workspace = %q", cfg.ClickUp.WorkspaceName)
	}
	if cfg.ClickUp.SprintSpace != "tech" || cfg.ClickUp.SprintFolderKeyword != "sprint" {
		t.Errorf("sprint conventions = %q/%q", cfg.ClickUp.SprintSpace, cfg.ClickUp.SprintFolderKeyword)
	}
	if cfg.ClickUp.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.ClickUp.Timeout)
	}
	if cfg.Suggest.StrictValidation {
		t.Error("strict validation should default to false")
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	v := newTestViper(t)
	v.Set("llm.provider", "mistral")

	if _, err := Load(v); err == nil {
		t.Fatal("Load() error = nil, want validation error for unsupported provider")
	}
}

func TestLoad_TrimsBaseURL(t *testing.T) {
	v := newTestViper(t)
	v.Set("clickup.base_url", "http://127.0.0.1:9999/api/v2/")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClickUp.BaseURL != "http://127.0.0.1:9999/api/v2" {
		t.Errorf("base url = %q", cfg.ClickUp.BaseURL)
	}
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GEMINI_API_KEY", "from-env")

	if got := ResolveAPIKey(v, "gemini"); got != "from-env" {
		t.Fatalf("ResolveAPIKey() = %q, want env key", got)
	}

	v.Set("llm.apiKey", "generic")
	if got := ResolveAPIKey(v, "gemini"); got != "generic" {
		t.Fatalf("ResolveAPIKey() = %q, want generic key", got)
	}

	v.Set("llm.apiKeys.gemini", "per-provider")
	if got := ResolveAPIKey(v, "gemini"); got != "per-provider" {
		t.Fatalf("ResolveAPIKey() = %q, want per-provider key", got)
	}
}

func TestResolveAPIKey_GoogleFallback(t *testing.T) {
	v := newTestViper(t)
	t.Setenv("GOOGLE_API_KEY", "google")

	if got := ResolveAPIKey(v, "gemini"); got != "google" {
		t.Fatalf("ResolveAPIKey() = %q, want google", got)
	}
	if got := ResolveAPIKey(v, "openai"); got != "" {
		t.Fatalf("ResolveAPIKey(openai) = %q, want empty", got)
	}
}

func TestRequireAIKey(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		wantErr  bool
	}{
		{name: "configured", provider: "gemini", key: "abc", wantErr: false},
		{name: "missing", provider: "gemini", key: "", wantErr: true},
		{name: "placeholder", provider: "gemini", key: APIKeyPlaceholder, wantErr: true},
		{name: "ollama needs no key", provider: "ollama", key: "", wantErr: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &AppConfig{LLM: LLMConfig{Provider: tc.provider, APIKey: tc.key}}
			err := cfg.RequireAIKey()
			if tc.wantErr {
				if !errors.Is(err, ErrConfigurationMissing) {
					t.Fatalf("RequireAIKey() error = %v, want ErrConfigurationMissing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RequireAIKey() error = %v", err)
			}
		})
	}
}

func TestRequireClickUpToken_FromEnv(t *testing.T) {
	v := newTestViper(t)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.RequireClickUpToken(); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("RequireClickUpToken() error = %v, want ErrConfigurationMissing", err)
	}

	t.Setenv(ClickUpTokenEnv, "pk_123")
	cfg, err = Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.RequireClickUpToken(); err != nil {
		t.Fatalf("RequireClickUpToken() error = %v", err)
	}
	if cfg.ClickUp.Token != "pk_123" {
		t.Fatalf("token = %q", cfg.ClickUp.Token)
	}
}

func TestLoad_ModelProviderMismatch(t *testing.T) {
	v := newTestViper(t)
	v.Set("llm.model", "gpt-4o")

	if _, err := Load(v); err == nil {
		t.Fatal("Load() error = nil, want mismatch between gemini and gpt-4o")
	}

	v.Set("llm.baseURL", "http://127.0.0.1:8080/v1")
	if _, err := Load(v); err != nil {
		t.Fatalf("Load() with custom baseURL error = %v", err)
	}
}

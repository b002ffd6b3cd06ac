package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rocketdigital/taskpilot/internal/llm"
	"github.com/spf13/viper"
)

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, the generic llm.apiKey, then provider-specific env vars.
func ResolveAPIKey(v *viper.Viper, provider string) string {
	keyFromViper := func(path string) string {
		if v.IsSet(path) {
			return strings.TrimSpace(v.GetString(path))
		}
		return ""
	}

	// 1) Per-provider config key (llm.apiKeys.<provider>)
	if key := keyFromViper(fmt.Sprintf("llm.apiKeys.%s", provider)); key != "" {
		return key
	}

	// 2) Generic key (llm.apiKey / TASKPILOT_LLM_APIKEY)
	if key := keyFromViper("llm.apiKey"); key != "" {
		return key
	}

	// 3) Provider-specific env vars
	return providerEnvKey(provider)
}

// ResolveClickUpToken prefers clickup.token and falls back to CLICKUP_API_TOKEN.
func ResolveClickUpToken(v *viper.Viper) string {
	if token := strings.TrimSpace(v.GetString("clickup.token")); token != "" {
		return token
	}
	return strings.TrimSpace(os.Getenv(ClickUpTokenEnv))
}

func providerEnvKey(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}

// providerEnvName names the env var a user should set for provider.
func providerEnvName(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case llm.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

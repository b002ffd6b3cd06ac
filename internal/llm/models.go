package llm

import (
	"sort"
	"strings"
)

// Model describes a chat model known to taskpilot.
type Model struct {
	ID          string   // Canonical model ID (e.g., "gemini-2.0-flash")
	ProviderID  string   // Internal provider ID (e.g., "gemini")
	Aliases     []string // Alternative IDs including dated versions
	InputPer1M  float64  // $ per 1M input tokens
	OutputPer1M float64  // $ per 1M output tokens
	IsDefault   bool     // Whether this is the default model for its provider
}

// ModelRegistry lists the supported models. Prices last updated: 2025-12
var ModelRegistry = []Model{
	// Google Gemini
	{ID: "gemini-2.0-flash", ProviderID: ProviderGemini, Aliases: []string{"gemini-2.0-flash-exp"}, InputPer1M: 0.10, OutputPer1M: 0.40, IsDefault: true},
	{ID: "gemini-2.0-flash-lite", ProviderID: ProviderGemini, InputPer1M: 0.075, OutputPer1M: 0.30},
	{ID: "gemini-2.5-flash", ProviderID: ProviderGemini, InputPer1M: 0.30, OutputPer1M: 2.50},
	{ID: "gemini-2.5-pro", ProviderID: ProviderGemini, InputPer1M: 1.25, OutputPer1M: 10.00},

	// OpenAI
	{ID: "gpt-4o-mini", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}, InputPer1M: 0.15, OutputPer1M: 0.60, IsDefault: true},
	{ID: "gpt-4.1-mini", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4.1-mini-2025-04-14"}, InputPer1M: 0.15, OutputPer1M: 0.60},
	{ID: "gpt-4o", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-2024-08-06"}, InputPer1M: 2.50, OutputPer1M: 10.00},

	// Anthropic
	{ID: "claude-3-5-haiku-latest", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-haiku-20241022"}, InputPer1M: 0.80, OutputPer1M: 4.00, IsDefault: true},
	{ID: "claude-3-5-sonnet-latest", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-sonnet-20241022"}, InputPer1M: 3.00, OutputPer1M: 15.00},

	// Ollama (local, no pricing)
	{ID: "llama3.2", ProviderID: ProviderOllama, IsDefault: true},
}

// modelIndex is built at init time for fast lookups
var modelIndex map[string]*Model

func init() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the model definition for a given model ID or alias.
// Returns nil if the model is not found.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// GetDefaultModelID returns the default model ID for a provider, or "" for
// unknown providers.
func GetDefaultModelID(providerID string) string {
	for _, m := range ModelRegistry {
		if m.ProviderID == providerID && m.IsDefault {
			return m.ID
		}
	}
	return ""
}

// InferProvider attempts to determine the provider from a model name.
// Returns the provider ID and true if inference succeeded.
func InferProvider(modelID string) (string, bool) {
	if m := GetModel(modelID); m != nil {
		return m.ProviderID, true
	}

	switch {
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGemini, true
	case strings.HasPrefix(modelID, "gpt-"), strings.HasPrefix(modelID, "o1-"), strings.HasPrefix(modelID, "o3-"):
		return ProviderOpenAI, true
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(modelID, "llama"), strings.HasPrefix(modelID, "mistral"), strings.HasPrefix(modelID, "phi"):
		return ProviderOllama, true
	}
	return "", false
}

// ModelsForProvider returns the known models of a provider, default first.
func ModelsForProvider(providerID string) []Model {
	var out []Model
	for _, m := range ModelRegistry {
		if m.ProviderID == providerID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CalculateCost calculates cost in USD for token usage.
func CalculateCost(modelID string, inputTokens, outputTokens int) float64 {
	m := GetModel(modelID)
	if m == nil {
		return 0
	}
	return float64(inputTokens)/1_000_000*m.InputPer1M + float64(outputTokens)/1_000_000*m.OutputPer1M
}

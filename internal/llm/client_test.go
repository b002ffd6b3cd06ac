package llm

import (
	"context"
	"strings"
	"testing"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "case insensitive", provider: " Gemini ", want: ProviderGemini},
		{name: "invalid provider", provider: "bedrock", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ValidateProvider(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestDefaultModelForProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{provider: "gemini", want: "gemini-2.0-flash"},
		{provider: "openai", want: "gpt-4o-mini"},
		{provider: "anthropic", want: "claude-3-5-haiku-latest"},
		{provider: "ollama", want: "llama3.2"},
		{provider: "unknown", want: ""},
		{provider: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := DefaultModelForProvider(tt.provider); got != tt.want {
				t.Errorf("DefaultModelForProvider(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}

func TestNewChatModel_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "gemini requires API key",
			cfg:     Config{Provider: ProviderGemini},
			wantErr: "gemini API key is required",
		},
		{
			name:    "openai requires API key",
			cfg:     Config{Provider: ProviderOpenAI, Model: "gpt-4o"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "anthropic requires API key",
			cfg:     Config{Provider: ProviderAnthropic},
			wantErr: "anthropic API key is required",
		},
		{
			name:    "unsupported provider",
			cfg:     Config{Provider: "unknown", APIKey: "key"},
			wantErr: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModel(ctx, tt.cfg)
			if err == nil {
				t.Fatalf("NewChatModel() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewChatModel() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewChatModel_OllamaNeedsNoKey(t *testing.T) {
	cm, err := NewChatModel(context.Background(), Config{Provider: ProviderOllama})
	if err != nil {
		t.Fatalf("NewChatModel(ollama) error = %v", err)
	}
	if cm == nil {
		t.Fatal("NewChatModel(ollama) returned nil model")
	}
}

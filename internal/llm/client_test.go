// ABOUTME: Tests for the Therapist factory
// ABOUTME: Key requirements per provider, no network calls
package llm

import (
	"testing"

	"mindvault/internal/config"
	"mindvault/internal/models"
)

func factoryConfig(t *testing.T, p models.Provider) *config.Config {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	cfg := config.Default(t.TempDir())
	cfg.Provider = p
	return cfg
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	cfg := factoryConfig(t, models.ProviderOpenAI)

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}

	cfg.APIKeys["OpenAI"] = "sk-test"
	therapist, err := New(cfg)
	if err != nil {
		t.Fatalf("New with key: %v", err)
	}
	if _, ok := therapist.(*openAITherapist); !ok {
		t.Errorf("got %T, want *openAITherapist", therapist)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	cfg := factoryConfig(t, models.ProviderGemini)

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for missing Gemini key")
	}
}

func TestNewOllamaNeedsNoKey(t *testing.T) {
	cfg := factoryConfig(t, models.ProviderOllama)

	therapist, err := New(cfg)
	if err != nil {
		t.Fatalf("New for Ollama: %v", err)
	}
	if _, ok := therapist.(*openAITherapist); !ok {
		t.Errorf("got %T, want *openAITherapist (OpenAI-compatible endpoint)", therapist)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := factoryConfig(t, models.Provider(42))

	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

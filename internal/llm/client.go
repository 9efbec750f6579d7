// ABOUTME: Therapist is the boundary to the external text-generation backends
// ABOUTME: Provider failures come back as errors; the vault never sees them
package llm

import (
	"context"
	"fmt"

	"mindvault/internal/config"
	"mindvault/internal/models"
)

// Therapist generates therapeutic responses and clinical notes from
// vault context. Calls are synchronous; failures (network, auth, rate
// limit) are returned as errors for the caller to surface as text.
type Therapist interface {
	// GenerateResponse produces a reply to userMessage in the style of
	// the given approach, grounded in the caller-supplied context.
	GenerateResponse(ctx context.Context, approach models.Approach, profile models.Profile,
		entries []models.JournalEntry, notes []models.Note, userMessage string) (string, error)

	// GenerateNotes produces clinical notes for a finished session
	// transcript.
	GenerateNotes(ctx context.Context, approach models.Approach, profile models.Profile,
		entries []models.JournalEntry, notes []models.Note, transcript string) (string, error)
}

// New builds the Therapist for the configured provider.
func New(cfg *config.Config) (Therapist, error) {
	switch cfg.Provider {
	case models.ProviderOpenAI:
		key := cfg.APIKey(models.ProviderOpenAI)
		if key == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return newOpenAITherapist(key, "", cfg), nil
	case models.ProviderOllama:
		// Ollama exposes an OpenAI-compatible endpoint; same client,
		// different base URL, no key.
		return newOpenAITherapist("ollama", cfg.OllamaBaseURL, cfg), nil
	case models.ProviderGemini:
		key := cfg.APIKey(models.ProviderGemini)
		if key == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return newGeminiTherapist(context.Background(), key, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %v", cfg.Provider)
	}
}

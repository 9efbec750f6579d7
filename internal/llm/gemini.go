// ABOUTME: Gemini therapist client via the Google GenAI SDK
// ABOUTME: Same retry shape as the OpenAI client, different transport
package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"mindvault/internal/config"
	"mindvault/internal/models"
	"mindvault/internal/util"
)

type geminiTherapist struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

func newGeminiTherapist(ctx context.Context, apiKey string, cfg *config.Config) (*geminiTherapist, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &geminiTherapist{
		client:     client,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

func (t *geminiTherapist) GenerateResponse(ctx context.Context, approach models.Approach, profile models.Profile,
	entries []models.JournalEntry, notes []models.Note, userMessage string) (string, error) {
	system, user := sessionPrompts(approach, profile, entries, notes, userMessage)
	return t.generate(ctx, system, user)
}

func (t *geminiTherapist) GenerateNotes(ctx context.Context, approach models.Approach, profile models.Profile,
	entries []models.JournalEntry, notes []models.Note, transcript string) (string, error) {
	system, user := notesPrompts(approach, profile, notes, transcript)
	return t.generate(ctx, system, user)
}

func (t *geminiTherapist) generate(ctx context.Context, system, user string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(util.CalculateBackoff(t.retryDelay, attempt)):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, t.timeout)
		resp, err := t.client.Models.GenerateContent(callCtx, t.model,
			genai.Text(user),
			&genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			},
		)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		text := resp.Text()
		if text == "" {
			lastErr = fmt.Errorf("attempt %d: empty response", attempt+1)
			continue
		}

		return cleanResponse(text), nil
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", t.maxRetries+1, lastErr)
}

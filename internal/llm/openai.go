// ABOUTME: OpenAI-protocol therapist client with retry and backoff
// ABOUTME: Serves both OpenAI and Ollama (OpenAI-compatible local endpoint)
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"mindvault/internal/config"
	"mindvault/internal/models"
	"mindvault/internal/util"
)

const responseMaxTokens = 4000
const notesMaxTokens = 2000

// openAITherapist talks to any OpenAI-protocol chat endpoint.
type openAITherapist struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// newOpenAITherapist builds a client. An empty baseURL targets the
// OpenAI API; otherwise it targets a compatible server such as Ollama.
func newOpenAITherapist(apiKey, baseURL string, cfg *config.Config) *openAITherapist {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &openAITherapist{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

func (t *openAITherapist) GenerateResponse(ctx context.Context, approach models.Approach, profile models.Profile,
	entries []models.JournalEntry, notes []models.Note, userMessage string) (string, error) {
	system, user := sessionPrompts(approach, profile, entries, notes, userMessage)
	return t.complete(ctx, system, user, responseMaxTokens)
}

func (t *openAITherapist) GenerateNotes(ctx context.Context, approach models.Approach, profile models.Profile,
	entries []models.JournalEntry, notes []models.Note, transcript string) (string, error) {
	system, user := notesPrompts(approach, profile, notes, transcript)
	return t.complete(ctx, system, user, notesMaxTokens)
}

// complete runs one chat completion with retries.
func (t *openAITherapist) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
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
		resp, err := t.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: t.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			MaxTokens: maxTokens,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return cleanResponse(resp.Choices[0].Message.Content), nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", t.maxRetries+1, lastErr)
}

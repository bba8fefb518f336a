// Package gemini implements the generation.Generator interface using
// Google's Gemini API as the completion provider.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/mamyzabawki/descgen-api/internal/generation"
)

// modelCaller performs one generation request and returns the raw response
// text. The seam lets tests exercise the retry loop without the SDK.
type modelCaller interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Generator wraps a Gemini client with the same bounded-retry contract as
// the OpenAI provider. The SDK hides HTTP status codes, so every call error
// is treated as transient; an answer without content is terminal.
type Generator struct {
	caller modelCaller
	retry  generation.RetryPolicy
	logger *slog.Logger
}

// genaiCaller is the production modelCaller backed by the genai SDK.
type genaiCaller struct {
	client *genai.Client
	model  string
	cfg    *genai.GenerateContentConfig
}

func (c genaiCaller) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewGenerator creates a Gemini-backed generator. It fails when the API key
// is empty; a missing credential is a configuration error.
func NewGenerator(ctx context.Context, apiKey, model string, retry generation.RetryPolicy, logger *slog.Logger) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", generation.ErrInvalidConfig)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		caller: genaiCaller{
			client: client,
			model:  model,
			cfg: &genai.GenerateContentConfig{
				Temperature:       genai.Ptr[float32](0.3),
				MaxOutputTokens:   1500,
				SystemInstruction: genai.NewContentFromText(generation.SystemInstruction, genai.RoleUser),
			},
		},
		retry:  retry.Normalize(),
		logger: logger,
	}, nil
}

// Generate sends the prompt and returns the generated HTML with code-fence
// artifacts stripped. A response that arrives without content is terminal:
// the provider answered, so further attempts would spend the retry budget on
// a non-transient condition.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= g.retry.MaxAttempts; attempt++ {
		text, err := g.caller.generate(ctx, prompt)
		if err == nil {
			if text == "" {
				return "", fmt.Errorf("%w: no content in response", generation.ErrInvalidResponse)
			}
			return generation.StripCodeFence(text), nil
		}
		lastErr = err

		g.logger.Warn("completion attempt failed",
			"attempt", attempt,
			"max_attempts", g.retry.MaxAttempts,
			"error", err)

		if attempt == g.retry.MaxAttempts {
			break
		}

		select {
		case <-time.After(g.retry.Delay(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v",
		generation.ErrNoResponse, g.retry.MaxAttempts, lastErr)
}

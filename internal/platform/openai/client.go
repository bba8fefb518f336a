// Package openai implements the generation.Generator interface against the
// OpenAI chat-completions REST API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mamyzabawki/descgen-api/internal/generation"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client calls the chat-completions endpoint with bounded retry. Any
// transport error or non-2xx status is treated as retryable; the upstream
// gives no reliable signal to distinguish permanent client errors, so the
// source behavior of retrying everything is preserved.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	retry      generation.RetryPolicy
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Intended for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// NewClient creates a completion client for the given model. It fails when
// the API key is empty; a missing credential is a configuration error and
// must not be retried at request time.
func NewClient(apiKey, model string, timeout time.Duration, retry generation.RetryPolicy, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", generation.ErrInvalidConfig)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		retry:      retry.Normalize(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt and returns the generated HTML with code-fence
// artifacts stripped. Each failed attempt is logged; after exhausting the
// retry policy the last error is wrapped in generation.ErrNoResponse.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		text, err := c.call(ctx, prompt)
		if err == nil {
			return generation.StripCodeFence(text), nil
		}
		lastErr = err

		c.logger.Warn("completion attempt failed",
			"attempt", attempt,
			"max_attempts", c.retry.MaxAttempts,
			"error", err)

		if attempt == c.retry.MaxAttempts {
			break
		}

		select {
		case <-time.After(c.retry.Delay(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %v",
		generation.ErrNoResponse, c.retry.MaxAttempts, lastErr)
}

// call performs one request against the chat-completions endpoint.
func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("completion provider returned status %d: %s",
			resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no content in response", generation.ErrInvalidResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}

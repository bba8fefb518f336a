// Package shoper is a minimal client for the Shoper storefront REST API:
// token authentication plus per-identifier product retrieval.
package shoper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrAuthFailed is returned when the platform rejects the credentials.
// Authentication failure is fatal for the whole batch; it is never retried.
var ErrAuthFailed = errors.New("shoper authentication failed")

// Client talks to one Shoper instance. The base URL is derived from the
// shop name unless overridden (tests point it at a local server).
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the derived API base URL. Intended for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// NewClient creates a client for the given shop. Credentials are passed per
// call; one Client may serve requests for different users of the same shop.
func NewClient(shop string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://%s.shoparena.pl/webapi/rest", shop),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate exchanges the user credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context, user, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build auth request: %w", err)
	}
	req.SetBasicAuth(user, password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed auth response: %v", ErrAuthFailed, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthFailed)
	}

	return body.AccessToken, nil
}

// FetchProducts retrieves one product record per identifier, sequentially
// and in input order. A failed fetch is logged and skipped, so the result
// may be shorter than ids; the order of successful records is preserved.
func (c *Client) FetchProducts(ctx context.Context, token string, ids []string) []Product {
	products := make([]Product, 0, len(ids))
	for _, id := range ids {
		product, err := c.fetchProduct(ctx, token, id)
		if err != nil {
			c.logger.Warn("failed to fetch product, skipping",
				"product_id", id,
				"error", err)
			continue
		}
		products = append(products, product)
	}
	return products
}

func (c *Client) fetchProduct(ctx context.Context, token, id string) (Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+id, nil)
	if err != nil {
		return Product{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return Product{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return Product{}, fmt.Errorf("malformed product record: %w", err)
	}
	if product.ProductID.String() == "" {
		product.ProductID = json.Number(id)
	}

	return product, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package completion

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultTimeout is the default timeout for completion requests.
	// Model inference is slow; this needs headroom.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// defaultRequestsPerMinute bounds how fast the client will hit the
	// backend, regardless of how fast the user types.
	defaultRequestsPerMinute = 30
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all completion requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common completion failures.
var (
	// ErrNotConfigured indicates the endpoint URL is not set.
	ErrNotConfigured = errors.New("completion endpoint not configured")

	// ErrEmptyPrompt indicates the prompt was blank.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrServerError indicates a non-2xx response from the backend.
	ErrServerError = errors.New("completion server error")

	// ErrBadResponse indicates the backend replied with an unparseable body.
	ErrBadResponse = errors.New("malformed completion response")
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Inputs string `json:"inputs"`
}

// chatResponse is the reply from POST /chat.
type chatResponse struct {
	Response string `json:"response"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the chat completion backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRequestsPerMinute overrides the request rate limit.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
	}
}

// NewClient creates a completion client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(float64(defaultRequestsPerMinute)/60.0), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the prompt to POST /chat and returns the model's reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{Inputs: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	// SECURITY: Never log request or response bodies.
	log.Printf("[completion] POST /chat status=%d elapsed=%s",
		resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return parsed.Response, nil
}

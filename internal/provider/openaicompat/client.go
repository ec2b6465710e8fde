// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openaicompat implements the OpenAI-compatible chat
// completions transport shared by the OpenAI, Mistral, and xAI
// adapters. The vendors differ only in base URL and credential; the
// request shape, the model listing endpoint, and the SSE stream
// grammar are identical.
package openaicompat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jeranaias/chaterm/internal/chat"
)

// =============================================================================
// HTTP CLIENTS
// =============================================================================

// DefaultTimeout bounds non-streaming requests such as model listing.
const DefaultTimeout = 60 * time.Second

var (
	// Shared pooled client for non-streaming requests.
	sharedHTTPClient = &http.Client{
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

	// Streaming requests carry no client timeout; cancellation and
	// deadlines are controlled through the request context.
	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
)

// =============================================================================
// ERRORS
// =============================================================================

// APIError is a non-2xx response from an OpenAI-compatible endpoint.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
}

// =============================================================================
// CLIENT
// =============================================================================

// Config holds the per-vendor parameters of the compatible transport.
type Config struct {
	// Name is the vendor display name, used in error messages.
	Name string

	// BaseURL is the API root including version prefix, without a
	// trailing slash (e.g. "https://api.openai.com/v1").
	BaseURL string

	// APIKey is the bearer credential.
	APIKey string

	// HTTPClient overrides the shared pooled client (tests).
	HTTPClient *http.Client

	// StreamClient overrides the shared streaming client (tests).
	StreamClient *http.Client
}

// Client speaks the OpenAI-compatible wire protocol for one vendor.
// It implements chat.Transport.
type Client struct {
	name         string
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a client for one vendor endpoint.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = sharedHTTPClient
	}
	streamClient := cfg.StreamClient
	if streamClient == nil {
		streamClient = sharedStreamingClient
	}
	return &Client{
		name:         cfg.Name,
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		httpClient:   httpClient,
		streamClient: streamClient,
	}
}

// =============================================================================
// MODEL LISTING
// =============================================================================

// ListModels fetches the vendor's model catalog. Identifiers are
// returned as received; the adapter applies ordering.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var result modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	ids := make([]string, 0, len(result.Data))
	for _, m := range result.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// Open starts a streaming chat completion over the full history,
// implementing chat.Transport. The returned reader yields the text
// deltas in wire order.
func (c *Client) Open(ctx context.Context, model string, history []chat.Message) (chat.FragmentReader, error) {
	reqBody := chatRequest{
		Model:    model,
		Messages: chat.ToRecords(history),
		Stream:   true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}

	return newStreamReader(resp.Body), nil
}

// readAPIError decodes a vendor error payload, falling back to the
// HTTP status when the body is not the expected shape.
func readAPIError(resp *http.Response) error {
	var apiErr apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    apiErr.Error.Code,
			Message: apiErr.Error.Message,
		}
	}
	return &APIError{Status: resp.StatusCode, Message: resp.Status}
}

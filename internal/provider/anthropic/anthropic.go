// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package anthropic adapts the Anthropic Messages API to the provider
// contract. Anthropic is not OpenAI-compatible: authentication uses the
// x-api-key header, streaming uses typed SSE events, and the request
// requires an explicit max_tokens.
package anthropic

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/chaterm/internal/chat"
	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/provider/sse"
)

const (
	// Name is the display name used in listings.
	Name = "Anthropic"

	// CredentialVar holds the API key.
	CredentialVar = "ANTHROPIC_API_KEY"

	defaultBaseURL = "https://api.anthropic.com/v1"

	// apiVersion is the pinned Messages API revision.
	apiVersion = "2023-06-01"

	// maxTokens caps the response length. The Messages API rejects
	// requests without it.
	maxTokens = 8192
)

// =============================================================================
// HTTP CLIENTS
// =============================================================================

var (
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
		Timeout: 60 * time.Second,
	}

	// No client timeout for streams; the request context governs.
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
// ADAPTER
// =============================================================================

// Adapter implements provider.Provider for Anthropic.
type Adapter struct {
	baseURL      string
	creds        provider.Credentials
	httpClient   *http.Client
	streamClient *http.Client
}

// Option customizes the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API root (tests).
func WithBaseURL(url string) Option {
	return func(a *Adapter) { a.baseURL = url }
}

// WithHTTPClients overrides both HTTP clients (tests).
func WithHTTPClients(plain, streaming *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = plain
		a.streamClient = streaming
	}
}

// New returns the Anthropic provider adapter.
func New(creds provider.Credentials, opts ...Option) *Adapter {
	a := &Adapter{
		baseURL:      defaultBaseURL,
		creds:        creds,
		httpClient:   sharedHTTPClient,
		streamClient: sharedStreamingClient,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the vendor display name.
func (a *Adapter) Name() string { return Name }

// CredentialVar returns the environment variable the API key is
// resolved from.
func (a *Adapter) CredentialVar() string { return CredentialVar }

// Configured reports whether the credential is present.
func (a *Adapter) Configured() bool { return a.creds.Get(CredentialVar) != "" }

// setHeaders applies Anthropic authentication and versioning.
func (a *Adapter) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", a.creds.Get(CredentialVar))
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
}

// Models returns the current model catalog, sorted and deduplicated.
func (a *Adapter) Models(ctx context.Context) ([]string, error) {
	if !a.Configured() {
		return nil, &provider.CredentialError{Var: CredentialVar}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/models", nil)
	if err != nil {
		return nil, &provider.ListingError{Provider: Name, Err: err}
	}
	a.setHeaders(req)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &provider.ListingError{Provider: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.ListingError{Provider: Name, Err: readAPIError(resp)}
	}

	var result modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &provider.ListingError{Provider: Name, Err: fmt.Errorf("failed to decode model list: %w", err)}
	}

	ids := make([]string, 0, len(result.Data))
	for _, m := range result.Data {
		ids = append(ids, m.ID)
	}
	return provider.SortModels(ids), nil
}

// NewSession validates model against the live catalog and constructs a
// streaming chat session for it.
func (a *Adapter) NewSession(ctx context.Context, model string) (chat.Session, error) {
	models, err := a.Models(ctx)
	if err != nil {
		return nil, err
	}
	if !provider.ContainsModel(models, model) {
		return nil, &provider.ModelError{Provider: Name, Model: model}
	}
	return chat.NewEngine(model, &transport{adapter: a}), nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// transport implements chat.Transport over the Messages API.
type transport struct {
	adapter *Adapter
}

// Open starts a streaming messages request over the full history.
func (t *transport) Open(ctx context.Context, model string, history []chat.Message) (chat.FragmentReader, error) {
	a := t.adapter

	reqBody := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  chat.ToRecords(history),
		Stream:    true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.streamClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}

	return &streamReader{body: resp.Body, events: sse.NewReader(resp.Body)}, nil
}

// readAPIError decodes an Anthropic error payload, falling back to the
// HTTP status when the body is not the expected shape.
func readAPIError(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("api error [%s] (HTTP %d): %s", envelope.Error.Type, resp.StatusCode, envelope.Error.Message)
	}
	return fmt.Errorf("api error (HTTP %d): %s", resp.StatusCode, resp.Status)
}

// =============================================================================
// STREAM READER
// =============================================================================

// streamReader adapts the typed Messages SSE grammar to the
// chat.FragmentReader contract. Only content_block_delta events carry
// text; message_stop ends the stream.
type streamReader struct {
	body   io.ReadCloser
	events *sse.Reader
}

// Next returns the next non-empty text delta.
func (r *streamReader) Next() (string, error) {
	for {
		eventType, data, err := r.events.ReadEvent()
		if err != nil {
			return "", err
		}

		switch eventType {
		case "content_block_delta":
			var event deltaEvent
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}
			if event.Delta.Text != "" {
				return event.Delta.Text, nil
			}

		case "message_stop":
			return "", io.EOF

		case "error":
			var envelope errorEnvelope
			if err := json.Unmarshal(data, &envelope); err != nil {
				return "", fmt.Errorf("stream error: %s", data)
			}
			return "", fmt.Errorf("stream error [%s]: %s", envelope.Error.Type, envelope.Error.Message)
		}
		// message_start, content_block_start, content_block_stop,
		// message_delta, ping: nothing to surface.
	}
}

// Close releases the underlying response body.
func (r *streamReader) Close() error {
	return r.body.Close()
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// messagesRequest is the body for POST /messages.
type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chat.Record `json:"messages"`
	Stream    bool          `json:"stream"`
}

// deltaEvent is a content_block_delta payload.
type deltaEvent struct {
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

// modelsResponse is the body of GET /models.
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// errorEnvelope is the error shape shared by HTTP errors and in-stream
// error events.
type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chaterm/internal/chat"
)

// newTestClient points a Client at a fake vendor server.
func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		Name:         "Test",
		BaseURL:      srv.URL + "/v1",
		APIKey:       "sk-test",
		HTTPClient:   srv.Client(),
		StreamClient: srv.Client(),
	})
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[{"id":"gpt-4o"},{"id":"gpt-4o-mini"}]}`)
	}))
	defer srv.Close()

	ids, err := newTestClient(srv).ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, ids)
}

func TestListModels_AuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":"invalid_api_key","message":"Incorrect API key provided"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListModels(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid_api_key", apiErr.Code)
	assert.Contains(t, apiErr.Message, "Incorrect API key")
}

func TestOpen_StreamsDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		// The request carries the full history and the streaming flag.
		var gotReq chatRequest
		body, _ := io.ReadAll(r.Body)
		if assert.NoError(t, json.Unmarshal(body, &gotReq)) {
			assert.Equal(t, "gpt-4o", gotReq.Model)
			assert.True(t, gotReq.Stream)
			if assert.Len(t, gotReq.Messages, 1) {
				assert.Equal(t, "user", gotReq.Messages[0].Role)
				assert.Equal(t, "hi", gotReq.Messages[0].Content)
			}
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	history := []chat.Message{chat.NewUserMessage("hi")}
	reader, err := newTestClient(srv).Open(context.Background(), "gpt-4o", history)
	require.NoError(t, err)
	defer reader.Close()

	// Role-only and finish_reason-only chunks are skipped.
	frag, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "Hel", frag)

	frag, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "lo", frag)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpen_HTTPErrorBeforeStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"The model does not exist"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Open(context.Background(), "bogus", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestOpen_InStreamErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"par\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"overloaded\"}}\n\n")
	}))
	defer srv.Close()

	reader, err := newTestClient(srv).Open(context.Background(), "m", nil)
	require.NoError(t, err)
	defer reader.Close()

	frag, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "par", frag)

	_, err = reader.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestOpen_EOFWithoutDoneIsNormalStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"done\"}}]}\n\n")
	}))
	defer srv.Close()

	reader, err := newTestClient(srv).Open(context.Background(), "m", nil)
	require.NoError(t, err)
	defer reader.Close()

	frag, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "done", frag)

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaicompat

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/jeranaias/chaterm/internal/provider/sse"
)

// =============================================================================
// STREAM READER
// =============================================================================

// streamReader adapts the SSE chat completions stream to the
// chat.FragmentReader contract: one text delta per Next call, io.EOF
// on the terminal "[DONE]" marker.
type streamReader struct {
	body   io.ReadCloser
	events *sse.Reader
}

func newStreamReader(body io.ReadCloser) *streamReader {
	return &streamReader{
		body:   body,
		events: sse.NewReader(body),
	}
}

// Next returns the next non-empty text delta. Empty deltas (the
// role-announcing first chunk, finish_reason-only chunks) are skipped
// rather than forwarded as empty fragments.
func (r *streamReader) Next() (string, error) {
	for {
		_, data, err := r.events.ReadEvent()
		if err != nil {
			// Connection closed without the DONE marker: the server
			// ended the response, treat it as a normal stop.
			if err == io.EOF {
				return "", io.EOF
			}
			return "", err
		}

		if string(data) == "[DONE]" {
			return "", io.EOF
		}

		// In-stream error envelopes (sent by some compatible vendors).
		var errEnvelope apiErrorResponse
		if json.Unmarshal(data, &errEnvelope) == nil && errEnvelope.Error.Message != "" {
			return "", errors.New(errEnvelope.Error.Message)
		}

		var chunk streamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			// Skip malformed keep-alive payloads.
			continue
		}

		if content := chunk.content(); content != "" {
			return content, nil
		}
	}
}

// Close releases the underlying response body. Closing an in-flight
// body aborts the transfer, which is exactly what cancellation wants.
func (r *streamReader) Close() error {
	return r.body.Close()
}

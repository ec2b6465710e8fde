// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaicompat

import "github.com/jeranaias/chaterm/internal/chat"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// chatRequest is the body for POST /chat/completions. The message
// array is the canonical {role, content} record sequence - the full
// history is submitted on every turn.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chat.Record `json:"messages"`
	Stream   bool          `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// streamChunk is one SSE data payload of a streaming completion.
type streamChunk struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
			Role    string `json:"role,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// content returns the text delta of the first choice.
func (c *streamChunk) content() string {
	if len(c.Choices) > 0 {
		return c.Choices[0].Delta.Content
	}
	return ""
}

// modelsResponse is the body of GET /models.
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// apiErrorResponse is the error envelope shared by the compatible
// vendors.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

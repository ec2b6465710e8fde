// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mistral adapts the Mistral AI API to the provider contract.
// Mistral speaks the OpenAI-compatible wire protocol.
package mistral

import (
	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/provider/openaicompat"
)

const (
	// Name is the display name used in listings.
	Name = "Mistral"

	// CredentialVar holds the API key.
	CredentialVar = "MISTRAL_API_KEY"

	baseURL = "https://api.mistral.ai/v1"
)

// New returns the Mistral provider adapter.
func New(creds provider.Credentials) *openaicompat.Adapter {
	return openaicompat.NewAdapter(Name, CredentialVar, baseURL, creds)
}

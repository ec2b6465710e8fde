// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai adapts the OpenAI API to the provider contract.
package openai

import (
	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/provider/openaicompat"
)

const (
	// Name is the display name used in listings.
	Name = "OpenAI"

	// CredentialVar holds the API key.
	CredentialVar = "OPENAI_API_KEY"

	baseURL = "https://api.openai.com/v1"
)

// New returns the OpenAI provider adapter.
func New(creds provider.Credentials) *openaicompat.Adapter {
	return openaicompat.NewAdapter(Name, CredentialVar, baseURL, creds)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package xai adapts the xAI API to the provider contract. xAI speaks
// the OpenAI-compatible wire protocol.
package xai

import (
	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/provider/openaicompat"
)

const (
	// Name is the display name used in listings.
	Name = "xAI"

	// CredentialVar holds the API key.
	CredentialVar = "XAI_API_KEY"

	baseURL = "https://api.x.ai/v1"
)

// New returns the xAI provider adapter.
func New(creds provider.Credentials) *openaicompat.Adapter {
	return openaicompat.NewAdapter(Name, CredentialVar, baseURL, creds)
}

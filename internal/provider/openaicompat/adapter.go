// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaicompat

import (
	"context"

	"github.com/jeranaias/chaterm/internal/chat"
	"github.com/jeranaias/chaterm/internal/provider"
)

// =============================================================================
// SHARED ADAPTER
// =============================================================================

// Adapter implements provider.Provider for any OpenAI-compatible
// vendor. The vendor packages supply the three constants that differ.
type Adapter struct {
	name    string
	credVar string
	baseURL string
	creds   provider.Credentials
}

// NewAdapter builds a provider adapter for one compatible vendor.
func NewAdapter(name, credVar, baseURL string, creds provider.Credentials) *Adapter {
	return &Adapter{
		name:    name,
		credVar: credVar,
		baseURL: baseURL,
		creds:   creds,
	}
}

// Name returns the vendor display name.
func (a *Adapter) Name() string { return a.name }

// CredentialVar returns the environment variable the API key is
// resolved from.
func (a *Adapter) CredentialVar() string { return a.credVar }

// Configured reports whether the credential is present.
func (a *Adapter) Configured() bool { return a.creds.Get(a.credVar) != "" }

// client builds the wire client for the current credential. Built per
// call so a credential change between calls is picked up.
func (a *Adapter) client() *Client {
	return NewClient(Config{
		Name:    a.name,
		BaseURL: a.baseURL,
		APIKey:  a.creds.Get(a.credVar),
	})
}

// Models returns the vendor's catalog, sorted and deduplicated.
func (a *Adapter) Models(ctx context.Context) ([]string, error) {
	if !a.Configured() {
		return nil, &provider.CredentialError{Var: a.credVar}
	}
	ids, err := a.client().ListModels(ctx)
	if err != nil {
		return nil, &provider.ListingError{Provider: a.name, Err: err}
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
		return nil, &provider.ModelError{Provider: a.name, Model: model}
	}
	return chat.NewEngine(model, a.client()), nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"sort"

	"github.com/jeranaias/chaterm/internal/chat"
)

// =============================================================================
// CREDENTIALS
// =============================================================================

// Credentials maps credential variable names (e.g. "OPENAI_API_KEY")
// to their resolved values. The outermost caller builds this from the
// environment and the config file; adapters only ever read from it.
type Credentials map[string]string

// Get returns the credential for the given variable name, or "" when
// unset.
func (c Credentials) Get(varName string) string {
	return c[varName]
}

// =============================================================================
// PROVIDER CONTRACT
// =============================================================================

// Provider is one vendor adapter. Adapters are stateless with respect
// to conversations: one adapter spawns any number of sessions.
type Provider interface {
	// Name is the display name used in listings ("OpenAI").
	Name() string

	// CredentialVar is the environment variable the credential is
	// resolved from ("OPENAI_API_KEY").
	CredentialVar() string

	// Configured reports whether a credential is present. It says
	// nothing about whether the remote service will accept it.
	Configured() bool

	// Models returns the vendor's current model identifiers in
	// ascending lexicographic order with no duplicates. Fails with a
	// CredentialError when unconfigured and a ListingError when the
	// remote call errors.
	Models(ctx context.Context) ([]string, error)

	// NewSession validates model against Models (case-sensitive exact
	// match) and constructs a chat session for it. Fails with a
	// ModelError for an unknown model and a CredentialError when
	// unconfigured - credentials are re-checked on every call.
	NewSession(ctx context.Context, model string) (chat.Session, error)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// SortModels returns the identifiers sorted ascending with duplicates
// removed. The ordering is load-bearing: listing output must be
// deterministic.
func SortModels(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ContainsModel reports whether model is in the sorted identifier list.
// Matching is case-sensitive and exact.
func ContainsModel(models []string, model string) bool {
	i := sort.SearchStrings(models, model)
	return i < len(models) && models[i] == model
}

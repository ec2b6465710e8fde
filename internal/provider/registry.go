// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"sort"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the fixed, known set of adapters and derives the
// subset that is currently usable. It caches nothing: availability is
// recomputed on demand so credential changes between invocations are
// honored.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry over the given adapters.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// All returns every known adapter, configured or not, sorted by
// display name for deterministic listing output.
func (r *Registry) All() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	sortByName(out)
	return out
}

// Available returns the adapters whose credential is currently
// resolvable, sorted by display name. Zero available providers is a
// valid result, not an error.
func (r *Registry) Available() []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Configured() {
			out = append(out, p)
		}
	}
	sortByName(out)
	return out
}

// ProviderFor resolves a model identifier to the available adapter
// that serves it. Adapters whose listing fails are skipped; when no
// adapter owns the model, a ModelError is returned, joined with any
// listing failures encountered so the user sees why a provider could
// not be consulted.
func (r *Registry) ProviderFor(ctx context.Context, model string) (Provider, error) {
	var listingErrs []error
	for _, p := range r.Available() {
		models, err := p.Models(ctx)
		if err != nil {
			listingErrs = append(listingErrs, err)
			continue
		}
		if ContainsModel(models, model) {
			return p, nil
		}
	}

	err := error(&ModelError{Model: model})
	if len(listingErrs) > 0 {
		err = errors.Join(append([]error{err}, listingErrs...)...)
	}
	return nil, err
}

func sortByName(providers []Provider) {
	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Name() < providers[j].Name()
	})
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR SENTINELS
// =============================================================================

// Sentinel errors for easy checking with errors.Is. Each kind calls for
// a different remediation, so they are surfaced distinctly.
var (
	// ErrCredentialMissing means the adapter's environment variable is
	// unset. A normal, expected condition - the user sets the variable.
	ErrCredentialMissing = errors.New("credential not set")

	// ErrModelNotFound means the requested model is not in the
	// adapter's current catalog. Reported to the user, never retried.
	ErrModelNotFound = errors.New("model not found")

	// ErrListingFailed means the remote model enumeration failed.
	// Distinct from a missing credential: the variable is set but the
	// call errored, so the user may retry or report.
	ErrListingFailed = errors.New("model listing failed")
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CredentialError reports which environment variable must be set.
type CredentialError struct {
	Var string
}

// Error implements the error interface.
func (e *CredentialError) Error() string {
	return e.Var + " environment variable not set"
}

// Unwrap makes errors.Is(err, ErrCredentialMissing) work.
func (e *CredentialError) Unwrap() error {
	return ErrCredentialMissing
}

// ModelError reports a model the adapter does not serve.
type ModelError struct {
	Provider string
	Model    string
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("invalid model %q for %s", e.Model, e.Provider)
	}
	return fmt.Sprintf("invalid model %q", e.Model)
}

// Unwrap makes errors.Is(err, ErrModelNotFound) work.
func (e *ModelError) Unwrap() error {
	return ErrModelNotFound
}

// ListingError reports a failed model enumeration with its cause.
type ListingError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ListingError) Error() string {
	return fmt.Sprintf("%s: listing models: %v", e.Provider, e.Err)
}

// Unwrap exposes both the listing-failed kind and the underlying cause
// to errors.Is / errors.As.
func (e *ListingError) Unwrap() []error {
	return []error{ErrListingFailed, e.Err}
}

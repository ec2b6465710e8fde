// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog assembles the fixed set of vendor adapters into a
// registry. It exists above the provider package so vendor packages can
// depend on the provider contract without a cycle.
package catalog

import (
	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/provider/anthropic"
	"github.com/jeranaias/chaterm/internal/provider/mistral"
	"github.com/jeranaias/chaterm/internal/provider/openai"
	"github.com/jeranaias/chaterm/internal/provider/xai"
)

// CredentialVars lists the environment variables the adapters read,
// used by the outermost caller to resolve credentials up front.
var CredentialVars = []string{
	anthropic.CredentialVar,
	mistral.CredentialVar,
	openai.CredentialVar,
	xai.CredentialVar,
}

// Default returns the registry of all known vendor adapters wired to
// the given credentials. The set is fixed at build time; availability
// is a property of the credentials, not of registration.
func Default(creds provider.Credentials) *provider.Registry {
	return provider.NewRegistry(
		anthropic.New(creds),
		mistral.New(creds),
		openai.New(creds),
		xai.New(creds),
	)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider defines the vendor adapter contract and the
// registry that exposes configured adapters as a uniform catalog.
//
// Each vendor package (openai, anthropic, mistral, xai) implements
// Provider and translates between the core chat model and its wire
// format at the boundary; vendor types never leak out of the adapters.
//
// Credentials are resolved by the outermost caller into an explicit
// Credentials map and injected at construction. Adapters never read
// the environment themselves, which keeps credential handling testable
// without environment mutation.
package provider

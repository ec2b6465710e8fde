// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for chaterm.
//
// Configuration lives at ~/.chaterm/config.toml. Every setting has a
// sensible default; the file is optional.
//
// # Key Types
//
//   - Config: the full configuration structure
//
// # Configuration Precedence
//
// Credentials resolve from (in order of precedence):
//   - Environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY, ...)
//   - The [credentials] table in ~/.chaterm/config.toml
//
// # Usage
//
// Load configuration and resolve credentials:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	creds := cfg.ResolveCredentials(catalog.CredentialVars, os.Getenv)
package config

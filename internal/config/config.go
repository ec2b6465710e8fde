// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chaterm configuration.
type Config struct {
	// DefaultModel is used when no model argument is given.
	DefaultModel string `toml:"default_model"`

	// Plain disables markdown rendering even on a TTY.
	Plain bool `toml:"plain"`

	// TranscriptDir overrides the transcript directory
	// (default ~/.chaterm/transcripts).
	TranscriptDir string `toml:"transcript_dir"`

	// Credentials maps credential variable names to API keys, used
	// only when the environment variable is unset.
	Credentials map[string]string `toml:"credentials"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DefaultModel: "",
		Plain:        false,
		Credentials:  map[string]string{},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the chaterm configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chaterm"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ensureSecurePermissions checks and fixes permissions on the config
// file. It may carry API keys, so anything wider than 0600 is
// tightened.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file, falling back to defaults when it does
// not exist. A file that exists but fails to parse is an error; a
// silently ignored typo would be worse than a loud one.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the config from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if cfg.Credentials == nil {
		cfg.Credentials = map[string]string{}
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file with 0600
// permissions.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# chaterm configuration file")
	fmt.Fprintln(file, "# Credentials here are a fallback; environment variables win.")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// CREDENTIAL RESOLUTION
// =============================================================================

// ResolveCredentials resolves each variable name environment-first,
// then from the config's [credentials] table. Unset variables are
// omitted from the result.
func (c *Config) ResolveCredentials(vars []string, lookup func(string) string) map[string]string {
	creds := make(map[string]string, len(vars))
	for _, v := range vars {
		if value := lookup(v); value != "" {
			creds[v] = value
			continue
		}
		if value := c.Credentials[v]; value != "" {
			creds[v] = value
		}
	}
	return creds
}

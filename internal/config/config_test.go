// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.DefaultModel != "" {
		t.Errorf("DefaultModel = %q, want empty", cfg.DefaultModel)
	}
	if cfg.Plain {
		t.Error("Plain should default to false")
	}
	if cfg.Credentials == nil {
		t.Error("Credentials map should be initialized")
	}
}

func TestLoadFromPath_FullFile(t *testing.T) {
	path := writeConfig(t, `
default_model = "gpt-4o"
plain = true
transcript_dir = "/tmp/transcripts"

[credentials]
OPENAI_API_KEY = "sk-from-file"
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.DefaultModel != "gpt-4o" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if !cfg.Plain {
		t.Error("Plain = false, want true")
	}
	if cfg.TranscriptDir != "/tmp/transcripts" {
		t.Errorf("TranscriptDir = %q", cfg.TranscriptDir)
	}
	if cfg.Credentials["OPENAI_API_KEY"] != "sk-from-file" {
		t.Errorf("Credentials = %v", cfg.Credentials)
	}
}

func TestLoadFromPath_MalformedFileIsError(t *testing.T) {
	path := writeConfig(t, "default_model = [broken")

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromPath_TightensPermissions(t *testing.T) {
	path := writeConfig(t, `default_model = "x"`)
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestResolveCredentials_EnvWins(t *testing.T) {
	cfg := &Config{
		Credentials: map[string]string{
			"OPENAI_API_KEY":    "file-key",
			"ANTHROPIC_API_KEY": "file-anthropic",
		},
	}

	env := map[string]string{"OPENAI_API_KEY": "env-key"}
	lookup := func(v string) string { return env[v] }

	vars := []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "XAI_API_KEY"}
	creds := cfg.ResolveCredentials(vars, lookup)

	if creds["OPENAI_API_KEY"] != "env-key" {
		t.Errorf("OPENAI_API_KEY = %q, want env value", creds["OPENAI_API_KEY"])
	}
	if creds["ANTHROPIC_API_KEY"] != "file-anthropic" {
		t.Errorf("ANTHROPIC_API_KEY = %q, want file fallback", creds["ANTHROPIC_API_KEY"])
	}
	if _, ok := creds["XAI_API_KEY"]; ok {
		t.Error("unset variable should be omitted")
	}
}

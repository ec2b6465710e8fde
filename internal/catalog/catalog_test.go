// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"testing"

	"github.com/jeranaias/chaterm/internal/provider"
)

func TestDefault_KnownAdapters(t *testing.T) {
	reg := Default(provider.Credentials{})

	all := reg.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 adapters, got %d", len(all))
	}

	want := []string{"Anthropic", "Mistral", "OpenAI", "xAI"}
	for i, p := range all {
		if p.Name() != want[i] {
			t.Errorf("adapter %d = %q, want %q", i, p.Name(), want[i])
		}
	}
}

func TestDefault_AvailabilityFollowsCredentials(t *testing.T) {
	reg := Default(provider.Credentials{"OPENAI_API_KEY": "sk"})

	available := reg.Available()
	if len(available) != 1 {
		t.Fatalf("expected 1 available adapter, got %d", len(available))
	}
	if available[0].Name() != "OpenAI" {
		t.Errorf("available = %q", available[0].Name())
	}
}

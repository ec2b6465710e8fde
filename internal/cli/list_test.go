// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/chaterm/internal/chat"
	"github.com/jeranaias/chaterm/internal/provider"
)

type fakeProvider struct {
	name       string
	credVar    string
	configured bool
	models     []string
	listErr    error
}

func (p *fakeProvider) Name() string          { return p.name }
func (p *fakeProvider) CredentialVar() string { return p.credVar }
func (p *fakeProvider) Configured() bool      { return p.configured }

func (p *fakeProvider) Models(ctx context.Context) ([]string, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.models, nil
}

func (p *fakeProvider) NewSession(ctx context.Context, model string) (chat.Session, error) {
	return nil, errors.New("not implemented")
}

func TestRunList(t *testing.T) {
	reg := provider.NewRegistry(
		&fakeProvider{name: "Zeta", credVar: "ZETA_API_KEY"},
		&fakeProvider{name: "Alpha", configured: true, models: []string{"alpha-large", "alpha-small"}},
		&fakeProvider{name: "Mid", configured: true, listErr: errors.New("upstream down")},
	)

	out := &bytes.Buffer{}
	if err := RunList(context.Background(), reg, out); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	text := out.String()

	// Providers appear sorted by display name.
	alpha := strings.Index(text, "Alpha")
	mid := strings.Index(text, "Mid")
	zeta := strings.Index(text, "Zeta")
	if alpha == -1 || mid == -1 || zeta == -1 || !(alpha < mid && mid < zeta) {
		t.Errorf("provider order wrong:\n%s", text)
	}

	if !strings.Contains(text, "  alpha-large\n") || !strings.Contains(text, "  alpha-small\n") {
		t.Errorf("models missing:\n%s", text)
	}
	if !strings.Contains(text, "credential not set (ZETA_API_KEY)") {
		t.Errorf("unconfigured annotation missing:\n%s", text)
	}
	if !strings.Contains(text, "upstream down") {
		t.Errorf("listing failure not reported:\n%s", text)
	}
}

func TestRunList_EmptyRegistry(t *testing.T) {
	out := &bytes.Buffer{}
	if err := RunList(context.Background(), provider.NewRegistry(), out); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

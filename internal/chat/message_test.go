// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
)

func TestRoleDisplayName(t *testing.T) {
	if got := RoleUser.DisplayName(); got != "You" {
		t.Errorf("RoleUser.DisplayName() = %q, want %q", got, "You")
	}
	if got := RoleAssistant.DisplayName(); got != "Assistant" {
		t.Errorf("RoleAssistant.DisplayName() = %q, want %q", got, "Assistant")
	}
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"human", RoleUser, false},
		{"assistant", RoleAssistant, false},
		{"model", RoleAssistant, false},
		{"bot", RoleAssistant, false},
		{"system", "", true},
		{"", "", true},
		{"User", "", true}, // case-sensitive
	}

	for _, tt := range tests {
		got, err := NormalizeRole(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeRole(%q): expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeRole(%q): unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	messages := []Message{
		NewUserMessage("hello"),
		NewAssistantMessage("hi there"),
		NewAssistantMessage(""), // empty output is a valid turn
		NewUserMessage("multi\nline\ncontent"),
		NewUserMessage("unicode: héllo wörld 日本語 🎉"),
	}

	for _, m := range messages {
		got, err := FromRecord(m.ToRecord())
		if err != nil {
			t.Errorf("FromRecord(ToRecord(%+v)) error: %v", m, err)
			continue
		}
		if got != m {
			t.Errorf("round trip changed message: got %+v, want %+v", got, m)
		}
	}
}

func TestFromRecord_SynonymNormalization(t *testing.T) {
	m, err := FromRecord(Record{Role: "human", Content: "hi"})
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if m.Role != RoleUser {
		t.Errorf("role = %q, want %q", m.Role, RoleUser)
	}
	if !m.FromUser() {
		t.Error("FromUser() = false for normalized human role")
	}
}

func TestFromRecords_InvalidRoleAborts(t *testing.T) {
	records := []Record{
		{Role: "user", Content: "ok"},
		{Role: "wizard", Content: "nope"},
	}
	if _, err := FromRecords(records); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestToRecords_PreservesOrder(t *testing.T) {
	history := []Message{
		NewUserMessage("first"),
		NewAssistantMessage("second"),
		NewUserMessage("third"),
	}

	records := ToRecords(history)
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	for i, want := range []string{"first", "second", "third"} {
		if records[i].Content != want {
			t.Errorf("records[%d].Content = %q, want %q", i, records[i].Content, want)
		}
	}

	back, err := FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords failed: %v", err)
	}
	for i := range history {
		if back[i] != history[i] {
			t.Errorf("history[%d] changed across round trip", i)
		}
	}
}

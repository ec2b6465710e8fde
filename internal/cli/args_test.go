// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    Args
		wantErr bool
	}{
		{name: "empty shows help", raw: nil, want: Args{Cmd: CmdHelp}},
		{name: "chat with model", raw: []string{"chat", "gpt-4o"}, want: Args{Cmd: CmdChat, Model: "gpt-4o"}},
		{name: "chat without model", raw: []string{"chat"}, want: Args{Cmd: CmdChat}},
		{name: "chat with extra args", raw: []string{"chat", "a", "b"}, wantErr: true},
		{name: "list", raw: []string{"list"}, want: Args{Cmd: CmdList}},
		{name: "list with args", raw: []string{"list", "x"}, wantErr: true},
		{name: "plain before command", raw: []string{"--plain", "chat", "m"}, want: Args{Cmd: CmdChat, Model: "m", Plain: true}},
		{name: "plain after command", raw: []string{"chat", "m", "--plain"}, want: Args{Cmd: CmdChat, Model: "m", Plain: true}},
		{name: "version flag", raw: []string{"--version"}, want: Args{Cmd: CmdVersion}},
		{name: "version command", raw: []string{"version"}, want: Args{Cmd: CmdVersion}},
		{name: "help flag", raw: []string{"-h"}, want: Args{Cmd: CmdHelp}},
		{name: "help command", raw: []string{"help"}, want: Args{Cmd: CmdHelp}},
		{name: "unknown flag", raw: []string{"--bogus"}, wantErr: true},
		{name: "unknown command", raw: []string{"frobnicate"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseArgs(%v) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs(%v) failed: %v", tt.raw, err)
			}
			if *got != tt.want {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.raw, *got, tt.want)
			}
		})
	}
}

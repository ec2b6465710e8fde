// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// COMMAND LINE PARSING
// =============================================================================

// Command identifies one top-level chaterm command.
type Command int

const (
	CmdHelp Command = iota
	CmdChat
	CmdList
	CmdVersion
)

// Args is the parsed command line.
type Args struct {
	Cmd   Command
	Model string // model identifier for CmdChat; empty falls back to config
	Plain bool   // disable markdown rendering
}

// ParseArgs parses the raw arguments (os.Args[1:]). Flags may appear
// anywhere; the first positional argument selects the command. An empty
// command line shows help rather than failing.
func ParseArgs(raw []string) (*Args, error) {
	args := &Args{Cmd: CmdHelp}

	var positional []string
	for _, arg := range raw {
		switch {
		case arg == "--plain":
			args.Plain = true
		case arg == "--help" || arg == "-h":
			args.Cmd = CmdHelp
			return args, nil
		case arg == "--version":
			args.Cmd = CmdVersion
			return args, nil
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return args, nil
	}

	switch positional[0] {
	case "chat":
		args.Cmd = CmdChat
		if len(positional) > 2 {
			return nil, fmt.Errorf("chat takes at most one model argument")
		}
		if len(positional) == 2 {
			args.Model = positional[1]
		}
	case "list":
		args.Cmd = CmdList
		if len(positional) > 1 {
			return nil, fmt.Errorf("list takes no arguments")
		}
	case "help":
		args.Cmd = CmdHelp
	case "version":
		args.Cmd = CmdVersion
	default:
		return nil, fmt.Errorf("unknown command: %s", positional[0])
	}

	return args, nil
}

// Usage returns the top-level help text.
func Usage() string {
	return `chaterm - terminal client for hosted LLM chat

Usage:
  chaterm chat [model]   Start an interactive chat session
  chaterm list           List providers and their models
  chaterm help           Show this help
  chaterm version        Show version information

Flags:
  --plain                Disable markdown rendering (stream raw text)

The model argument may be omitted when default_model is set in
~/.chaterm/config.toml. Credentials are read from the environment
(ANTHROPIC_API_KEY, MISTRAL_API_KEY, OPENAI_API_KEY, XAI_API_KEY),
falling back to the [credentials] table in the config file.
`
}

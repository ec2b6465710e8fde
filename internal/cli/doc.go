// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the interactive chat
// loop for chaterm.
//
// # Key Types
//
//   - Command: enumeration of the top-level commands
//   - Args: parsed command-line arguments
//   - Renderer: markdown-or-raw output policy for assistant turns
//
// # Usage
//
// Parse and dispatch:
//
//	args, err := cli.ParseArgs(os.Args[1:])
//	switch args.Cmd {
//	case cli.CmdChat:
//	    return cli.RunChat(ctx, session, store, args.Plain)
//	case cli.CmdList:
//	    return cli.RunList(ctx, registry, os.Stdout)
//	}
//
// # Output Behavior
//
// On a TTY, assistant responses are collected and rendered as markdown.
// When output is piped or --plain is given, fragments stream through
// verbatim as they arrive. Colors respect NO_COLOR and FORCE_COLOR.
package cli

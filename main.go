// chaterm - a terminal client for hosted LLM chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/chaterm/internal/catalog"
	"github.com/jeranaias/chaterm/internal/cli"
	"github.com/jeranaias/chaterm/internal/config"
	"github.com/jeranaias/chaterm/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", cli.ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func run() error {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, cli.Usage())
		return err
	}

	switch args.Cmd {
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
		return nil
	case cli.CmdVersion:
		fmt.Printf("chaterm %s (%s)\n", Version, GitCommit)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	creds := cfg.ResolveCredentials(catalog.CredentialVars, os.Getenv)
	registry := catalog.Default(creds)
	ctx := context.Background()

	switch args.Cmd {
	case cli.CmdList:
		return cli.RunList(ctx, registry, os.Stdout)
	case cli.CmdChat:
		model := args.Model
		if model == "" {
			model = cfg.DefaultModel
		}
		if model == "" {
			return errors.New("no model given and no default_model configured; run 'chaterm list' to see what is available")
		}

		if len(registry.Available()) == 0 {
			return fmt.Errorf("no provider credentials set; export one of %s or add it to the config [credentials] table",
				strings.Join(catalog.CredentialVars, ", "))
		}

		p, err := registry.ProviderFor(ctx, model)
		if err != nil {
			return err
		}
		session, err := p.NewSession(ctx, model)
		if err != nil {
			return err
		}

		var store *storage.TranscriptStore
		if cfg.TranscriptDir != "" {
			store, err = storage.NewTranscriptStoreWithDir(cfg.TranscriptDir)
		} else {
			store, err = storage.NewTranscriptStore()
		}
		if err != nil {
			return err
		}

		return cli.RunChat(ctx, session, store, args.Plain || cfg.Plain)
	}
	return nil
}

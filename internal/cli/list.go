// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chaterm/internal/provider"
	"github.com/jeranaias/chaterm/internal/util"
)

// =============================================================================
// MODEL LISTING
// =============================================================================

// RunList prints every known provider with its model catalog.
// Unconfigured providers are listed too, annotated instead of hidden,
// so the user can see what one environment variable would unlock. A
// provider whose listing call fails is reported inline and never hides
// the others.
func RunList(ctx context.Context, reg *provider.Registry, out io.Writer) error {
	providers := reg.All()

	nameWidth := 0
	for _, p := range providers {
		if w := runewidth.StringWidth(p.Name()); w > nameWidth {
			nameWidth = w
		}
	}
	annotationWidth := GetTerminalWidth() - nameWidth - 2

	for i, p := range providers {
		if i > 0 {
			fmt.Fprintln(out)
		}

		if !p.Configured() {
			annotation := fmt.Sprintf("credential not set (%s)", p.CredentialVar())
			fmt.Fprintf(out, "%s%s\n", util.PadRight(p.Name(), nameWidth+2), DimStyle.Render(annotation))
			continue
		}

		models, err := p.Models(ctx)
		if err != nil {
			// Joined listing errors can span lines; keep the annotation
			// on one.
			annotation := util.TruncateWidth(util.CollapseNewlines(fmt.Sprintf("listing failed: %v", err)), annotationWidth)
			fmt.Fprintf(out, "%s%s\n", util.PadRight(p.Name(), nameWidth+2), ErrorStyle.Render(annotation))
			continue
		}

		fmt.Fprintln(out, TitleStyle.Render(p.Name()))
		for _, m := range models {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}
	return nil
}

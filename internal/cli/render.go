// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// ASSISTANT OUTPUT RENDERING
// =============================================================================

// Renderer decides how assistant turns reach the terminal. On a TTY the
// response is collected and rendered as markdown; piped output and
// --plain mode pass the text through verbatim.
type Renderer struct {
	markdown *glamour.TermRenderer
}

// NewRenderer creates a renderer for the current terminal. Markdown is
// only enabled when stdout is a TTY and plain mode is off; a failure to
// construct the glamour renderer silently degrades to raw output.
func NewRenderer(plain bool) *Renderer {
	if plain || !IsStdoutTTY() {
		return &Renderer{}
	}

	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{markdown: md}
}

// Markdown reports whether assistant turns are rendered as markdown.
// When false, fragments should be streamed raw as they arrive.
func (r *Renderer) Markdown() bool {
	return r.markdown != nil
}

// Assistant renders one complete assistant turn. Render failures fall
// back to the raw text rather than losing the response.
func (r *Renderer) Assistant(text string) string {
	if r.markdown == nil {
		return text
	}
	out, err := r.markdown.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

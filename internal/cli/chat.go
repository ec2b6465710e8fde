// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/chaterm/internal/chat"
	"github.com/jeranaias/chaterm/internal/config"
	"github.com/jeranaias/chaterm/internal/storage"
)

// =============================================================================
// INTERACTIVE CHAT LOOP
// =============================================================================

const (
	// Prompt is the user input prompt.
	Prompt = ">>> "

	// multiLineFence opens and closes multi-line input.
	multiLineFence = `"""`
)

const replHelp = `Commands:
  /clear        Drop the conversation and start fresh
  /save <name>  Save the conversation as a named transcript
  /load <name>  Load a named transcript, replacing the conversation
  /help, /?     Show this help
  /bye          Exit (Ctrl-D works too)

Start a line with """ to open multi-line input; close it with """.
`

// repl is one interactive chat loop. Input and confirmation are
// injected so the command handling can be exercised without a terminal.
type repl struct {
	session  chat.Session
	store    *storage.TranscriptStore
	renderer *Renderer
	out      io.Writer
	prompt   func(prompt string) (string, error)
	confirm  func(question string) bool
}

// RunChat runs the interactive chat loop over the given session until
// the user exits. Line editing history persists under the config
// directory across invocations.
func RunChat(ctx context.Context, session chat.Session, store *storage.TranscriptStore, plain bool) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := lineHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	r := &repl{
		session:  session,
		store:    store,
		renderer: NewRenderer(plain),
		out:      os.Stdout,
		prompt: func(p string) (string, error) {
			text, err := line.Prompt(p)
			if err == nil && strings.TrimSpace(text) != "" {
				line.AppendHistory(text)
			}
			return text, err
		},
		confirm: PromptYesNo,
	}

	fmt.Fprintln(r.out, DimStyle.Render(fmt.Sprintf("Chatting with %s. Type /? for help.", session.Model())))

	err := r.loop(ctx)

	if historyPath != "" {
		if f, werr := os.Create(historyPath); werr == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return err
}

// lineHistoryPath returns the liner history file path, or "" when the
// config directory is unavailable. History is a convenience; its loss
// never blocks the chat.
func lineHistoryPath() string {
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func (r *repl) loop(ctx context.Context) error {
	for {
		input, err := r.readInput()
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out)
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := r.handleCommand(input); quit {
				return nil
			}
			continue
		}

		r.send(ctx, input)
	}
}

// =============================================================================
// INPUT HANDLING
// =============================================================================

// readInput reads one logical input, which may span multiple physical
// lines between """ fences. Fenced lines keep their internal newlines;
// the result is trimmed at both ends.
func (r *repl) readInput() (string, error) {
	line, err := r.prompt(Prompt)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(line, multiLineFence) {
		return strings.TrimSpace(line), nil
	}

	first := strings.TrimPrefix(line, multiLineFence)
	if first != "" && strings.HasSuffix(first, multiLineFence) {
		// Opened and closed on the same line.
		return strings.TrimSpace(strings.TrimSuffix(first, multiLineFence)), nil
	}

	lines := []string{first}
	for {
		next, err := r.prompt("")
		if err != nil {
			return "", err
		}
		if strings.HasSuffix(next, multiLineFence) {
			lines = append(lines, strings.TrimSuffix(next, multiLineFence))
			break
		}
		lines = append(lines, next)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// handleCommand dispatches one /command line. It returns true when the
// loop should exit.
func (r *repl) handleCommand(input string) (quit bool) {
	defer fmt.Fprintln(r.out)

	fields := strings.Fields(input)
	switch fields[0] {
	case "/bye":
		return true
	case "/clear":
		if err := r.session.Clear(); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(r.out, "Cleared conversation.")
	case "/save":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "Usage: /save <name>")
			return false
		}
		r.save(fields[1])
	case "/load":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "Usage: /load <name>")
			return false
		}
		r.load(fields[1])
	case "/help", "/?":
		fmt.Fprint(r.out, replHelp)
	default:
		fmt.Fprintf(r.out, "Unknown command: '%s'. Type /? for help.\n", fields[0])
	}
	return false
}

func (r *repl) save(name string) {
	exists, err := r.store.Exists(name)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if exists && !r.confirm(fmt.Sprintf("Transcript '%s' already exists. Overwrite?", name)) {
		return
	}

	if err := r.store.Save(name, r.session.History()); err != nil {
		if errors.Is(err, storage.ErrEmptyHistory) {
			fmt.Fprintln(r.out, "Nothing to save.")
			return
		}
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Saved conversation to '%s'.\n", name)
}

func (r *repl) load(name string) {
	history, err := r.store.Load(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(r.out, "Transcript '%s' does not exist.\n", name)
			return
		}
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	if len(r.session.History()) > 0 && !r.confirm("Overwrite current conversation?") {
		return
	}
	if err := r.session.Load(history); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.printConversation(history)
}

// printConversation re-prints a loaded conversation so the user sees
// what they are continuing from.
func (r *repl) printConversation(history []chat.Message) {
	for _, m := range history {
		if m.FromUser() {
			fmt.Fprintf(r.out, "\n%s%s\n", Prompt, m.Content)
		} else {
			fmt.Fprintln(r.out, r.renderer.Assistant(m.Content))
		}
	}
}

// =============================================================================
// SENDING AND STREAMING
// =============================================================================

// send submits one user turn and drains the response. Ctrl-C during
// streaming cancels the request; the conversation keeps the user turn
// as a trailing unanswered message.
func (r *repl) send(ctx context.Context, text string) {
	defer fmt.Fprintln(r.out)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	stream, err := r.session.Send(ctx, text)
	if err != nil {
		r.reportStreamError(err)
		return
	}

	if r.renderer.Markdown() {
		r.drainRendered(stream)
		return
	}
	r.drainRaw(stream)
}

// drainRaw prints fragments as they arrive.
func (r *repl) drainRaw(stream *chat.Stream) {
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return
		}
		if err != nil {
			fmt.Fprintln(r.out)
			r.reportStreamError(err)
			return
		}
		fmt.Fprint(r.out, frag)
	}
}

// drainRendered collects the full response, then renders it as
// markdown in one piece. On failure any partial content is printed raw
// so nothing the model said is lost.
func (r *repl) drainRendered(stream *chat.Stream) {
	for {
		_, err := stream.Recv()
		if err == io.EOF {
			fmt.Fprintln(r.out, r.renderer.Assistant(stream.Text()))
			return
		}
		if err != nil {
			var se *chat.StreamError
			if errors.As(err, &se) && se.Partial != "" {
				fmt.Fprintln(r.out, se.Partial)
			}
			r.reportStreamError(err)
			return
		}
	}
}

func (r *repl) reportStreamError(err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(r.out, DimStyle.Render("(interrupted)"))
		return
	}
	fmt.Fprintf(r.out, "%s %v\n", ErrorStyle.Render("Error:"), err)
}

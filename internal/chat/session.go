// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionBusy is returned when Send, Clear, or Load is called while
// a response is still streaming. The call is rejected immediately,
// never queued, and session state is left unchanged.
var ErrSessionBusy = errors.New("session busy: a response is still streaming")

// =============================================================================
// TRANSPORT CONTRACT
// =============================================================================

// Transport opens one streaming completion call against a vendor API.
// The full history is submitted on every turn; no server-side memory is
// assumed. Implementations live in the provider packages and never leak
// vendor types into this package.
type Transport interface {
	// Open starts a streaming request and returns a reader of text
	// fragments. Open blocks until the response begins or fails.
	Open(ctx context.Context, model string, history []Message) (FragmentReader, error)
}

// FragmentReader delivers the text deltas of one streaming response in
// transport order. Next returns io.EOF when the stream ends normally.
type FragmentReader interface {
	Next() (string, error)
	Close() error
}

// historyResetter is implemented by transports that keep conversation
// state server-side. Clear and Load invoke it so no stale context leaks
// into subsequent turns.
type historyResetter interface {
	ResetHistory()
}

// =============================================================================
// SESSION CONTRACT
// =============================================================================

// Session is one live, stateful conversation bound to a single model
// and an exclusively owned transport handle.
type Session interface {
	// Model returns the model identifier the session was created for.
	Model() string

	// History returns a snapshot of the conversation, oldest first.
	History() []Message

	// Send appends a user message and opens a streaming response.
	// The user message is recorded before any I/O is attempted and is
	// never retracted, even when the call fails.
	Send(ctx context.Context, text string) (*Stream, error)

	// Clear resets the history to empty. Only legal while idle.
	Clear() error

	// Load replaces the history wholesale. Only legal while idle.
	Load(history []Message) error
}

// =============================================================================
// ENGINE - THE SHARED STATE MACHINE
// =============================================================================

// Engine implements Session once, for every vendor. It owns the
// history, enforces the Idle/Streaming state machine, and delegates the
// wire work to its Transport. At most one request is in flight per
// engine; concurrent Send calls fail fast with ErrSessionBusy.
type Engine struct {
	mu        sync.Mutex
	id        string
	model     string
	transport Transport
	history   []Message
	streaming bool
}

// NewEngine creates a session for the given model over the given
// transport. The transport handle is owned exclusively by the engine.
func NewEngine(model string, transport Transport) *Engine {
	return &Engine{
		id:        uuid.NewString(),
		model:     model,
		transport: transport,
	}
}

// ID returns the unique session identifier.
func (e *Engine) ID() string {
	return e.id
}

// Model returns the model identifier.
func (e *Engine) Model() string {
	return e.model
}

// History returns a snapshot of the conversation, oldest first.
func (e *Engine) History() []Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Message, len(e.history))
	copy(out, e.history)
	return out
}

// Streaming reports whether a request is currently in flight.
func (e *Engine) Streaming() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streaming
}

// Send transitions the session from Idle to Streaming. The user
// message is appended before the transport is touched, so a failed call
// still records the user's intent as a trailing unanswered turn.
func (e *Engine) Send(ctx context.Context, text string) (*Stream, error) {
	e.mu.Lock()
	if e.streaming {
		e.mu.Unlock()
		return nil, ErrSessionBusy
	}
	e.history = append(e.history, NewUserMessage(text))
	e.streaming = true
	// Snapshot under the lock; the transport must not observe later
	// history mutations.
	snapshot := make([]Message, len(e.history))
	copy(snapshot, e.history)
	e.mu.Unlock()

	fragments, err := e.transport.Open(ctx, e.model, snapshot)
	if err != nil {
		e.finish(false, "")
		return nil, &StreamError{Err: err}
	}

	return &Stream{engine: e, fragments: fragments}, nil
}

// Clear resets the history to empty. It fails with ErrSessionBusy while
// a response is streaming, and also resets any server-side conversation
// handle the transport may hold.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streaming {
		return ErrSessionBusy
	}
	e.history = nil
	if r, ok := e.transport.(historyResetter); ok {
		r.ResetHistory()
	}
	return nil
}

// Load replaces the history wholesale with the provided sequence, so
// future turns see exactly the provided history and nothing more.
func (e *Engine) Load(history []Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streaming {
		return ErrSessionBusy
	}
	e.history = make([]Message, len(history))
	copy(e.history, history)
	if r, ok := e.transport.(historyResetter); ok {
		r.ResetHistory()
	}
	return nil
}

// Close releases the transport handle if it holds resources.
func (e *Engine) Close() error {
	if c, ok := e.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// finish returns the engine to Idle. On a clean end the accumulated
// content becomes one assistant message; empty output is a valid turn
// and still produces a message. On failure nothing is appended.
func (e *Engine) finish(ok bool, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ok {
		e.history = append(e.history, NewAssistantMessage(content))
	}
	e.streaming = false
}

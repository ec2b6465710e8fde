// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// STREAM ERROR
// =============================================================================

// StreamError reports a streaming call that failed before or during
// generation, preserving any partial content received before the
// failure. The triggering user message stays in history and the session
// is already back to Idle when this error surfaces.
type StreamError struct {
	Partial string // Content received before the error
	Err     error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("stream failed (partial content received: %d chars): %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("stream failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// =============================================================================
// STREAM
// =============================================================================

// Stream is the lazy, finite, non-restartable sequence of text
// fragments produced by Send. Recv is the session's only suspension
// point: it blocks the caller until the next fragment, normal
// termination (io.EOF), or a failure is available. Fragments are
// forwarded verbatim in transport order, never reordered or buffered
// beyond what the transport delivers.
type Stream struct {
	engine    *Engine
	fragments FragmentReader
	buf       strings.Builder
	done      bool
}

// Recv returns the next text fragment. It returns io.EOF when the
// stream ends normally, at which point the assistant message has been
// appended to history. Any other error means the stream failed; the
// session is back to Idle with no assistant message appended.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	frag, err := s.fragments.Next()
	if err == io.EOF {
		s.done = true
		s.fragments.Close()
		s.engine.finish(true, s.buf.String())
		return "", io.EOF
	}
	if err != nil {
		s.done = true
		s.fragments.Close()
		s.engine.finish(false, "")
		return "", &StreamError{Partial: s.buf.String(), Err: err}
	}

	s.buf.WriteString(frag)
	return frag, nil
}

// Text returns the content accumulated so far.
func (s *Stream) Text() string {
	return s.buf.String()
}

// Close aborts the stream. An aborted stream counts as failed: the
// transport is released, the session returns to Idle, and no assistant
// message is appended. Close after normal completion is a no-op.
func (s *Stream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	err := s.fragments.Close()
	s.engine.finish(false, "")
	return err
}

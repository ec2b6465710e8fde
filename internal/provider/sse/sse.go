// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sse parses Server-Sent Events streams as delivered by the
// LLM vendor APIs.
package sse

import (
	"bufio"
	"bytes"
	"io"
)

// Reader parses Server-Sent Events from a stream.
type Reader struct {
	reader *bufio.Reader
}

// NewReader creates an SSE reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReaderSize(r, 64*1024)}
}

// ReadEvent reads the next SSE event, returning its event type (often
// empty) and data payload. Multiple data: lines are joined with "\n"
// per the SSE spec. Returns io.EOF when the stream ends.
func (r *Reader) ReadEvent() (string, []byte, error) {
	var eventType string
	var dataLines [][]byte

	for {
		line, err := r.reader.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				line = bytes.TrimRight(line, "\r\n")
				if data, ok := dataPayload(line); ok {
					dataLines = append(dataLines, data)
				}
			}
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Blank line terminates the event.
		if len(line) == 0 {
			if len(dataLines) == 0 {
				continue
			}
			return eventType, bytes.Join(dataLines, []byte("\n")), nil
		}

		// Comment line.
		if line[0] == ':' {
			continue
		}

		if bytes.HasPrefix(line, []byte("event:")) {
			eventType = string(bytes.TrimSpace(line[len("event:"):]))
			continue
		}
		if data, ok := dataPayload(line); ok {
			dataLines = append(dataLines, data)
		}
		// Other fields (id:, retry:) are ignored.
	}
}

// dataPayload extracts the value of a data: field, stripping the single
// optional leading space.
func dataPayload(line []byte) ([]byte, bool) {
	if !bytes.HasPrefix(line, []byte("data:")) {
		return nil, false
	}
	val := line[len("data:"):]
	if len(val) > 0 && val[0] == ' ' {
		val = val[1:]
	}
	return append([]byte(nil), val...), true
}

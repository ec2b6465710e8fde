// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat contains the conversation model and the streaming
// session state machine shared by every provider.
//
// # Key Types
//
//   - Message: one immutable turn in a conversation
//   - Record: the canonical {role, content} serialization shape
//   - Session: the contract the CLI drives, regardless of vendor
//   - Engine: the shared Idle/Streaming state machine behind every
//     vendor session
//   - Stream: the lazy, finite, non-restartable fragment sequence
//     produced by Send
//
// # Usage
//
// A vendor adapter wires its transport into an Engine:
//
//	sess := chat.NewEngine(model, transport)
//	stream, err := sess.Send(ctx, "hello")
//	for {
//	    frag, err := stream.Recv()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // mid-stream failure; history keeps the user turn
//	    }
//	    fmt.Print(frag)
//	}
//
// When the stream ends normally the Engine appends one assistant
// message built from the accumulated fragments. On failure no
// assistant message is appended and the session returns to Idle,
// usable for the next turn.
package chat

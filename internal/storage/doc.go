// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides named transcript persistence for chaterm.
//
// A transcript is the canonical {role, content} record sequence of one
// conversation, pretty-printed as a JSON array so the files stay
// editable by hand. Writes are atomic; a crash never leaves a
// half-written transcript behind.
//
// # Key Types
//
//   - TranscriptStore: Save, Load, List, Delete by transcript name
//
// # Usage
//
// Create a store and save a conversation:
//
//	store, err := storage.NewTranscriptStore()
//	err = store.Save("kubernetes-notes", session.History())
//
// Load it back into a session:
//
//	history, err := store.Load("kubernetes-notes")
//	err = session.Load(history)
//
// # Storage Location
//
// Transcripts are stored in ~/.chaterm/transcripts/ as <name>.json.
package storage

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides named transcript persistence for chaterm.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeranaias/chaterm/internal/chat"
	"github.com/jeranaias/chaterm/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when the named transcript does not exist.
	ErrNotFound = errors.New("transcript not found")

	// ErrCorrupt is returned when a transcript file exists but cannot be
	// decoded into a valid history. The file is left untouched.
	ErrCorrupt = errors.New("transcript corrupt")

	// ErrUnsafeName is returned for names that would escape the
	// transcript directory or collide with path syntax.
	ErrUnsafeName = errors.New("unsafe transcript name")

	// ErrEmptyHistory is returned when saving an empty conversation.
	// There is nothing worth a file, and a later Load would be a no-op.
	ErrEmptyHistory = errors.New("refusing to save empty history")
)

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore persists conversations as named, human-readable JSON
// files. A transcript is the canonical record sequence and nothing
// else, so files remain editable by hand and greppable.
type TranscriptStore struct {
	// BaseDir is the directory transcripts live in.
	// Default: ~/.chaterm/transcripts/
	BaseDir string
}

// NewTranscriptStore creates a store rooted at the default directory.
func NewTranscriptStore() (*TranscriptStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewTranscriptStoreWithDir(filepath.Join(homeDir, ".chaterm", "transcripts"))
}

// NewTranscriptStoreWithDir creates a store with a custom directory.
func NewTranscriptStoreWithDir(baseDir string) (*TranscriptStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &TranscriptStore{BaseDir: baseDir}, nil
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists the history under the given name, replacing any
// existing transcript of that name in one atomic step.
func (s *TranscriptStore) Save(name string, history []chat.Message) error {
	path, err := s.filePath(name)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return ErrEmptyHistory
	}

	data, err := json.MarshalIndent(chat.ToRecords(history), "", "  ")
	if err != nil {
		return err
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(path, data, 0644)
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves the history saved under the given name. Role synonyms
// written by other tools are normalized; anything else in the file is
// reported as corruption, never silently dropped.
func (s *TranscriptStore) Load(name string) ([]chat.Message, error) {
	path, err := s.filePath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	var records []chat.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}

	history, err := chat.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return history, nil
}

// Exists reports whether a transcript is saved under the given name.
func (s *TranscriptStore) Exists(name string) (bool, error) {
	path, err := s.filePath(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// =============================================================================
// LIST AND DELETE OPERATIONS
// =============================================================================

// List returns the saved transcript names in ascending lexicographic
// order, without the .json suffix.
func (s *TranscriptStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes the named transcript.
func (s *TranscriptStore) Delete(name string) error {
	path, err := s.filePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// filePath validates the name and returns its path in the store. A
// trailing .json is accepted and normalized so "notes" and "notes.json"
// address the same transcript.
func (s *TranscriptStore) filePath(name string) (string, error) {
	name = strings.TrimSuffix(name, ".json")
	if !safeName(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return filepath.Join(s.BaseDir, name+".json"), nil
}

// safeName rejects names that would resolve outside BaseDir.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

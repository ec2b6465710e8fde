// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the sender of a message. The core model knows exactly
// two roles; vendor-specific synonyms are normalized at the boundary.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// NormalizeRole maps a raw role string, including common vendor
// synonyms, onto the two core roles. Unknown roles are an error rather
// than being passed through.
func NormalizeRole(raw string) (Role, error) {
	switch raw {
	case "user", "human":
		return RoleUser, nil
	case "assistant", "model", "bot":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one turn in a conversation. Messages are immutable once
// appended to a session's history; streaming accumulates into a buffer
// that becomes a Message only when the stream completes.
type Message struct {
	Role    Role
	Content string
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// FromUser reports whether the message was sent by the user.
func (m Message) FromUser() bool {
	return m.Role == RoleUser
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Record is the canonical two-field serialization shape for a Message.
// It is the unit of the persisted transcript format and of every
// provider-facing request payload.
type Record struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToRecord produces the canonical record for the message.
func (m Message) ToRecord() Record {
	return Record{Role: string(m.Role), Content: m.Content}
}

// FromRecord reconstructs a Message from its canonical record,
// normalizing vendor role synonyms. FromRecord(m.ToRecord()) == m for
// every valid Message m.
func FromRecord(r Record) (Message, error) {
	role, err := NormalizeRole(r.Role)
	if err != nil {
		return Message{}, err
	}
	return Message{Role: role, Content: r.Content}, nil
}

// ToRecords converts a history to its canonical record sequence,
// preserving conversation order.
func ToRecords(history []Message) []Record {
	records := make([]Record, len(history))
	for i, m := range history {
		records[i] = m.ToRecord()
	}
	return records
}

// FromRecords reconstructs a history from canonical records. The first
// invalid record aborts the conversion.
func FromRecords(records []Record) ([]Message, error) {
	history := make([]Message, len(records))
	for i, r := range records {
		m, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		history[i] = m
	}
	return history, nil
}

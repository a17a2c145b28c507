// Package ledger keeps the single-entry per-session undo record for
// manager shift actions. The backing store is an injected key/value
// collaborator; the ledger never touches shift rows itself.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNothingToUndo = errors.New("nothing to undo")

type ActionKind string

const (
	ActionCreate  ActionKind = "create"
	ActionDelete  ActionKind = "delete"
	ActionPublish ActionKind = "publish"
)

// LastAction is the most recent recorded manager action.
type LastAction struct {
	Kind     ActionKind `json:"kind"`
	ShiftIDs []uint64   `json:"shift_ids"`
}

// Store is an opaque per-session key/value store.
type Store interface {
	Get(sessionID, key string) ([]byte, bool, error)
	Set(sessionID, key string, value []byte) error
	Delete(sessionID, key string) error
}

const lastActionKey = "manager_last_action"

// Ledger records and consumes the last manager action per session.
// Recording overwrites any previous entry; there is no history stack.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// RecordLastAction stores the action, replacing any previous entry.
// Recording with no shift IDs clears the ledger instead: an action that
// touched nothing leaves nothing to undo.
func (l *Ledger) RecordLastAction(sessionID string, kind ActionKind, shiftIDs []uint64) error {
	if len(shiftIDs) == 0 {
		return l.store.Delete(sessionID, lastActionKey)
	}

	entry := LastAction{Kind: kind, ShiftIDs: shiftIDs}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode last action: %w", err)
	}
	return l.store.Set(sessionID, lastActionKey, data)
}

// ConsumeUndo returns the recorded action and clears it. The entry is
// consumed even if the caller's subsequent reversal reverts zero rows.
func (l *Ledger) ConsumeUndo(sessionID string) (LastAction, error) {
	data, ok, err := l.store.Get(sessionID, lastActionKey)
	if err != nil {
		return LastAction{}, fmt.Errorf("failed to read last action: %w", err)
	}
	if !ok {
		return LastAction{}, ErrNothingToUndo
	}

	if err := l.store.Delete(sessionID, lastActionKey); err != nil {
		return LastAction{}, fmt.Errorf("failed to clear last action: %w", err)
	}

	var entry LastAction
	if err := json.Unmarshal(data, &entry); err != nil {
		return LastAction{}, fmt.Errorf("failed to decode last action: %w", err)
	}
	if len(entry.ShiftIDs) == 0 {
		return LastAction{}, ErrNothingToUndo
	}
	return entry, nil
}

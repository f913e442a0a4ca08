package session

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/hirekit/slotflow/schema"
)

const snapshotVersion = "1.0"

// Snapshot is the serializable image of a session for callers that
// persist conversations across process restarts. The field specs are
// not embedded; the form type re-resolves them from the registry so
// validator functions survive the round trip.
type Snapshot struct {
	Version   string              `json:"version"`
	ID        string              `json:"id"`
	FormType  schema.FormType     `json:"form_type"`
	Cursor    int                 `json:"cursor"`
	Collected map[string]string   `json:"collected,omitempty"`
	Buffer    map[string][]string `json:"buffer,omitempty"`
	State     AgentState          `json:"state"`
	History   []Entry             `json:"history,omitempty"`
}

// Snapshot serializes the session.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	snap := Snapshot{
		Version:   snapshotVersion,
		ID:        s.id,
		FormType:  s.formType,
		Cursor:    s.cursor,
		Collected: s.collected,
		Buffer:    s.buffer,
		State:     s.state,
		History:   s.history,
	}
	data, err := sonic.Marshal(snap)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Restore rebuilds a session from snapshot data.
func Restore(data []byte, maxHistory int) (*Session, error) {
	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("incompatible snapshot version %q (expected %s)", snap.Version, snapshotVersion)
	}
	fields, err := schema.Fields(snap.FormType)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	if snap.Cursor < 0 || snap.Cursor > len(fields) {
		return nil, fmt.Errorf("snapshot cursor %d out of range", snap.Cursor)
	}

	sess := New(snap.ID, snap.FormType, fields, maxHistory)
	sess.cursor = snap.Cursor
	if snap.Collected != nil {
		sess.collected = snap.Collected
	}
	if snap.Buffer != nil {
		sess.buffer = snap.Buffer
	}
	if snap.State != "" {
		sess.state = snap.State
	}
	sess.history = snap.History
	return sess, nil
}

// Adopt registers a restored session with the manager.
func (m *Manager) Adopt(ctx context.Context, sess *Session) error {
	if err := m.cache.Set(ctx, sess.ID(), sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

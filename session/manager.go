package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirekit/slotflow/schema"
)

// ErrUnknownSession is returned for ids that were never started or
// have already ended.
var ErrUnknownSession = errors.New("unknown session")

// Manager creates and tracks sessions. Sessions are fully isolated
// from each other; the manager only routes by id.
type Manager struct {
	cache      Cache[*Session]
	maxHistory int
}

// DefaultMaxHistory bounds the per-session conversation log.
const DefaultMaxHistory = 200

func NewManager(cache Cache[*Session]) *Manager {
	if cache == nil {
		cache = NewMemoryCache[*Session]()
	}
	return &Manager{cache: cache, maxHistory: DefaultMaxHistory}
}

// Start creates a session for formType. Unknown form types surface
// schema.ErrUnknownSchema.
func (m *Manager) Start(ctx context.Context, formType schema.FormType) (*Session, error) {
	fields, err := schema.Fields(formType)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	sess := New(uuid.NewString(), formType, fields, m.maxHistory)
	if err := m.cache.Set(ctx, sess.ID(), sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get resolves a session id.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	sess, ok, err := m.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return sess, nil
}

// End closes the session and forgets its id.
func (m *Manager) End(ctx context.Context, id string) error {
	sess, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.Close()
	if err := m.cache.Del(ctx, id); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

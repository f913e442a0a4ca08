package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hirekit/slotflow/classify"
	"github.com/hirekit/slotflow/extract"
	"github.com/hirekit/slotflow/handoff"
	"github.com/hirekit/slotflow/record"
	"github.com/hirekit/slotflow/schema"
)

var (
	// ErrStaleTurn means the session was reset while an extraction call
	// was in flight; the late result must be discarded.
	ErrStaleTurn = errors.New("session changed since turn began")
	// ErrClosed means the session was ended.
	ErrClosed = errors.New("session is closed")
	// ErrUnknownField means the key is not part of the session's schema.
	ErrUnknownField = errors.New("field not in schema")
)

// Session is the mutable unit of work for one conversation. All state
// transitions go through its methods and are all-or-nothing: a failed
// commit leaves cursor and collected untouched.
type Session struct {
	id         string
	formType   schema.FormType
	fields     []schema.FieldSpec
	maxHistory int

	// turnMu serializes whole turns: a second utterance arriving while
	// an extraction call is outstanding waits here.
	turnMu sync.Mutex

	mu        sync.Mutex
	version   uint64
	cursor    int
	collected map[string]string
	buffer    map[string][]string
	state     AgentState
	history   []Entry
	closed    bool
	handoff   *handoff.Controller
}

func New(id string, formType schema.FormType, fields []schema.FieldSpec, maxHistory int) *Session {
	return &Session{
		id:         id,
		formType:   formType,
		fields:     fields,
		maxHistory: maxHistory,
		collected:  map[string]string{},
		buffer:     map[string][]string{},
		state:      StateInitial,
		handoff:    handoff.NewController(),
	}
}

func (s *Session) ID() string                { return s.id }
func (s *Session) FormType() schema.FormType { return s.formType }

// Fields returns the schema in collection order.
func (s *Session) Fields() []schema.FieldSpec {
	out := make([]schema.FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// BeginTurn blocks until no other turn is in flight for this session.
func (s *Session) BeginTurn() { s.turnMu.Lock() }
func (s *Session) EndTurn()   { s.turnMu.Unlock() }

// TurnInput captures what an extractor needs for the current field,
// plus the version stamp used to detect a reset racing the turn.
type TurnInput struct {
	Field   schema.FieldSpec
	Buffer  []string
	Version uint64
	Done    bool
}

func (s *Session) TurnInput() (TurnInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return TurnInput{}, ErrClosed
	}
	in := TurnInput{Version: s.version}
	if s.cursor >= len(s.fields) {
		in.Done = true
		return in, nil
	}
	field := s.fields[s.cursor]
	in.Field = field
	in.Buffer = append([]string(nil), s.buffer[field.Key]...)
	return in, nil
}

// Outcome is the committed effect of one extraction result.
type Outcome struct {
	Advanced bool
	Done     bool
	Field    schema.FieldSpec
}

// CommitExtraction applies one extraction result for the field the
// cursor pointed at when the turn began. A version mismatch (the
// session was reset meanwhile) discards the result with ErrStaleTurn.
func (s *Session) CommitExtraction(version uint64, utterance string, res *extract.Result) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Outcome{}, ErrClosed
	}
	if version != s.version {
		return Outcome{}, ErrStaleTurn
	}
	if s.cursor >= len(s.fields) {
		return Outcome{Done: true}, nil
	}

	field := s.fields[s.cursor]
	s.history = appendEntry(s.history, WhoUser, utterance)

	if res.NeedsMoreDetail {
		s.buffer[field.Key] = append(s.buffer[field.Key], utterance)
		s.history = appendEntry(s.history, WhoEngine, res.FollowUpMessage)
		s.history = trimHistory(s.history, s.maxHistory)
		return Outcome{Field: field}, nil
	}

	s.collected[field.Key] = res.Value
	delete(s.buffer, field.Key)
	s.cursor++
	if res.FollowUpMessage != "" {
		s.history = appendEntry(s.history, WhoEngine, res.FollowUpMessage)
	}
	s.history = trimHistory(s.history, s.maxHistory)

	return Outcome{
		Advanced: true,
		Done:     s.cursor == len(s.fields),
		Field:    field,
	}, nil
}

// SetField overwrites (or pre-fills) one collected value out-of-band.
// The cursor never moves; repeating the call is idempotent. The write
// goes through an RFC6902 patch so only schema keys are reachable.
func (s *Session) SetField(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := schema.FieldByKey(s.fields, key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	allowed := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		allowed[record.PathForKey(f.Key)] = true
	}
	patched, err := record.Apply(s.collected, []record.Operation{
		{Op: record.OpReplace, Path: record.PathForKey(key), Value: value},
	}, allowed)
	if err != nil {
		return fmt.Errorf("apply field override: %w", err)
	}
	s.collected = patched
	return nil
}

// ApplyAction runs one agent-mode transition and returns the new state.
func (s *Session) ApplyAction(action classify.Action) AgentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.state
	}
	s.state = Next(s.state, action)
	return s.state
}

// State returns the coarse agent state.
func (s *Session) State() AgentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the index of the field being collected.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Collected returns a copy of the finalized values.
func (s *Session) Collected() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.collected))
	for k, v := range s.collected {
		out[k] = v
	}
	return out
}

// Buffer returns a copy of the unresolved utterances for key.
func (s *Session) Buffer(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.buffer[key]...)
}

// History returns a copy of the conversation log.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.history...)
}

// Record assembles the collected values in schema order.
func (s *Session) Record() record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.Assemble(s.fields, s.collected)
}

// Done reports whether every field has resolved.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.fields)
}

// Handoff is the deferred-action controller owned by this session.
func (s *Session) Handoff() *handoff.Controller {
	return s.handoff
}

// Reset returns the session to its initial state. The version bump
// invalidates any extraction call still in flight, and the pending
// deferred action, if any, is cancelled.
func (s *Session) Reset() {
	s.mu.Lock()
	s.version++
	s.cursor = 0
	s.collected = map[string]string{}
	s.buffer = map[string][]string{}
	s.state = StateInitial
	s.history = nil
	s.mu.Unlock()

	s.handoff.CancelPending()
}

// Close marks the session dead and cancels any pending action.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.version++
	s.mu.Unlock()

	s.handoff.CancelPending()
}

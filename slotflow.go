// Package slotflow turns a free-text conversation into a validated,
// ordered set of field values. It owns the per-session cursor and
// agent-state machines, delegates per-utterance extraction to a local
// or model-backed extractor, and hands a completed record back to the
// caller together with at most one cancellable deferred action.
package slotflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hirekit/slotflow/classify"
	"github.com/hirekit/slotflow/extract"
	"github.com/hirekit/slotflow/handoff"
	"github.com/hirekit/slotflow/record"
	"github.com/hirekit/slotflow/schema"
	"github.com/hirekit/slotflow/session"
	"github.com/hirekit/slotflow/suggest"
)

// DefaultCompletionDelay is how long the post-completion navigation
// action waits before firing unless cancelled or fired early.
const DefaultCompletionDelay = 3 * time.Second

// ActionHandler receives deferred actions when they fire. The engine
// never touches storage or UI; acting on these is the caller's job.
type ActionHandler func(sessionID string, action handoff.Action)

// Engine is the public face of the dialogue engine: session lifecycle,
// one-turn-at-a-time utterance processing, out-of-band overrides, and
// completion handoff.
type Engine struct {
	sessions        *session.Manager
	extractor       extract.Extractor
	recognizer      classify.Recognizer
	completionDelay time.Duration
	onAction        ActionHandler
}

type engineOptions struct {
	cache           session.Cache[*session.Session]
	extractor       extract.Extractor
	recognizer      classify.Recognizer
	completionDelay time.Duration
	onAction        ActionHandler
}

type Option func(*engineOptions)

// WithExtractor replaces the default local extractor, typically with a
// FallbackExtractor chaining a ToolExtractor over the local one.
func WithExtractor(e extract.Extractor) Option {
	return func(o *engineOptions) { o.extractor = e }
}

// WithRecognizer replaces the default keyword action recognizer.
func WithRecognizer(r classify.Recognizer) Option {
	return func(o *engineOptions) { o.recognizer = r }
}

// WithSessionCache substitutes the session storage backend.
func WithSessionCache(c session.Cache[*session.Session]) Option {
	return func(o *engineOptions) { o.cache = c }
}

// WithCompletionDelay overrides the deferred-action countdown.
func WithCompletionDelay(d time.Duration) Option {
	return func(o *engineOptions) { o.completionDelay = d }
}

// WithActionHandler wires the callback invoked when a deferred action
// fires.
func WithActionHandler(h ActionHandler) Option {
	return func(o *engineOptions) { o.onAction = h }
}

func NewEngine(opts ...Option) *Engine {
	options := engineOptions{
		completionDelay: DefaultCompletionDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.extractor == nil {
		options.extractor = extract.NewLocalExtractor()
	}
	if options.recognizer == nil {
		options.recognizer = classify.NewLocalRecognizer()
	}
	return &Engine{
		sessions:        session.NewManager(options.cache),
		extractor:       options.extractor,
		recognizer:      options.recognizer,
		completionDelay: options.completionDelay,
		onAction:        options.onAction,
	}
}

// TurnResult is the engine's answer to one utterance.
type TurnResult struct {
	FollowUpMessage string          `json:"follow_up_message,omitempty"`
	Suggestions     []string        `json:"suggestions,omitempty"`
	Done            bool            `json:"done"`
	Record          record.Record   `json:"record,omitempty"`
	Action          *handoff.Action `json:"action,omitempty"`
}

// StartSession creates a session for formType and returns its id.
func (e *Engine) StartSession(ctx context.Context, formType schema.FormType) (string, error) {
	sess, err := e.sessions.Start(ctx, formType)
	if err != nil {
		return "", err
	}
	slog.Debug("session started", "id", sess.ID(), "form", formType)
	return sess.ID(), nil
}

// SubmitUtterance processes one user turn. Turns for the same session
// are serialized; a second utterance arriving while an extraction call
// is outstanding waits its turn.
func (e *Engine) SubmitUtterance(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.BeginTurn()
	defer sess.EndTurn()

	in, err := sess.TurnInput()
	if err != nil {
		return nil, err
	}
	if in.Done {
		return e.completionResult(sess, false), nil
	}

	res, err := e.extractor.Extract(ctx, &extract.Request{
		Utterance:   text,
		Field:       in.Field,
		PriorBuffer: in.Buffer,
	})
	if err != nil {
		// Extraction never dead-ends the user: absorb total failure
		// into a generic clarification and keep the turn alive.
		slog.Warn("extraction degraded", "session", sessionID, "field", in.Field.Key, "error", err)
		res = &extract.Result{
			NeedsMoreDetail: true,
			FollowUpMessage: fmt.Sprintf("%s 정보를 다시 한번 알려주시겠어요?", in.Field.Label),
		}
	}

	outcome, err := sess.CommitExtraction(in.Version, text, res)
	if err != nil {
		if errors.Is(err, session.ErrStaleTurn) {
			// The session was reset while extraction was in flight;
			// the late result is discarded and the caller sees the
			// fresh session's first prompt.
			slog.Debug("late extraction discarded", "session", sessionID)
			return e.promptResult(sess), nil
		}
		return nil, err
	}

	if res.NeedsMoreDetail {
		suggestions := res.Suggestions
		if len(suggestions) == 0 {
			suggestions = suggest.Labels(suggest.For(&outcome.Field, sess.State()))
		}
		return &TurnResult{
			FollowUpMessage: res.FollowUpMessage,
			Suggestions:     suggestions,
		}, nil
	}

	if outcome.Done {
		return e.completionResult(sess, true), nil
	}
	return e.promptResult(sess), nil
}

// promptResult asks for the field the cursor points at now.
func (e *Engine) promptResult(sess *session.Session) *TurnResult {
	fields := sess.Fields()
	cursor := sess.Cursor()
	if cursor >= len(fields) {
		return e.completionResult(sess, false)
	}
	field := fields[cursor]
	message := field.Prompt
	if message == "" {
		message = fmt.Sprintf("%s 정보를 알려주세요.", field.Label)
	}
	return &TurnResult{
		FollowUpMessage: message,
		Suggestions:     suggest.Labels(suggest.For(&field, sess.State())),
	}
}

// completionResult assembles the record and, when schedule is set,
// issues the single deferred navigation action.
func (e *Engine) completionResult(sess *session.Session, schedule bool) *TurnResult {
	result := &TurnResult{
		FollowUpMessage: "필요한 정보가 모두 모였어요. 잠시 후 등록 화면으로 이동합니다.",
		Suggestions:     suggest.Labels(suggest.For(nil, sess.State())),
		Done:            true,
		Record:          sess.Record(),
	}
	if schedule {
		token := e.scheduleNavigation(sess)
		action := token.Action()
		result.Action = &action
	}
	return result
}

func (e *Engine) scheduleNavigation(sess *session.Session) *handoff.Token {
	id := sess.ID()
	return sess.Handoff().Schedule(handoff.Action{
		Kind:       "navigate",
		TargetHint: "job-posting-form",
	}, e.completionDelay, func(action handoff.Action) {
		slog.Debug("deferred action fired", "session", id, "kind", action.Kind)
		if e.onAction != nil {
			e.onAction(id, action)
		}
	})
}

// FireNow executes the session's pending deferred action immediately,
// cancelling its countdown. Reports whether anything ran; firing twice
// or firing with nothing pending is a harmless no-op.
func (e *Engine) FireNow(ctx context.Context, sessionID string) (bool, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return sess.Handoff().Pending().FireNow(), nil
}

// SetField overwrites one collected value out-of-band ("change the
// salary to X"). The cursor is untouched and the call is idempotent.
func (e *Engine) SetField(ctx context.Context, sessionID, key, value string) error {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return sess.SetField(key, value)
}

// StateResult answers an agent-mode turn.
type StateResult struct {
	State       session.AgentState   `json:"state"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty"`
}

// AdvanceState runs one agent-mode transition. Unknown (state, action)
// pairs leave the state unchanged; the upstream classifier is allowed
// to be unreliable.
func (e *Engine) AdvanceState(ctx context.Context, sessionID string, action classify.Action) (*StateResult, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.ApplyAction(action)
	return &StateResult{
		State:       state,
		Suggestions: suggest.For(nil, state),
	}, nil
}

// RecognizeAction classifies an utterance into an agent-mode action.
// When the classifier cannot be reached the engine degrades to
// ActionNone and reports ErrClassifierUnavailable alongside it.
func (e *Engine) RecognizeAction(ctx context.Context, sessionID, text string) (classify.Action, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return classify.ActionNone, err
	}
	action, err := e.recognizer.Recognize(ctx, &classify.Request{
		Utterance:  text,
		AgentState: string(sess.State()),
	})
	if err != nil {
		slog.Warn("action classification degraded", "session", sessionID, "error", err)
		return classify.ActionNone, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	return action, nil
}

// ResetSession returns the session to its initial state, clearing
// collected values and the refinement buffer and cancelling any pending
// deferred action.
func (e *Engine) ResetSession(ctx context.Context, sessionID string) error {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Reset()
	slog.Debug("session reset", "id", sessionID)
	return nil
}

// EndSession destroys the session. Pending deferred actions are
// implicitly cancelled.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.sessions.End(ctx, sessionID)
}

// Session exposes the underlying session for snapshotting and
// inspection.
func (e *Engine) Session(ctx context.Context, sessionID string) (*session.Session, error) {
	return e.sessions.Get(ctx, sessionID)
}

// RestoreSession adopts a session snapshot produced by
// session.Snapshot and returns its id.
func (e *Engine) RestoreSession(ctx context.Context, data []byte) (string, error) {
	sess, err := session.Restore(data, session.DefaultMaxHistory)
	if err != nil {
		return "", err
	}
	if err := e.sessions.Adopt(ctx, sess); err != nil {
		return "", err
	}
	return sess.ID(), nil
}

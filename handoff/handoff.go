// Package handoff schedules the deferred side effects a completed
// session hands back to its caller, with fire-once and idempotent
// cancel semantics.
package handoff

import (
	"log/slog"
	"sync"
	"time"
)

// Action is the side effect descriptor the caller acts on. The engine
// never touches storage or UI itself; it only emits these.
type Action struct {
	Kind       string            `json:"kind"`
	TargetHint string            `json:"target_hint,omitempty"`
	Payload    map[string]string `json:"payload,omitempty"`
	DelayMs    int64             `json:"delay_ms"`
}

// Token controls one scheduled action. Cancel and FireNow are safe to
// call in any order, any number of times; the action runs at most once.
type Token struct {
	mu        sync.Mutex
	timer     *time.Timer
	action    Action
	fire      func(Action)
	fired     bool
	cancelled bool
}

// Cancel stops the countdown. Cancelling an already-fired or
// already-cancelled token is a no-op.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.cancelled {
		return
	}
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

// FireNow cancels the countdown and executes the action immediately,
// exactly once. Returns whether this call performed the execution.
func (t *Token) FireNow() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	if t.fired || t.cancelled {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	if t.timer != nil {
		t.timer.Stop()
	}
	fire, action := t.fire, t.action
	t.mu.Unlock()

	if fire != nil {
		fire(action)
	}
	return true
}

// Action returns the scheduled descriptor.
func (t *Token) Action() Action {
	return t.action
}

func (t *Token) expire() {
	t.mu.Lock()
	if t.fired || t.cancelled {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fire, action := t.fire, t.action
	t.mu.Unlock()

	if fire != nil {
		fire(action)
	}
}

// Controller owns at most one pending action per session. Scheduling a
// new action implicitly cancels the previous one.
type Controller struct {
	mu      sync.Mutex
	pending *Token
}

func NewController() *Controller {
	return &Controller{}
}

// Schedule starts a countdown of delay and returns the cancel token.
// fire may be nil when the caller only wants the descriptor semantics.
func (c *Controller) Schedule(action Action, delay time.Duration, fire func(Action)) *Token {
	action.DelayMs = delay.Milliseconds()
	token := &Token{action: action, fire: fire}
	token.timer = time.AfterFunc(delay, token.expire)

	c.mu.Lock()
	prev := c.pending
	c.pending = token
	c.mu.Unlock()

	if prev != nil {
		prev.Cancel()
		slog.Debug("replaced pending deferred action", "kind", action.Kind)
	}
	return token
}

// Pending returns the current token, which may already be spent.
func (c *Controller) Pending() *Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// CancelPending cancels whatever is scheduled. Safe when nothing is.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	pending.Cancel()
}

package extract

import (
	"context"

	"github.com/hirekit/slotflow/schema"
)

// Result is what one extraction attempt produced. It is a value object;
// never mutate one after creation. When NeedsMoreDetail is set, Value
// carries the best-effort concatenation of the buffered utterances and
// the session must not advance past the field.
type Result struct {
	Value           string   `json:"value"`
	NeedsMoreDetail bool     `json:"needs_more_detail"`
	FollowUpMessage string   `json:"follow_up_message,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

// Request carries everything an extractor may consult for one turn.
type Request struct {
	Utterance   string
	Field       schema.FieldSpec
	PriorBuffer []string
}

// Extractor resolves one utterance against one field. Implementations
// must not dead-end the user: malformed input comes back as
// NeedsMoreDetail with a clarifying prompt, not as an error. Errors are
// reserved for infrastructure failure (an unreachable model) so that a
// fallback chain can take over.
type Extractor interface {
	Extract(ctx context.Context, req *Request) (*Result, error)
}

package slotflow

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

var _ adk.Agent = (*Assistant)(nil)

// Assistant exposes one engine session as an eino ADK agent so the
// slot-filling flow can be composed into larger agent graphs.
type Assistant struct {
	name        string
	description string
	engine      *Engine
	sessionID   string
}

func NewAssistant(name, description string, engine *Engine, sessionID string) *Assistant {
	return &Assistant{
		name:        name,
		description: description,
		engine:      engine,
		sessionID:   sessionID,
	}
}

func (a *Assistant) Name(ctx context.Context) string {
	return a.name
}

func (a *Assistant) Description(ctx context.Context) string {
	return a.description
}

func (a *Assistant) Run(ctx context.Context, input *adk.AgentInput, options ...adk.AgentRunOption) *adk.AsyncIterator[*adk.AgentEvent] {
	iter, gen := adk.NewAsyncIteratorPair[*adk.AgentEvent]()
	go func() {
		defer func() {
			if e := recover(); e != nil {
				gen.Send(&adk.AgentEvent{
					Err: fmt.Errorf("recover from panic: %v", e),
				})
			}
			gen.Close()
		}()
		if len(input.Messages) == 0 {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("no messages in input"),
			})
			return
		}
		result, err := a.engine.SubmitUtterance(ctx, a.sessionID, input.Messages[len(input.Messages)-1].Content)
		if err != nil {
			gen.Send(&adk.AgentEvent{
				Err: fmt.Errorf("submit utterance failed: %w", err),
			})
			return
		}
		gen.Send(&adk.AgentEvent{
			Output: &adk.AgentOutput{
				MessageOutput: &adk.MessageVariant{
					IsStreaming: false,
					Message: &schema.Message{
						Role:    schema.Assistant,
						Content: result.FollowUpMessage,
					},
					Role: schema.Assistant,
				},
			},
		})
	}()
	return iter
}

package classify

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hirekit/slotflow/internal/llmchain"
)

const (
	classifyToolName        = "classify_user_action"
	classifyToolDescription = "Classify the user's utterance into one coarse action for the content-generation flow."

	minConfidence = 0.5
)

type classifyArgs struct {
	Action     string  `json:"action" jsonschema:"required,enum=describe_job,enum=keywords_done,enum=select_template,enum=generate_content,enum=request_edit,enum=edit_done,enum=final_confirm,enum=restart,enum=none,description=The detected user action"`
	Confidence float64 `json:"confidence" jsonschema:"required,description=Confidence between 0 and 1"`
}

// ToolRecognizer classifies through a chat model. Low confidence maps
// to ActionNone, which the state machine treats as a no-op.
type ToolRecognizer struct {
	chain *llmchain.Caller[*Request, classifyArgs]
}

func NewToolRecognizer(chatModel model.ToolCallingChatModel) (*ToolRecognizer, error) {
	chain, err := llmchain.New[*Request, classifyArgs](
		chatModel,
		buildClassifyPrompt,
		classifyToolName,
		classifyToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create classify chain: %w", err)
	}
	return &ToolRecognizer{chain: chain}, nil
}

func (r *ToolRecognizer) Recognize(ctx context.Context, req *Request) (Action, error) {
	args, err := r.chain.Invoke(ctx, req)
	if err != nil {
		return ActionNone, fmt.Errorf("remote classification failed: %w", err)
	}
	if args.Confidence < minConfidence {
		return ActionNone, nil
	}
	return Action(args.Action), nil
}

func buildClassifyPrompt(ctx context.Context, req *Request) ([]*schema.Message, error) {
	systemPrompt := fmt.Sprintf("You drive a staged job-posting writer. Call %s with the single action that best matches the user's utterance given the current stage. Use none when unsure.", classifyToolName)
	userPrompt := fmt.Sprintf("# Current stage:\n%s\n\n# User utterance:\n%s", req.AgentState, req.Utterance)
	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}, nil
}

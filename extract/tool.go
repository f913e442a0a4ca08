package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hirekit/slotflow/internal/llmchain"
)

const (
	extractToolName        = "extract_field_value"
	extractToolDescription = "Extract a value for the active form field from the user's utterance. Set needs_more_detail when the utterance is too vague to resolve the field."

	// Model answers below this confidence are treated the same as a
	// local vocabulary miss.
	minConfidence = 0.5
)

type extractArgs struct {
	Value           string   `json:"value" jsonschema:"description=The extracted field value preserving the user's own wording"`
	NeedsMoreDetail bool     `json:"needs_more_detail" jsonschema:"required,description=True when the utterance is too vague to resolve the field"`
	FollowUpMessage string   `json:"follow_up_message,omitempty" jsonschema:"description=Clarifying question to ask when more detail is needed"`
	Suggestions     []string `json:"suggestions,omitempty" jsonschema:"description=2-4 quick reply candidates for the user"`
	Confidence      float64  `json:"confidence" jsonschema:"required,description=Confidence in the extraction between 0 and 1"`
}

// ToolExtractor delegates extraction to a chat model through a forced
// tool call. Pair it with a LocalExtractor in a FallbackExtractor so an
// unreachable model degrades instead of blocking the user.
type ToolExtractor struct {
	chain *llmchain.Caller[*Request, extractArgs]
}

func NewToolExtractor(chatModel model.ToolCallingChatModel) (*ToolExtractor, error) {
	chain, err := llmchain.New[*Request, extractArgs](
		chatModel,
		buildExtractPrompt,
		extractToolName,
		extractToolDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("create extract chain: %w", err)
	}
	return &ToolExtractor{chain: chain}, nil
}

func (e *ToolExtractor) Extract(ctx context.Context, req *Request) (*Result, error) {
	args, err := e.chain.Invoke(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("remote extraction failed: %w", err)
	}

	if args.Confidence < minConfidence || (args.Value == "" && !args.NeedsMoreDetail) {
		local := NewLocalExtractor()
		return local.Extract(ctx, &Request{
			Utterance:   req.Utterance,
			Field:       req.Field,
			PriorBuffer: req.PriorBuffer,
		})
	}

	return &Result{
		Value:           args.Value,
		NeedsMoreDetail: args.NeedsMoreDetail,
		FollowUpMessage: args.FollowUpMessage,
		Suggestions:     args.Suggestions,
	}, nil
}

func buildExtractPrompt(ctx context.Context, req *Request) ([]*schema.Message, error) {
	systemPrompt := fmt.Sprintf("You are a recruiting form assistant. Analyze the user's utterance for the active field and call %s. Rules: preserve the user's own wording in value; set needs_more_detail when the utterance is too broad for the field; propose 2-4 short suggestions when asking for clarification; answer follow_up_message in the user's language.", extractToolName)

	sections := []string{
		formatFieldSection(req.Field),
	}
	if s := formatBufferSection(req.PriorBuffer); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, fmt.Sprintf("# User utterance:\n%s", req.Utterance))

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(strings.Join(sections, "\n\n")),
	}, nil
}

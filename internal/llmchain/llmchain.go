// Package llmchain runs a single forced tool call against a chat model
// and decodes the tool arguments into a typed value.
package llmchain

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// PromptFunc renders the request into the messages sent to the model.
type PromptFunc[In any] func(ctx context.Context, input In) ([]*schema.Message, error)

// Caller forces the model to call one tool whose arguments unmarshal
// into Out. The tool schema is derived from Out's struct tags.
type Caller[In, Out any] struct {
	prompt PromptFunc[In]
	model  model.ToolCallingChatModel
	tool   *schema.ToolInfo
}

func New[In, Out any](chatModel model.ToolCallingChatModel, prompt PromptFunc[In], toolName, toolDesc string) (*Caller[In, Out], error) {
	toolInfo, err := utils.GoStruct2ToolInfo[Out](toolName, toolDesc)
	if err != nil {
		return nil, fmt.Errorf("derive tool info: %w", err)
	}
	return &Caller[In, Out]{
		prompt: prompt,
		model:  chatModel,
		tool:   toolInfo,
	}, nil
}

func (c *Caller[In, Out]) Invoke(ctx context.Context, input In) (*Out, error) {
	messages, err := c.prompt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	response, err := c.model.Generate(ctx, messages,
		model.WithTools([]*schema.ToolInfo{c.tool}),
		model.WithToolChoice(schema.ToolChoiceForced, c.tool.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	if len(response.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool call in model response: %s", response.Content)
	}

	var result Out
	if err := sonic.UnmarshalString(response.ToolCalls[0].Function.Arguments, &result); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	return &result, nil
}

func (c *Caller[In, Out]) ToolInfo() *schema.ToolInfo {
	return c.tool
}

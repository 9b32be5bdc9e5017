package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/tools"
)

// DefaultMaxTurns bounds the agentic loop: each tool round trip costs one
// turn, and a runaway model must not loop forever.
const DefaultMaxTurns = 10

// turnLimitNotice is streamed when the loop gives up.
const turnLimitNotice = "\nMaximum conversation turns reached."

// Assistant runs the streaming agentic loop for one backend model: text
// deltas stream straight through, tool calls are executed inline and their
// results embedded into the same text stream as protocol markers.
type Assistant struct {
	llm      llms.Model
	registry *tools.Registry
	system   string
	maxTurns int
}

// NewAssistant wires a model to a tool registry.
func NewAssistant(llm llms.Model, registry *tools.Registry, maxTurns int) *Assistant {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Assistant{
		llm:      llm,
		registry: registry,
		system:   SystemPrompt,
		maxTurns: maxTurns,
	}
}

// resultPayload is the marker body: the interpreter dispatches on type, the
// tool name keys the rendered card, data carries the raw result.
type resultPayload struct {
	Type string         `json:"type"`
	Tool string         `json:"tool"`
	Data map[string]any `json:"data"`
}

// ChatStream streams one assistant response for the conversation so far,
// emitting every text delta and tool marker through emit in order. It returns
// the messages to append to the history (assistant turns, tool calls and tool
// results) so the caller can carry the full exchange forward.
func (a *Assistant) ChatStream(ctx context.Context, history []llms.MessageContent, emit func(text string) error) ([]llms.MessageContent, error) {
	msgs := make([]llms.MessageContent, 0, len(history)+2)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, a.system))
	msgs = append(msgs, history...)

	var appended []llms.MessageContent
	llmTools := a.llmTools()

	for turn := 0; turn < a.maxTurns; turn++ {
		streamFunc := func(ctx context.Context, chunk []byte) error {
			return emit(string(chunk))
		}

		resp, err := a.llm.GenerateContent(ctx, msgs,
			llms.WithTools(llmTools),
			llms.WithStreamingFunc(streamFunc),
		)
		if err != nil {
			return appended, fmt.Errorf("model call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return appended, fmt.Errorf("model returned no choices")
		}
		choice := resp.Choices[0]

		if len(choice.ToolCalls) == 0 {
			final := llms.TextParts(llms.ChatMessageTypeAI, choice.Content)
			msgs = append(msgs, final)
			appended = append(appended, final)
			return appended, nil
		}

		// Record the assistant's tool request before executing anything, so
		// the follow-up call sees a well-formed exchange.
		assistantMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			assistantMsg.Parts = append(assistantMsg.Parts, llms.TextContent{Text: choice.Content})
		}
		for _, tc := range choice.ToolCalls {
			assistantMsg.Parts = append(assistantMsg.Parts, tc)
		}
		msgs = append(msgs, assistantMsg)
		appended = append(appended, assistantMsg)

		for _, tc := range choice.ToolCalls {
			toolMsg, err := a.runTool(ctx, tc, emit)
			if err != nil {
				return appended, err
			}
			msgs = append(msgs, toolMsg)
			appended = append(appended, toolMsg)
		}
	}

	logger.Warn("provider: turn limit (%d) reached without a final answer", a.maxTurns)
	if err := emit(turnLimitNotice); err != nil {
		return appended, err
	}
	return appended, nil
}

// runTool executes one requested tool call, emitting its start and result
// markers around the execution.
func (a *Assistant) runTool(ctx context.Context, tc llms.ToolCall, emit func(string) error) (llms.MessageContent, error) {
	name := tc.FunctionCall.Name
	if err := emit(fmt.Sprintf("__TOOL_START__%s__", name)); err != nil {
		return llms.MessageContent{}, err
	}

	var args map[string]any
	if raw := tc.FunctionCall.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			logger.Warn("provider: unparseable arguments for %s: %v", name, err)
			args = map[string]any{}
		}
	}

	logger.Debug("provider: executing tool %s", name)
	result := a.registry.Execute(ctx, name, args)

	payload := resultPayload{
		Type: resultKind(name),
		Tool: name,
		Data: result,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return llms.MessageContent{}, fmt.Errorf("failed to encode result for %s: %w", name, err)
	}
	if err := emit(fmt.Sprintf("__TOOL_RESULT__%s __", encoded)); err != nil {
		return llms.MessageContent{}, err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return llms.MessageContent{}, fmt.Errorf("failed to encode result for %s: %w", name, err)
	}
	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: tc.ID,
				Name:       name,
				Content:    string(resultJSON),
			},
		},
	}, nil
}

// resultKind routes a tool's output to the card family that renders it.
func resultKind(toolName string) string {
	if strings.Contains(toolName, "acr") {
		return "acr"
	}
	return "contacts"
}

func (a *Assistant) llmTools() []llms.Tool {
	var defs []llms.Tool
	for _, tool := range a.registry.GetTools() {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.JSONSchema(),
			},
		})
	}
	return defs
}

package openai

import (
	"fmt"

	oai "github.com/openai/openai-go"

	"github.com/zero-day-ai/toolchat/llm"
)

func convertMessages(msgs []llm.Message) ([]oai.ChatCompletionMessageParamUnion, error) {
	out := make([]oai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for i, m := range msgs {
		switch m.Kind() {
		case llm.KindSystem:
			out = append(out, oai.SystemMessage(m.Content))
		case llm.KindUser:
			out = append(out, oai.UserMessage(m.Content))
		case llm.KindAssistantText:
			out = append(out, oai.AssistantMessage(m.Content))
		case llm.KindToolRequest:
			out = append(out, oai.ChatCompletionMessageParamUnion{
				OfAssistant: &oai.ChatCompletionAssistantMessageParam{
					ToolCalls: []oai.ChatCompletionMessageToolCallParam{{
						ID: m.ToolCall.ID,
						Function: oai.ChatCompletionMessageToolCallFunctionParam{
							Name:      m.ToolCall.Name,
							Arguments: m.ToolCall.Arguments,
						},
					}},
				},
			})
		case llm.KindToolResult:
			out = append(out, oai.ToolMessage(m.Content, m.ToolCallID))
		default:
			return nil, fmt.Errorf("openai: message %d: unsupported role %q", i, m.Role)
		}
	}
	return out, nil
}

func convertTools(tools []llm.ToolDef) []oai.ChatCompletionToolParam {
	out := make([]oai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		fn := oai.FunctionDefinitionParam{
			Name:       t.Name,
			Parameters: oai.FunctionParameters(t.Parameters),
		}
		if t.Description != "" {
			fn.Description = oai.String(t.Description)
		}
		out[i] = oai.ChatCompletionToolParam{Function: fn}
	}
	return out
}

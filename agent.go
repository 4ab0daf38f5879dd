// Package agentdemo provides the main Agent orchestrator, which uses an LLM
// and a Skill's tools to process user messages.
package agentdemo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
)

// Agent orchestrates calls to the LLM, executes the Skill's tools when the
// model requests them, and streams the final answer.
type Agent struct {
	instruction string
	skill       *Skill
	logger      *slog.Logger
}

// NewAgent creates an Agent. The instruction is injected as a developer
// message at the head of every conversation.
func NewAgent(instruction string, skill *Skill) *Agent {
	return &Agent{
		instruction: instruction,
		skill:       skill,
		logger:      slog.Default(),
	}
}

func (a *Agent) SetLogger(logger *slog.Logger) {
	a.logger = logger
}

func (a *Agent) Skill() *Skill {
	return a.skill
}

func MessageWhenToolError(toolCallID string) openai.ChatCompletionMessageParamUnion {
	return openai.ToolMessage("Error occurred while running. Do not retry", toolCallID)
}

func MessageWhenToolErrorWithRetry(errorString string, toolCallID string) openai.ChatCompletionMessageParamUnion {
	return openai.ToolMessage(fmt.Sprintf("Error: %s.\nRetry", errorString), toolCallID)
}

// Run drives the completion loop until the model produces a message with no
// tool calls. Partial text and tool status updates are sent on out, which is
// closed when the loop ends.
func (a *Agent) Run(ctx context.Context, llm *LLM, history *MessageList, out chan<- Message) {
	defer close(out)
	history.EnsureFirst(a.instruction)

	for {
		params := openai.ChatCompletionNewParams{
			Messages: history.All(),
			Model:    openai.ChatModel(llm.Model),
			StreamOptions: openai.ChatCompletionStreamOptionsParam{
				IncludeUsage: openai.Bool(true),
			},
		}
		if tools := a.skill.GetTools(); len(tools) > 0 {
			params.Tools = tools
		}

		stream := llm.NewStreaming(ctx, params)
		acc := openai.ChatCompletionAccumulator{}
		for stream.Next() {
			chunk := stream.Current()
			acc.AddChunk(chunk)
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
				out <- Message{Content: chunk.Choices[0].Delta.Content, Type: MessageTypePartialText}
			}
		}
		if err := stream.Err(); err != nil {
			a.logger.Error("stream error", "error", err)
			out <- Message{Content: err.Error(), Type: MessageTypeError}
			stream.Close()
			return
		}
		stream.Close()

		if len(acc.Choices) == 0 {
			a.logger.Error("completion returned no choices")
			out <- Message{Content: "no completion received", Type: MessageTypeError}
			return
		}

		completed := acc.Choices[0].Message
		history.Add(completed.ToParam())

		if len(completed.ToolCalls) == 0 {
			return
		}

		for _, call := range completed.ToolCalls {
			tool, err := a.skill.GetTool(call.Function.Name)
			if err != nil {
				a.logger.Error("unknown tool requested", "tool", call.Function.Name)
				history.Add(MessageWhenToolError(call.ID))
				continue
			}

			if status := tool.StatusMessage(); status != "" {
				out <- Message{Content: status, Type: MessageTypeStatus}
			}

			args := map[string]interface{}{}
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				a.logger.Error("invalid tool arguments", "tool", tool.Name(), "error", err)
				history.Add(MessageWhenToolErrorWithRetry(err.Error(), call.ID))
				continue
			}

			a.logger.Info("executing tool", "tool", tool.Name(), "arguments", call.Function.Arguments)
			output, err := tool.Execute(ctx, args)
			if err != nil {
				a.logger.Error("tool execution failed", "tool", tool.Name(), "error", err)

				var ignErr *IgnorableError
				var retErr *RetryableError
				switch {
				case errors.As(err, &retErr):
					history.Add(MessageWhenToolErrorWithRetry(err.Error(), call.ID))
				case errors.As(err, &ignErr):
					history.Add(MessageWhenToolError(call.ID))
				default:
					history.Add(MessageWhenToolError(call.ID))
				}
				continue
			}

			history.Add(openai.ToolMessage(output, call.ID))
		}
	}
}

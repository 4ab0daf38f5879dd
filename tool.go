// Package agentdemo - tool.go
// Defines the Tool interface implemented by every callable operation an
// agent can invoke.
package agentdemo

import (
	"context"

	"github.com/openai/openai-go"
)

type Tool interface {
	Name() string
	StatusMessage() string
	Description() string
	OpenAI() []openai.ChatCompletionToolParam
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

package agentdemo

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

// ContextKey is a custom type for context keys so values set by the
// runtime cannot collide with caller keys.
type ContextKey string

// LLM wraps the OpenAI-compatible client used by every agent. BaseURL may
// point at any compatible gateway; Model is the chat model every request
// uses.
type LLM struct {
	APIKey  string
	BaseURL string
	Model   string
	client  openai.Client
}

func NewLLM(apiKey string, baseURL string, model string) *LLM {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &LLM{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		client:  openai.NewClient(opts...),
	}
}

func optsWithIDs(ctx context.Context, opts []option.RequestOption) []option.RequestOption {
	if sessionID, ok := ctx.Value(ContextKey("sessionID")).(string); ok {
		opts = append(opts, option.WithJSONSet("custom_identifier", sessionID))
	}

	if customerID, ok := ctx.Value(ContextKey("customerID")).(string); ok {
		opts = append(opts, option.WithJSONSet("customer_identifier", customerID))
	}

	return opts
}

// New issues a non-streaming chat completion request.
func (c *LLM) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	opts := []option.RequestOption{}
	opts = optsWithIDs(ctx, opts)
	return c.client.Chat.Completions.New(ctx, params, opts...)
}

// NewStreaming issues a streaming chat completion request, returning an
// ssestream.Stream to consume the chunks.
func (c *LLM) NewStreaming(ctx context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk] {
	opts := []option.RequestOption{}
	opts = optsWithIDs(ctx, opts)
	return c.client.Chat.Completions.NewStreaming(ctx, params, opts...)
}

// GenerateSchema reflects a parameter struct into the JSON schema shape the
// chat completions tools API expects.
func GenerateSchema[T any]() openai.FunctionParameters {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	var params openai.FunctionParameters
	if err := json.Unmarshal(raw, &params); err != nil {
		panic(err)
	}
	return params
}

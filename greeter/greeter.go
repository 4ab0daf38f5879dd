// Package greeter is the smallest demo agent: greeting, farewell, and
// current-time tools behind a general assistant.
package greeter

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/openai/openai-go"

	agentdemo "github.com/prismworks-ai/agentdemo"
)

const instruction = `Answer user questions to the best of your knowledge. Use the greeting tool when a conversation starts, the farewell tool when it ends, and the time tool when asked about the current time.`

var greetings = []string{
	"Hello there",
	"Hi there",
	"Hello",
	"Hi",
	"Hello, how are you?",
	"Hi, how are you?",
	"Hello, I am a helpful assistant.",
	"Hi, I am a helpful assistant, how can I help you?",
}

var farewells = []string{
	"Goodbye",
	"Bye",
	"See you later",
	"See you soon",
	"Bye, have a great day!",
	"Goodbye, have a great day!",
	"Bye, take care!",
	"Goodbye, take care!",
}

type textResult struct {
	Text string `json:"text"`
}

type emptyArgs struct{}

type simpleTool struct {
	name        string
	description string
	run         func() string
}

func (t *simpleTool) Name() string          { return t.name }
func (t *simpleTool) Description() string   { return t.description }
func (t *simpleTool) StatusMessage() string { return "" }

func (t *simpleTool) OpenAI() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        t.name,
				Description: openai.String(t.description),
				Parameters:  agentdemo.GenerateSchema[emptyArgs](),
			},
		},
	}
}

func (t *simpleTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	out, err := json.Marshal(textResult{Text: t.run()})
	if err != nil {
		return "", agentdemo.NewIgnorableError(err)
	}
	return string(out), nil
}

// Toolset builds the greeter's tools. The clock is injectable so tests can
// pin the time.
func Toolset(now func() time.Time) []agentdemo.Tool {
	if now == nil {
		now = time.Now
	}
	return []agentdemo.Tool{
		&simpleTool{
			name:        "get_greeting",
			description: "Return a friendly greeting to open the conversation.",
			run: func() string {
				return greetings[rand.Intn(len(greetings))]
			},
		},
		&simpleTool{
			name:        "get_farewell",
			description: "Return a friendly farewell to close the conversation.",
			run: func() string {
				return farewells[rand.Intn(len(farewells))]
			},
		},
		&simpleTool{
			name:        "get_current_time",
			description: "Return the current date and time.",
			run: func() string {
				return now().Format("2006-01-02 15:04:05")
			},
		},
	}
}

// NewSkill builds the greeter skill.
func NewSkill() *agentdemo.Skill {
	return &agentdemo.Skill{
		Name:        "greeter",
		Description: "Greetings, farewells and the current time",
		Tools:       Toolset(nil),
	}
}

// NewAgent builds a ready-to-run greeter agent.
func NewAgent() *agentdemo.Agent {
	return agentdemo.NewAgent(instruction, NewSkill())
}

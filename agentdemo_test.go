package agentdemo

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
)

func TestMessageList(t *testing.T) {
	t.Run("add and length", func(t *testing.T) {
		ml := NewMessageList()
		if ml.Len() != 0 {
			t.Fatalf("New list should be empty, got %d", ml.Len())
		}
		ml.Add(UserMessage("hello"), AssistantMessage("hi"))
		if ml.Len() != 2 {
			t.Errorf("Expected 2 messages, got %d", ml.Len())
		}
	})

	t.Run("add first prepends", func(t *testing.T) {
		ml := NewMessageList()
		ml.Add(UserMessage("hello"))
		ml.AddFirst("you are a test")
		if ml.Len() != 2 {
			t.Fatalf("Expected 2 messages, got %d", ml.Len())
		}
		if ml.All()[0].OfDeveloper == nil {
			t.Error("First message should be the developer instruction")
		}
	})

	t.Run("ensure first installs the instruction once", func(t *testing.T) {
		ml := NewMessageList()
		ml.Add(UserMessage("first turn"))
		ml.EnsureFirst("you are a test")
		if ml.Len() != 2 || ml.All()[0].OfDeveloper == nil {
			t.Fatalf("Expected the instruction at the head, got %d messages", ml.Len())
		}

		// A second turn runs the loop again over the same history.
		ml.Add(AssistantMessage("reply"), UserMessage("second turn"))
		ml.EnsureFirst("you are a test")
		if ml.Len() != 4 {
			t.Fatalf("Instruction must not be duplicated across turns, got %d messages", ml.Len())
		}
		developers := 0
		for _, msg := range ml.All() {
			if msg.OfDeveloper != nil {
				developers++
			}
		}
		if developers != 1 {
			t.Errorf("Expected exactly one developer message, got %d", developers)
		}
	})

	t.Run("replace at bounds", func(t *testing.T) {
		ml := NewMessageList()
		ml.Add(UserMessage("hello"))
		if err := ml.ReplaceAt(0, UserMessage("goodbye")); err != nil {
			t.Errorf("In-range replace failed: %v", err)
		}
		if err := ml.ReplaceAt(5, UserMessage("nope")); err == nil {
			t.Error("Out-of-range replace should fail")
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		ml := NewMessageList()
		ml.Add(UserMessage("hello"))
		clone := ml.Clone()
		clone.Add(UserMessage("extra"))
		if ml.Len() != 1 || clone.Len() != 2 {
			t.Errorf("Clone should not share backing state: %d vs %d", ml.Len(), clone.Len())
		}
	})

	t.Run("clear", func(t *testing.T) {
		ml := NewMessageList()
		ml.Add(UserMessage("hello"))
		ml.Clear()
		if ml.Len() != 0 {
			t.Errorf("Expected empty list after clear, got %d", ml.Len())
		}
	})
}

type schemaArgs struct {
	CustomerID int64  `json:"customer_id"`
	AccountID  int64  `json:"account_id,omitempty"`
	Note       string `json:"note,omitempty"`
}

func TestGenerateSchema(t *testing.T) {
	params := GenerateSchema[schemaArgs]()

	if params["type"] != "object" {
		t.Errorf("Expected an object schema, got %v", params["type"])
	}

	properties, ok := params["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a properties map, got %T", params["properties"])
	}
	for _, name := range []string{"customer_id", "account_id", "note"} {
		if _, ok := properties[name]; !ok {
			t.Errorf("Missing property %s", name)
		}
	}

	required, ok := params["required"].([]interface{})
	if !ok {
		t.Fatalf("Expected a required list, got %T", params["required"])
	}
	if len(required) != 1 || required[0] != "customer_id" {
		t.Errorf("Only customer_id should be required, got %v", required)
	}
}

func TestErrorClassification(t *testing.T) {
	base := errors.New("boom")

	var retryable *RetryableError
	if !errors.As(NewRetryableError(base), &retryable) {
		t.Error("RetryableError should match errors.As")
	}
	if !errors.Is(NewRetryableError(base), base) {
		t.Error("RetryableError should unwrap to the cause")
	}

	var ignorable *IgnorableError
	if !errors.As(NewIgnorableError(base), &ignorable) {
		t.Error("IgnorableError should match errors.As")
	}
	if errors.As(NewIgnorableError(base), &retryable) {
		t.Error("An ignorable error must not look retryable")
	}
}

type stubTool struct {
	name string
}

func (s *stubTool) Name() string          { return s.name }
func (s *stubTool) Description() string   { return "stub" }
func (s *stubTool) StatusMessage() string { return "" }
func (s *stubTool) OpenAI() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{Function: openai.FunctionDefinitionParam{Name: s.name}},
	}
}
func (s *stubTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "{}", nil
}

func TestSkillToolLookup(t *testing.T) {
	skill := &Skill{
		Name:  "test",
		Tools: []Tool{&stubTool{name: "alpha"}, &stubTool{name: "beta"}},
	}

	tool, err := skill.GetTool("beta")
	if err != nil || tool.Name() != "beta" {
		t.Errorf("Expected to find beta, got %v err=%v", tool, err)
	}
	if _, err := skill.GetTool("gamma"); err == nil {
		t.Error("Unknown tool lookup should fail")
	}
	if defs := skill.GetTools(); len(defs) != 2 {
		t.Errorf("Expected 2 tool definitions, got %d", len(defs))
	}
}

func TestSessionLifecycle(t *testing.T) {
	llm := NewLLM("test-key", "", "test-model")
	agent := NewAgent("test instruction", &Skill{Name: "empty"})
	session := NewSession(context.Background(), llm, agent)

	if session.ID() == "" {
		t.Error("Session should have a generated id")
	}

	session.Close()
	session.Close() // second close must not panic
}

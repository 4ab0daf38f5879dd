package greeter

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestToolsetShape(t *testing.T) {
	toolset := Toolset(nil)
	names := []string{"get_greeting", "get_farewell", "get_current_time"}
	if len(toolset) != len(names) {
		t.Fatalf("Expected %d tools, got %d", len(names), len(toolset))
	}
	for i, name := range names {
		if toolset[i].Name() != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, toolset[i].Name())
		}
		defs := toolset[i].OpenAI()
		if len(defs) != 1 || defs[0].Function.Name != name {
			t.Errorf("Tool %s has a bad function definition", name)
		}
	}
}

func TestCurrentTimeUsesInjectedClock(t *testing.T) {
	pinned := time.Date(2025, 6, 15, 10, 30, 45, 0, time.UTC)
	toolset := Toolset(func() time.Time { return pinned })

	out, err := toolset[2].Execute(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var result textResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if result.Text != "2025-06-15 10:30:45" {
		t.Errorf("Expected the pinned timestamp, got %q", result.Text)
	}
}

func TestGreetingAndFarewellDrawFromKnownStyles(t *testing.T) {
	toolset := Toolset(nil)
	ctx := context.Background()

	contains := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}

	for i := 0; i < 20; i++ {
		out, err := toolset[0].Execute(ctx, map[string]interface{}{})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		var result textResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if !contains(greetings, result.Text) {
			t.Fatalf("Unknown greeting %q", result.Text)
		}
	}

	for i := 0; i < 20; i++ {
		out, err := toolset[1].Execute(ctx, map[string]interface{}{})
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		var result textResult
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if !contains(farewells, result.Text) {
			t.Fatalf("Unknown farewell %q", result.Text)
		}
	}
}

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	agentdemo "github.com/prismworks-ai/agentdemo"
)

func findTool(t *testing.T, toolset []agentdemo.Tool, name string) agentdemo.Tool {
	t.Helper()
	for _, tool := range toolset {
		if tool.Name() == name {
			return tool
		}
	}
	t.Fatalf("Tool %s not found", name)
	return nil
}

func TestToolsetExposesAllOperations(t *testing.T) {
	f := newFixture(t)
	toolset := Toolset(f.adapter, &SessionState{})

	names := []string{
		"verify_customer",
		"get_customer_account",
		"get_customer_account_balance",
		"get_customer_account_transactions",
		"get_customer_account_transactions_by_date",
		"get_customer_account_transactions_by_type",
		"get_customer_complaint",
		"get_customer_complaint_by_id",
		"create_customer_complaint",
		"get_product",
		"get_current_offers",
	}
	if len(toolset) != len(names) {
		t.Fatalf("Expected %d tools, got %d", len(names), len(toolset))
	}
	for _, name := range names {
		tool := findTool(t, toolset, name)
		defs := tool.OpenAI()
		if len(defs) != 1 || defs[0].Function.Name != name {
			t.Errorf("Tool %s has a bad function definition", name)
		}
		if len(defs[0].Function.Parameters) == 0 {
			t.Errorf("Tool %s has no parameter schema", name)
		}
	}
}

func TestToolExecuteReturnsEnvelopeJSON(t *testing.T) {
	f := newFixture(t)
	state := &SessionState{}
	tool := findTool(t, Toolset(f.adapter, state), "verify_customer")

	out, err := tool.Execute(context.Background(), map[string]interface{}{"customer_id": f.alice.ID})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var resp VerifyResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !resp.Success || resp.Status != "verified" {
		t.Errorf("Unexpected envelope: %s", out)
	}
	if !state.CustomerVerified {
		t.Error("Execution should have marked the shared state verified")
	}
}

func TestToolExecuteMissingCustomerIDIsRetryable(t *testing.T) {
	f := newFixture(t)
	tool := findTool(t, Toolset(f.adapter, &SessionState{}), "get_customer_account")

	_, err := tool.Execute(context.Background(), map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected an error for a missing customer_id")
	}
	var retryable *agentdemo.RetryableError
	if !errors.As(err, &retryable) {
		t.Errorf("Expected a retryable error, got %T: %v", err, err)
	}
}

func TestGatedToolsShareSessionState(t *testing.T) {
	f := newFixture(t)
	state := &SessionState{}
	toolset := Toolset(f.adapter, state)
	ctx := context.Background()

	accountTool := findTool(t, toolset, "get_customer_account")
	out, err := accountTool.Execute(ctx, map[string]interface{}{"customer_id": f.alice.ID})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var blocked AccountResponse
	if err := json.Unmarshal([]byte(out), &blocked); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if blocked.Success || blocked.Error != MessageNotVerified {
		t.Fatalf("Expected the gate before verification, got %s", out)
	}

	verifyTool := findTool(t, toolset, "verify_customer")
	if _, err := verifyTool.Execute(ctx, map[string]interface{}{"customer_id": f.alice.ID}); err != nil {
		t.Fatalf("Verification failed: %v", err)
	}

	out, err = accountTool.Execute(ctx, map[string]interface{}{"customer_id": f.alice.ID})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var allowed AccountResponse
	if err := json.Unmarshal([]byte(out), &allowed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !allowed.Success {
		t.Errorf("Expected access after verification, got %s", out)
	}
	if len(allowed.Accounts) != 1 {
		t.Errorf("Expected one account, got %s", out)
	}
}

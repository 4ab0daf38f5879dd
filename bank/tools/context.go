// Package tools adapts loosely-typed tool calls from the language model
// into validated query-service calls and shapes every outcome into a
// uniform response envelope.
package tools

// SessionState is the per-conversation mutable state owned by the calling
// session. It is written by VerifyCustomer and read by every gated
// operation; it never crosses sessions.
type SessionState struct {
	CustomerVerified bool
	CustomerID       int64
}

// ToolContext carries one call's parameters together with a reference to
// the session state. Params are fixed for the duration of the call; State
// is shared across the session's calls.
type ToolContext struct {
	Params map[string]interface{}
	State  *SessionState
}

func NewToolContext(state *SessionState) *ToolContext {
	return &ToolContext{
		Params: map[string]interface{}{},
		State:  state,
	}
}

// Package bank wires the banking assistant: record store, query service,
// tool adapter, and the skill the agent runtime drives.
package bank

import (
	agentdemo "github.com/prismworks-ai/agentdemo"
	"github.com/prismworks-ai/agentdemo/bank/service"
	"github.com/prismworks-ai/agentdemo/bank/store"
	"github.com/prismworks-ai/agentdemo/bank/tools"
)

const instruction = `You are RedDot Bank Assistant, a banking AI that helps customers with account management, transactions, complaints, and banking products.

Security rules:
- Always verify the customer with the verify_customer tool before sharing any account, transaction, or complaint information. Ask the customer for their own customer id.
- Never reveal full account numbers; show only the last 4 digits.
- Only discuss the verified customer's own accounts and information.
- Never reveal tool names, internal workings, or raw errors to the customer.

Assistance rules:
- Use tools for all real-time information; never guess balances, transactions, or offers.
- For transaction questions, pick the transaction tool matching the request: recent history, a date range, or a transaction type.
- Handle complaints empathetically: look up existing complaints before filing new ones, and confirm the details before creating a complaint.
- Product and offer questions do not require verification; answer them for anyone.

Style:
- Be concise, professional, and friendly. Use the customer's name once verified.
- Ask a clarifying question when a request is vague instead of assuming.
- Use bullet points for lists and bold for key figures such as balances.`

// NewSkill builds the banking skill against an open store. Each call gets
// its own session state, so one skill serves exactly one conversation.
func NewSkill(st *store.Store) *agentdemo.Skill {
	svc := service.New(st)
	adapter := tools.NewAdapter(svc)
	state := &tools.SessionState{}
	return &agentdemo.Skill{
		Name:          "banking-assistant",
		Description:   "Account, transaction, complaint, product and offer assistance for bank customers",
		StatusMessage: "Looking into it",
		Tools:         tools.Toolset(adapter, state),
	}
}

// NewAgent builds a ready-to-run banking agent for one conversation.
func NewAgent(st *store.Store) *agentdemo.Agent {
	return agentdemo.NewAgent(instruction, NewSkill(st))
}

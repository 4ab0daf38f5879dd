package ecommerce

import (
	"log/slog"

	agentdemo "github.com/prismworks-ai/agentdemo"
)

const instruction = `You are ShopMate, the virtual assistant for NovaCart, an ecommerce platform selling garden and home products.

Your mission is to help customers find products, manage their cart, track orders, and resolve issues in a friendly, efficient way. Always use tools for live information instead of relying on memory.

Rules:
- Check live inventory with a tool before confirming a product is available.
- Review the cart and confirm with the customer before adding, removing, or ordering anything.
- For order questions, ask for the order id if the customer has not given one.
- Explain return and payment policies using the policy tools, not from memory.
- Never mention tool names or internal outputs to the customer.
- Use markdown lists for products and cart contents.`

// NewSkill builds the shopping skill against a store.
func NewSkill(st *Store) *agentdemo.Skill {
	return &agentdemo.Skill{
		Name:          "shopping-assistant",
		Description:   "Product search, cart management, orders, payments and policy help for NovaCart customers",
		StatusMessage: "Working on it",
		Tools:         Toolset(st, slog.Default()),
	}
}

// NewAgent builds a ready-to-run shopping agent for one conversation.
func NewAgent(st *Store) *agentdemo.Agent {
	return agentdemo.NewAgent(instruction, NewSkill(st))
}

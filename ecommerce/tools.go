package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"

	agentdemo "github.com/prismworks-ai/agentdemo"
)

// response is the envelope shared by every shopping tool result. Error set
// implies Success false.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(message string) response {
	return response{Success: true, Message: message}
}

func fail(errorMessage string) response {
	return response{Success: false, Error: errorMessage}
}

type searchResponse struct {
	response
	Results []Product `json:"results"`
	Count   int       `json:"count"`
}

type availabilityResponse struct {
	response
	ProductID string `json:"product_id,omitempty"`
	Available bool   `json:"available"`
	Quantity  int    `json:"quantity,omitempty"`
}

type orderStatusResponse struct {
	response
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	ETA     string `json:"eta,omitempty"`
}

type cartResponse struct {
	response
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
}

type placeOrderResponse struct {
	response
	Order *Order `json:"order,omitempty"`
}

type paymentMethodsResponse struct {
	response
	Methods []string `json:"methods"`
}

type returnPolicyResponse struct {
	response
	Policy string `json:"policy"`
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"description=Keywords to match against product names"`
}

type availabilityArgs struct {
	ProductID string `json:"product_id" jsonschema:"description=Unique identifier of the product to check"`
}

type orderStatusArgs struct {
	OrderID string `json:"order_id" jsonschema:"description=Unique identifier of the order"`
}

type cartArgs struct {
	CustomerID string `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
}

type modifyCartArgs struct {
	CustomerID string   `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	Add        []string `json:"add,omitempty" jsonschema:"description=Product ids to add to the cart"`
	Remove     []string `json:"remove,omitempty" jsonschema:"description=Product ids to remove from the cart"`
}

type emptyArgs struct{}

// shopTool adapts one store operation to the agent runtime's Tool
// interface.
type shopTool struct {
	name        string
	description string
	status      string
	schema      openai.FunctionParameters
	run         func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

func (t *shopTool) Name() string          { return t.name }
func (t *shopTool) Description() string   { return t.description }
func (t *shopTool) StatusMessage() string { return t.status }

func (t *shopTool) OpenAI() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        t.name,
				Description: openai.String(t.description),
				Parameters:  t.schema,
			},
		},
	}
}

func (t *shopTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	resp, err := t.run(ctx, args)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return "", agentdemo.NewIgnorableError(err)
	}
	return string(out), nil
}

func requireString(args map[string]interface{}, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", agentdemo.NewRetryableError(fmt.Errorf("%s is required", key))
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", agentdemo.NewRetryableError(fmt.Errorf("%s is required", key))
	}
	return s, nil
}

func stringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Toolset builds the shopping assistant's tools against one store.
func Toolset(st *Store, logger *slog.Logger) []agentdemo.Tool {
	if logger == nil {
		logger = slog.Default()
	}
	return []agentdemo.Tool{
		&shopTool{
			name:        "search_products",
			description: "Search the product catalog by keyword.",
			status:      "Searching the catalog",
			schema:      agentdemo.GenerateSchema[searchArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				query, err := requireString(args, "query")
				if err != nil {
					return nil, err
				}
				results := st.SearchProducts(query)
				logger.Info("product search", "query", query, "results", len(results))
				return searchResponse{
					response: ok(fmt.Sprintf("Found %d products", len(results))),
					Results:  results,
					Count:    len(results),
				}, nil
			},
		},
		&shopTool{
			name:        "check_product_availability",
			description: "Check whether a product is in stock and how many units remain.",
			status:      "Checking availability",
			schema:      agentdemo.GenerateSchema[availabilityArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				productID, err := requireString(args, "product_id")
				if err != nil {
					return nil, err
				}
				quantity, found := st.ProductAvailability(productID)
				if !found {
					return availabilityResponse{response: fail("Product not found.")}, nil
				}
				return availabilityResponse{
					response:  ok("Availability checked"),
					ProductID: productID,
					Available: quantity > 0,
					Quantity:  quantity,
				}, nil
			},
		},
		&shopTool{
			name:        "get_order_status",
			description: "Retrieve the status and estimated arrival for an order.",
			status:      "Looking up the order",
			schema:      agentdemo.GenerateSchema[orderStatusArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				orderID, err := requireString(args, "order_id")
				if err != nil {
					return nil, err
				}
				order, found := st.OrderByID(orderID)
				if !found {
					return orderStatusResponse{response: fail("Order not found.")}, nil
				}
				return orderStatusResponse{
					response: ok("Order found"),
					OrderID:  order.OrderID,
					Status:   order.Status,
					ETA:      order.ETA,
				}, nil
			},
		},
		&shopTool{
			name:        "get_cart_contents",
			description: "Get the items currently in the customer's shopping cart.",
			status:      "Fetching the cart",
			schema:      agentdemo.GenerateSchema[cartArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := requireString(args, "customer_id")
				if err != nil {
					return nil, err
				}
				items := st.CartContents(customerID)
				return cartResponse{
					response: ok(fmt.Sprintf("Cart has %d items", len(items))),
					Items:    items,
					Count:    len(items),
				}, nil
			},
		},
		&shopTool{
			name:        "modify_cart",
			description: "Add or remove products from the customer's cart. Adding an item already present increments its quantity.",
			status:      "Updating the cart",
			schema:      agentdemo.GenerateSchema[modifyCartArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := requireString(args, "customer_id")
				if err != nil {
					return nil, err
				}
				add := stringSlice(args, "add")
				remove := stringSlice(args, "remove")
				items := st.ModifyCart(customerID, add, remove)
				logger.Info("cart modified", "customerID", customerID, "added", len(add), "removed", len(remove))
				return cartResponse{
					response: ok("Cart updated successfully."),
					Items:    items,
					Count:    len(items),
				}, nil
			},
		},
		&shopTool{
			name:        "place_order",
			description: "Place an order for everything in the customer's cart. Ask the customer to confirm before calling this.",
			status:      "Placing the order",
			schema:      agentdemo.GenerateSchema[cartArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := requireString(args, "customer_id")
				if err != nil {
					return nil, err
				}
				order, err := st.PlaceOrder(customerID)
				if err != nil {
					return placeOrderResponse{response: fail(err.Error())}, nil
				}
				logger.Info("order placed", "customerID", customerID, "orderID", order.OrderID)
				return placeOrderResponse{
					response: ok("Order placed successfully."),
					Order:    &order,
				}, nil
			},
		},
		&shopTool{
			name:        "get_payment_methods",
			description: "List the supported payment methods.",
			status:      "Fetching payment options",
			schema:      agentdemo.GenerateSchema[emptyArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return paymentMethodsResponse{
					response: ok("Payment methods listed"),
					Methods:  st.PaymentMethods(),
				}, nil
			},
		},
		&shopTool{
			name:        "get_return_policy",
			description: "Retrieve the store's return and refund policy.",
			status:      "Fetching the return policy",
			schema:      agentdemo.GenerateSchema[emptyArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return returnPolicyResponse{
					response: ok("Policy retrieved"),
					Policy:   st.ReturnPolicy(),
				}, nil
			},
		},
	}
}

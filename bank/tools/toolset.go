package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	agentdemo "github.com/prismworks-ai/agentdemo"
)

// binding exposes one adapter operation as a model-callable tool. The
// model-supplied arguments become the call's parameter bag; the session
// state travels alongside in the ToolContext.
type binding struct {
	name        string
	description string
	status      string
	schema      openai.FunctionParameters
	run         func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

func (b *binding) Name() string          { return b.name }
func (b *binding) Description() string   { return b.description }
func (b *binding) StatusMessage() string { return b.status }

func (b *binding) OpenAI() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        b.name,
				Description: openai.String(b.description),
				Parameters:  b.schema,
			},
		},
	}
}

func (b *binding) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	resp, err := b.run(ctx, args)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return "", agentdemo.NewIgnorableError(err)
	}
	return string(out), nil
}

func callCustomerID(args map[string]interface{}) (int64, error) {
	id, present, err := intParam(args, "customer_id")
	if err != nil {
		return 0, agentdemo.NewRetryableError(err)
	}
	if !present {
		return 0, agentdemo.NewRetryableError(fmt.Errorf("customer_id is required"))
	}
	return id, nil
}

// callContext copies the model arguments into a fresh parameter bag,
// dropping customer_id, which is passed positionally to the adapter.
func callContext(state *SessionState, args map[string]interface{}) *ToolContext {
	params := make(map[string]interface{}, len(args))
	for k, v := range args {
		if k == "customer_id" {
			continue
		}
		params[k] = v
	}
	return &ToolContext{Params: params, State: state}
}

type verifyCustomerArgs struct {
	CustomerID int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer to verify"`
}

type customerAccountArgs struct {
	CustomerID int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	AccountID  int64 `json:"account_id,omitempty" jsonschema:"description=Specific account to retrieve; omit to list all accounts"`
}

type accountBalanceArgs struct {
	CustomerID int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	AccountID  int64 `json:"account_id" jsonschema:"description=Account to retrieve the balance for"`
}

type accountTransactionsArgs struct {
	CustomerID int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	AccountID  int64 `json:"account_id" jsonschema:"description=Account to retrieve transactions for"`
	Limit      int64 `json:"limit,omitempty" jsonschema:"description=Maximum number of transactions to return (default 10)"`
	Offset     int64 `json:"offset,omitempty" jsonschema:"description=Number of transactions to skip (default 0)"`
}

type transactionsByDateArgs struct {
	CustomerID int64  `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	AccountID  int64  `json:"account_id" jsonschema:"description=Account to retrieve transactions for"`
	StartDate  string `json:"start_date" jsonschema:"description=Start date in YYYY-MM-DD format"`
	EndDate    string `json:"end_date,omitempty" jsonschema:"description=End date in YYYY-MM-DD format (default today)"`
}

type transactionsByTypeArgs struct {
	CustomerID      int64  `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	AccountID       int64  `json:"account_id" jsonschema:"description=Account to retrieve transactions for"`
	TransactionType string `json:"transaction_type" jsonschema:"description=Type of transactions to retrieve, e.g. Deposit or Withdrawal"`
}

type customerComplaintsArgs struct {
	CustomerID int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	Limit      int64 `json:"limit,omitempty" jsonschema:"description=Maximum number of complaints to return (default 10)"`
	Offset     int64 `json:"offset,omitempty" jsonschema:"description=Number of complaints to skip (default 0)"`
}

type complaintByIDArgs struct {
	CustomerID  int64 `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	ComplaintID int64 `json:"complaint_id" jsonschema:"description=Unique identifier of the complaint"`
}

type createComplaintArgs struct {
	CustomerID  int64  `json:"customer_id" jsonschema:"description=Unique identifier of the customer"`
	TypeID      int64  `json:"type_id" jsonschema:"description=Complaint type id (1 Account Issue, 2 Transaction Problem, 3 Card Issue, 4 Internet Banking, 5 Loan Query, 6 Other)"`
	Title       string `json:"title" jsonschema:"description=Brief title for the complaint"`
	Description string `json:"description" jsonschema:"description=Detailed description of the complaint"`
	Priority    string `json:"priority,omitempty" jsonschema:"description=Priority level (default Medium)"`
}

type productArgs struct {
	ProductID int64  `json:"product_id,omitempty" jsonschema:"description=Filter by specific product id"`
	Type      string `json:"type,omitempty" jsonschema:"description=Filter by product type, e.g. Deposit, Loan, Credit"`
}

type offersArgs struct {
	CustomerID int64 `json:"customer_id,omitempty" jsonschema:"description=Customer id to personalize offers for"`
}

// Toolset builds the banking assistant's tools against one adapter and one
// session's state.
func Toolset(adapter *Adapter, state *SessionState) []agentdemo.Tool {
	return []agentdemo.Tool{
		&binding{
			name:        "verify_customer",
			description: "Verify a customer exists and return basic customer information. Must succeed before any account or complaint operation.",
			status:      "Verifying customer",
			schema:      agentdemo.GenerateSchema[verifyCustomerArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.VerifyCustomer(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_account",
			description: "Retrieve a specific account or list all accounts belonging to the customer.",
			status:      "Looking up accounts",
			schema:      agentdemo.GenerateSchema[customerAccountArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerAccount(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_account_balance",
			description: "Retrieve the current balance for one of the customer's accounts.",
			status:      "Checking balance",
			schema:      agentdemo.GenerateSchema[accountBalanceArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerAccountBalance(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_account_transactions",
			description: "Retrieve recent transactions for one of the customer's accounts, with pagination.",
			status:      "Fetching transactions",
			schema:      agentdemo.GenerateSchema[accountTransactionsArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerAccountTransactions(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_account_transactions_by_date",
			description: "Retrieve transactions for one of the customer's accounts within a date range.",
			status:      "Fetching transactions",
			schema:      agentdemo.GenerateSchema[transactionsByDateArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerAccountTransactionsByDate(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_account_transactions_by_type",
			description: "Retrieve transactions of a specific type for one of the customer's accounts.",
			status:      "Fetching transactions",
			schema:      agentdemo.GenerateSchema[transactionsByTypeArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerAccountTransactionsByType(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_complaint",
			description: "Retrieve the customer's complaints, with pagination.",
			status:      "Fetching complaints",
			schema:      agentdemo.GenerateSchema[customerComplaintsArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerComplaint(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_customer_complaint_by_id",
			description: "Retrieve a specific complaint belonging to the customer.",
			status:      "Fetching complaint",
			schema:      agentdemo.GenerateSchema[complaintByIDArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.GetCustomerComplaintByID(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "create_customer_complaint",
			description: "File a new complaint for the customer.",
			status:      "Filing complaint",
			schema:      agentdemo.GenerateSchema[createComplaintArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				customerID, err := callCustomerID(args)
				if err != nil {
					return nil, err
				}
				return adapter.CreateCustomerComplaint(ctx, customerID, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_product",
			description: "Retrieve information about banking products, optionally filtered by id or type. Does not require verification.",
			status:      "Fetching products",
			schema:      agentdemo.GenerateSchema[productArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return adapter.GetProduct(ctx, callContext(state, args)), nil
			},
		},
		&binding{
			name:        "get_current_offers",
			description: "Retrieve current banking offers, personalized when a customer id is supplied. Does not require verification.",
			status:      "Fetching offers",
			schema:      agentdemo.GenerateSchema[offersArgs](),
			run: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				// customer_id is a parameter here, not the caller identity.
				tc := &ToolContext{Params: args, State: state}
				return adapter.GetCurrentOffers(ctx, tc), nil
			},
		},
	}
}

package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prismworks-ai/agentdemo/bank/service"
	"github.com/prismworks-ai/agentdemo/bank/store"
)

// MessageNotVerified is the fixed re-verification message returned by every
// gated operation when the session has no verified customer.
const MessageNotVerified = "Customer not verified! Please enter your customer id again"

// Adapter translates tool calls into query-service calls. Each operation
// takes the customer id supplied in the call plus a ToolContext, performs
// exactly one logical read or write, and returns a typed response
// envelope. No error escapes as a fault; every failure becomes an
// envelope with Success=false.
type Adapter struct {
	svc    *service.Service
	logger *slog.Logger
	now    func() time.Time
}

func NewAdapter(svc *service.Service) *Adapter {
	return &Adapter{
		svc:    svc,
		logger: slog.Default(),
		now:    time.Now,
	}
}

func (a *Adapter) SetLogger(logger *slog.Logger) {
	a.logger = logger
}

// VerifyCustomer checks that the customer exists and records the outcome in
// the session state. It is the only operation that writes the state.
func (a *Adapter) VerifyCustomer(ctx context.Context, customerID int64, tc *ToolContext) VerifyResponse {
	a.logger.Info("verifying customer", "customerID", customerID)

	customer, err := a.svc.GetCustomer(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Warn("customer not found", "customerID", customerID)
		tc.State.CustomerVerified = false
		return VerifyResponse{
			Response: Fail(fmt.Sprintf("No customer found with ID: %d", customerID)),
			Status:   "not_found",
		}
	}
	if err != nil {
		a.logger.Error("error verifying customer", "customerID", customerID, "error", err)
		return VerifyResponse{Response: Fail("Error verifying customer"), Status: "error"}
	}

	tc.State.CustomerVerified = true
	tc.State.CustomerID = customerID
	a.logger.Info("customer verified", "customerID", customerID)
	return VerifyResponse{
		Response: OK("Customer verified successfully"),
		Status:   "verified",
		Customer: &CustomerSummary{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
	}
}

// GetCustomerAccount returns one account when account_id is supplied, or
// all of the customer's accounts otherwise.
func (a *Adapter) GetCustomerAccount(ctx context.Context, customerID int64, tc *ToolContext) AccountResponse {
	a.logger.Info("retrieving accounts", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return AccountResponse{Response: Fail(MessageNotVerified)}
	}

	accountID, present, err := intParam(tc.Params, "account_id")
	if err != nil {
		return AccountResponse{Response: Fail(err.Error())}
	}

	if present {
		account, err := a.svc.GetCustomerAccount(ctx, customerID, accountID)
		if errors.Is(err, store.ErrNotFound) {
			return AccountResponse{Response: Fail(accountNotOwnedMessage(accountID, customerID))}
		}
		if err != nil {
			a.logger.Error("error retrieving account", "accountID", accountID, "error", err)
			return AccountResponse{Response: Fail("Error retrieving account")}
		}
		view := accountView(account)
		return AccountResponse{
			Response: OK("Account retrieved successfully"),
			Account:  &view,
		}
	}

	accounts, err := a.svc.GetCustomerAccounts(ctx, customerID)
	if err != nil {
		a.logger.Error("error retrieving accounts", "customerID", customerID, "error", err)
		return AccountResponse{Response: Fail("Error retrieving accounts")}
	}
	views := make([]AccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, accountView(&accounts[i]))
	}
	return AccountResponse{
		Response: OK(fmt.Sprintf("Retrieved %d accounts for customer %d", len(views), customerID)),
		Accounts: views,
	}
}

// GetCustomerAccountBalance returns the balance of one account the
// customer owns, with a currency tag and an as-of timestamp.
func (a *Adapter) GetCustomerAccountBalance(ctx context.Context, customerID int64, tc *ToolContext) BalanceResponse {
	a.logger.Info("retrieving account balance", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return BalanceResponse{Response: Fail(MessageNotVerified)}
	}

	if missing := missingParams(tc.Params, "account_id"); len(missing) > 0 {
		return BalanceResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	accountID, _, err := intParam(tc.Params, "account_id")
	if err != nil {
		return BalanceResponse{Response: Fail(err.Error())}
	}

	account, err := a.svc.GetCustomerAccount(ctx, customerID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return BalanceResponse{Response: Fail(accountNotOwnedMessage(accountID, customerID))}
	}
	if err != nil {
		a.logger.Error("error retrieving account", "accountID", accountID, "error", err)
		return BalanceResponse{Response: Fail("Error retrieving account balance")}
	}

	balance, err := a.svc.GetAccountBalance(ctx, accountID)
	if err != nil {
		a.logger.Error("error retrieving balance", "accountID", accountID, "error", err)
		return BalanceResponse{Response: Fail("Error retrieving account balance")}
	}

	asOf := a.now().Format(time.RFC3339)
	a.logger.Info("balance retrieved", "accountID", accountID, "asOf", asOf)
	return BalanceResponse{
		Response:      OK("Account balance retrieved successfully"),
		AccountID:     accountID,
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		Balance:       balance.StringFixed(2),
		Currency:      "USD",
		Status:        account.AccountStatus,
		AsOf:          asOf,
	}
}

// GetCustomerAccountTransactions returns a page of the account's most
// recent transactions.
func (a *Adapter) GetCustomerAccountTransactions(ctx context.Context, customerID int64, tc *ToolContext) TransactionListResponse {
	a.logger.Info("retrieving transactions", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return TransactionListResponse{Response: Fail(MessageNotVerified)}
	}

	if missing := missingParams(tc.Params, "account_id"); len(missing) > 0 {
		return TransactionListResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	accountID, _, err := intParam(tc.Params, "account_id")
	if err != nil {
		return TransactionListResponse{Response: Fail(err.Error())}
	}

	account, err := a.svc.GetCustomerAccount(ctx, customerID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return TransactionListResponse{Response: Fail(accountNotOwnedMessage(accountID, customerID))}
	}
	if err != nil {
		a.logger.Error("error retrieving account", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions")}
	}

	limit, offset, err := paginationParams(tc.Params)
	if err != nil {
		a.logger.Warn("invalid pagination parameters", "error", err)
		return TransactionListResponse{Response: Fail("Invalid pagination parameters: limit and offset must be integers")}
	}

	transactions, err := a.svc.GetAccountTransactions(ctx, accountID, limit, offset)
	if err != nil {
		a.logger.Error("error retrieving transactions", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions")}
	}

	views := transactionViews(transactions)
	return TransactionListResponse{
		Response:      OK(fmt.Sprintf("Retrieved %d transactions for account %d", len(views), accountID)),
		AccountID:     accountID,
		AccountNumber: account.AccountNumber,
		Transactions:  views,
		Count:         len(views),
		Pagination:    &Pagination{Limit: limit, Offset: offset, Count: len(views)},
	}
}

// GetCustomerAccountTransactionsByDate returns the account's transactions
// between start_date and end_date inclusive. end_date defaults to today.
func (a *Adapter) GetCustomerAccountTransactionsByDate(ctx context.Context, customerID int64, tc *ToolContext) TransactionListResponse {
	a.logger.Info("retrieving transactions by date", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return TransactionListResponse{Response: Fail(MessageNotVerified)}
	}

	if missing := missingParams(tc.Params, "account_id", "start_date"); len(missing) > 0 {
		return TransactionListResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	accountID, _, err := intParam(tc.Params, "account_id")
	if err != nil {
		return TransactionListResponse{Response: Fail(err.Error())}
	}
	startDate, _ := stringParam(tc.Params, "start_date")
	endDate, present := stringParam(tc.Params, "end_date")
	if !present {
		endDate = a.now().Format(isoDateLayout)
	}

	if !validISODate(startDate) || !validISODate(endDate) {
		a.logger.Warn("invalid date format", "startDate", startDate, "endDate", endDate)
		return TransactionListResponse{Response: Fail("Invalid date format. Dates must be in YYYY-MM-DD format.")}
	}

	account, err := a.svc.GetCustomerAccount(ctx, customerID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return TransactionListResponse{Response: Fail(accountNotOwnedMessage(accountID, customerID))}
	}
	if err != nil {
		a.logger.Error("error retrieving account", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions by date")}
	}

	transactions, err := a.svc.GetTransactionsByDateRange(ctx, accountID, startDate, endDate)
	if err != nil {
		a.logger.Error("error retrieving transactions by date", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions by date")}
	}

	views := transactionViews(transactions)
	return TransactionListResponse{
		Response:      OK(fmt.Sprintf("Retrieved %d transactions between %s and %s", len(views), startDate, endDate)),
		AccountID:     accountID,
		AccountNumber: account.AccountNumber,
		Transactions:  views,
		Count:         len(views),
		StartDate:     startDate,
		EndDate:       endDate,
	}
}

// GetCustomerAccountTransactionsByType returns the account's transactions
// of one exact type.
func (a *Adapter) GetCustomerAccountTransactionsByType(ctx context.Context, customerID int64, tc *ToolContext) TransactionListResponse {
	a.logger.Info("retrieving transactions by type", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return TransactionListResponse{Response: Fail(MessageNotVerified)}
	}

	if missing := missingParams(tc.Params, "account_id", "transaction_type"); len(missing) > 0 {
		return TransactionListResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	accountID, _, err := intParam(tc.Params, "account_id")
	if err != nil {
		return TransactionListResponse{Response: Fail(err.Error())}
	}
	transactionType, _ := stringParam(tc.Params, "transaction_type")

	account, err := a.svc.GetCustomerAccount(ctx, customerID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return TransactionListResponse{Response: Fail(accountNotOwnedMessage(accountID, customerID))}
	}
	if err != nil {
		a.logger.Error("error retrieving account", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions by type")}
	}

	transactions, err := a.svc.GetTransactionsByType(ctx, accountID, transactionType)
	if err != nil {
		a.logger.Error("error retrieving transactions by type", "accountID", accountID, "error", err)
		return TransactionListResponse{Response: Fail("Error retrieving transactions by type")}
	}

	views := transactionViews(transactions)
	return TransactionListResponse{
		Response:        OK(fmt.Sprintf("Retrieved %d %s transactions", len(views), transactionType)),
		AccountID:       accountID,
		AccountNumber:   account.AccountNumber,
		Transactions:    views,
		Count:           len(views),
		TransactionType: transactionType,
	}
}

// GetCustomerComplaint returns a page of the customer's complaints.
func (a *Adapter) GetCustomerComplaint(ctx context.Context, customerID int64, tc *ToolContext) ComplaintListResponse {
	a.logger.Info("retrieving complaints", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return ComplaintListResponse{Response: Fail(MessageNotVerified)}
	}

	exists, err := a.svc.VerifyCustomerExists(ctx, customerID)
	if err != nil {
		a.logger.Error("error checking customer", "customerID", customerID, "error", err)
		return ComplaintListResponse{Response: Fail("Error retrieving complaints")}
	}
	if !exists {
		return ComplaintListResponse{Response: Fail(fmt.Sprintf("Customer not found with ID: %d", customerID))}
	}

	limit, offset, err := paginationParams(tc.Params)
	if err != nil {
		a.logger.Warn("invalid pagination parameters", "error", err)
		return ComplaintListResponse{Response: Fail("Invalid pagination parameters: limit and offset must be integers")}
	}

	complaints, err := a.svc.GetCustomerComplaints(ctx, customerID, limit, offset)
	if err != nil {
		a.logger.Error("error retrieving complaints", "customerID", customerID, "error", err)
		return ComplaintListResponse{Response: Fail("Error retrieving complaints")}
	}

	views := make([]ComplaintView, 0, len(complaints))
	for i := range complaints {
		views = append(views, complaintView(&complaints[i]))
	}
	return ComplaintListResponse{
		Response:   OK(fmt.Sprintf("Retrieved %d complaints for customer %d", len(views), customerID)),
		CustomerID: customerID,
		Complaints: views,
		Pagination: &Pagination{Limit: limit, Offset: offset, Count: len(views)},
	}
}

// GetCustomerComplaintByID returns one complaint the customer owns.
func (a *Adapter) GetCustomerComplaintByID(ctx context.Context, customerID int64, tc *ToolContext) ComplaintResponse {
	a.logger.Info("retrieving complaint by id", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return ComplaintResponse{Response: Fail(MessageNotVerified)}
	}

	if missing := missingParams(tc.Params, "complaint_id"); len(missing) > 0 {
		return ComplaintResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	complaintID, _, err := intParam(tc.Params, "complaint_id")
	if err != nil {
		return ComplaintResponse{Response: Fail(err.Error())}
	}

	complaint, err := a.svc.GetComplaintByID(ctx, complaintID, &customerID)
	if errors.Is(err, store.ErrNotFound) {
		return ComplaintResponse{
			Response: Fail(fmt.Sprintf("Complaint %d not found or doesn't belong to customer %d", complaintID, customerID)),
		}
	}
	if err != nil {
		a.logger.Error("error retrieving complaint", "complaintID", complaintID, "error", err)
		return ComplaintResponse{Response: Fail("Error retrieving complaint")}
	}

	view := complaintView(complaint)
	return ComplaintResponse{
		Response:   OK("Complaint retrieved successfully"),
		CustomerID: customerID,
		Complaint:  &view,
	}
}

// CreateCustomerComplaint files a new complaint and echoes the created row.
func (a *Adapter) CreateCustomerComplaint(ctx context.Context, customerID int64, tc *ToolContext) ComplaintResponse {
	a.logger.Info("creating complaint", "customerID", customerID)

	if !tc.State.CustomerVerified {
		return ComplaintResponse{Response: Fail(MessageNotVerified)}
	}

	exists, err := a.svc.VerifyCustomerExists(ctx, customerID)
	if err != nil {
		a.logger.Error("error checking customer", "customerID", customerID, "error", err)
		return ComplaintResponse{Response: Fail("Error creating complaint")}
	}
	if !exists {
		return ComplaintResponse{Response: Fail(fmt.Sprintf("Customer not found with ID: %d", customerID))}
	}

	if missing := missingParams(tc.Params, "type_id", "title", "description"); len(missing) > 0 {
		a.logger.Warn("missing required fields", "fields", missing)
		return ComplaintResponse{Response: Fail(missingFieldsMessage(missing))}
	}
	typeID, _, err := intParam(tc.Params, "type_id")
	if err != nil {
		return ComplaintResponse{Response: Fail(err.Error())}
	}
	title, _ := stringParam(tc.Params, "title")
	description, _ := stringParam(tc.Params, "description")
	priority, present := stringParam(tc.Params, "priority")
	if !present {
		priority = service.DefaultPriority
	}

	complaintID, err := a.svc.CreateComplaint(ctx, customerID, typeID, title, description, priority)
	if errors.Is(err, store.ErrConstraintViolation) {
		return ComplaintResponse{Response: Fail(fmt.Sprintf("Invalid complaint type ID: %d", typeID))}
	}
	if err != nil {
		a.logger.Error("error creating complaint", "customerID", customerID, "error", err)
		return ComplaintResponse{Response: Fail("Error creating complaint")}
	}

	complaint, err := a.svc.GetComplaintByID(ctx, complaintID, nil)
	if err != nil {
		a.logger.Error("created complaint could not be retrieved", "complaintID", complaintID, "error", err)
		return ComplaintResponse{Response: Fail("Complaint was created but could not be retrieved")}
	}

	a.logger.Info("complaint created", "complaintID", complaintID)
	view := complaintView(complaint)
	return ComplaintResponse{
		Response:   OK("Complaint created successfully"),
		CustomerID: customerID,
		Complaint:  &view,
	}
}

// GetProduct returns the product catalog, filtered by optional product_id
// and type parameters. An empty result is a valid success.
func (a *Adapter) GetProduct(ctx context.Context, tc *ToolContext) ProductResponse {
	a.logger.Info("retrieving products")

	var productID *int64
	id, present, err := intParam(tc.Params, "product_id")
	if err != nil {
		return ProductResponse{Response: Fail(err.Error())}
	}
	if present {
		productID = &id
	}
	productType, _ := stringParam(tc.Params, "type")

	products, err := a.svc.GetProducts(ctx, productID, productType)
	if err != nil {
		a.logger.Error("error retrieving products", "error", err)
		return ProductResponse{Response: Fail("Error retrieving products")}
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			ID:           p.ID,
			Name:         p.Name,
			Type:         p.Type,
			Description:  p.Description,
			Features:     p.Features,
			Requirements: p.Requirements,
			Fees:         p.Fees.StringFixed(2),
			InterestRate: p.InterestRate.String(),
		})
	}
	return ProductResponse{
		Response: OK(fmt.Sprintf("Retrieved %d products", len(views))),
		Products: views,
		Count:    len(views),
	}
}

// GetCurrentOffers returns current offers, personalized when a valid
// customer_id parameter is supplied.
func (a *Adapter) GetCurrentOffers(ctx context.Context, tc *ToolContext) OfferResponse {
	a.logger.Info("retrieving offers")

	var customerID *int64
	id, present, err := intParam(tc.Params, "customer_id")
	if err != nil {
		return OfferResponse{Response: Fail(err.Error())}
	}
	if present {
		customerID = &id
	}

	offers, err := a.svc.GetCurrentOffers(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		return OfferResponse{Response: Fail(fmt.Sprintf("Customer not found with ID: %d", id))}
	}
	if err != nil {
		a.logger.Error("error retrieving offers", "error", err)
		return OfferResponse{Response: Fail("Error retrieving offers")}
	}

	views := make([]OfferView, 0, len(offers))
	for _, o := range offers {
		views = append(views, OfferView{ID: o.ID, Title: o.Title, Description: o.Description})
	}

	personalized := customerID != nil
	kind := "general"
	if personalized {
		kind = "personalized"
	}
	resp := OfferResponse{
		Response:     OK(fmt.Sprintf("Retrieved %d %s offers", len(views), kind)),
		Offers:       views,
		Count:        len(views),
		Personalized: personalized,
	}
	if personalized {
		resp.CustomerID = *customerID
	}
	return resp
}

// ===== view mapping =====

func accountNotOwnedMessage(accountID, customerID int64) string {
	return fmt.Sprintf("Account %d not found or doesn't belong to customer %d", accountID, customerID)
}

func missingFieldsMessage(missing []string) string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))
}

func accountView(account *store.Account) AccountView {
	return AccountView{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		Balance:       account.Balance.StringFixed(2),
		Status:        account.AccountStatus,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
	}
}

func transactionViews(transactions []store.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, TransactionView{
			TransactionID: tx.ID,
			Amount:        tx.Amount.StringFixed(2),
			Type:          tx.Type,
			Description:   tx.Description,
			Date:          tx.TransactionDate,
			CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return views
}

func complaintView(record *store.ComplaintRecord) ComplaintView {
	view := ComplaintView{
		ComplaintID: record.ID,
		Title:       record.Title,
		Type:        record.TypeName,
		Status:      record.Status,
		Priority:    record.Priority,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}
	if record.ResolvedAt != nil {
		view.ResolvedAt = record.ResolvedAt.Format(time.RFC3339)
	}
	return view
}

package tools

// Response is the envelope every tool operation returns. Success is false
// whenever Error is set; construct failures through Fail so call sites
// cannot get the pair out of sync.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(message string) Response {
	return Response{Success: true, Message: message}
}

func Fail(errorMessage string) Response {
	return Response{Success: false, Error: errorMessage}
}

// CustomerSummary is the subset of customer fields returned on
// verification.
type CustomerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type VerifyResponse struct {
	Response
	Status   string           `json:"status,omitempty"`
	Customer *CustomerSummary `json:"customer,omitempty"`
}

// AccountView echoes one account row. Balance stays a decimal string end
// to end; no float conversion happens in this layer.
type AccountView struct {
	AccountID     int64  `json:"account_id"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type AccountResponse struct {
	Response
	Account  *AccountView  `json:"account,omitempty"`
	Accounts []AccountView `json:"accounts,omitempty"`
}

type BalanceResponse struct {
	Response
	AccountID     int64  `json:"account_id,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountType   string `json:"account_type,omitempty"`
	Balance       string `json:"balance,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Status        string `json:"status,omitempty"`
	AsOf          string `json:"as_of,omitempty"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

type TransactionView struct {
	TransactionID int64  `json:"transaction_id"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`
	CreatedAt     string `json:"created_at"`
}

type TransactionListResponse struct {
	Response
	AccountID       int64             `json:"account_id,omitempty"`
	AccountNumber   string            `json:"account_number,omitempty"`
	Transactions    []TransactionView `json:"transactions,omitempty"`
	Count           int               `json:"count"`
	StartDate       string            `json:"start_date,omitempty"`
	EndDate         string            `json:"end_date,omitempty"`
	TransactionType string            `json:"transaction_type,omitempty"`
	Pagination      *Pagination       `json:"pagination,omitempty"`
}

type ComplaintView struct {
	ComplaintID int64  `json:"complaint_id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	ResolvedAt  string `json:"resolved_at,omitempty"`
}

type ComplaintResponse struct {
	Response
	CustomerID int64          `json:"customer_id,omitempty"`
	Complaint  *ComplaintView `json:"complaint,omitempty"`
}

type ComplaintListResponse struct {
	Response
	CustomerID int64           `json:"customer_id,omitempty"`
	Complaints []ComplaintView `json:"complaints,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

type ProductView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Features     string `json:"features,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Fees         string `json:"fees,omitempty"`
	InterestRate string `json:"interest_rate,omitempty"`
}

type ProductResponse struct {
	Response
	Products []ProductView `json:"products,omitempty"`
	Count    int           `json:"count"`
}

type OfferView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OfferResponse struct {
	Response
	Offers       []OfferView `json:"offers,omitempty"`
	Count        int         `json:"count"`
	Personalized bool        `json:"personalized"`
	CustomerID   int64       `json:"customer_id,omitempty"`
}

// Package store owns the persisted schema for the banking assistant and
// executes its parameterized queries. It enforces referential constraints
// and uniqueness, nothing more; ownership scoping and validation live in
// the layers above.
package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types and statuses as stored in the accounts table.
const (
	AccountTypeSavings  = "Savings"
	AccountTypeChecking = "Checking"
	AccountTypeCredit   = "Credit"
	AccountTypeLoan     = "Loan"

	AccountStatusActive    = "Active"
	AccountStatusInactive  = "Inactive"
	AccountStatusSuspended = "Suspended"
	AccountStatusClosed    = "Closed"
)

// Complaint lifecycle statuses. Only StatusOpen is ever written by this
// layer; the remaining values document the declared lifecycle.
const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
	ComplaintStatusRejected   = "Rejected"
	ComplaintStatusReopened   = "Reopened"
	ComplaintStatusEscalated  = "Escalated"
)

// Customer is seeded by provisioning or fixtures and read-only afterwards.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Address   string    `gorm:"not null" json:"address"`
	DOB       string    `gorm:"column:dob;not null" json:"dob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account belongs to exactly one customer and is cascade-deleted with it.
type Account struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	CustomerID    int64           `gorm:"not null;index" json:"customer_id"`
	Customer      *Customer       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AccountNumber string          `gorm:"uniqueIndex;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	AccountType   string          `gorm:"not null" json:"account_type"`
	AccountStatus string          `gorm:"not null" json:"account_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Transaction is immutable once created. Sign convention: deposits and
// interest positive, withdrawals/fees/payments negative, transfers either.
// Calendar dates are YYYY-MM-DD strings stored as TEXT; they read back
// unchanged and range-compare lexically.
type Transaction struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	AccountID       int64           `gorm:"not null;index" json:"account_id"`
	Account         *Account        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type            string          `gorm:"not null" json:"type"`
	Description     string          `json:"description"`
	TransactionDate string          `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ComplaintType is a small, mostly-static reference table.
type ComplaintType struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// Complaint references one customer and one complaint type. Status always
// starts as Open; the transition fields are modeled but never driven here.
type Complaint struct {
	ID              int64          `gorm:"primaryKey" json:"id"`
	CustomerID      int64          `gorm:"not null;index" json:"customer_id"`
	Customer        *Customer      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TypeID          int64          `gorm:"not null" json:"type_id"`
	Type            *ComplaintType `gorm:"foreignKey:TypeID" json:"-"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"not null" json:"description"`
	Status          string         `gorm:"not null;index" json:"status"`
	Priority        string         `gorm:"not null" json:"priority"`
	ResolutionNotes *string        `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
}

// ComplaintRecord is a complaint row joined with its type name, the shape
// every complaint read returns.
type ComplaintRecord struct {
	Complaint
	TypeName string `json:"type_name"`
}

// Product is read-only reference data.
type Product struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Type         string          `gorm:"not null" json:"type"`
	Description  string          `json:"description"`
	Features     string          `json:"features"`
	Requirements string          `json:"requirements"`
	Fees         decimal.Decimal `gorm:"type:decimal(15,2)" json:"fees"`
	InterestRate decimal.Decimal `gorm:"type:decimal(6,3)" json:"interest_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Offer is read-only reference data, optionally flagged as personalized.
type Offer struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"not null" json:"description"`
	ProductID       int64     `json:"product_id"`
	Product         *Product  `json:"-"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Terms           string    `json:"terms"`
	IsPersonalized  bool      `gorm:"default:false" json:"is_personalized"`
	CustomerSegment string    `json:"customer_segment"`
	CreatedAt       time.Time `json:"created_at"`
}

package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// seedReferenceData installs the complaint types, products, and offers the
// assistant depends on. Inserts ignore conflicts so repeated starts leave
// the tables unchanged.
func (s *Store) seedReferenceData() error {
	complaintTypes := []ComplaintType{
		{ID: 1, Name: "Account Issue", Description: "Problems related to account access or management", IsActive: true},
		{ID: 2, Name: "Transaction Problem", Description: "Issues with transactions or payments", IsActive: true},
		{ID: 3, Name: "Card Issue", Description: "Problems with debit/credit cards", IsActive: true},
		{ID: 4, Name: "Internet Banking", Description: "Online banking access or functionality issues", IsActive: true},
		{ID: 5, Name: "Loan Query", Description: "Questions or issues regarding loans", IsActive: true},
		{ID: 6, Name: "Other", Description: "Any other type of complaint", IsActive: true},
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&complaintTypes).Error; err != nil {
		return fmt.Errorf("failed to seed complaint types: %w", err)
	}

	products := []Product{
		{ID: 1, Name: "Savings Account", Type: "Deposit", Description: "Interest-bearing savings account",
			Features: "No minimum balance, mobile banking", Requirements: "Valid ID and proof of address",
			Fees: decimal.Zero, InterestRate: decimal.RequireFromString("2.50")},
		{ID: 2, Name: "Checking Account", Type: "Deposit", Description: "Everyday checking account",
			Features: "Unlimited transactions, debit card included", Requirements: "Valid ID and proof of address",
			Fees: decimal.RequireFromString("5.00"), InterestRate: decimal.Zero},
		{ID: 3, Name: "Personal Loan", Type: "Loan", Description: "Unsecured personal loan",
			Features: "Fixed monthly payments, no prepayment penalty", Requirements: "Credit score 650+, proof of income",
			Fees: decimal.RequireFromString("25.00"), InterestRate: decimal.RequireFromString("5.99")},
		{ID: 4, Name: "Credit Card", Type: "Credit", Description: "Rewards credit card",
			Features: "Cash back on purchases, fraud protection", Requirements: "Credit score 700+",
			Fees: decimal.Zero, InterestRate: decimal.RequireFromString("19.99")},
		{ID: 5, Name: "Mortgage", Type: "Loan", Description: "Fixed-rate home mortgage",
			Features: "15 and 30 year terms", Requirements: "Down payment, income verification",
			Fees: decimal.RequireFromString("500.00"), InterestRate: decimal.RequireFromString("6.25")},
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	offers := []Offer{
		{ID: 1, Title: "Premium Credit Card", Description: "0% APR for 12 months", ProductID: 4,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
			Terms: "0% introductory APR on purchases for 12 months, then standard rate applies",
			IsPersonalized: false, CustomerSegment: "All"},
		{ID: 2, Title: "Personal Loan", Description: "Low interest rates starting at 5.99%", ProductID: 3,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
			Terms: "Rate subject to credit approval", IsPersonalized: false, CustomerSegment: "All"},
		{ID: 3, Title: "High-Yield Savings", Description: "Earn 2.5% APY on your savings", ProductID: 1,
			StartDate: "2025-01-01", EndDate: "2025-12-31",
			Terms: "APY valid for balances up to $250,000", IsPersonalized: false, CustomerSegment: "All"},
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&offers).Error; err != nil {
		return fmt.Errorf("failed to seed offers: %w", err)
	}

	return nil
}

type fixtureAccount struct {
	number       string
	accountType  string
	status       string
	transactions []fixtureTransaction
}

type fixtureTransaction struct {
	amount      string
	txType      string
	description string
	date        string
}

type fixtureCustomer struct {
	name     string
	email    string
	phone    string
	address  string
	dob      string
	accounts []fixtureAccount
}

var sampleCustomers = []fixtureCustomer{
	{
		name: "John Doe", email: "john.doe@example.com", phone: "555-123-4567",
		address: "123 Main St, Anytown, USA", dob: "1985-05-15",
		accounts: []fixtureAccount{
			{number: "1000200001", accountType: AccountTypeChecking, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "2500.00", txType: "Deposit", description: "Salary", date: "2025-05-01"},
					{amount: "-120.45", txType: "Withdrawal", description: "ATM withdrawal", date: "2025-05-03"},
					{amount: "-54.20", txType: "Payment", description: "Utility bill", date: "2025-05-10"},
					{amount: "-12.00", txType: "Fee", description: "Monthly account fee", date: "2025-05-20"},
				}},
			{number: "1000200002", accountType: AccountTypeSavings, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "500.00", txType: "Transfer", description: "Transfer from checking", date: "2025-04-15"},
					{amount: "3.75", txType: "Interest", description: "Monthly interest", date: "2025-04-30"},
				}},
		},
	},
	{
		name: "Jane Smith", email: "jane.smith@example.com", phone: "555-987-6543",
		address: "456 Oak Ave, Somewhere, USA", dob: "1990-08-22",
		accounts: []fixtureAccount{
			{number: "1000200003", accountType: AccountTypeChecking, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "3100.00", txType: "Deposit", description: "Salary", date: "2025-05-01"},
					{amount: "-850.00", txType: "Payment", description: "Rent", date: "2025-05-02"},
					{amount: "-63.10", txType: "Withdrawal", description: "Groceries", date: "2025-05-12"},
				}},
			{number: "1000200004", accountType: AccountTypeCredit, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "-230.99", txType: "Payment", description: "Online purchase", date: "2025-05-05"},
				}},
		},
	},
	{
		name: "Michael Johnson", email: "michael.johnson@example.com", phone: "555-456-7890",
		address: "789 Pine Rd, Elsewhere, USA", dob: "1978-12-10",
		accounts: []fixtureAccount{
			{number: "1000200005", accountType: AccountTypeSavings, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "10000.00", txType: "Deposit", description: "Initial deposit", date: "2025-01-10"},
					{amount: "20.83", txType: "Interest", description: "Monthly interest", date: "2025-02-01"},
					{amount: "20.87", txType: "Interest", description: "Monthly interest", date: "2025-03-01"},
				}},
			{number: "1000200006", accountType: AccountTypeLoan, status: AccountStatusActive,
				transactions: []fixtureTransaction{
					{amount: "-450.00", txType: "Payment", description: "Loan installment", date: "2025-05-01"},
				}},
		},
	},
	{
		name: "Sarah Williams", email: "sarah.williams@example.com", phone: "555-234-5678",
		address: "321 Elm St, Nowhere, USA", dob: "1992-03-28",
		accounts: []fixtureAccount{
			{number: "1000200007", accountType: AccountTypeChecking, status: AccountStatusSuspended,
				transactions: []fixtureTransaction{
					{amount: "1200.00", txType: "Deposit", description: "Freelance payment", date: "2025-04-20"},
					{amount: "-35.00", txType: "Fee", description: "Overdraft fee", date: "2025-04-25"},
				}},
		},
	},
	{
		name: "Robert Brown", email: "robert.brown@example.com", phone: "555-876-5432",
		address: "654 Maple Dr, Anywhere, USA", dob: "1983-07-04",
		accounts: []fixtureAccount{
			{number: "1000200008", accountType: AccountTypeSavings, status: AccountStatusInactive,
				transactions: []fixtureTransaction{
					{amount: "750.00", txType: "Deposit", description: "Initial deposit", date: "2024-11-03"},
				}},
		},
	},
}

// Seed populates the database with the sample customers, accounts, and
// transactions used by the demos. A database that already holds customers
// is left untouched.
func (s *Store) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, fc := range sampleCustomers {
		customer := Customer{
			Name:    fc.name,
			Email:   fc.email,
			Phone:   fc.phone,
			Address: fc.address,
			DOB:     fc.dob,
		}
		if err := s.CreateCustomer(ctx, &customer); err != nil {
			return err
		}
		for _, fa := range fc.accounts {
			account := Account{
				CustomerID:    customer.ID,
				AccountNumber: fa.number,
				Balance:       decimal.Zero,
				AccountType:   fa.accountType,
				AccountStatus: fa.status,
			}
			if err := s.CreateAccount(ctx, &account); err != nil {
				return err
			}
			for _, ft := range fa.transactions {
				transaction := Transaction{
					AccountID:       account.ID,
					Amount:          decimal.RequireFromString(ft.amount),
					Type:            ft.txType,
					Description:     ft.description,
					TransactionDate: ft.date,
				}
				if err := s.InsertTransaction(ctx, &transaction); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

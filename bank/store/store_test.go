package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bank_test.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return st
}

func createCustomer(t *testing.T, st *Store, name, email string) *Customer {
	t.Helper()
	customer := &Customer{
		Name:    name,
		Email:   email,
		Phone:   "555-000-0000",
		Address: "1 Test St",
		DOB:     "1990-01-01",
	}
	if err := st.CreateCustomer(context.Background(), customer); err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

func createAccount(t *testing.T, st *Store, customerID int64) *Account {
	t.Helper()
	account := &Account{
		CustomerID:    customerID,
		Balance:       decimal.Zero,
		AccountType:   AccountTypeChecking,
		AccountStatus: AccountStatusActive,
	}
	if err := st.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	return account
}

func insertTransaction(t *testing.T, st *Store, accountID int64, amount, txType, date string) {
	t.Helper()
	tx := &Transaction{
		AccountID:       accountID,
		Amount:          decimal.RequireFromString(amount),
		Type:            txType,
		TransactionDate: date,
	}
	if err := st.InsertTransaction(context.Background(), tx); err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Migrate(); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}

	products, err := st.Products(ctx)
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}
	if len(products) != 5 {
		t.Errorf("Expected 5 seeded products after repeated migrate, got %d", len(products))
	}

	offers, err := st.Offers(ctx)
	if err != nil {
		t.Fatalf("Failed to list offers: %v", err)
	}
	if len(offers) != 3 {
		t.Errorf("Expected 3 seeded offers after repeated migrate, got %d", len(offers))
	}
}

func TestCustomerReads(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")

	t.Run("existing customer", func(t *testing.T) {
		got, err := st.GetCustomer(ctx, customer.ID)
		if err != nil {
			t.Fatalf("Failed to get customer: %v", err)
		}
		if got.Name != "Alice Test" || got.Email != "alice@example.com" {
			t.Errorf("Unexpected customer data: %+v", got)
		}
		exists, err := st.CustomerExists(ctx, customer.ID)
		if err != nil || !exists {
			t.Errorf("Expected customer to exist, got exists=%v err=%v", exists, err)
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		if _, err := st.GetCustomer(ctx, 99999); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		exists, err := st.CustomerExists(ctx, 99999)
		if err != nil || exists {
			t.Errorf("Expected customer to not exist, got exists=%v err=%v", exists, err)
		}
	})
}

func TestAccountOwnershipIsOpaque(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createCustomer(t, st, "Alice Test", "alice@example.com")
	bob := createCustomer(t, st, "Bob Test", "bob@example.com")
	bobAccount := createAccount(t, st, bob.ID)

	_, errForeign := st.AccountForCustomer(ctx, alice.ID, bobAccount.ID)
	_, errMissing := st.AccountForCustomer(ctx, alice.ID, 424242)

	if !errors.Is(errForeign, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign account, got %v", errForeign)
	}
	if !errors.Is(errMissing, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing account, got %v", errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Errorf("Foreign and missing accounts should be indistinguishable: %q vs %q", errForeign, errMissing)
	}
}

func TestAccountNumberGenerated(t *testing.T) {
	st := newTestStore(t)
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	if account.AccountNumber == "" {
		t.Fatal("Expected a generated account number")
	}
	if len(account.AccountNumber) != len("ACC-")+8 {
		t.Errorf("Unexpected account number format: %s", account.AccountNumber)
	}
}

func TestInsertTransactionAdjustsBalance(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	insertTransaction(t, st, account.ID, "250.00", "Deposit", "2025-05-01")
	insertTransaction(t, st, account.ID, "-75.50", "Withdrawal", "2025-05-02")

	balance, err := st.AccountBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance.StringFixed(2) != "174.50" {
		t.Errorf("Expected balance 174.50, got %s", balance.StringFixed(2))
	}
}

func TestInsertTransactionUnknownAccount(t *testing.T) {
	st := newTestStore(t)
	tx := &Transaction{
		AccountID:       424242,
		Amount:          decimal.RequireFromString("10.00"),
		Type:            "Deposit",
		TransactionDate: "2025-05-01",
	}
	if err := st.InsertTransaction(context.Background(), tx); !errors.Is(err, ErrConstraintViolation) {
		t.Errorf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestTransactionOrderingAndPagination(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	insertTransaction(t, st, account.ID, "10.00", "Deposit", "2025-01-15")
	insertTransaction(t, st, account.ID, "20.00", "Deposit", "2025-03-01")
	insertTransaction(t, st, account.ID, "30.00", "Deposit", "2025-02-10")

	t.Run("newest first", func(t *testing.T) {
		transactions, err := st.TransactionsForAccount(ctx, account.ID, 10, 0)
		if err != nil {
			t.Fatalf("Failed to list transactions: %v", err)
		}
		if len(transactions) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(transactions))
		}
		dates := []string{transactions[0].TransactionDate, transactions[1].TransactionDate, transactions[2].TransactionDate}
		want := []string{"2025-03-01", "2025-02-10", "2025-01-15"}
		for i := range want {
			if dates[i] != want[i] {
				t.Errorf("Position %d: expected %s, got %s", i, want[i], dates[i])
			}
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		page, err := st.TransactionsForAccount(ctx, account.ID, 1, 1)
		if err != nil {
			t.Fatalf("Failed to list transactions: %v", err)
		}
		if len(page) != 1 || page[0].TransactionDate != "2025-02-10" {
			t.Errorf("Expected the second-newest transaction, got %+v", page)
		}
	})

	t.Run("offset past the end", func(t *testing.T) {
		page, err := st.TransactionsForAccount(ctx, account.ID, 10, 50)
		if err != nil {
			t.Fatalf("Failed to list transactions: %v", err)
		}
		if len(page) != 0 {
			t.Errorf("Expected empty page, got %d transactions", len(page))
		}
	})
}

func TestDateFieldsRoundTripAsCalendarDates(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	insertTransaction(t, st, account.ID, "10.00", "Deposit", "2025-05-01")
	insertTransaction(t, st, account.ID, "20.00", "Deposit", "2025-05-10")
	insertTransaction(t, st, account.ID, "30.00", "Deposit", "2025-05-20")

	t.Run("transaction date", func(t *testing.T) {
		matched, err := st.TransactionsByDateRange(ctx, account.ID, "2025-05-05", "2025-05-15")
		if err != nil {
			t.Fatalf("Failed to query by date range: %v", err)
		}
		if len(matched) != 1 {
			t.Fatalf("Expected exactly one transaction in range, got %d", len(matched))
		}
		if matched[0].TransactionDate != "2025-05-10" {
			t.Errorf("Transaction date must read back as written, got %q", matched[0].TransactionDate)
		}
	})

	t.Run("customer dob", func(t *testing.T) {
		got, err := st.GetCustomer(ctx, customer.ID)
		if err != nil {
			t.Fatalf("Failed to get customer: %v", err)
		}
		if got.DOB != "1990-01-01" {
			t.Errorf("DOB must read back as written, got %q", got.DOB)
		}
	})

	t.Run("offer dates", func(t *testing.T) {
		offers, err := st.Offers(ctx)
		if err != nil {
			t.Fatalf("Failed to list offers: %v", err)
		}
		if len(offers) == 0 {
			t.Fatal("Expected seeded offers")
		}
		if offers[0].StartDate != "2025-01-01" || offers[0].EndDate != "2025-12-31" {
			t.Errorf("Offer dates must read back as written, got %q..%q", offers[0].StartDate, offers[0].EndDate)
		}
	})
}

func TestTransactionsByDateRange(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	insertTransaction(t, st, account.ID, "10.00", "Deposit", "2025-01-01")
	insertTransaction(t, st, account.ID, "20.00", "Deposit", "2025-01-15")
	insertTransaction(t, st, account.ID, "30.00", "Deposit", "2025-02-01")

	t.Run("inclusive bounds", func(t *testing.T) {
		transactions, err := st.TransactionsByDateRange(ctx, account.ID, "2025-01-01", "2025-01-15")
		if err != nil {
			t.Fatalf("Failed to query by date range: %v", err)
		}
		if len(transactions) != 2 {
			t.Errorf("Expected 2 transactions in range, got %d", len(transactions))
		}
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		transactions, err := st.TransactionsByDateRange(ctx, account.ID, "2025-02-01", "2025-01-01")
		if err != nil {
			t.Fatalf("Reversed range should not error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty result for reversed range, got %d", len(transactions))
		}
	})
}

func TestTransactionsByType(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")
	account := createAccount(t, st, customer.ID)

	insertTransaction(t, st, account.ID, "100.00", "Deposit", "2025-01-01")
	insertTransaction(t, st, account.ID, "-40.00", "Withdrawal", "2025-01-02")
	insertTransaction(t, st, account.ID, "200.00", "Deposit", "2025-01-03")

	deposits, err := st.TransactionsByType(ctx, account.ID, "Deposit")
	if err != nil {
		t.Fatalf("Failed to query by type: %v", err)
	}
	if len(deposits) != 2 {
		t.Errorf("Expected 2 deposits, got %d", len(deposits))
	}

	unknown, err := st.TransactionsByType(ctx, account.ID, "Chargeback")
	if err != nil {
		t.Fatalf("Unknown type should not error: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("Expected empty result for unknown type, got %d", len(unknown))
	}
}

func TestCreateComplaint(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	customer := createCustomer(t, st, "Alice Test", "alice@example.com")

	t.Run("round trip", func(t *testing.T) {
		id, err := st.CreateComplaint(ctx, customer.ID, 2, "Duplicate charge", "I was charged twice", "High")
		if err != nil {
			t.Fatalf("Failed to create complaint: %v", err)
		}

		record, err := st.ComplaintByID(ctx, id, &customer.ID)
		if err != nil {
			t.Fatalf("Failed to read complaint back: %v", err)
		}
		if record.Status != ComplaintStatusOpen {
			t.Errorf("Expected status %q, got %q", ComplaintStatusOpen, record.Status)
		}
		if record.TypeName != "Transaction Problem" {
			t.Errorf("Expected joined type name, got %q", record.TypeName)
		}
		if record.ResolvedAt != nil {
			t.Errorf("New complaint should not be resolved, got %v", record.ResolvedAt)
		}
	})

	t.Run("unknown complaint type", func(t *testing.T) {
		_, err := st.CreateComplaint(ctx, customer.ID, 999, "Title", "Description", "Low")
		if !errors.Is(err, ErrConstraintViolation) {
			t.Errorf("Expected ErrConstraintViolation, got %v", err)
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := st.CreateComplaint(ctx, 424242, 1, "Title", "Description", "Low")
		if !errors.Is(err, ErrConstraintViolation) {
			t.Errorf("Expected ErrConstraintViolation, got %v", err)
		}
	})
}

func TestComplaintOwnershipIsOpaque(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createCustomer(t, st, "Alice Test", "alice@example.com")
	bob := createCustomer(t, st, "Bob Test", "bob@example.com")

	id, err := st.CreateComplaint(ctx, bob.ID, 1, "Locked out", "Cannot log in", "Medium")
	if err != nil {
		t.Fatalf("Failed to create complaint: %v", err)
	}

	if _, err := st.ComplaintByID(ctx, id, &alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign complaint, got %v", err)
	}
	if _, err := st.ComplaintByID(ctx, 424242, &alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing complaint, got %v", err)
	}

	// Unscoped lookup is for internal callers and does see the row.
	record, err := st.ComplaintByID(ctx, id, nil)
	if err != nil {
		t.Fatalf("Unscoped lookup failed: %v", err)
	}
	if record.CustomerID != bob.ID {
		t.Errorf("Expected complaint owned by %d, got %d", bob.ID, record.CustomerID)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.Seed(ctx); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}
	if err := st.Seed(ctx); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	exists, err := st.CustomerExists(ctx, 1)
	if err != nil || !exists {
		t.Fatalf("Expected seeded customer 1, got exists=%v err=%v", exists, err)
	}

	accounts, err := st.AccountsForCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list seeded accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("Expected 2 accounts for the first seeded customer, got %d", len(accounts))
	}
	for _, account := range accounts {
		if account.Balance.IsZero() {
			t.Errorf("Account %s should have a balance built from its transactions", account.AccountNumber)
		}
	}
}

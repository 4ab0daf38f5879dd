package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound reports that no row matched. Reads that scope by owner
	// return it for both a missing row and a row held by a different
	// customer, so the caller cannot tell the cases apart.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation reports a write referencing a nonexistent
	// foreign entity.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Store wraps the database handle. Construct it once at process start and
// inject it wherever queries are needed; there is no ambient global.
type Store struct {
	db *gorm.DB
}

// Open connects to the database named by dsn. A postgres:// URI selects the
// postgres driver; anything else is treated as a SQLite file path. SQLite
// connections get foreign-key enforcement turned on, which the driver
// leaves off by default.
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		if !strings.Contains(dsn, "_foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn = dsn + sep + "_foreign_keys=on"
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate idempotently creates the schema and seeds the reference tables
// (complaint types, products, offers). Safe to call on every start.
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&Customer{},
		&Account{},
		&Transaction{},
		&ComplaintType{},
		&Complaint{},
		&Product{},
		&Offer{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return s.seedReferenceData()
}

// ===== customer reads =====

func (s *Store) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	var customer Customer
	err := s.db.WithContext(ctx).First(&customer, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return &customer, nil
}

func (s *Store) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", customerID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return count > 0, nil
}

// ===== account reads =====

// AccountsForCustomer returns the customer's accounts, newest first.
func (s *Store) AccountsForCustomer(ctx context.Context, customerID int64) ([]Account, error) {
	var accounts []Account
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	return accounts, nil
}

// AccountForCustomer returns the account only when it exists and belongs to
// the given customer; otherwise ErrNotFound.
func (s *Store) AccountForCustomer(ctx context.Context, customerID, accountID int64) (*Account, error) {
	var account Account
	err := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", accountID, customerID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &account, nil
}

func (s *Store) AccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var account Account
	err := s.db.WithContext(ctx).Select("balance").First(&account, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query balance: %w", err)
	}
	return account.Balance, nil
}

// ===== transaction reads =====

// Transactions order newest-first: transaction date descending, then
// creation time descending.
const transactionOrder = "transaction_date DESC, created_at DESC"

func (s *Store) TransactionsForAccount(ctx context.Context, accountID int64, limit, offset int) ([]Transaction, error) {
	var transactions []Transaction
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order(transactionOrder).
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return transactions, nil
}

// TransactionsByDateRange filters on transaction date with inclusive
// bounds. A start after end yields an empty result, not an error.
func (s *Store) TransactionsByDateRange(ctx context.Context, accountID int64, startDate, endDate string) ([]Transaction, error) {
	var transactions []Transaction
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND transaction_date BETWEEN ? AND ?", accountID, startDate, endDate).
		Order(transactionOrder).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date: %w", err)
	}
	return transactions, nil
}

// TransactionsByType matches the type exactly; an unknown type yields an
// empty result.
func (s *Store) TransactionsByType(ctx context.Context, accountID int64, transactionType string) ([]Transaction, error) {
	var transactions []Transaction
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND type = ?", accountID, transactionType).
		Order(transactionOrder).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by type: %w", err)
	}
	return transactions, nil
}

// ===== complaint reads =====

const complaintSelect = "complaints.*, complaint_types.name AS type_name"

func (s *Store) ComplaintsForCustomer(ctx context.Context, customerID int64, limit, offset int) ([]ComplaintRecord, error) {
	var records []ComplaintRecord
	err := s.db.WithContext(ctx).
		Table("complaints").
		Select(complaintSelect).
		Joins("JOIN complaint_types ON complaint_types.id = complaints.type_id").
		Where("complaints.customer_id = ?", customerID).
		Order("complaints.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	return records, nil
}

// ComplaintByID looks a complaint up by id. When customerID is non-nil the
// lookup is scoped to that customer; a complaint held by someone else is
// reported as ErrNotFound, same as a missing one.
func (s *Store) ComplaintByID(ctx context.Context, complaintID int64, customerID *int64) (*ComplaintRecord, error) {
	query := s.db.WithContext(ctx).
		Table("complaints").
		Select(complaintSelect).
		Joins("JOIN complaint_types ON complaint_types.id = complaints.type_id").
		Where("complaints.id = ?", complaintID)
	if customerID != nil {
		query = query.Where("complaints.customer_id = ?", *customerID)
	}

	var records []ComplaintRecord
	if err := query.Limit(1).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query complaint: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// ===== writes =====

// CreateComplaint inserts a complaint with status fixed to Open and returns
// the new id. A customer or type id that does not resolve fails with
// ErrConstraintViolation.
func (s *Store) CreateComplaint(ctx context.Context, customerID, typeID int64, title, description, priority string) (int64, error) {
	var complaintID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("customer %d: %w", customerID, ErrConstraintViolation)
		}
		if err := tx.Model(&ComplaintType{}).Where("id = ?", typeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("complaint type %d: %w", typeID, ErrConstraintViolation)
		}

		complaint := Complaint{
			CustomerID:  customerID,
			TypeID:      typeID,
			Title:       title,
			Description: description,
			Status:      ComplaintStatusOpen,
			Priority:    priority,
		}
		if err := tx.Create(&complaint).Error; err != nil {
			return err
		}
		complaintID = complaint.ID
		return nil
	})
	if err != nil {
		if isConstraintError(err) {
			return 0, fmt.Errorf("failed to create complaint: %w", ErrConstraintViolation)
		}
		return 0, fmt.Errorf("failed to create complaint: %w", err)
	}
	return complaintID, nil
}

// CreateCustomer inserts a customer row. Used by provisioning fixtures and
// tests; the agent surface never calls it.
func (s *Store) CreateCustomer(ctx context.Context, customer *Customer) error {
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// CreateAccount inserts an account row, generating an account number when
// the caller did not assign one.
func (s *Store) CreateAccount(ctx context.Context, account *Account) error {
	if account.AccountNumber == "" {
		account.AccountNumber = "ACC-" + strings.ToUpper(uuid.NewString()[:8])
	}
	err := s.db.WithContext(ctx).Create(account).Error
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("failed to create account: %w", ErrConstraintViolation)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// InsertTransaction records a transaction and adjusts the owning account's
// balance in the same database transaction, so history and balance cannot
// drift apart.
func (s *Store) InsertTransaction(ctx context.Context, transaction *Transaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account Account
		if err := tx.First(&account, transaction.AccountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("account %d: %w", transaction.AccountID, ErrConstraintViolation)
			}
			return err
		}
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		newBalance := account.Balance.Add(transaction.Amount)
		return tx.Model(&Account{}).
			Where("id = ?", account.ID).
			Update("balance", newBalance).Error
	})
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("failed to insert transaction: %w", ErrConstraintViolation)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ===== reference data reads =====

func (s *Store) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

func (s *Store) Offers(ctx context.Context) ([]Offer, error) {
	var offers []Offer
	if err := s.db.WithContext(ctx).Order("id").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	return offers, nil
}

func isConstraintError(err error) bool {
	if errors.Is(err, ErrConstraintViolation) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") || strings.Contains(msg, "foreign key")
}

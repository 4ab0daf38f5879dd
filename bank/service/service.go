// Package service composes customer-scoped reads over the record store.
// Every multi-entity read is scoped by the requesting customer's id, and a
// cross-customer id combination reads exactly like a missing row.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prismworks-ai/agentdemo/bank/store"
)

const (
	DefaultLimit    = 10
	DefaultPriority = "Medium"
)

type Service struct {
	store *store.Store
}

// New wraps a store handle. The handle is constructed once at process start
// and injected here; the service holds no other state.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) VerifyCustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return s.store.CustomerExists(ctx, customerID)
}

func (s *Service) GetCustomer(ctx context.Context, customerID int64) (*store.Customer, error) {
	return s.store.GetCustomer(ctx, customerID)
}

// GetCustomerAccount returns store.ErrNotFound both when the account does
// not exist and when it belongs to a different customer.
func (s *Service) GetCustomerAccount(ctx context.Context, customerID, accountID int64) (*store.Account, error) {
	return s.store.AccountForCustomer(ctx, customerID, accountID)
}

func (s *Service) GetCustomerAccounts(ctx context.Context, customerID int64) ([]store.Account, error) {
	return s.store.AccountsForCustomer(ctx, customerID)
}

func (s *Service) GetAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	return s.store.AccountBalance(ctx, accountID)
}

func (s *Service) GetAccountTransactions(ctx context.Context, accountID int64, limit, offset int) ([]store.Transaction, error) {
	limit, offset = normalizePage(limit, offset)
	return s.store.TransactionsForAccount(ctx, accountID, limit, offset)
}

// GetTransactionsByDateRange takes ISO calendar dates. Date order is not
// validated here; a start after end simply yields an empty sequence.
func (s *Service) GetTransactionsByDateRange(ctx context.Context, accountID int64, startDate, endDate string) ([]store.Transaction, error) {
	return s.store.TransactionsByDateRange(ctx, accountID, startDate, endDate)
}

func (s *Service) GetTransactionsByType(ctx context.Context, accountID int64, transactionType string) ([]store.Transaction, error) {
	return s.store.TransactionsByType(ctx, accountID, transactionType)
}

func (s *Service) GetCustomerComplaints(ctx context.Context, customerID int64, limit, offset int) ([]store.ComplaintRecord, error) {
	limit, offset = normalizePage(limit, offset)
	return s.store.ComplaintsForCustomer(ctx, customerID, limit, offset)
}

// GetComplaintByID scopes the lookup to the customer when one is given.
// The unscoped form is for trusted internal callers, e.g. echoing a
// complaint right after creating it.
func (s *Service) GetComplaintByID(ctx context.Context, complaintID int64, customerID *int64) (*store.ComplaintRecord, error) {
	return s.store.ComplaintByID(ctx, complaintID, customerID)
}

func (s *Service) CreateComplaint(ctx context.Context, customerID, typeID int64, title, description, priority string) (int64, error) {
	if priority == "" {
		priority = DefaultPriority
	}
	return s.store.CreateComplaint(ctx, customerID, typeID, title, description, priority)
}

// GetProducts returns the product catalog, optionally filtered by id
// and/or type. Type matching is case-insensitive; an empty result is not
// an error.
func (s *Service) GetProducts(ctx context.Context, productID *int64, productType string) ([]store.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]store.Product, 0, len(products))
	for _, p := range products {
		if productID != nil && p.ID != *productID {
			continue
		}
		if productType != "" && !strings.EqualFold(p.Type, productType) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetCurrentOffers returns the current offers. When a valid customer id is
// supplied, one synthesized personalized offer naming the customer's first
// name token is appended. An unknown customer id is store.ErrNotFound.
func (s *Service) GetCurrentOffers(ctx context.Context, customerID *int64) ([]store.Offer, error) {
	offers, err := s.store.Offers(ctx)
	if err != nil {
		return nil, err
	}
	if customerID == nil {
		return offers, nil
	}

	customer, err := s.store.GetCustomer(ctx, *customerID)
	if err != nil {
		return nil, err
	}
	firstName := customer.Name
	if idx := strings.IndexByte(firstName, ' '); idx > 0 {
		firstName = firstName[:idx]
	}
	offers = append(offers, store.Offer{
		ID:              100,
		Title:           fmt.Sprintf("Special Offer for %s", firstName),
		Description:     "Exclusive deal just for you!",
		IsPersonalized:  true,
		CustomerSegment: "Personalized",
	})
	return offers, nil
}

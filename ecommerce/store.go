// Package ecommerce implements the NovaCart shopping assistant: an
// in-memory catalog with carts and orders, exposed to the agent runtime as
// tools.
package ecommerce

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle statuses.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

type Product struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
}

type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	OrderID   string          `json:"order_id"`
	Customer  string          `json:"customer_id"`
	Items     []CartItem      `json:"items,omitempty"`
	Total     decimal.Decimal `json:"total_amount"`
	OrderDate string          `json:"order_date"`
	Status    string          `json:"status"`
	ETA       string          `json:"eta,omitempty"`
}

// Store holds the demo catalog, per-customer carts, and orders. All state
// is process-local; a fresh Store starts from the same seed data.
type Store struct {
	mu      sync.Mutex
	catalog []Product
	carts   map[string][]CartItem
	orders  map[string]Order
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		catalog: []Product{
			{
				ProductID:     "prd001",
				Name:          "Garden Shovel",
				Description:   "A sturdy garden shovel.",
				Price:         decimal.RequireFromString("25.99"),
				StockQuantity: 15,
				Category:      "Gardening Tools",
			},
			{
				ProductID:     "prd002",
				Name:          "Tomato Seeds Pack",
				Description:   "Pack of 50 heirloom tomato seeds.",
				Price:         decimal.RequireFromString("4.99"),
				StockQuantity: 50,
				Category:      "Seeds",
			},
			{
				ProductID:     "prd003",
				Name:          "Plant Fertilizer",
				Description:   "All-purpose plant fertilizer (1kg).",
				Price:         decimal.RequireFromString("12.50"),
				StockQuantity: 25,
				Category:      "Garden Supplies",
			},
		},
		carts: map[string][]CartItem{
			"customer-001": {
				{ProductID: "prd002", Name: "Tomato Seeds Pack", Quantity: 2, Price: decimal.RequireFromString("4.99")},
			},
		},
		orders: map[string]Order{
			"order123": {OrderID: "order123", Customer: "customer-001", Status: OrderStatusShipped, ETA: "2025-05-05"},
			"order456": {OrderID: "order456", Customer: "customer-001", Status: OrderStatusProcessing, ETA: "2025-05-07"},
		},
		now: time.Now,
	}
}

// SearchProducts matches the query against product names,
// case-insensitively.
func (s *Store) SearchProducts(query string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var results []Product
	for _, p := range s.catalog {
		if strings.Contains(strings.ToLower(p.Name), q) {
			results = append(results, p)
		}
	}
	return results
}

// ProductAvailability reports the stock level of one product.
func (s *Store) ProductAvailability(productID string) (quantity int, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.catalog {
		if p.ProductID == productID {
			return p.StockQuantity, true
		}
	}
	return 0, false
}

// OrderByID returns a copy of the order.
func (s *Store) OrderByID(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	return order, ok
}

// CartContents returns a copy of the customer's cart. Unknown customers
// have an empty cart, not an error.
func (s *Store) CartContents(customerID string) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[customerID]
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}

// ModifyCart removes then adds the given product ids. Adding an item
// already in the cart increments its quantity; unknown product ids are
// skipped. Returns the updated cart.
func (s *Store) ModifyCart(customerID string, add, remove []string) []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]CartItem)
	var order []string
	for _, item := range s.carts[customerID] {
		byID[item.ProductID] = item
		order = append(order, item.ProductID)
	}

	for _, pid := range remove {
		delete(byID, pid)
	}
	for _, pid := range add {
		product, ok := s.productByIDLocked(pid)
		if !ok {
			continue
		}
		if item, exists := byID[pid]; exists {
			item.Quantity++
			byID[pid] = item
			continue
		}
		byID[pid] = CartItem{ProductID: pid, Name: product.Name, Quantity: 1, Price: product.Price}
		order = append(order, pid)
	}

	var updated []CartItem
	for _, pid := range order {
		if item, ok := byID[pid]; ok {
			updated = append(updated, item)
		}
	}
	s.carts[customerID] = updated

	out := make([]CartItem, len(updated))
	copy(out, updated)
	return out
}

// PlaceOrder turns the customer's cart into a pending order and empties
// the cart. Stock is decremented per line item.
func (s *Store) PlaceOrder(customerID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[customerID]
	if len(items) == 0 {
		return Order{}, fmt.Errorf("cart is empty for customer %s", customerID)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		for i := range s.catalog {
			if s.catalog[i].ProductID == item.ProductID {
				s.catalog[i].StockQuantity -= item.Quantity
				if s.catalog[i].StockQuantity < 0 {
					s.catalog[i].StockQuantity = 0
				}
			}
		}
	}

	order := Order{
		OrderID:   "ord-" + uuid.NewString(),
		Customer:  customerID,
		Items:     items,
		Total:     total,
		OrderDate: s.now().Format("2006-01-02"),
		Status:    OrderStatusPending,
	}
	s.orders[order.OrderID] = order
	delete(s.carts, customerID)
	return order, nil
}

// OrdersForCustomer lists the customer's orders, newest id last.
func (s *Store) OrdersForCustomer(customerID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Order
	for _, order := range s.orders {
		if order.Customer == customerID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out
}

func (s *Store) productByIDLocked(productID string) (Product, bool) {
	for _, p := range s.catalog {
		if p.ProductID == productID {
			return p, true
		}
	}
	return Product{}, false
}

// PaymentMethods lists the supported payment options.
func (s *Store) PaymentMethods() []string {
	return []string{"Credit Card", "PayPal", "Google Pay"}
}

// ReturnPolicy returns the store policy text.
func (s *Store) ReturnPolicy() string {
	return "Returns accepted within 30 days of delivery. Refunds issued to original payment method."
}

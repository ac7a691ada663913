// Package store implements the store aggregate: an ordered product
// collection with order validation and execution. Orders are validated in
// full before any stock mutation, so a failed order never leaves the
// catalog partially deducted.
package store

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain/product"
)

// ErrNotFound is returned when removing a product that is not in the store.
var ErrNotFound = errors.New("product not in store")

// ErrEmptyOrder is returned when an order contains no lines.
var ErrEmptyOrder = errors.New("order must contain at least one line")

// InactiveProductError indicates an order line references a product that is
// not eligible for purchase.
type InactiveProductError struct {
	Product string
}

func (e *InactiveProductError) Error() string {
	return fmt.Sprintf("product %s is inactive", e.Product)
}

// Line is a single (product, quantity) pair in an order.
type Line struct {
	Product  *product.Product
	Quantity int
}

// Receipt is the result of a fulfilled order.
type Receipt struct {
	ID    string
	Lines []Line
	Total decimal.Decimal
}

// String renders the receipt the way the front end prints it.
func (r *Receipt) String() string {
	return fmt.Sprintf("Order cost: $%s", r.Total.Round(2).StringFixed(2))
}

// Store owns an ordered collection of products and fulfills orders against
// them. Insertion order is preserved; display indices over ListActive are
// derived from it.
type Store struct {
	products []*product.Product
	lg       *zap.Logger
}

// New creates a store holding the given products in order. A nil logger is
// replaced with a no-op logger.
func New(lg *zap.Logger, products ...*product.Product) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{
		products: append([]*product.Product(nil), products...),
		lg:       lg,
	}
}

// AddProduct appends a product to the collection.
func (s *Store) AddProduct(p *product.Product) {
	s.products = append(s.products, p)
}

// RemoveProduct removes a product from the collection. Returns ErrNotFound
// when the product is not present.
func (s *Store) RemoveProduct(p *product.Product) error {
	for i, candidate := range s.products {
		if candidate == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errors.Wrap(ErrNotFound, p.Name())
}

// ListActive returns the currently active products in insertion order.
func (s *Store) ListActive() []*product.Product {
	active := make([]*product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// TotalStockCount returns the sum of stock quantities across active
// products.
func (s *Store) TotalStockCount() int {
	total := 0
	for _, p := range s.ListActive() {
		total += p.Quantity()
	}
	return total
}

// Order validates every line, then executes the purchases and returns a
// receipt with the accumulated total. Validation is all-or-nothing: the
// first failing line aborts the order before any stock is touched.
// Requested quantities are summed per product so repeated lines cannot pass
// validation individually and then drain stock mid-execution.
func (s *Store) Order(lines []Line) (*Receipt, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	requested := make(map[*product.Product]int, len(lines))
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return nil, errors.Wrapf(product.ErrInvalidQuantity, "order line for %s", ln.Product.Name())
		}
		if !ln.Product.IsActive() {
			return nil, &InactiveProductError{Product: ln.Product.Name()}
		}
		requested[ln.Product] += ln.Quantity
		if ln.Product.StockTracked() && requested[ln.Product] > ln.Product.Quantity() {
			return nil, &product.InsufficientStockError{
				Product:   ln.Product.Name(),
				Available: ln.Product.Quantity(),
				Requested: requested[ln.Product],
			}
		}
	}

	total := decimal.Zero
	for _, ln := range lines {
		amount, err := ln.Product.Buy(ln.Quantity)
		if err != nil {
			return nil, errors.Wrapf(err, "buy %d x %s", ln.Quantity, ln.Product.Name())
		}
		total = total.Add(amount)
	}

	receipt := &Receipt{
		ID:    uuid.New().String(),
		Lines: lines,
		Total: total,
	}
	s.lg.Info("order fulfilled",
		zap.String("order_id", receipt.ID),
		zap.Int("lines", len(lines)),
		zap.String("total", receipt.Total.StringFixed(2)))
	return receipt, nil
}

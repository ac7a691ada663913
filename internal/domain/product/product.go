// Package product defines the catalog entity sold by the store: a priced,
// stock-tracked item with an optional promotion attached. A closed set of
// stock policies covers regular items, digital items without stock, and
// items with a per-order purchase cap.
package product

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Validation errors returned by the constructors and mutators.
var (
	ErrInvalidName     = errors.New("product name must not be empty")
	ErrInvalidPrice    = errors.New("product price must be zero or positive")
	ErrInvalidQuantity = errors.New("product quantity must be zero or positive")
)

// InsufficientStockError indicates a deduction would drive stock negative.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s in stock: %d available, %d requested",
		e.Product, e.Available, e.Requested)
}

// Promotion prices a purchase of the given quantity and performs the stock
// deduction mandated by its policy. Implementations must use Deduct for all
// stock mutation so the unlimited policy and the stock counter are honoured.
// The returned error is non-nil only when a deduction fails, which cannot
// happen when the caller validated stock beforehand.
type Promotion interface {
	Name() string
	Apply(p *Product, quantity int) (decimal.Decimal, error)
}

// stockPolicy selects how a product accounts for stock.
type stockPolicy int8

const (
	// stockTracked deducts purchases from a finite quantity.
	stockTracked stockPolicy = iota
	// unlimited pins quantity at zero and never deducts.
	unlimited
	// capacityLimited tracks stock and caps units per purchase line.
	capacityLimited
)

// Product is a purchasable catalog item. The zero value is not usable;
// construct via New, NewUnlimited or NewLimited.
type Product struct {
	name        string
	price       decimal.Decimal
	quantity    int
	maxPerOrder int
	active      bool
	policy      stockPolicy
	promo       Promotion
	counter     *Counter
	lg          *zap.Logger
}

// Option configures optional product collaborators.
type Option func(*Product)

// WithLogger sets the logger used for purchase diagnostics such as the
// per-order cap clamp notice. Defaults to a no-op logger.
func WithLogger(lg *zap.Logger) Option {
	return func(p *Product) {
		if lg != nil {
			p.lg = lg
		}
	}
}

// WithCounter attaches the shared stock counter updated on construction and
// on every deduction.
func WithCounter(c *Counter) Option {
	return func(p *Product) { p.counter = c }
}

// New creates a stock-tracked product. The product starts active unless
// quantity is zero.
func New(name string, price decimal.Decimal, quantity int, opts ...Option) (*Product, error) {
	return newProduct(name, price, quantity, stockTracked, 0, opts)
}

// NewUnlimited creates a product without stock accounting. Quantity is pinned
// at zero and the product is always active.
func NewUnlimited(name string, price decimal.Decimal, opts ...Option) (*Product, error) {
	return newProduct(name, price, 0, unlimited, 0, opts)
}

// NewLimited creates a stock-tracked product whose purchases are capped at
// maxPerOrder units per order line. Requests above the cap are clamped, not
// rejected.
func NewLimited(name string, price decimal.Decimal, quantity, maxPerOrder int, opts ...Option) (*Product, error) {
	if maxPerOrder <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "per-order maximum %d", maxPerOrder)
	}
	return newProduct(name, price, quantity, capacityLimited, maxPerOrder, opts)
}

func newProduct(name string, price decimal.Decimal, quantity int, policy stockPolicy, maxPerOrder int, opts []Option) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price.IsNegative() {
		return nil, errors.Wrapf(ErrInvalidPrice, "got %s", price)
	}
	if quantity < 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "got %d", quantity)
	}

	p := &Product{
		name:        name,
		price:       price,
		quantity:    quantity,
		maxPerOrder: maxPerOrder,
		policy:      policy,
		active:      quantity != 0 || policy == unlimited,
		lg:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.counter != nil {
		p.counter.add(quantity)
	}
	return p, nil
}

// Name returns the immutable product name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal { return p.price }

// Quantity returns the current stock level. Always zero for unlimited
// products.
func (p *Product) Quantity() int { return p.quantity }

// MaxPerOrder returns the per-order unit cap, or zero when the product has
// none.
func (p *Product) MaxPerOrder() int { return p.maxPerOrder }

// StockTracked reports whether purchases deduct from a finite stock.
func (p *Product) StockTracked() bool { return p.policy != unlimited }

// IsActive reports whether the product is eligible for purchase.
func (p *Product) IsActive() bool { return p.active }

// Activate marks the product as eligible for purchase.
func (p *Product) Activate() { p.active = true }

// Deactivate marks the product as ineligible for purchase.
func (p *Product) Deactivate() { p.active = false }

// Promotion returns the attached promotion, or nil.
func (p *Product) Promotion() Promotion { return p.promo }

// SetPromotion attaches a promotion, replacing any prior attachment. A nil
// promotion detaches.
func (p *Product) SetPromotion(promo Promotion) { p.promo = promo }

// SetQuantity replaces the stock level. Negative values are rejected, and
// unlimited products reject any non-zero value. Setting zero deactivates a
// stock-tracked product.
func (p *Product) SetQuantity(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidQuantity, "got %d", n)
	}
	if p.policy == unlimited && n != 0 {
		return errors.Wrap(ErrInvalidQuantity, "unlimited products keep quantity at zero")
	}
	if p.counter != nil {
		p.counter.add(n - p.quantity)
	}
	p.quantity = n
	if p.quantity == 0 && p.policy != unlimited {
		p.Deactivate()
	}
	return nil
}

// Deduct removes n units from stock, deactivating the product when stock
// reaches zero. It is a no-op for unlimited products. Fails with
// *InsufficientStockError when the result would be negative.
func (p *Product) Deduct(n int) error {
	if p.policy == unlimited {
		return nil
	}
	if n > p.quantity {
		return &InsufficientStockError{Product: p.name, Available: p.quantity, Requested: n}
	}
	p.quantity -= n
	if p.counter != nil {
		p.counter.sub(n)
	}
	if p.quantity == 0 {
		p.Deactivate()
	}
	return nil
}

// Buy purchases quantity units and returns the total price. Pricing and
// deduction are delegated to the attached promotion when one is present.
// Capacity-limited products clamp the requested quantity to their per-order
// maximum before anything else happens.
func (p *Product) Buy(quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, errors.Wrapf(ErrInvalidQuantity, "purchase of %d units", quantity)
	}

	if p.policy == capacityLimited && quantity > p.maxPerOrder {
		p.lg.Info("purchase clamped to per-order maximum",
			zap.String("product", p.name),
			zap.Int("requested", quantity),
			zap.Int("maximum", p.maxPerOrder))
		quantity = p.maxPerOrder
	}

	if p.promo != nil {
		return p.promo.Apply(p, quantity)
	}

	if err := p.Deduct(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Describe renders a one-line human-readable summary. Quantity is omitted
// for unlimited products; capacity-limited products include their maximum.
func (p *Product) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Price: %s", p.name, p.price)

	switch p.policy {
	case stockTracked:
		fmt.Fprintf(&b, ", Quantity: %d", p.quantity)
	case capacityLimited:
		fmt.Fprintf(&b, ", Quantity: %d, Maximum: %d", p.quantity, p.maxPerOrder)
	case unlimited:
	}

	if p.promo != nil {
		fmt.Fprintf(&b, ", Promotion: %s", p.promo.Name())
	}
	return b.String()
}

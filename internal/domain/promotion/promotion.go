// Package promotion implements the pricing strategies attachable to
// products: a flat percentage discount, every second unit at half price,
// and every third unit free. Each strategy prices a purchase and performs
// the stock deduction its policy calls for, always through the product's
// Deduct method so unlimited products stay untouched.
package promotion

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain/product"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Compile-time checks that every strategy satisfies the product contract.
var (
	_ product.Promotion = (*PercentDiscount)(nil)
	_ product.Promotion = (*SecondHalfPrice)(nil)
	_ product.Promotion = (*ThirdOneFree)(nil)
)

// PercentDiscount reduces the unit price by a fixed percentage. The full
// requested quantity is deducted from stock in one step.
type PercentDiscount struct {
	name    string
	percent decimal.Decimal
}

// NewPercentDiscount creates a percentage discount. Percent is expressed as
// a whole number, e.g. 30 for 30% off.
func NewPercentDiscount(name string, percent decimal.Decimal) *PercentDiscount {
	return &PercentDiscount{name: name, percent: percent}
}

// Name returns the display name of the promotion.
func (d *PercentDiscount) Name() string { return d.name }

// Apply prices quantity units at the discounted unit price and deducts the
// full quantity from stock.
func (d *PercentDiscount) Apply(p *product.Product, quantity int) (decimal.Decimal, error) {
	if err := p.Deduct(quantity); err != nil {
		return decimal.Zero, err
	}
	multiplier := decimal.NewFromInt(1).Sub(d.percent.Div(hundred))
	unit := p.Price().Mul(multiplier)
	return unit.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// SecondHalfPrice charges full price for odd-numbered units and half price
// for even-numbered units, counting from 1. Stock is deducted one unit at a
// time as each unit is priced.
type SecondHalfPrice struct {
	name string
}

// NewSecondHalfPrice creates a second-unit-half-price promotion.
func NewSecondHalfPrice(name string) *SecondHalfPrice {
	return &SecondHalfPrice{name: name}
}

// Name returns the display name of the promotion.
func (s *SecondHalfPrice) Name() string { return s.name }

// Apply prices quantity units with every second unit at half price.
func (s *SecondHalfPrice) Apply(p *product.Product, quantity int) (decimal.Decimal, error) {
	full := p.Price()
	half := full.Div(two)

	total := decimal.Zero
	for unit := 1; unit <= quantity; unit++ {
		if unit%2 == 0 {
			total = total.Add(half)
		} else {
			total = total.Add(full)
		}
		if err := p.Deduct(1); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}

// ThirdOneFree charges nothing for every third unit, counting from 1.
// Stock is deducted one unit per unit purchased.
type ThirdOneFree struct {
	name string
}

// NewThirdOneFree creates an every-third-unit-free promotion.
func NewThirdOneFree(name string) *ThirdOneFree {
	return &ThirdOneFree{name: name}
}

// Name returns the display name of the promotion.
func (t *ThirdOneFree) Name() string { return t.name }

// Apply prices quantity units with every third unit free.
func (t *ThirdOneFree) Apply(p *product.Product, quantity int) (decimal.Decimal, error) {
	total := decimal.Zero
	for unit := 1; unit <= quantity; unit++ {
		if unit%3 != 0 {
			total = total.Add(p.Price())
		}
		if err := p.Deduct(1); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}

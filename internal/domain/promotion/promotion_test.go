package promotion

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/product"
)

func newStocked(t *testing.T, price int64, quantity int) *product.Product {
	t.Helper()
	p, err := product.New("Google Pixel 7", decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return p
}

func TestSecondHalfPrice_Pricing(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{name: "single unit at full price", quantity: 1, want: "500"},
		{name: "second unit at half price", quantity: 2, want: "750"},
		{name: "third unit back at full price", quantity: 3, want: "1250"},
		{name: "two pairs", quantity: 4, want: "1500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newStocked(t, 500, 250)
			p.SetPromotion(NewSecondHalfPrice("Second Half price!"))

			total, err := p.Buy(tt.quantity)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(total),
				"want %s, got %s", tt.want, total)
			assert.Equal(t, 250-tt.quantity, p.Quantity())
		})
	}
}

func TestThirdOneFree_Pricing(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     string
	}{
		{name: "one unit", quantity: 1, want: "125"},
		{name: "two units", quantity: 2, want: "250"},
		{name: "third unit is free", quantity: 3, want: "250"},
		{name: "fourth unit paid again", quantity: 4, want: "375"},
		{name: "two free units in six", quantity: 6, want: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newStocked(t, 125, 250)
			p.SetPromotion(NewThirdOneFree("Third One Free!"))

			total, err := p.Buy(tt.quantity)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(total),
				"want %s, got %s", tt.want, total)
		})
	}
}

// TestThirdOneFree_LinearStockDeduction pins down the deduction policy: a
// purchase of n units removes exactly n units from stock. Earlier renditions
// of this promotion removed the full requested quantity once per unit
// (n*n in total); that behaviour is deliberately not kept.
func TestThirdOneFree_LinearStockDeduction(t *testing.T) {
	p := newStocked(t, 125, 250)
	p.SetPromotion(NewThirdOneFree("Third One Free!"))

	_, err := p.Buy(4)
	require.NoError(t, err)
	assert.Equal(t, 246, p.Quantity())
}

func TestPercentDiscount_Pricing(t *testing.T) {
	tests := []struct {
		name     string
		percent  int64
		price    int64
		quantity int
		want     string
	}{
		{name: "30 percent off one unit", percent: 30, price: 10, quantity: 1, want: "7"},
		{name: "30 percent off two units", percent: 30, price: 10, quantity: 2, want: "14"},
		{name: "100 percent off is free", percent: 100, price: 10, quantity: 3, want: "0"},
		{name: "zero percent changes nothing", percent: 0, price: 10, quantity: 2, want: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newStocked(t, tt.price, 50)
			p.SetPromotion(NewPercentDiscount("discount", decimal.NewFromInt(tt.percent)))

			total, err := p.Buy(tt.quantity)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(total),
				"want %s, got %s", tt.want, total)
			assert.Equal(t, 50-tt.quantity, p.Quantity())
		})
	}
}

func TestPromotions_UnlimitedProductKeepsZeroStock(t *testing.T) {
	promos := []product.Promotion{
		NewPercentDiscount("30% off!", decimal.NewFromInt(30)),
		NewSecondHalfPrice("Second Half price!"),
		NewThirdOneFree("Third One Free!"),
	}

	for _, promo := range promos {
		t.Run(promo.Name(), func(t *testing.T) {
			p, err := product.NewUnlimited("Windows License", decimal.NewFromInt(125))
			require.NoError(t, err)
			p.SetPromotion(promo)

			_, err = p.Buy(9)
			require.NoError(t, err)
			assert.Equal(t, 0, p.Quantity())
			assert.True(t, p.IsActive())
		})
	}
}

func TestPromotion_Names(t *testing.T) {
	assert.Equal(t, "30% off!", NewPercentDiscount("30% off!", decimal.NewFromInt(30)).Name())
	assert.Equal(t, "Second Half price!", NewSecondHalfPrice("Second Half price!").Name())
	assert.Equal(t, "Third One Free!", NewThirdOneFree("Third One Free!").Name())
}

package app

import (
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"storefront/internal/domain/product"
	"storefront/internal/domain/promotion"
	"storefront/internal/domain/store"
)

// Catalog is the declarative seed inventory: the promotions on offer and the
// products that reference them by name.
type Catalog struct {
	Promotions []PromotionSpec `yaml:"promotions"`
	Products   []ProductSpec   `yaml:"products"`
}

// PromotionSpec declares one promotion. Kind selects the strategy:
// "percent" (requires Percent), "second_half_price", or "third_one_free".
type PromotionSpec struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"`
	Percent float64 `yaml:"percent"`
}

// ProductSpec declares one product. Kind selects the stock policy:
// "standard" (default), "unlimited", or "limited" (requires MaxPerOrder).
// Promotion optionally names a PromotionSpec to attach.
type ProductSpec struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Quantity    int    `yaml:"quantity"`
	Kind        string `yaml:"kind"`
	MaxPerOrder int    `yaml:"max_per_order"`
	Promotion   string `yaml:"promotion"`
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, errors.Wrap(err, "parse catalog file")
	}
	return &cat, nil
}

// DefaultCatalog returns the built-in seed inventory used when no catalog
// file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Promotions: []PromotionSpec{
			{Name: "Second Half price!", Kind: "second_half_price"},
			{Name: "Third One Free!", Kind: "third_one_free"},
			{Name: "30% off!", Kind: "percent", Percent: 30},
		},
		Products: []ProductSpec{
			{Name: "MacBook Air M2", Price: "1450", Quantity: 100},
			{Name: "Bose QuietComfort Earbuds", Price: "250", Quantity: 500},
			{Name: "Google Pixel 7", Price: "500", Quantity: 250, Promotion: "Second Half price!"},
			{Name: "Windows License", Price: "125", Kind: "unlimited", Promotion: "Third One Free!"},
			{Name: "Shipping", Price: "10", Quantity: 250, Kind: "limited", MaxPerOrder: 1, Promotion: "30% off!"},
		},
	}
}

// BuildStore materializes a catalog into a store. Every product shares the
// returned counter and the given logger.
func BuildStore(lg *zap.Logger, cat *Catalog) (*store.Store, *product.Counter, error) {
	promos := make(map[string]product.Promotion, len(cat.Promotions))
	for _, spec := range cat.Promotions {
		promo, err := buildPromotion(spec)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "promotion %q", spec.Name)
		}
		promos[spec.Name] = promo
	}

	counter := product.NewCounter()
	products := make([]*product.Product, 0, len(cat.Products))
	for _, spec := range cat.Products {
		p, err := buildProduct(spec, counter, lg)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "product %q", spec.Name)
		}
		if spec.Promotion != "" {
			promo, ok := promos[spec.Promotion]
			if !ok {
				return nil, nil, errors.Errorf("product %q references unknown promotion %q", spec.Name, spec.Promotion)
			}
			p.SetPromotion(promo)
		}
		products = append(products, p)
	}

	return store.New(lg, products...), counter, nil
}

func buildPromotion(spec PromotionSpec) (product.Promotion, error) {
	switch spec.Kind {
	case "percent":
		return promotion.NewPercentDiscount(spec.Name, decimal.NewFromFloat(spec.Percent)), nil
	case "second_half_price":
		return promotion.NewSecondHalfPrice(spec.Name), nil
	case "third_one_free":
		return promotion.NewThirdOneFree(spec.Name), nil
	default:
		return nil, errors.Errorf("unsupported promotion kind: %q", spec.Kind)
	}
}

func buildProduct(spec ProductSpec, counter *product.Counter, lg *zap.Logger) (*product.Product, error) {
	price, err := decimal.NewFromString(spec.Price)
	if err != nil {
		return nil, errors.Wrapf(product.ErrInvalidPrice, "parse %q", spec.Price)
	}

	opts := []product.Option{
		product.WithCounter(counter),
		product.WithLogger(lg),
	}
	switch spec.Kind {
	case "", "standard":
		return product.New(spec.Name, price, spec.Quantity, opts...)
	case "unlimited":
		return product.NewUnlimited(spec.Name, price, opts...)
	case "limited":
		return product.NewLimited(spec.Name, price, spec.Quantity, spec.MaxPerOrder, opts...)
	default:
		return nil, errors.Errorf("unsupported product kind: %q", spec.Kind)
	}
}

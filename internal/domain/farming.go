package domain

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

var productIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// FarmingProduct is a package users can deposit into to earn yield
type FarmingProduct struct {
	ID        string
	Name      string
	Currency  Currency
	DailyRate decimal.Decimal
	// MinAmount is the smallest amount a single deposit into the product may carry
	MinAmount decimal.Decimal
}

// DefaultFarmingProducts returns the standard catalogue: UNI farming and the five TON Boost packages
func DefaultFarmingProducts() []FarmingProduct {
	return []FarmingProduct{
		{ID: "uni-farming", Name: "UNI Farming", Currency: CurrencyUNI, DailyRate: decimal.New(1, -2), MinAmount: decimal.Zero},
		{ID: "ton-boost-1", Name: "Starter Boost", Currency: CurrencyTON, DailyRate: decimal.New(1, -2), MinAmount: decimal.NewFromInt(10)},
		{ID: "ton-boost-2", Name: "Standard Boost", Currency: CurrencyTON, DailyRate: decimal.New(15, -3), MinAmount: decimal.NewFromInt(50)},
		{ID: "ton-boost-3", Name: "Advanced Boost", Currency: CurrencyTON, DailyRate: decimal.New(2, -2), MinAmount: decimal.NewFromInt(100)},
		{ID: "ton-boost-4", Name: "Premium Boost", Currency: CurrencyTON, DailyRate: decimal.New(25, -3), MinAmount: decimal.NewFromInt(500)},
		{ID: "ton-boost-5", Name: "Elite Boost", Currency: CurrencyTON, DailyRate: decimal.New(3, -2), MinAmount: decimal.NewFromInt(1000)},
	}
}

// FarmingCatalog indexes farming products by id
type FarmingCatalog map[string]FarmingProduct

// NewFarmingCatalog validates products against the currency scales. An empty list yields the default catalogue.
func NewFarmingCatalog(products []FarmingProduct, scales CurrencyScales) (FarmingCatalog, error) {
	if len(products) == 0 {
		products = DefaultFarmingProducts()
	}

	catalog := make(FarmingCatalog, len(products))
	for _, p := range products {
		if !productIDPattern.MatchString(p.ID) {
			return nil, fmt.Errorf("invalid farming product id %q", p.ID)
		}
		if _, dup := catalog[p.ID]; dup {
			return nil, fmt.Errorf("duplicate farming product %q", p.ID)
		}
		scale, err := scales.Scale(p.Currency)
		if err != nil {
			return nil, fmt.Errorf("farming product %q: %w", p.ID, err)
		}
		if !p.DailyRate.IsPositive() {
			return nil, fmt.Errorf("farming product %q: daily rate must be positive", p.ID)
		}
		if p.MinAmount.IsNegative() || !p.MinAmount.Equal(p.MinAmount.Truncate(scale)) {
			return nil, fmt.Errorf("farming product %q: invalid min amount %s", p.ID, p.MinAmount.String())
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		catalog[p.ID] = p
	}
	return catalog, nil
}

// Product returns a product by id
func (c FarmingCatalog) Product(id string) (FarmingProduct, error) {
	p, ok := c[id]
	if !ok {
		return FarmingProduct{}, fmt.Errorf("%w: %q", ErrUnknownFarmingProduct, id)
	}
	return p, nil
}

// ValidateDeposit checks amount is a valid single deposit into the product
func (p FarmingProduct) ValidateDeposit(amount decimal.Decimal, scales CurrencyScales) error {
	if err := scales.ValidateAmount(p.Currency, amount); err != nil {
		return err
	}
	if amount.LessThan(p.MinAmount) {
		return fmt.Errorf("%w: %s requires at least %s %s", ErrBelowMinimumAmount, p.ID, p.MinAmount.String(), p.Currency)
	}
	return nil
}

// Products lists the catalogue ordered by id
func (c FarmingCatalog) Products() []FarmingProduct {
	products := make([]FarmingProduct, 0, len(c))
	for _, p := range c {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

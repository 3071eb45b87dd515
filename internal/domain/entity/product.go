// Package entity contains the pure domain objects of the storefront.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable catalog entry. ExternalProductRef and
// ExternalPriceRef hold the payment provider's mirrored object ids; both are
// empty until the product has been mirrored (or carry deterministic mock ids
// when the provider is unconfigured).
type Product struct {
	ID                 string
	Name               string
	ShortDescription   string
	LongDescription    string
	Price              decimal.Decimal
	Discount           int
	Stock              int
	Image              string
	MetaTags           []string
	Category           string
	Brand              string
	ExternalProductRef string
	ExternalPriceRef   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EffectivePrice returns the sale price after applying the discount
// percentage, rounded to two decimal places.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price.Round(2)
	}
	factor := decimal.NewFromInt(100 - int64(p.Discount)).Div(decimal.NewFromInt(100))

	return p.Price.Mul(factor).Round(2)
}

// UnitAmount returns the effective sale price in minor currency units
// (cents), the representation the payment provider expects.
func (p *Product) UnitAmount() int64 {
	return p.EffectivePrice().Mul(decimal.NewFromInt(100)).IntPart()
}

// InStock reports whether the requested quantity can currently be sold.
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

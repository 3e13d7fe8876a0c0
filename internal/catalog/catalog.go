package catalog

import "github.com/shopspring/decimal"

// Variant is a sellable unit of a product ("1kg", "500ml") with its own
// price and stock counter. Stock is only ever changed through
// Repository.ApplyStockDelta so it can never be driven negative.
type Variant struct {
	Unit           string          `json:"unit"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Enable         bool            `json:"enable"`
	OfferAvailable bool            `json:"offerAvailable"`
	OfferPercent   decimal.Decimal `json:"offerPercent"`
}

// Product groups variants and carries the product-level deal flags.
type Product struct {
	ID              int             `json:"productID"`
	Title           string          `json:"title"`
	Status          bool            `json:"status"`
	CategoryID      int             `json:"categoryID"`
	SubcategoryID   int             `json:"subcategoryID"`
	IsDealAvailable bool            `json:"isDealAvailable"`
	DealPercent     decimal.Decimal `json:"dealPercent"`
	Variants        []Variant       `json:"variants"`
}

// Variant returns the variant with the given unit label, if any.
func (p Product) Variant(unit string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Unit == unit {
			return v, true
		}
	}
	return Variant{}, false
}

// StockDelta is one pending stock adjustment for a single variant.
// Delta is negative for a decrement (order placed) and positive for a
// compensating or cancelling increment.
type StockDelta struct {
	ProductID int    `json:"productID"`
	Unit      string `json:"unit"`
	Delta     int    `json:"delta"`
}

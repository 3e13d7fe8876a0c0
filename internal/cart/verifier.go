package cart

import (
	"fmt"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/pricing"
)

// StockAlert identifies a variant whose stock a verification pass drove
// to exactly zero, for downstream out-of-stock alerting.
type StockAlert struct {
	ProductID int    `json:"productID"`
	Unit      string `json:"unit"`
}

// Result is the outcome of verifying a cart against a catalog snapshot.
// Any blocking error aborts the whole placement: Deltas are only handed
// to the stock ledger when BlockingErrors is empty.
type Result struct {
	BlockingErrors  []string
	Lines           []LineItem
	NewlyOutOfStock []StockAlert
	Deltas          []catalog.StockDelta
}

func (r Result) OK() bool { return len(r.BlockingErrors) == 0 }

type variantKey struct {
	productID int
	unit      string
}

type scratchVariant struct {
	product catalog.Product
	variant catalog.Variant
	stock   int
}

// Verify cross-checks cart lines against the live catalog snapshot and
// reprices each line. Decrements run against a scratch copy of the
// snapshot, never the store, so a cart that fails halfway leaves no
// partial decrement behind. Errors are collected, not fail-fast, so the
// caller can show every problem at once.
func Verify(items []LineItem, products []catalog.Product) Result {
	scratch := make(map[variantKey]*scratchVariant, len(products))
	for _, p := range products {
		for _, v := range p.Variants {
			scratch[variantKey{p.ID, v.Unit}] = &scratchVariant{product: p, variant: v, stock: v.Stock}
		}
	}

	res := Result{
		Lines:  make([]LineItem, 0, len(items)),
		Deltas: make([]catalog.StockDelta, 0, len(items)),
	}

	for _, item := range items {
		sv, ok := scratch[variantKey{item.ProductID, item.Unit}]
		if !ok || !sv.product.Status || !sv.variant.Enable {
			res.BlockingErrors = append(res.BlockingErrors,
				fmt.Sprintf("%s (%s) is not available for delivery", item.Title, item.Unit))
			continue
		}

		if sv.stock < item.Quantity {
			if sv.stock == 0 {
				res.BlockingErrors = append(res.BlockingErrors,
					fmt.Sprintf("%s (%s) is out of stock", sv.product.Title, item.Unit))
			}
			res.BlockingErrors = append(res.BlockingErrors,
				fmt.Sprintf("only %d left of %s (%s)", sv.stock, sv.product.Title, item.Unit))
			continue
		}

		sv.stock -= item.Quantity
		if sv.stock == 0 {
			res.NewlyOutOfStock = append(res.NewlyOutOfStock, StockAlert{ProductID: item.ProductID, Unit: item.Unit})
		}

		priced := pricing.PriceLine(sv.product, sv.variant, item.Quantity)
		res.Lines = append(res.Lines, LineItem{
			ProductID:      sv.product.ID,
			Title:          sv.product.Title,
			Unit:           item.Unit,
			UnitPrice:      priced.UnitPrice,
			Quantity:       item.Quantity,
			LineTotal:      priced.LineTotal,
			DealAmount:     priced.DealAmount,
			OfferPrice:     priced.OfferPrice,
			IsDealApplied:  priced.IsDealApplied,
			IsOfferApplied: priced.IsOfferApplied,
			CategoryID:     sv.product.CategoryID,
			SubcategoryID:  sv.product.SubcategoryID,
		})
		res.Deltas = append(res.Deltas, catalog.StockDelta{
			ProductID: item.ProductID,
			Unit:      item.Unit,
			Delta:     -item.Quantity,
		})
	}

	return res
}

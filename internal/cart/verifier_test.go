package cart

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func verifierCatalog(t *testing.T) []catalog.Product {
	t.Helper()
	return []catalog.Product{
		{
			ID: 1, Title: "Basmati Rice", Status: true,
			IsDealAvailable: true, DealPercent: dec(t, "10"),
			Variants: []catalog.Variant{
				{Unit: "1kg", Price: dec(t, "33.335"), Stock: 10, Enable: true},
				{Unit: "5kg", Price: dec(t, "150"), Stock: 0, Enable: true},
			},
		},
		{
			ID: 2, Title: "Olive Oil", Status: true,
			Variants: []catalog.Variant{
				{Unit: "500ml", Price: dec(t, "50"), Stock: 2, Enable: true},
				{Unit: "1l", Price: dec(t, "90"), Stock: 4, Enable: false},
			},
		},
		{
			ID: 3, Title: "Day-Old Bread", Status: false,
			Variants: []catalog.Variant{
				{Unit: "loaf", Price: dec(t, "1.50"), Stock: 8, Enable: true},
			},
		},
	}
}

func TestVerifyRepricesLines(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{
		// Stale price from when the line was added; verification must
		// replace it with the live deal price.
		{ProductID: 1, Title: "Basmati Rice", Unit: "1kg", Quantity: 3, UnitPrice: dec(t, "29.99"), LineTotal: dec(t, "89.97")},
		{ProductID: 2, Title: "Olive Oil", Unit: "500ml", Quantity: 1},
	}

	res := Verify(items, products)

	if !res.OK() {
		t.Fatalf("unexpected blocking errors: %v", res.BlockingErrors)
	}
	if len(res.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(res.Lines))
	}
	if !res.Lines[0].LineTotal.Equal(dec(t, "90.03")) {
		t.Errorf("repriced line total = %s, want 90.03", res.Lines[0].LineTotal)
	}
	if !res.Lines[0].IsDealApplied {
		t.Error("deal should be applied on reprice")
	}
	if len(res.Deltas) != 2 || res.Deltas[0].Delta != -3 || res.Deltas[1].Delta != -1 {
		t.Errorf("unexpected deltas: %+v", res.Deltas)
	}
}

func TestVerifyDoesNotMutateSnapshot(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{{ProductID: 1, Title: "Basmati Rice", Unit: "1kg", Quantity: 10}}

	res := Verify(items, products)

	if !res.OK() {
		t.Fatalf("unexpected blocking errors: %v", res.BlockingErrors)
	}
	if products[0].Variants[0].Stock != 10 {
		t.Errorf("snapshot stock mutated to %d", products[0].Variants[0].Stock)
	}
}

func TestVerifyCollectsAllErrors(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{
		{ProductID: 9, Title: "Ghost Pepper", Unit: "100g", Quantity: 1}, // unknown
		{ProductID: 3, Title: "Day-Old Bread", Unit: "loaf", Quantity: 1},  // disabled product
		{ProductID: 2, Title: "Olive Oil", Unit: "1l", Quantity: 1},        // disabled variant
		{ProductID: 2, Title: "Olive Oil", Unit: "500ml", Quantity: 5},     // short stock
	}

	res := Verify(items, products)

	if res.OK() {
		t.Fatal("expected blocking errors")
	}
	if len(res.BlockingErrors) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(res.BlockingErrors), res.BlockingErrors)
	}
	if !strings.Contains(res.BlockingErrors[3], "only 2 left") {
		t.Errorf("short-stock message = %q", res.BlockingErrors[3])
	}
}

func TestVerifyZeroStockReportsBothMessages(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{{ProductID: 1, Title: "Basmati Rice", Unit: "5kg", Quantity: 1}}

	res := Verify(items, products)

	if len(res.BlockingErrors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(res.BlockingErrors), res.BlockingErrors)
	}
	if !strings.Contains(res.BlockingErrors[0], "out of stock") {
		t.Errorf("first message = %q", res.BlockingErrors[0])
	}
	if !strings.Contains(res.BlockingErrors[1], "only 0 left") {
		t.Errorf("second message = %q", res.BlockingErrors[1])
	}
}

func TestVerifyScratchDecrementAcrossLines(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{
		{ProductID: 2, Title: "Olive Oil", Unit: "500ml", Quantity: 2},
		{ProductID: 2, Title: "Olive Oil", Unit: "500ml", Quantity: 1},
	}

	res := Verify(items, products)

	if res.OK() {
		t.Fatal("second line should fail against the already-drained scratch stock")
	}
	if len(res.NewlyOutOfStock) != 1 || res.NewlyOutOfStock[0].ProductID != 2 {
		t.Errorf("newly out of stock = %+v", res.NewlyOutOfStock)
	}
}

func TestVerifyFlagsExactDrain(t *testing.T) {
	products := verifierCatalog(t)
	items := []LineItem{{ProductID: 2, Title: "Olive Oil", Unit: "500ml", Quantity: 2}}

	res := Verify(items, products)

	if !res.OK() {
		t.Fatalf("unexpected blocking errors: %v", res.BlockingErrors)
	}
	if len(res.NewlyOutOfStock) != 1 {
		t.Fatalf("newly out of stock = %+v", res.NewlyOutOfStock)
	}
	if res.NewlyOutOfStock[0].Unit != "500ml" {
		t.Errorf("alert unit = %q", res.NewlyOutOfStock[0].Unit)
	}
}

package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(nil)
	if totals.TotalItems != 0 {
		t.Fatalf("expected 0 items, got %d", totals.TotalItems)
	}
	if !totals.TotalPrice.IsZero() {
		t.Fatalf("empty cart must cost nothing, got %s", totals.TotalPrice)
	}
	if !totals.Shipping.IsZero() {
		t.Fatalf("empty cart must not be charged shipping, got %s", totals.Shipping)
	}
}

func TestTotalsChargesShippingBelowThreshold(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals([]LineItem{
		{Book: book("a", "300"), Quantity: 1},
	})
	if !totals.Subtotal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected subtotal %s", totals.Subtotal)
	}
	if !totals.Shipping.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected flat shipping fee, got %s", totals.Shipping)
	}
	if !totals.TotalPrice.Equal(decimal.NewFromInt(320)) {
		t.Fatalf("unexpected total %s", totals.TotalPrice)
	}
}

func TestTotalsFreeShippingAtThreshold(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals([]LineItem{
		{Book: book("b", "600"), Quantity: 1},
	})
	if !totals.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", totals.Shipping)
	}
	if !totals.TotalPrice.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("unexpected total %s", totals.TotalPrice)
	}

	boundary := ComputeTotals([]LineItem{
		{Book: book("c", "500"), Quantity: 1},
	})
	if !boundary.Shipping.IsZero() {
		t.Fatalf("subtotal 500 must ship free, got %s", boundary.Shipping)
	}
}

func TestTotalsSumQuantitiesAndPrices(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals([]LineItem{
		{Book: book("a", "19.99"), Quantity: 3},
		{Book: book("b", "5.5"), Quantity: 2},
	})
	if totals.TotalItems != 5 {
		t.Fatalf("expected 5 items, got %d", totals.TotalItems)
	}
	wantSubtotal := decimal.RequireFromString("70.97")
	if !totals.Subtotal.Equal(wantSubtotal) {
		t.Fatalf("expected subtotal %s, got %s", wantSubtotal, totals.Subtotal)
	}
	wantTotal := decimal.RequireFromString("90.97")
	if !totals.TotalPrice.Equal(wantTotal) {
		t.Fatalf("expected total %s, got %s", wantTotal, totals.TotalPrice)
	}
}

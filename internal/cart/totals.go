package cart

import "github.com/shopspring/decimal"

var (
	// Orders under this subtotal pay the flat shipping fee.
	freeShippingMinimum = decimal.NewFromInt(500)
	shippingFee         = decimal.NewFromInt(20)
)

// Totals are pure derivations of the line items. They are recomputed on
// every read so they can never drift from the items.
type Totals struct {
	TotalItems int
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	TotalPrice decimal.Decimal
}

// ComputeTotals derives the aggregate view of the given items.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.Book.Price.Mul(qty))
		totalItems += item.Quantity
	}

	shipping := decimal.Zero
	if len(items) > 0 && subtotal.LessThan(freeShippingMinimum) {
		shipping = shippingFee
	}

	return Totals{
		TotalItems: totalItems,
		Subtotal:   subtotal,
		Shipping:   shipping,
		TotalPrice: subtotal.Add(shipping).Round(2),
	}
}

// Totals derives the aggregate view of the state's items.
func (s State) Totals() Totals {
	return ComputeTotals(s.Items)
}

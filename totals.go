package receiptstudio

import "github.com/shopspring/decimal"

// DefaultTaxRate is the tax percentage applied when no rate has been chosen.
var DefaultTaxRate = decimal.NewFromInt(7)

// Recompute derives every line total and the aggregate totals from the
// current items and the given tax percentage. It is pure over its inputs and
// idempotent: calling it twice with unchanged items yields identical totals.
//
// Recompute must run after any line-item mutation and after a tax-rate
// change, before the totals are displayed or exported.
func Recompute(doc *Document, taxRatePercent decimal.Decimal) {
	if taxRatePercent.IsNegative() {
		taxRatePercent = decimal.Zero
	}

	subtotal := decimal.Zero
	for i := range doc.Items {
		item := &doc.Items[i]
		item.Total = item.Quantity.Mul(item.Price)
		subtotal = subtotal.Add(item.Total)
	}

	tax := subtotal.Mul(taxRatePercent).Div(decimal.NewFromInt(100))
	doc.Totals = Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// TaxLabel returns the display label for the tax line at the given
// percentage: plain "Tax:" at zero, "VAT <n>%:" otherwise.
func TaxLabel(taxRatePercent decimal.Decimal) string {
	if taxRatePercent.IsZero() {
		return "Tax:"
	}
	return "VAT " + taxRatePercent.String() + "%:"
}

// Package receiptstudio provides the data model for an editable receipt
// document: company and customer identities, a receipt header, an ordered
// list of line items, and totals derived from them.
//
// The model is the canonical state of an editing session. The visual
// representation lives in the vtree package and is kept in sync by the
// fieldsync package; paginated PDF output is produced by the export package.
package receiptstudio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company identifies the party issuing the receipt.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
}

// Customer identifies the party the receipt is issued to.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ReceiptHeader carries the document number and its dates. Dates are opaque
// locale text, not typed values; they are validated and capped like any
// other field but never parsed.
type ReceiptHeader struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`
}

// LineItem is a single billable row. Total is derived from Quantity and
// Price by Recompute and is never edited independently.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Totals holds the aggregate amounts. All three values are derived;
// Recompute is the only writer.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Document aggregates everything a receipt layout needs. Template is the
// identifier of the selected layout, or empty when none is selected.
type Document struct {
	Company  Company       `json:"company"`
	Customer Customer      `json:"customer"`
	Receipt  ReceiptHeader `json:"receipt"`
	Items    []LineItem    `json:"items"`
	Totals   Totals        `json:"totals"`
	Template string        `json:"template,omitempty"`
}

// DefaultCompany returns the built-in seed company used before a saved
// profile is loaded and after a profile reset.
func DefaultCompany() Company {
	return Company{
		Name:    "Example Co., Ltd.",
		Address: "123 Sukhumvit Road, Khlong Tan, Watthana, Bangkok 10110",
		Phone:   "02-123-4567",
		Email:   "info@company.com",
		TaxID:   "0123456789012",
	}
}

// DefaultItem returns the row appended by the add-item command.
func DefaultItem() LineItem {
	return LineItem{
		Description: "New item",
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.Zero,
		Total:       decimal.Zero,
	}
}

// NewDocument returns a freshly seeded document with three sample items and
// totals computed at the default tax rate. The issue date is now and the due
// date seven days out, both rendered as locale-free text.
func NewDocument(now time.Time) *Document {
	doc := &Document{
		Company: DefaultCompany(),
		Customer: Customer{
			Name:    "Sample Customer",
			Address: "456 Ratchada Road, Huai Khwang, Bangkok 10310",
			Phone:   "08-1234-5678",
		},
		Receipt: ReceiptHeader{
			Number:  "R2024001",
			Date:    now.Format("2 Jan 2006"),
			DueDate: now.AddDate(0, 0, 7).Format("2 Jan 2006"),
		},
		Items: []LineItem{
			{Description: "Product/Service 1", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(500)},
			{Description: "Product/Service 2", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(750)},
			{Description: "Product/Service 3", Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(300)},
		},
	}
	Recompute(doc, DefaultTaxRate)
	return doc
}

package layout

import (
	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/vtree"
)

// buildModern is the default layout: a colored header block, a bordered
// items table with a filled header row, and a boxed totals section.
func buildModern(doc *receiptstudio.Document) *vtree.Node {
	taxLabel := receiptstudio.TaxLabel(receiptstudio.DefaultTaxRate)

	header := &vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
		{Kind: vtree.KindGroup, Style: vtree.Style{Weight: 3}, Children: []*vtree.Node{
			text(vtree.RoleCompanyName, doc.Company.Name, vtree.Style{FontSize: 24, Bold: true, Foreground: "#3f51b5"}),
			text(vtree.RoleCompanyAddress, doc.Company.Address, vtree.Style{}),
			text(vtree.RoleCompanyPhone, doc.Company.Phone, vtree.Style{}),
			text(vtree.RoleCompanyEmail, doc.Company.Email, vtree.Style{}),
			text(vtree.RoleCompanyTaxID, doc.Company.TaxID, vtree.Style{}),
		}},
		{Kind: vtree.KindGroup, Style: vtree.Style{Weight: 2}, Children: []*vtree.Node{
			label("RECEIPT", vtree.Style{FontSize: 20, Bold: true, Align: "R", Foreground: "#3f51b5"}),
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("No:", vtree.Style{Align: "R"}),
				text(vtree.RoleReceiptNumber, doc.Receipt.Number, vtree.Style{Align: "R"}),
			}},
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Date:", vtree.Style{Align: "R"}),
				text(vtree.RoleReceiptDate, doc.Receipt.Date, vtree.Style{Align: "R"}),
			}},
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Due:", vtree.Style{Align: "R"}),
				text(vtree.RoleReceiptDueDate, doc.Receipt.DueDate, vtree.Style{Align: "R"}),
			}},
		}},
	}}

	customer := &vtree.Node{
		Kind:  vtree.KindGroup,
		Style: vtree.Style{Padding: 8, Background: "#f8f9fa"},
		Children: []*vtree.Node{
			label("Customer", vtree.Style{Bold: true}),
			text(vtree.RoleCustomerName, doc.Customer.Name, vtree.Style{}),
			text(vtree.RoleCustomerAddress, doc.Customer.Address, vtree.Style{}),
			text(vtree.RoleCustomerPhone, doc.Customer.Phone, vtree.Style{}),
		},
	}

	return &vtree.Node{Kind: vtree.KindGroup, Style: vtree.Style{Padding: 24, Background: "#ffffff"}, Children: []*vtree.Node{
		header,
		spacer(16),
		customer,
		spacer(16),
		itemsTable(doc, "#3f51b5", "#ffffff", [4]string{"Description", "Qty", "Unit Price", "Amount"}),
		spacer(12),
		&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
			{Kind: vtree.KindGroup, Style: vtree.Style{Weight: 2}},
			totalsBox(doc, taxLabel, true),
		}},
		spacer(16),
		barcodeStrip(doc, vtree.BarcodeQR),
		spacer(8),
		label("Thank you for your business", vtree.Style{Align: "C", Foreground: "#666666"}),
		label("Please keep this receipt as proof of payment", vtree.Style{Align: "C", Foreground: "#666666"}),
	}}
}

// buildClassic is the formal layout: centered letterhead over a double rule,
// a dark-bordered table, and a PDF417 strip instead of a QR code.
func buildClassic(doc *receiptstudio.Document) *vtree.Node {
	taxLabel := receiptstudio.TaxLabel(receiptstudio.DefaultTaxRate)

	letterhead := &vtree.Node{Kind: vtree.KindGroup, Children: []*vtree.Node{
		text(vtree.RoleCompanyName, doc.Company.Name, vtree.Style{FontSize: 26, Bold: true, Align: "C"}),
		text(vtree.RoleCompanyAddress, doc.Company.Address, vtree.Style{Align: "C"}),
		text(vtree.RoleCompanyPhone, doc.Company.Phone, vtree.Style{Align: "C"}),
		text(vtree.RoleCompanyEmail, doc.Company.Email, vtree.Style{Align: "C"}),
		text(vtree.RoleCompanyTaxID, doc.Company.TaxID, vtree.Style{Align: "C"}),
		spacer(6),
		&vtree.Node{Kind: vtree.KindDivider, Style: vtree.Style{Foreground: "#2c3e50"}},
	}}

	meta := &vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("No:", vtree.Style{Bold: true}),
				text(vtree.RoleReceiptNumber, doc.Receipt.Number, vtree.Style{}),
			}},
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Date:", vtree.Style{Bold: true}),
				text(vtree.RoleReceiptDate, doc.Receipt.Date, vtree.Style{}),
			}},
		}},
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Due:", vtree.Style{Bold: true}),
				text(vtree.RoleReceiptDueDate, doc.Receipt.DueDate, vtree.Style{}),
			}},
		}},
	}}

	customer := &vtree.Node{
		Kind:  vtree.KindGroup,
		Style: vtree.Style{Padding: 10, Background: "#f8f9fa"},
		Children: []*vtree.Node{
			label("Customer Details", vtree.Style{Bold: true}),
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Name:", vtree.Style{Bold: true}),
				text(vtree.RoleCustomerName, doc.Customer.Name, vtree.Style{Weight: 4}),
			}},
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Address:", vtree.Style{Bold: true}),
				text(vtree.RoleCustomerAddress, doc.Customer.Address, vtree.Style{Weight: 4}),
			}},
			&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
				label("Phone:", vtree.Style{Bold: true}),
				text(vtree.RoleCustomerPhone, doc.Customer.Phone, vtree.Style{Weight: 4}),
			}},
		},
	}

	return &vtree.Node{Kind: vtree.KindGroup, Style: vtree.Style{Padding: 24, Background: "#ffffff"}, Children: []*vtree.Node{
		letterhead,
		spacer(10),
		label("RECEIPT", vtree.Style{FontSize: 22, Bold: true, Align: "C", Foreground: "#2c3e50"}),
		spacer(10),
		meta,
		spacer(12),
		customer,
		spacer(12),
		itemsTable(doc, "#2c3e50", "#ffffff", [4]string{"Description of Goods/Services", "Qty", "Unit Price", "Amount"}),
		spacer(12),
		&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
			{Kind: vtree.KindGroup, Style: vtree.Style{Weight: 2}},
			totalsBox(doc, taxLabel, true),
		}},
		spacer(16),
		barcodeStrip(doc, vtree.BarcodePDF417),
		spacer(8),
		&vtree.Node{Kind: vtree.KindDivider, Style: vtree.Style{Foreground: "#cccccc"}},
		label("Thank you for your patronage", vtree.Style{Align: "C", Foreground: "#666666"}),
	}}
}

// buildMinimal is the sparse layout: small type, thin rules, no fills.
func buildMinimal(doc *receiptstudio.Document) *vtree.Node {
	taxLabel := receiptstudio.TaxLabel(receiptstudio.DefaultTaxRate)

	head := &vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			text(vtree.RoleCompanyName, doc.Company.Name, vtree.Style{FontSize: 18}),
			text(vtree.RoleCompanyEmail, doc.Company.Email, vtree.Style{Foreground: "#666666"}),
		}},
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			label("RECEIPT", vtree.Style{FontSize: 16, Align: "R", Foreground: "#333333"}),
			text(vtree.RoleReceiptNumber, doc.Receipt.Number, vtree.Style{Align: "R", Foreground: "#666666"}),
		}},
	}}

	parties := &vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			label("From", vtree.Style{Foreground: "#999999"}),
			text(vtree.RoleCompanyAddress, doc.Company.Address, vtree.Style{Foreground: "#666666"}),
			text(vtree.RoleCompanyPhone, doc.Company.Phone, vtree.Style{Foreground: "#666666"}),
			text(vtree.RoleCompanyTaxID, doc.Company.TaxID, vtree.Style{Foreground: "#666666"}),
		}},
		{Kind: vtree.KindGroup, Children: []*vtree.Node{
			label("To", vtree.Style{Align: "R", Foreground: "#999999"}),
			text(vtree.RoleCustomerName, doc.Customer.Name, vtree.Style{Align: "R"}),
			text(vtree.RoleCustomerAddress, doc.Customer.Address, vtree.Style{Align: "R", Foreground: "#666666"}),
			text(vtree.RoleCustomerPhone, doc.Customer.Phone, vtree.Style{Align: "R", Foreground: "#666666"}),
		}},
	}}

	return &vtree.Node{Kind: vtree.KindGroup, Style: vtree.Style{Padding: 32, Background: "#ffffff"}, Children: []*vtree.Node{
		head,
		spacer(24),
		parties,
		spacer(24),
		itemsTable(doc, "", "#666666", [4]string{"Item", "Qty", "Price", "Amount"}),
		spacer(12),
		&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
			{Kind: vtree.KindGroup, Style: vtree.Style{Weight: 2}},
			totalsBox(doc, taxLabel, false),
		}},
		spacer(24),
		barcodeStrip(doc, vtree.BarcodeQR),
		spacer(8),
		&vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
			label("Date:", vtree.Style{Align: "C", Foreground: "#999999"}),
			text(vtree.RoleReceiptDate, doc.Receipt.Date, vtree.Style{Foreground: "#999999"}),
			text(vtree.RoleReceiptDueDate, doc.Receipt.DueDate, vtree.Style{Align: "R", Foreground: "#999999"}),
		}},
		label("Thank you for your business", vtree.Style{Align: "C", Foreground: "#999999"}),
	}}
}

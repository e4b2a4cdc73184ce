// Package layout supplies the built-in receipt layouts.
//
// Each layout builds a visual tree from the current document, tagging every
// editable node with its field role and exposing a line-item table region,
// so the field sync adapter can bind any layout without layout-specific
// code. Layouts also attach a machine-readable strip carrying the receipt
// number.
package layout

import (
	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/vtree"
)

// Template is a named receipt layout.
type Template struct {
	ID    string
	Name  string
	Build func(doc *receiptstudio.Document) *vtree.Node
}

// Built-in template identifiers.
const (
	Modern  = "modern"
	Classic = "classic"
	Minimal = "minimal"
)

// Templates returns the built-in layouts in presentation order.
func Templates() []Template {
	return []Template{
		{ID: Modern, Name: "Modern", Build: buildModern},
		{ID: Classic, Name: "Classic", Build: buildClassic},
		{ID: Minimal, Name: "Minimal", Build: buildMinimal},
	}
}

// ByID returns the built-in template with the given identifier.
func ByID(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func text(role vtree.Role, value string, style vtree.Style) *vtree.Node {
	return &vtree.Node{
		Kind:     vtree.KindText,
		Role:     role,
		Text:     vtree.RolePrefix(role) + value,
		Style:    style,
		Editable: role != "",
	}
}

func label(value string, style vtree.Style) *vtree.Node {
	return &vtree.Node{Kind: vtree.KindText, Text: value, Style: style}
}

func spacer(height float64) *vtree.Node {
	return &vtree.Node{Kind: vtree.KindSpacer, Style: vtree.Style{Height: height}}
}

func itemCell(role vtree.Role, index int, value, align string) *vtree.Node {
	weight := 1.0
	if role == vtree.RoleItemDescription {
		weight = 3
	}
	return &vtree.Node{
		Kind:     vtree.KindCell,
		Role:     role,
		Index:    index,
		Text:     value,
		Style:    vtree.Style{Align: align, Weight: weight, Padding: 6},
		Editable: role != vtree.RoleItemTotal,
	}
}

func deleteCell(index int) *vtree.Node {
	return &vtree.Node{
		Kind:        vtree.KindCell,
		Style:       vtree.Style{Align: "C", Weight: 0.6, Padding: 6},
		Interactive: true,
		Children: []*vtree.Node{{
			Kind:        vtree.KindButton,
			Text:        "✕",
			Index:       index,
			Interactive: true,
			Style:       vtree.Style{Align: "C", Foreground: "#e74c3c"},
		}},
	}
}

// itemsTable builds the line-item region shared by all layouts. headerBG and
// headerFG style the header row; the trailing actions column is marked
// interactive so export preparation strips it.
func itemsTable(doc *receiptstudio.Document, headerBG, headerFG string, headers [4]string) *vtree.Node {
	headerCell := func(value string, weight float64) *vtree.Node {
		return &vtree.Node{
			Kind:     vtree.KindCell,
			Text:     value,
			Editable: true,
			Style: vtree.Style{
				Align: "C", Weight: weight, Padding: 6, Bold: true,
				Background: headerBG, Foreground: headerFG,
			},
		}
	}

	header := &vtree.Node{Kind: vtree.KindTableRow, Children: []*vtree.Node{
		headerCell(headers[0], 3),
		headerCell(headers[1], 1),
		headerCell(headers[2], 1),
		headerCell(headers[3], 1),
		func() *vtree.Node {
			c := headerCell("Manage", 0.6)
			c.Interactive = true
			c.Editable = false
			return c
		}(),
	}}

	table := &vtree.Node{Kind: vtree.KindTable, Style: vtree.Style{Border: true}, Children: []*vtree.Node{header}}
	for i, item := range doc.Items {
		table.Children = append(table.Children, &vtree.Node{
			Kind:  vtree.KindTableRow,
			Index: i,
			Children: []*vtree.Node{
				itemCell(vtree.RoleItemDescription, i, item.Description, "L"),
				itemCell(vtree.RoleItemQuantity, i, item.Quantity.String(), "C"),
				itemCell(vtree.RoleItemPrice, i, receiptstudio.FormatAmount(item.Price), "R"),
				itemCell(vtree.RoleItemTotal, i, receiptstudio.FormatAmount(item.Total), "R"),
				deleteCell(i),
			},
		})
	}
	return table
}

// totalsBox builds the derived-amount region. Total nodes are never
// editable; they are written only by the totals engine.
func totalsBox(doc *receiptstudio.Document, taxLabel string, boxed bool) *vtree.Node {
	row := func(labelText string, labelRole, valueRole vtree.Role, value string, bold bool) *vtree.Node {
		return &vtree.Node{Kind: vtree.KindRow, Children: []*vtree.Node{
			{Kind: vtree.KindText, Role: labelRole, Text: labelText, Style: vtree.Style{Bold: bold, Weight: 2}},
			{Kind: vtree.KindText, Role: valueRole, Text: value, Style: vtree.Style{Align: "R", Bold: bold}},
		}}
	}

	box := &vtree.Node{
		Kind:  vtree.KindGroup,
		Style: vtree.Style{Padding: 8, Border: boxed},
		Children: []*vtree.Node{
			row("Subtotal:", "", vtree.RoleSubtotal, receiptstudio.FormatAmount(doc.Totals.Subtotal), false),
			row(taxLabel, vtree.RoleTaxLabel, vtree.RoleTax, receiptstudio.FormatAmount(doc.Totals.Tax), false),
			row("Total:", "", vtree.RoleTotal, receiptstudio.FormatAmount(doc.Totals.Total), true),
		},
	}
	return box
}

func barcodeStrip(doc *receiptstudio.Document, symbology string) *vtree.Node {
	height := 56.0
	if symbology == vtree.BarcodeQR {
		height = 72
	}
	return &vtree.Node{
		Kind:      vtree.KindBarcode,
		Symbology: symbology,
		Text:      doc.Receipt.Number,
		Style:     vtree.Style{Align: "C", Height: height},
	}
}

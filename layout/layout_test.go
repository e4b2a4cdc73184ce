package layout_test

import (
	"testing"
	"time"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/layout"
	"github.com/lvillar/receiptstudio/vtree"
)

var scalarRoles = []vtree.Role{
	vtree.RoleCompanyName,
	vtree.RoleCompanyAddress,
	vtree.RoleCompanyPhone,
	vtree.RoleCompanyEmail,
	vtree.RoleCompanyTaxID,
	vtree.RoleCustomerName,
	vtree.RoleCustomerAddress,
	vtree.RoleCustomerPhone,
	vtree.RoleReceiptNumber,
	vtree.RoleReceiptDate,
	vtree.RoleReceiptDueDate,
}

func TestTemplates(t *testing.T) {
	templates := layout.Templates()
	if len(templates) != 3 {
		t.Fatalf("templates: got %d, want 3", len(templates))
	}
	want := []string{layout.Modern, layout.Classic, layout.Minimal}
	for i, id := range want {
		if templates[i].ID != id {
			t.Errorf("template %d: got %q, want %q", i, templates[i].ID, id)
		}
	}

	if _, ok := layout.ByID(layout.Classic); !ok {
		t.Error("ByID(classic) not found")
	}
	if _, ok := layout.ByID("fancy"); ok {
		t.Error("ByID(fancy) unexpectedly found")
	}
}

func TestEveryTemplateBindsAllRoles(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	for _, tpl := range layout.Templates() {
		t.Run(tpl.ID, func(t *testing.T) {
			tree := tpl.Build(doc)

			for _, role := range scalarRoles {
				node := tree.FindRole(role)
				if node == nil {
					t.Errorf("role %s missing", role)
					continue
				}
				if !node.Editable {
					t.Errorf("role %s not editable", role)
				}
			}
			for _, role := range []vtree.Role{vtree.RoleSubtotal, vtree.RoleTaxLabel, vtree.RoleTax, vtree.RoleTotal} {
				if tree.FindRole(role) == nil {
					t.Errorf("totals role %s missing", role)
				}
			}
		})
	}
}

func TestItemsTable(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	for _, tpl := range layout.Templates() {
		t.Run(tpl.ID, func(t *testing.T) {
			tree := tpl.Build(doc)
			table := tree.FindTable()
			if table == nil {
				t.Fatal("table missing")
			}
			// One header row plus one row per item.
			if got := len(table.Children); got != len(doc.Items)+1 {
				t.Fatalf("table rows: got %d, want %d", got, len(doc.Items)+1)
			}

			for i, item := range doc.Items {
				desc := tree.FindItemRole(vtree.RoleItemDescription, i)
				if desc == nil || desc.Text != item.Description {
					t.Errorf("row %d description: got %+v", i, desc)
				}
				total := tree.FindItemRole(vtree.RoleItemTotal, i)
				if total == nil {
					t.Fatalf("row %d total cell missing", i)
				}
				if total.Editable {
					t.Errorf("row %d total cell is editable", i)
				}
				if total.Text != receiptstudio.FormatAmount(item.Total) {
					t.Errorf("row %d total: got %q, want %q", i, total.Text, receiptstudio.FormatAmount(item.Total))
				}
			}
		})
	}
}

func TestInteractiveChromeIsTagged(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	for _, tpl := range layout.Templates() {
		t.Run(tpl.ID, func(t *testing.T) {
			tree := tpl.Build(doc)

			buttons := 0
			tree.Walk(func(n *vtree.Node) bool {
				if n.Kind == vtree.KindButton {
					buttons++
					if !n.Interactive {
						t.Error("delete button not marked interactive")
					}
				}
				return true
			})
			if buttons != len(doc.Items) {
				t.Errorf("delete buttons: got %d, want %d", buttons, len(doc.Items))
			}
		})
	}
}

func TestBarcodeStripCarriesReceiptNumber(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	symbologies := map[string]string{
		layout.Modern:  vtree.BarcodeQR,
		layout.Classic: vtree.BarcodePDF417,
		layout.Minimal: vtree.BarcodeQR,
	}
	for _, tpl := range layout.Templates() {
		t.Run(tpl.ID, func(t *testing.T) {
			tree := tpl.Build(doc)

			var strip *vtree.Node
			tree.Walk(func(n *vtree.Node) bool {
				if n.Kind == vtree.KindBarcode {
					strip = n
					return false
				}
				return true
			})
			if strip == nil {
				t.Fatal("barcode strip missing")
			}
			if strip.Text != doc.Receipt.Number {
				t.Errorf("payload: got %q, want %q", strip.Text, doc.Receipt.Number)
			}
			if strip.Symbology != symbologies[tpl.ID] {
				t.Errorf("symbology: got %q, want %q", strip.Symbology, symbologies[tpl.ID])
			}
		})
	}
}

func TestPrefixedFields(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	tree := layout.Templates()[0].Build(doc)

	if got := tree.FindRole(vtree.RoleCompanyPhone).Text; got != "Tel: "+doc.Company.Phone {
		t.Errorf("phone: got %q", got)
	}
	if got := tree.FindRole(vtree.RoleReceiptNumber).Text; got != "#"+doc.Receipt.Number {
		t.Errorf("number: got %q", got)
	}
}

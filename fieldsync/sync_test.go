package fieldsync_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/fieldsync"
	"github.com/lvillar/receiptstudio/layout"
	"github.com/lvillar/receiptstudio/sched"
	"github.com/lvillar/receiptstudio/vtree"
)

type fixture struct {
	doc     *receiptstudio.Document
	tree    *vtree.Node
	clock   *sched.FakeClock
	queue   *sched.Queue
	adapter *fieldsync.Adapter

	histories int
	profiles  int
	totals    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		doc:   receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		clock: sched.NewFakeClock(),
	}
	f.queue = sched.New(f.clock)
	f.adapter = fieldsync.New(f.doc, f.queue, fieldsync.Hooks{
		History: func() { f.histories++ },
		Profile: func() { f.profiles++ },
		Totals:  func() { f.totals++ },
	})

	tpl, ok := layout.ByID(layout.Modern)
	if !ok {
		t.Fatal("modern template missing")
	}
	f.tree = tpl.Build(f.doc)
	return f
}

func TestSyncNodeToModelScalar(t *testing.T) {
	f := newFixture(t)

	node := f.tree.FindRole(vtree.RoleCustomerName)
	if node == nil {
		t.Fatal("customer-name node missing")
	}
	node.Text = "  New Customer  "
	f.adapter.SyncNodeToModel(node)

	if f.doc.Customer.Name != "New Customer" {
		t.Errorf("customer name: got %q", f.doc.Customer.Name)
	}
	if !f.queue.Pending(fieldsync.HistoryKey) {
		t.Error("history snapshot not scheduled")
	}
	if f.queue.Pending(fieldsync.ProfileKey) {
		t.Error("profile save scheduled for a customer field")
	}
	if f.queue.Pending(fieldsync.TotalsKey) {
		t.Error("totals recompute scheduled for a text field")
	}
}

func TestSyncNodeToModelStripsPrefix(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		role vtree.Role
		text string
		get  func() string
		want string
	}{
		{vtree.RoleCompanyPhone, "Tel: 02-999-0000", func() string { return f.doc.Company.Phone }, "02-999-0000"},
		{vtree.RoleCompanyEmail, "Email: a@b.co", func() string { return f.doc.Company.Email }, "a@b.co"},
		{vtree.RoleCompanyTaxID, "Tax ID: 999", func() string { return f.doc.Company.TaxID }, "999"},
		{vtree.RoleReceiptNumber, "#R777", func() string { return f.doc.Receipt.Number }, "R777"},
		// Prefix typed without the trailing space still strips.
		{vtree.RoleCompanyPhone, "Tel:02-111-2222", func() string { return f.doc.Company.Phone }, "02-111-2222"},
	}
	for _, tc := range tests {
		node := f.tree.FindRole(tc.role)
		if node == nil {
			t.Fatalf("%s node missing", tc.role)
		}
		node.Text = tc.text
		f.adapter.SyncNodeToModel(node)
		if got := tc.get(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestSyncNodeToModelCompanySchedulesProfile(t *testing.T) {
	f := newFixture(t)

	node := f.tree.FindRole(vtree.RoleCompanyName)
	node.Text = "Renamed Co"
	f.adapter.SyncNodeToModel(node)

	if !f.queue.Pending(fieldsync.ProfileKey) {
		t.Fatal("profile save not scheduled")
	}

	// History fires at 500ms, the profile save at 1000ms.
	f.clock.Advance(fieldsync.HistoryDelay)
	if f.histories != 1 {
		t.Errorf("histories after 500ms: got %d, want 1", f.histories)
	}
	if f.profiles != 0 {
		t.Errorf("profiles after 500ms: got %d, want 0", f.profiles)
	}
	f.clock.Advance(fieldsync.ProfileDelay - fieldsync.HistoryDelay)
	if f.profiles != 1 {
		t.Errorf("profiles after 1000ms: got %d, want 1", f.profiles)
	}
}

func TestSyncNodeToModelNumericCell(t *testing.T) {
	f := newFixture(t)

	node := f.tree.FindItemRole(vtree.RoleItemQuantity, 1)
	if node == nil {
		t.Fatal("quantity cell missing")
	}
	node.Text = "4"
	f.adapter.SyncNodeToModel(node)

	if got := f.doc.Items[1].Quantity.String(); got != "4" {
		t.Errorf("quantity: got %s, want 4", got)
	}
	if !f.queue.Pending(fieldsync.TotalsKey) {
		t.Fatal("totals recompute not scheduled")
	}
	f.clock.Advance(fieldsync.TotalsDelay)
	if f.totals != 1 {
		t.Errorf("totals hook fired %d times, want 1", f.totals)
	}
}

func TestSyncNodeToModelCoercesBadNumbers(t *testing.T) {
	f := newFixture(t)

	node := f.tree.FindItemRole(vtree.RoleItemPrice, 0)
	node.Text = "not a number"
	f.adapter.SyncNodeToModel(node)

	if !f.doc.Items[0].Price.IsZero() {
		t.Errorf("price: got %s, want 0", f.doc.Items[0].Price)
	}
}

func TestSyncNodeToModelIgnoresOutOfRangeIndex(t *testing.T) {
	f := newFixture(t)

	node := &vtree.Node{Kind: vtree.KindCell, Role: vtree.RoleItemPrice, Index: 99, Text: "500"}
	f.adapter.SyncNodeToModel(node)

	for i, item := range f.doc.Items {
		if item.Price.IsZero() {
			t.Errorf("item %d price unexpectedly zeroed", i)
		}
	}
}

func TestEditBurstCoalesces(t *testing.T) {
	f := newFixture(t)

	node := f.tree.FindRole(vtree.RoleCompanyName)
	for i := 0; i < 10; i++ {
		node.Text = "Typing"
		f.adapter.SyncNodeToModel(node)
		f.clock.Advance(100 * time.Millisecond)
	}
	f.clock.Advance(time.Second)

	if f.histories != 1 {
		t.Errorf("histories: got %d, want 1", f.histories)
	}
	if f.profiles != 1 {
		t.Errorf("profiles: got %d, want 1", f.profiles)
	}
}

func TestSyncTreeToModelSchedulesNothing(t *testing.T) {
	f := newFixture(t)

	f.tree.FindRole(vtree.RoleCompanyName).Text = "Restored Co"
	f.tree.FindItemRole(vtree.RoleItemPrice, 0).Text = "999"
	f.adapter.SyncTreeToModel(f.tree)

	if f.doc.Company.Name != "Restored Co" {
		t.Errorf("company name: got %q", f.doc.Company.Name)
	}
	if got := f.doc.Items[0].Price.String(); got != "999" {
		t.Errorf("price: got %s, want 999", got)
	}
	for _, key := range []string{fieldsync.HistoryKey, fieldsync.ProfileKey, fieldsync.TotalsKey} {
		if f.queue.Pending(key) {
			t.Errorf("bulk sync scheduled %q", key)
		}
	}
}

func TestSyncTreeToModelResizesItems(t *testing.T) {
	f := newFixture(t)

	// Model gained a row the tree does not have; the sync drops it.
	f.doc.Items = append(f.doc.Items, receiptstudio.LineItem{
		Description: "Extra",
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.NewFromInt(1000),
	})
	f.adapter.SyncTreeToModel(f.tree)
	if got := len(f.doc.Items); got != 3 {
		t.Fatalf("items after shrink: got %d, want 3", got)
	}
	receiptstudio.Recompute(f.doc, receiptstudio.DefaultTaxRate)
	if got := f.doc.Totals.Subtotal.String(); got != "2650" {
		t.Errorf("subtotal after shrink: got %s, want 2650", got)
	}

	// Model lost a row the tree still has; the sync rebuilds it from the cells.
	f.doc.Items = f.doc.Items[:1]
	f.adapter.SyncTreeToModel(f.tree)
	if got := len(f.doc.Items); got != 3 {
		t.Fatalf("items after grow: got %d, want 3", got)
	}
	if got := f.doc.Items[1].Price.String(); got != "750" {
		t.Errorf("restored price: got %s, want 750", got)
	}
	receiptstudio.Recompute(f.doc, receiptstudio.DefaultTaxRate)
	if got := f.doc.Totals.Subtotal.String(); got != "2650" {
		t.Errorf("subtotal after grow: got %s, want 2650", got)
	}
}

func TestSyncModelToTreeAppliesPrefixes(t *testing.T) {
	f := newFixture(t)

	f.doc.Company.Phone = "02-777-8888"
	f.doc.Receipt.Number = "R555"
	f.doc.Items[0].Description = "Replaced"
	f.adapter.SyncModelToTree(f.tree)

	if got := f.tree.FindRole(vtree.RoleCompanyPhone).Text; got != "Tel: 02-777-8888" {
		t.Errorf("phone node: got %q", got)
	}
	if got := f.tree.FindRole(vtree.RoleReceiptNumber).Text; got != "#R555" {
		t.Errorf("number node: got %q", got)
	}
	if got := f.tree.FindItemRole(vtree.RoleItemDescription, 0).Text; got != "Replaced" {
		t.Errorf("description cell: got %q", got)
	}
}

func TestApplyTotals(t *testing.T) {
	f := newFixture(t)

	f.doc.Items[0].Quantity = decimal.NewFromInt(10)
	receiptstudio.Recompute(f.doc, receiptstudio.DefaultTaxRate)
	f.adapter.ApplyTotals(f.tree, receiptstudio.DefaultTaxRate)

	if got := f.tree.FindRole(vtree.RoleSubtotal).Text; got != "6,650" {
		t.Errorf("subtotal node: got %q, want 6,650", got)
	}
	if got := f.tree.FindRole(vtree.RoleTaxLabel).Text; got != "VAT 7%:" {
		t.Errorf("tax label node: got %q", got)
	}
	if got := f.tree.FindItemRole(vtree.RoleItemTotal, 0).Text; got != "5,000" {
		t.Errorf("row total cell: got %q, want 5,000", got)
	}
}

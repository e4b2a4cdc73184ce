package vtree_test

import (
	"testing"

	"github.com/lvillar/receiptstudio/vtree"
)

func sampleTree() *vtree.Node {
	return &vtree.Node{
		Kind: vtree.KindGroup,
		Children: []*vtree.Node{
			{Kind: vtree.KindText, Role: vtree.RoleCompanyName, Text: "Acme", Editable: true},
			{Kind: vtree.KindTable, Children: []*vtree.Node{
				{Kind: vtree.KindTableRow, Index: 0, Children: []*vtree.Node{
					{Kind: vtree.KindCell, Role: vtree.RoleItemDescription, Index: 0, Text: "Widget"},
					{Kind: vtree.KindCell, Role: vtree.RoleItemPrice, Index: 0, Text: "500"},
				}},
				{Kind: vtree.KindTableRow, Index: 1, Children: []*vtree.Node{
					{Kind: vtree.KindCell, Role: vtree.RoleItemDescription, Index: 1, Text: "Gadget"},
					{Kind: vtree.KindCell, Role: vtree.RoleItemPrice, Index: 1, Text: "750"},
				}},
			}},
			{Kind: vtree.KindText, Role: vtree.RoleTotal, Text: "1,250"},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleTree()
	clone := orig.Clone()

	clone.Children[0].Text = "changed"
	clone.Children[1].Children[0].Children[0].Text = "changed"

	if orig.Children[0].Text != "Acme" {
		t.Errorf("clone mutation leaked into original: %q", orig.Children[0].Text)
	}
	if orig.FindItemRole(vtree.RoleItemDescription, 0).Text != "Widget" {
		t.Error("clone mutation leaked into original table cell")
	}
}

func TestWalkStops(t *testing.T) {
	visited := 0
	sampleTree().Walk(func(n *vtree.Node) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("visited: got %d, want 3", visited)
	}
}

func TestFindRole(t *testing.T) {
	tree := sampleTree()

	if n := tree.FindRole(vtree.RoleCompanyName); n == nil || n.Text != "Acme" {
		t.Fatalf("FindRole(company-name): got %+v", n)
	}
	if n := tree.FindRole(vtree.RoleCustomerName); n != nil {
		t.Errorf("FindRole(customer-name): got %+v, want nil", n)
	}
	if n := tree.FindItemRole(vtree.RoleItemPrice, 1); n == nil || n.Text != "750" {
		t.Fatalf("FindItemRole(item-price, 1): got %+v", n)
	}
	if tree.FindTable() == nil {
		t.Error("FindTable: got nil")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	orig := sampleTree()

	data, err := vtree.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored, err := vtree.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if n := restored.FindItemRole(vtree.RoleItemDescription, 1); n == nil || n.Text != "Gadget" {
		t.Fatalf("restored cell: got %+v", n)
	}
	if n := restored.FindRole(vtree.RoleTotal); n == nil || n.Text != "1,250" {
		t.Fatalf("restored total: got %+v", n)
	}
	if !restored.Children[0].Editable {
		t.Error("editable flag lost in round trip")
	}
}

func TestRolePrefix(t *testing.T) {
	tests := []struct {
		role vtree.Role
		want string
	}{
		{vtree.RoleCompanyPhone, "Tel: "},
		{vtree.RoleCompanyEmail, "Email: "},
		{vtree.RoleCompanyTaxID, "Tax ID: "},
		{vtree.RoleReceiptNumber, "#"},
		{vtree.RoleCompanyName, ""},
	}
	for _, tc := range tests {
		if got := vtree.RolePrefix(tc.role); got != tc.want {
			t.Errorf("RolePrefix(%s): got %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestRoleClassification(t *testing.T) {
	if !vtree.IsCompanyRole(vtree.RoleCompanyTaxID) {
		t.Error("company-tax-id should be a company role")
	}
	if vtree.IsCompanyRole(vtree.RoleCustomerName) {
		t.Error("customer-name is not a company role")
	}
	if !vtree.IsNumericItemRole(vtree.RoleItemQuantity) || !vtree.IsNumericItemRole(vtree.RoleItemPrice) {
		t.Error("quantity and price feed the totals computation")
	}
	if vtree.IsNumericItemRole(vtree.RoleItemDescription) {
		t.Error("description does not feed the totals computation")
	}
}

package editor_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lvillar/receiptstudio/editor"
	"github.com/lvillar/receiptstudio/vtree"
)

// ExampleSession shows a short editing flow: change a field, adjust the tax
// rate, and read the derived totals back from the document.
func ExampleSession() {
	session, err := editor.New()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer session.Close()

	session.EditField(vtree.RoleCustomerName, "Acme Trading Ltd.")
	session.SetTaxRate(decimal.NewFromInt(10))

	doc := session.Document()
	fmt.Println(doc.Customer.Name)
	fmt.Println(doc.Totals.Total)
	// Output:
	// Acme Trading Ltd.
	// 2915
}

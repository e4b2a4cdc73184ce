package vtree

// Role tags an editable node with the document field it projects. Roles are
// the contract between layouts and the field sync adapter: any layout that
// tags its nodes with these roles is editable without further wiring.
type Role string

const (
	RoleCompanyName    Role = "company-name"
	RoleCompanyAddress Role = "company-address"
	RoleCompanyPhone   Role = "company-phone"
	RoleCompanyEmail   Role = "company-email"
	RoleCompanyTaxID   Role = "company-tax-id"

	RoleCustomerName    Role = "customer-name"
	RoleCustomerAddress Role = "customer-address"
	RoleCustomerPhone   Role = "customer-phone"

	RoleReceiptNumber  Role = "receipt-number"
	RoleReceiptDate    Role = "receipt-date"
	RoleReceiptDueDate Role = "receipt-due-date"

	RoleItemDescription Role = "item-description"
	RoleItemQuantity    Role = "item-quantity"
	RoleItemPrice       Role = "item-price"
	RoleItemTotal       Role = "item-total"

	RoleSubtotal Role = "subtotal"
	RoleTaxLabel Role = "tax-label"
	RoleTax      Role = "tax"
	RoleTotal    Role = "grand-total"
)

// rolePrefixes maps roles to the decorative label a layout prepends to the
// projected value. The adapter strips the prefix when reading a node and
// layouts re-apply it when writing one.
var rolePrefixes = map[Role]string{
	RoleCompanyPhone:  "Tel: ",
	RoleCompanyEmail:  "Email: ",
	RoleCompanyTaxID:  "Tax ID: ",
	RoleReceiptNumber: "#",
}

// RolePrefix returns the decorative prefix for role, or "".
func RolePrefix(role Role) string {
	return rolePrefixes[role]
}

// IsCompanyRole reports whether role projects a company-profile field.
// Edits to company roles schedule a debounced profile save.
func IsCompanyRole(role Role) bool {
	switch role {
	case RoleCompanyName, RoleCompanyAddress, RoleCompanyPhone, RoleCompanyEmail, RoleCompanyTaxID:
		return true
	}
	return false
}

// IsNumericItemRole reports whether role is a line-item field that feeds the
// totals computation.
func IsNumericItemRole(role Role) bool {
	return role == RoleItemQuantity || role == RoleItemPrice
}

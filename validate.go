package receiptstudio

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Field length caps applied by Sanitize. Free-form input is truncated, never
// rejected.
const (
	MaxNameLen        = 200
	MaxAddressLen     = 500
	MaxPhoneLen       = 50
	MaxEmailLen       = 100
	MaxTaxIDLen       = 50
	MaxHeaderFieldLen = 50
	MaxDescriptionLen = 200
	MaxFieldLen       = 1000
)

var (
	scriptTagRe    = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	scriptStrayRe  = regexp.MustCompile(`(?i)</?script\b[^>]*>?`)
	jsProtocolRe   = regexp.MustCompile(`(?i)javascript:`)
	eventAttrRe    = regexp.MustCompile(`(?i)on\w+\s*=`)
	dataHTMLRe     = regexp.MustCompile(`(?i)data:text/html`)
	nonAlphanumRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	thousandsSepRe = regexp.MustCompile(`,`)
)

// ValidateString strips script elements, protocol-handler prefixes, and
// inline event-handler attributes from value, trims surrounding whitespace,
// and truncates the result to maxLength runes. It never fails; hostile or
// malformed input degrades to a shorter (possibly empty) string.
// The function is idempotent.
func ValidateString(value string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = MaxFieldLen
	}
	// Strip script markup to a fixed point; removing one tag can splice the
	// surrounding text into another.
	s := value
	for {
		next := scriptTagRe.ReplaceAllString(s, "")
		next = scriptStrayRe.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = jsProtocolRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = dataHTMLRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxLength {
		s = strings.TrimSpace(string(r[:maxLength]))
	}
	return s
}

// ValidateNumber parses a quantity or amount typed into a numeric cell.
// Thousands separators are tolerated. Non-numeric and negative input both
// coerce to zero rather than failing the edit.
func ValidateNumber(value string) decimal.Decimal {
	s := thousandsSepRe.ReplaceAllString(strings.TrimSpace(value), "")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SanitizeNumber sanitizes a receipt number for use in a filename, keeping
// only ASCII letters and digits. An empty result falls back to "R001".
func SanitizeNumber(number string) string {
	s := nonAlphanumRe.ReplaceAllString(number, "")
	if s == "" {
		return "R001"
	}
	return s
}

// Sanitize applies ValidateString and ValidateNumber to every field of doc,
// dropping line items whose description is empty after sanitization. It
// mutates doc in place and never fails.
func Sanitize(doc *Document) {
	doc.Company.Name = ValidateString(doc.Company.Name, MaxNameLen)
	doc.Company.Address = ValidateString(doc.Company.Address, MaxAddressLen)
	doc.Company.Phone = ValidateString(doc.Company.Phone, MaxPhoneLen)
	doc.Company.Email = ValidateString(doc.Company.Email, MaxEmailLen)
	doc.Company.TaxID = ValidateString(doc.Company.TaxID, MaxTaxIDLen)

	doc.Customer.Name = ValidateString(doc.Customer.Name, MaxNameLen)
	doc.Customer.Address = ValidateString(doc.Customer.Address, MaxAddressLen)
	doc.Customer.Phone = ValidateString(doc.Customer.Phone, MaxPhoneLen)

	doc.Receipt.Number = ValidateString(doc.Receipt.Number, MaxHeaderFieldLen)
	doc.Receipt.Date = ValidateString(doc.Receipt.Date, MaxHeaderFieldLen)
	doc.Receipt.DueDate = ValidateString(doc.Receipt.DueDate, MaxHeaderFieldLen)

	kept := doc.Items[:0]
	for _, item := range doc.Items {
		item.Description = ValidateString(item.Description, MaxDescriptionLen)
		if item.Description == "" {
			continue
		}
		if item.Quantity.IsNegative() {
			item.Quantity = decimal.Zero
		}
		if item.Price.IsNegative() {
			item.Price = decimal.Zero
		}
		kept = append(kept, item)
	}
	doc.Items = kept
}

package receiptstudio_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	receiptstudio "github.com/lvillar/receiptstudio"
)

func TestNewDocumentSeedTotals(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	if len(doc.Items) != 3 {
		t.Fatalf("items: got %d, want 3", len(doc.Items))
	}
	if got := doc.Totals.Subtotal.String(); got != "2650" {
		t.Errorf("subtotal: got %s, want 2650", got)
	}
	if got := doc.Totals.Tax.String(); got != "185.5" {
		t.Errorf("tax: got %s, want 185.5", got)
	}
	if got := doc.Totals.Total.String(); got != "2835.5" {
		t.Errorf("total: got %s, want 2835.5", got)
	}
	if doc.Receipt.Number != "R2024001" {
		t.Errorf("receipt number: got %q", doc.Receipt.Number)
	}
	if doc.Receipt.Date != "1 Jun 2024" {
		t.Errorf("date: got %q, want 1 Jun 2024", doc.Receipt.Date)
	}
	if doc.Receipt.DueDate != "8 Jun 2024" {
		t.Errorf("due date: got %q, want 8 Jun 2024", doc.Receipt.DueDate)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Now())

	receiptstudio.Recompute(doc, receiptstudio.DefaultTaxRate)
	first := doc.Totals
	receiptstudio.Recompute(doc, receiptstudio.DefaultTaxRate)

	if !doc.Totals.Subtotal.Equal(first.Subtotal) || !doc.Totals.Tax.Equal(first.Tax) || !doc.Totals.Total.Equal(first.Total) {
		t.Errorf("totals changed on second recompute: %+v vs %+v", first, doc.Totals)
	}
}

func TestRecomputeZeroRate(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Now())
	receiptstudio.Recompute(doc, decimal.Zero)

	if !doc.Totals.Tax.IsZero() {
		t.Errorf("tax at zero rate: got %s", doc.Totals.Tax)
	}
	if !doc.Totals.Total.Equal(doc.Totals.Subtotal) {
		t.Errorf("total: got %s, want subtotal %s", doc.Totals.Total, doc.Totals.Subtotal)
	}
}

func TestRecomputeNegativeRateClamped(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Now())
	receiptstudio.Recompute(doc, decimal.NewFromInt(-5))

	if !doc.Totals.Tax.IsZero() {
		t.Errorf("tax at negative rate: got %s, want 0", doc.Totals.Tax)
	}
}

func TestTaxLabel(t *testing.T) {
	tests := []struct {
		rate string
		want string
	}{
		{"0", "Tax:"},
		{"7", "VAT 7%:"},
		{"12.5", "VAT 12.5%:"},
	}
	for _, tc := range tests {
		rate, err := decimal.NewFromString(tc.rate)
		if err != nil {
			t.Fatalf("rate %q: %v", tc.rate, err)
		}
		if got := receiptstudio.TaxLabel(rate); got != tc.want {
			t.Errorf("TaxLabel(%s): got %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"500", "500"},
		{"2650", "2,650"},
		{"2835.5", "2,835.50"},
		{"185.5", "185.50"},
		{"1234567.89", "1,234,567.89"},
		{"999.999", "1,000"},
		{"-1250.5", "-1,250.50"},
	}
	for _, tc := range tests {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := receiptstudio.FormatAmount(d); got != tc.want {
			t.Errorf("FormatAmount(%s): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"plain", "Acme Ltd.", 200, "Acme Ltd."},
		{"trims", "  padded  ", 200, "padded"},
		{"script tag", "a<script>alert(1)</script>b", 200, "ab"},
		{"script attrs", `x<script type="text/javascript">evil()</script>y`, 200, "xy"},
		{"markup in script body", "a<script>if(1<2)alert(1)</script>b", 200, "ab"},
		{"unclosed script tag", "a<script>b", 200, "ab"},
		{"stray close tag", "a</script>b", 200, "ab"},
		{"spliced script tag", "a<scr</script>ipt>alert(1)</scr</script>ipt>b", 200, "ab"},
		{"js protocol", "javascript:alert(1)", 200, "alert(1)"},
		{"event attr", `onclick=doEvil()`, 200, "doEvil()"},
		{"data html", "data:text/html,payload", 200, ",payload"},
		{"truncates", strings.Repeat("a", 60), 50, strings.Repeat("a", 50)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := receiptstudio.ValidateString(tc.in, tc.max)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			// Sanitizing sanitized input must not change it again.
			if again := receiptstudio.ValidateString(got, tc.max); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500", "500"},
		{"1,250.75", "1250.75"},
		{"  42  ", "42"},
		{"abc", "0"},
		{"-10", "0"},
		{"", "0"},
	}
	for _, tc := range tests {
		if got := receiptstudio.ValidateNumber(tc.in); got.String() != tc.want {
			t.Errorf("ValidateNumber(%q): got %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R2024001", "R2024001"},
		{"R-2024/001", "R2024001"},
		{"../../etc", "etc"},
		{"###", "R001"},
		{"", "R001"},
	}
	for _, tc := range tests {
		if got := receiptstudio.SanitizeNumber(tc.in); got != tc.want {
			t.Errorf("SanitizeNumber(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeDropsEmptyItems(t *testing.T) {
	doc := receiptstudio.NewDocument(time.Now())
	doc.Items = append(doc.Items, receiptstudio.LineItem{
		Description: "<script>x</script>",
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.NewFromInt(10),
	})
	doc.Items[0].Quantity = decimal.NewFromInt(-3)

	receiptstudio.Sanitize(doc)

	if len(doc.Items) != 3 {
		t.Fatalf("items after sanitize: got %d, want 3", len(doc.Items))
	}
	if !doc.Items[0].Quantity.IsZero() {
		t.Errorf("negative quantity: got %s, want 0", doc.Items[0].Quantity)
	}
}

// Package fieldsync keeps role-tagged visual nodes and document fields
// consistent in both directions.
//
// Edits flow view-to-model immediately: SyncNodeToModel extracts a node's
// text, strips the role's decorative prefix, sanitizes it, and writes the
// field, scheduling the debounced history, profile, and totals tasks the
// edit implies. Model-to-view sync happens only on bulk operations
// (template switch, undo/redo, totals recomputation).
package fieldsync

import (
	"strings"
	"time"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/sched"
	"github.com/lvillar/receiptstudio/vtree"
	"github.com/shopspring/decimal"
)

// Timer keys. Each key has at most one pending task; rescheduling restarts
// the coalescing window.
const (
	HistoryKey = "history"
	ProfileKey = "company-profile"
	TotalsKey  = "totals"
)

// Coalescing windows. An edit burst produces one history snapshot, one
// profile save, and one totals recomputation.
const (
	HistoryDelay = 500 * time.Millisecond
	ProfileDelay = 1000 * time.Millisecond
	TotalsDelay  = 300 * time.Millisecond
)

// Hooks are the deferred actions the adapter schedules on behalf of the
// editor session. All three fire on queue timer goroutines; the session is
// responsible for its own serialization.
type Hooks struct {
	History func() // commit a visual snapshot
	Profile func() // persist the company profile
	Totals  func() // recompute and apply totals
}

// Adapter maps visual nodes to document fields.
type Adapter struct {
	doc   *receiptstudio.Document
	queue *sched.Queue
	hooks Hooks
}

// New creates an Adapter writing into doc and scheduling through queue.
func New(doc *receiptstudio.Document, queue *sched.Queue, hooks Hooks) *Adapter {
	return &Adapter{doc: doc, queue: queue, hooks: hooks}
}

// SetDocument repoints the adapter at a new document, e.g. after the
// new-document command replaces the model.
func (a *Adapter) SetDocument(doc *receiptstudio.Document) { a.doc = doc }

// SyncNodeToModel writes an edited node's content into the corresponding
// document field and schedules the debounced follow-up work. Nodes without
// a recognized role are no-ops.
func (a *Adapter) SyncNodeToModel(n *vtree.Node) {
	if !a.writeField(n) {
		return
	}
	if a.hooks.History != nil {
		a.queue.Schedule(HistoryKey, HistoryDelay, a.hooks.History)
	}
	if vtree.IsCompanyRole(n.Role) && a.hooks.Profile != nil {
		a.queue.Schedule(ProfileKey, ProfileDelay, a.hooks.Profile)
	}
	if vtree.IsNumericItemRole(n.Role) && a.hooks.Totals != nil {
		a.queue.Schedule(TotalsKey, TotalsDelay, a.hooks.Totals)
	}
}

// SyncTreeToModel writes every recognized node under root into the model
// without scheduling any deferred work. The item list is resized to the
// tree's row count first, so a restore after a structural edit does not
// leave the model with extra or missing rows. It is used after a snapshot
// restore so the canonical model matches the restored view.
func (a *Adapter) SyncTreeToModel(root *vtree.Node) {
	rows := 0
	root.Walk(func(n *vtree.Node) bool {
		if n.Role == vtree.RoleItemDescription && n.Index >= rows {
			rows = n.Index + 1
		}
		return true
	})
	if rows < len(a.doc.Items) {
		a.doc.Items = a.doc.Items[:rows]
	}
	for len(a.doc.Items) < rows {
		a.doc.Items = append(a.doc.Items, receiptstudio.LineItem{})
	}

	root.Walk(func(n *vtree.Node) bool {
		a.writeField(n)
		return true
	})
}

// writeField maps n.Role to a document field and reports whether the role
// was recognized. Values are sanitized on the way in; numeric cells coerce
// bad input to zero.
func (a *Adapter) writeField(n *vtree.Node) bool {
	content := stripPrefix(n.Role, n.Text)

	switch n.Role {
	case vtree.RoleCompanyName:
		a.doc.Company.Name = receiptstudio.ValidateString(content, receiptstudio.MaxNameLen)
	case vtree.RoleCompanyAddress:
		a.doc.Company.Address = receiptstudio.ValidateString(content, receiptstudio.MaxAddressLen)
	case vtree.RoleCompanyPhone:
		a.doc.Company.Phone = receiptstudio.ValidateString(content, receiptstudio.MaxPhoneLen)
	case vtree.RoleCompanyEmail:
		a.doc.Company.Email = receiptstudio.ValidateString(content, receiptstudio.MaxEmailLen)
	case vtree.RoleCompanyTaxID:
		a.doc.Company.TaxID = receiptstudio.ValidateString(content, receiptstudio.MaxTaxIDLen)
	case vtree.RoleCustomerName:
		a.doc.Customer.Name = receiptstudio.ValidateString(content, receiptstudio.MaxNameLen)
	case vtree.RoleCustomerAddress:
		a.doc.Customer.Address = receiptstudio.ValidateString(content, receiptstudio.MaxAddressLen)
	case vtree.RoleCustomerPhone:
		a.doc.Customer.Phone = receiptstudio.ValidateString(content, receiptstudio.MaxPhoneLen)
	case vtree.RoleReceiptNumber:
		a.doc.Receipt.Number = receiptstudio.ValidateString(content, receiptstudio.MaxHeaderFieldLen)
	case vtree.RoleReceiptDate:
		a.doc.Receipt.Date = receiptstudio.ValidateString(content, receiptstudio.MaxHeaderFieldLen)
	case vtree.RoleReceiptDueDate:
		a.doc.Receipt.DueDate = receiptstudio.ValidateString(content, receiptstudio.MaxHeaderFieldLen)
	case vtree.RoleItemDescription:
		if item := a.item(n.Index); item != nil {
			item.Description = receiptstudio.ValidateString(content, receiptstudio.MaxDescriptionLen)
		}
	case vtree.RoleItemQuantity:
		if item := a.item(n.Index); item != nil {
			item.Quantity = receiptstudio.ValidateNumber(content)
		}
	case vtree.RoleItemPrice:
		if item := a.item(n.Index); item != nil {
			item.Price = receiptstudio.ValidateNumber(content)
		}
	default:
		return false
	}
	return true
}

func (a *Adapter) item(index int) *receiptstudio.LineItem {
	if index < 0 || index >= len(a.doc.Items) {
		return nil
	}
	return &a.doc.Items[index]
}

// SyncModelToTree pushes every current model value into the tagged nodes
// under root, re-applying decorative prefixes. It is the bulk model-to-view
// path used after a template switch or snapshot restore.
func (a *Adapter) SyncModelToTree(root *vtree.Node) {
	scalars := map[vtree.Role]string{
		vtree.RoleCompanyName:     a.doc.Company.Name,
		vtree.RoleCompanyAddress:  a.doc.Company.Address,
		vtree.RoleCompanyPhone:    a.doc.Company.Phone,
		vtree.RoleCompanyEmail:    a.doc.Company.Email,
		vtree.RoleCompanyTaxID:    a.doc.Company.TaxID,
		vtree.RoleCustomerName:    a.doc.Customer.Name,
		vtree.RoleCustomerAddress: a.doc.Customer.Address,
		vtree.RoleCustomerPhone:   a.doc.Customer.Phone,
		vtree.RoleReceiptNumber:   a.doc.Receipt.Number,
		vtree.RoleReceiptDate:     a.doc.Receipt.Date,
		vtree.RoleReceiptDueDate:  a.doc.Receipt.DueDate,
	}

	root.Walk(func(n *vtree.Node) bool {
		if value, ok := scalars[n.Role]; ok {
			n.Text = vtree.RolePrefix(n.Role) + value
			return true
		}
		if item := a.item(n.Index); item != nil {
			switch n.Role {
			case vtree.RoleItemDescription:
				n.Text = item.Description
			case vtree.RoleItemQuantity:
				n.Text = item.Quantity.String()
			case vtree.RoleItemPrice:
				n.Text = receiptstudio.FormatAmount(item.Price)
			case vtree.RoleItemTotal:
				n.Text = receiptstudio.FormatAmount(item.Total)
			}
		}
		return true
	})
}

// ApplyTotals writes the current derived amounts and tax label into the
// totals-display nodes and per-row total cells. The caller recomputes the
// model first, so model and view are never observed mismatched.
func (a *Adapter) ApplyTotals(root *vtree.Node, taxRatePercent decimal.Decimal) {
	root.Walk(func(n *vtree.Node) bool {
		switch n.Role {
		case vtree.RoleSubtotal:
			n.Text = receiptstudio.FormatAmount(a.doc.Totals.Subtotal)
		case vtree.RoleTax:
			n.Text = receiptstudio.FormatAmount(a.doc.Totals.Tax)
		case vtree.RoleTotal:
			n.Text = receiptstudio.FormatAmount(a.doc.Totals.Total)
		case vtree.RoleTaxLabel:
			n.Text = receiptstudio.TaxLabel(taxRatePercent)
		case vtree.RoleItemTotal:
			if item := a.item(n.Index); item != nil {
				n.Text = receiptstudio.FormatAmount(item.Total)
			}
		}
		return true
	})
}

// stripPrefix removes the role's decorative label ("Tel: ", leading "#")
// from text typed into a node, tolerating a missing space after the label.
func stripPrefix(role vtree.Role, text string) string {
	prefix := vtree.RolePrefix(role)
	if prefix == "" {
		return text
	}
	if trimmed, ok := strings.CutPrefix(text, prefix); ok {
		return strings.TrimSpace(trimmed)
	}
	if trimmed, ok := strings.CutPrefix(text, strings.TrimSpace(prefix)); ok {
		return strings.TrimSpace(trimmed)
	}
	return text
}

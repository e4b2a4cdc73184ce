// Package editor ties the document model, layouts, field sync, history, and
// export pipeline together into a single editing session.
//
// A Session owns the canonical document and the live visual tree. Commands
// mutate one or both and schedule the debounced follow-up work (history
// snapshots, profile saves, totals recomputation) through a keyed timer
// queue, so a burst of edits coalesces into a single snapshot, save, and
// recomputation.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/export"
	"github.com/lvillar/receiptstudio/fieldsync"
	"github.com/lvillar/receiptstudio/history"
	"github.com/lvillar/receiptstudio/layout"
	"github.com/lvillar/receiptstudio/notify"
	"github.com/lvillar/receiptstudio/profile"
	"github.com/lvillar/receiptstudio/sched"
	"github.com/lvillar/receiptstudio/vtree"
)

// Session is a single-document editing session. All commands are safe for
// concurrent use; debounce timers fire on queue goroutines and take the same
// lock as the commands.
type Session struct {
	mu sync.Mutex

	log      *slog.Logger
	clock    sched.Clock
	queue    *sched.Queue
	adapter  *fieldsync.Adapter
	store    profile.Store
	notifier notify.Notifier
	confirm  func(prompt string) bool

	doc       *receiptstudio.Document
	tree      *vtree.Node
	taxRate   decimal.Decimal
	templates []layout.Template
	current   string

	snapshots   *history.Log
	snapshotCap int
	exportOpts  export.Options
}

// New creates a Session seeded with a fresh document. A saved company
// profile, when a store is configured and holds one, replaces the seed
// company. The first template is selected and an initial snapshot committed,
// so Undo is a no-op until the first edit.
func New(opts ...Option) (*Session, error) {
	cfg := sessionConfig{
		templates: layout.Templates(),
		notifier:  notify.Nop{},
		logger:    slog.Default(),
		clock:     sched.SystemClock(),
		taxRate:   receiptstudio.DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.templates) == 0 {
		return nil, fmt.Errorf("editor: no templates configured")
	}

	s := &Session{
		log:         cfg.logger,
		clock:       cfg.clock,
		queue:       sched.New(cfg.clock),
		store:       cfg.store,
		notifier:    cfg.notifier,
		confirm:     cfg.confirm,
		doc:         receiptstudio.NewDocument(cfg.clock.Now()),
		taxRate:     cfg.taxRate,
		templates:   cfg.templates,
		snapshots:   history.New(cfg.historyCapacity),
		snapshotCap: cfg.historyCapacity,
		exportOpts:  cfg.exportOpts,
	}
	s.adapter = fieldsync.New(s.doc, s.queue, fieldsync.Hooks{
		History: s.commitHook,
		Profile: s.persistHook,
		Totals:  s.totalsHook,
	})

	if s.store != nil {
		company, err := s.store.Load()
		if err != nil {
			s.log.Warn("loading company profile", "error", err)
		} else if company != nil {
			s.doc.Company = *company
		}
	}

	receiptstudio.Recompute(s.doc, s.taxRate)
	if err := s.SelectTemplate(s.templates[0].ID); err != nil {
		return nil, err
	}
	return s, nil
}

// Close cancels all pending debounced work.
func (s *Session) Close() {
	s.queue.CancelAll()
}

// Document returns the canonical document. Mutate it only through commands.
func (s *Session) Document() *receiptstudio.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Tree returns the live visual tree, or nil before the first template is
// selected.
func (s *Session) Tree() *vtree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Template returns the active template identifier.
func (s *Session) Template() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Templates returns the session's layout set in presentation order.
func (s *Session) Templates() []layout.Template {
	return s.templates
}

// TaxRate returns the session tax rate in percent.
func (s *Session) TaxRate() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxRate
}

// SelectTemplate rebuilds the visual tree with the named layout and commits
// a snapshot immediately.
func (s *Session) SelectTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.template(id)
	if !ok {
		return receiptstudio.NewOpError("SelectTemplate", fmt.Errorf("unknown template %q", id))
	}
	s.current = tpl.ID
	s.rebuildLocked()
	s.commitLocked()
	return nil
}

// EditField updates the text of the node tagged with role and syncs the
// field into the model, scheduling the debounced snapshot and, for company
// fields, the profile save. Roles absent from the active layout are ignored.
func (s *Session) EditField(role vtree.Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree == nil {
		return receiptstudio.NewOpError("EditField", receiptstudio.ErrNoTemplate)
	}
	node := s.tree.FindRole(role)
	if node == nil || !node.Editable {
		return nil
	}
	node.Text = text
	s.adapter.SyncNodeToModel(node)
	return nil
}

// EditItemField updates a line-item cell at the given row. Quantity and
// price edits additionally schedule the debounced totals recomputation.
func (s *Session) EditItemField(role vtree.Role, index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree == nil {
		return receiptstudio.NewOpError("EditItemField", receiptstudio.ErrNoTemplate)
	}
	node := s.tree.FindItemRole(role, index)
	if node == nil || !node.Editable {
		return nil
	}
	node.Text = text
	s.adapter.SyncNodeToModel(node)
	return nil
}

// AddItem appends a default line item, rebuilds the item region, recomputes
// totals, and commits a snapshot immediately.
func (s *Session) AddItem() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree == nil {
		return receiptstudio.NewOpError("AddItem", receiptstudio.ErrNoTemplate)
	}
	s.doc.Items = append(s.doc.Items, receiptstudio.DefaultItem())
	receiptstudio.Recompute(s.doc, s.taxRate)
	s.rebuildLocked()
	s.commitLocked()
	return nil
}

// DeleteItem removes the line item at index. The last remaining item cannot
// be deleted.
func (s *Session) DeleteItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tree == nil {
		return receiptstudio.NewOpError("DeleteItem", receiptstudio.ErrNoTemplate)
	}
	if len(s.doc.Items) <= 1 {
		s.notifier.Notify(notify.Error, "At least one item is required")
		return receiptstudio.NewOpError("DeleteItem", receiptstudio.ErrLastItem)
	}
	if index < 0 || index >= len(s.doc.Items) {
		return receiptstudio.NewOpError("DeleteItem", fmt.Errorf("item index %d out of range", index))
	}
	s.doc.Items = append(s.doc.Items[:index], s.doc.Items[index+1:]...)
	receiptstudio.Recompute(s.doc, s.taxRate)
	s.rebuildLocked()
	s.commitLocked()
	return nil
}

// SetTaxRate changes the tax rate in percent, recomputes totals, and commits
// a snapshot. Negative rates are clamped to zero.
func (s *Session) SetTaxRate(percent decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if percent.IsNegative() {
		percent = decimal.Zero
	}
	s.taxRate = percent
	receiptstudio.Recompute(s.doc, s.taxRate)
	if s.tree != nil {
		s.adapter.ApplyTotals(s.tree, s.taxRate)
		s.commitLocked()
	}
	return nil
}

// Undo restores the previous snapshot and reports whether one was restored.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots.Undo()
	if !ok {
		return false
	}
	s.restoreLocked(snap)
	return true
}

// Redo restores the next snapshot and reports whether one was restored.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots.Redo()
	if !ok {
		return false
	}
	s.restoreLocked(snap)
	return true
}

// CanUndo reports whether Undo would restore a snapshot.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.CanUndo()
}

// CanRedo reports whether Redo would restore a snapshot.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots.CanRedo()
}

// NewDocument replaces the document with a fresh one, keeping the current
// company identity. The undo log restarts at the new initial snapshot. The
// command is confirmation-guarded.
func (s *Session) NewDocument() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirmed("Create a new document? Unsaved changes will be lost.") {
		return receiptstudio.NewOpError("NewDocument", receiptstudio.ErrDeclined)
	}

	company := s.doc.Company
	s.doc = receiptstudio.NewDocument(s.clock.Now())
	s.doc.Company = company
	receiptstudio.Recompute(s.doc, s.taxRate)
	s.adapter.SetDocument(s.doc)

	s.queue.CancelAll()
	s.snapshots = history.New(s.snapshotCap)
	s.rebuildLocked()
	s.commitLocked()
	s.notifier.Notify(notify.Success, "New document created")
	return nil
}

// ResetCompany restores the built-in company identity, persists it when a
// store is configured, and commits a snapshot. The command is
// confirmation-guarded.
func (s *Session) ResetCompany() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirmed("Reset company details to defaults?") {
		return receiptstudio.NewOpError("ResetCompany", receiptstudio.ErrDeclined)
	}

	s.doc.Company = receiptstudio.DefaultCompany()
	if s.store != nil {
		if err := s.store.Save(s.doc.Company); err != nil {
			s.log.Warn("saving company profile", "error", err)
		}
	}
	if s.tree != nil {
		s.adapter.SyncModelToTree(s.tree)
		s.commitLocked()
	}
	s.notifier.Notify(notify.Success, "Company details reset")
	return nil
}

// Export runs the PDF pipeline over the current tree and writes the result
// to w. Pending totals work is flushed first so the artifact never shows
// stale amounts.
func (s *Session) Export(ctx context.Context, w io.Writer) (export.Result, error) {
	s.mu.Lock()
	if s.tree == nil {
		s.mu.Unlock()
		return export.Result{}, receiptstudio.NewOpError("Export", receiptstudio.ErrNoTemplate)
	}
	s.queue.Cancel(fieldsync.TotalsKey)
	s.recalcLocked(false)
	tree := s.tree.Clone()
	doc := *s.doc
	opts := s.exportOpts
	s.mu.Unlock()

	result, err := export.Export(ctx, w, tree, &doc, opts)
	if err != nil {
		s.log.Error("export failed", "error", err)
		s.notifier.Notify(notify.Error, "PDF export failed")
		return export.Result{}, err
	}
	s.notifier.Notify(notify.Success, "PDF exported: "+result.Filename)
	return result, nil
}

func (s *Session) template(id string) (layout.Template, bool) {
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return layout.Template{}, false
}

func (s *Session) confirmed(prompt string) bool {
	return s.confirm == nil || s.confirm(prompt)
}

// rebuildLocked constructs a fresh tree from the active template and writes
// the derived amounts into it.
func (s *Session) rebuildLocked() {
	tpl, _ := s.template(s.current)
	s.tree = tpl.Build(s.doc)
	s.adapter.ApplyTotals(s.tree, s.taxRate)
}

func (s *Session) restoreLocked(snap history.Snapshot) {
	tree, err := vtree.Unmarshal(snap.Tree)
	if err != nil {
		s.log.Error("restoring snapshot", "id", snap.ID, "error", err)
		return
	}
	s.queue.CancelAll()
	s.tree = tree
	s.current = snap.Template
	s.adapter.SyncTreeToModel(s.tree)
	receiptstudio.Recompute(s.doc, s.taxRate)
}

// commitLocked serializes the tree into the undo log.
func (s *Session) commitLocked() {
	if s.tree == nil {
		return
	}
	data, err := vtree.Marshal(s.tree)
	if err != nil {
		s.log.Warn("serializing snapshot", "error", err)
		return
	}
	s.snapshots.Commit(history.Snapshot{
		ID:       uuid.New(),
		Template: s.current,
		Tree:     data,
		TakenAt:  s.clock.Now(),
	})
}

// recalcLocked recomputes totals from the model and pushes them into the
// tree, optionally committing a snapshot.
func (s *Session) recalcLocked(commit bool) {
	receiptstudio.Recompute(s.doc, s.taxRate)
	if s.tree != nil {
		s.adapter.ApplyTotals(s.tree, s.taxRate)
		if commit {
			s.commitLocked()
		}
	}
}

// Debounce hooks fire on queue timer goroutines.

func (s *Session) commitHook() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked()
}

func (s *Session) persistHook() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.doc.Company); err != nil {
		s.log.Warn("saving company profile", "error", err)
		return
	}
	s.notifier.Notify(notify.Success, "Company profile saved")
}

func (s *Session) totalsHook() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalcLocked(true)
}

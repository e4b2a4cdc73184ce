// Package vtree defines the visual tree: the live, directly editable
// rendered representation of a receipt document.
//
// Layouts build a tree of Nodes tagged with field roles; the fieldsync
// package maps tagged nodes to document fields, the history package stores
// serialized snapshots of the tree, and the render package rasterizes it.
package vtree

import "encoding/json"

// Kind identifies how a node lays out and draws.
const (
	KindGroup    = "group"    // vertical stack of children
	KindRow      = "row"      // horizontal split of children
	KindText     = "text"     // single styled text run, possibly editable
	KindTable    = "table"    // line-item table: one header row plus item rows
	KindTableRow = "tablerow" // row of cells inside a table
	KindCell     = "cell"     // single table cell
	KindDivider  = "divider"  // horizontal rule
	KindSpacer   = "spacer"   // fixed vertical gap
	KindBarcode  = "barcode"  // machine-readable strip; Text is the payload
	KindButton   = "button"   // management affordance, stripped on export
)

// Barcode symbologies for KindBarcode nodes.
const (
	BarcodeQR     = "qr"
	BarcodePDF417 = "pdf417"
)

// Style carries the visual properties the rasterizer honors. Empty color
// strings mean "inherit"; export preparation resolves them to solid values
// before rasterization.
type Style struct {
	FontSize   float64 `json:"fontSize,omitempty"` // in logical units; 0 = default
	Bold       bool    `json:"bold,omitempty"`
	Align      string  `json:"align,omitempty"`      // "L", "C", "R" (default "L")
	Foreground string  `json:"foreground,omitempty"` // "#rrggbb" or "" (inherit)
	Background string  `json:"background,omitempty"` // "#rrggbb", "transparent", gradient, or ""
	Padding    float64 `json:"padding,omitempty"`    // logical units on all sides
	Border     bool    `json:"border,omitempty"`
	Weight     float64 `json:"weight,omitempty"` // relative width share in rows/tables; 0 = 1
	Height     float64 `json:"height,omitempty"` // spacer/barcode height in logical units
}

// Node is a single element of the visual tree. Interactive bindings (which
// role maps to which document field, what a button does) are not part of the
// node itself; they are re-established by walking the tree after a snapshot
// is restored.
type Node struct {
	Kind        string  `json:"kind"`
	Role        Role    `json:"role,omitempty"`
	Text        string  `json:"text,omitempty"`
	Index       int     `json:"index,omitempty"` // line-item row index for item roles
	Symbology   string  `json:"symbology,omitempty"`
	Style       Style   `json:"style,omitempty"`
	Editable    bool    `json:"editable,omitempty"`
	Interactive bool    `json:"interactive,omitempty"` // management-only, removed on export
	Children    []*Node `json:"children,omitempty"`
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Walk visits n and every descendant in depth-first order. Returning false
// from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// FindRole returns the first node tagged with role, or nil. For item roles,
// which occur once per row, use FindItemRole.
func (n *Node) FindRole(role Role) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Role == role {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindItemRole returns the node tagged with role at line-item row index, or
// nil.
func (n *Node) FindItemRole(role Role, index int) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Role == role && node.Index == index {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindTable returns the first table node, or nil.
func (n *Node) FindTable() *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Kind == KindTable {
			found = node
			return false
		}
		return true
	})
	return found
}

// Marshal serializes the subtree rooted at n. The serialized form contains
// only content and styling, never bindings.
func Marshal(n *Node) ([]byte, error) {
	return json.Marshal(n)
}

// Unmarshal reconstructs a tree serialized by Marshal.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

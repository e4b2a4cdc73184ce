package export

import "github.com/lvillar/receiptstudio/vtree"

// Prepare clones the visual tree and rewrites the clone for print: every
// interactive-only node (delete buttons, management cells and headers) is
// removed, and every color is resolved to a solid value so the rasterizer
// cannot silently drop content. The live editor tree is never mutated.
func Prepare(root *vtree.Node) *vtree.Node {
	clone := root.Clone()
	stripInteractive(clone)
	forceColors(clone, false)
	return clone
}

func stripInteractive(n *vtree.Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child.Interactive || child.Kind == vtree.KindButton {
			continue
		}
		stripInteractive(child)
		kept = append(kept, child)
	}
	n.Children = kept
}

// forceColors resolves inherited, transparent, and gradient values to solid
// colors: foregrounds default to black, backgrounds to white. Backgrounds
// inside already-painted containers stay unset so they do not cover the
// parent fill.
func forceColors(n *vtree.Node, parentPainted bool) {
	if n.Style.Foreground == "" {
		n.Style.Foreground = "#000000"
	}
	switch {
	case isUnpaintable(n.Style.Background):
		n.Style.Background = "#ffffff"
	case n.Style.Background == "" && !parentPainted:
		n.Style.Background = "#ffffff"
	}
	painted := parentPainted || n.Style.Background != ""
	for _, child := range n.Children {
		forceColors(child, painted)
	}
}

func isUnpaintable(bg string) bool {
	if bg == "transparent" {
		return true
	}
	for i := 0; i+8 <= len(bg); i++ {
		if bg[i:i+8] == "gradient" {
			return true
		}
	}
	return false
}

// Package render rasterizes a visual tree into an off-screen pixel buffer.
//
// Layout math is deterministic: groups stack children vertically, rows and
// table rows divide their width by weight, text wraps at the available
// width. The raster page width is fixed in logical units and multiplied by
// a sharpness scale factor; pagination later slices the result into page
// bands.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/vtree"
)

// DefaultWidth is the logical page width in device-independent units,
// matching ISO A4 at 96 DPI.
const DefaultWidth = 794

// DefaultScale is the sharpness multiplier applied to the logical size.
const DefaultScale = 1.5

const (
	defaultFontSize = 14.0
	lineSpacing     = 1.45
)

// Options configures a rasterization pass.
type Options struct {
	Width int     // logical page width; 0 = DefaultWidth
	Scale float64 // sharpness factor; 0 = DefaultScale

	// Minimal disables font hinting and forces scale 1. It is the
	// no-optimization fallback path used after a failed fidelity check.
	Minimal bool
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) scale() float64 {
	if o.Minimal {
		return 1
	}
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

type renderer struct {
	dc    *gg.Context
	faces *faceCache
	scale float64
}

// Raster renders root into a white raster surface of the configured width.
// The surface height follows the measured content height. The live tree is
// read, never mutated.
func Raster(root *vtree.Node, opts Options) (*image.RGBA, error) {
	if root == nil {
		return nil, receiptstudio.NewOpError("Raster", receiptstudio.ErrEmptyRaster)
	}
	if err := loadFonts(); err != nil {
		return nil, receiptstudio.NewOpError("Raster", err)
	}

	scale := opts.scale()
	widthPx := int(math.Round(float64(opts.width()) * scale))

	hinting := font.HintingFull
	if opts.Minimal {
		hinting = font.HintingNone
	}

	// Measuring pass: a throwaway context supplies font metrics.
	r := &renderer{
		dc:    gg.NewContext(widthPx, 1),
		faces: newFaceCache(hinting),
		scale: scale,
	}
	heightPx := int(math.Ceil(r.measure(root, float64(widthPx))))
	if heightPx < 1 {
		heightPx = 1
	}

	r.dc = gg.NewContext(widthPx, heightPx)
	r.dc.SetColor(color.White)
	r.dc.Clear()

	if err := r.draw(root, 0, 0, float64(widthPx), "#000000"); err != nil {
		return nil, receiptstudio.NewOpError("Raster", err)
	}

	img, ok := r.dc.Image().(*image.RGBA)
	if !ok {
		// gg backs its context with *image.RGBA; copy defensively if not.
		b := r.dc.Image().Bounds()
		rgba := image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rgba.Set(x, y, r.dc.Image().At(x, y))
			}
		}
		img = rgba
	}
	return img, nil
}

func (r *renderer) fontSize(s vtree.Style) float64 {
	size := s.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	return size * r.scale
}

func (r *renderer) lineHeight(s vtree.Style) float64 {
	return r.fontSize(s) * lineSpacing
}

func (r *renderer) pad(s vtree.Style) float64 {
	return s.Padding * r.scale
}

// wrap returns the rendered lines for a text node at the given inner width.
func (r *renderer) wrap(n *vtree.Node, innerW float64) []string {
	if n.Text == "" {
		return nil
	}
	r.dc.SetFontFace(r.faces.face(n.Style.Bold, r.fontSize(n.Style)))
	return r.dc.WordWrap(n.Text, math.Max(innerW, 1))
}

// columnWidths splits w among children by style weight.
func columnWidths(children []*vtree.Node, w float64) []float64 {
	total := 0.0
	for _, c := range children {
		total += weightOf(c)
	}
	if total == 0 {
		return nil
	}
	widths := make([]float64, len(children))
	for i, c := range children {
		widths[i] = w * weightOf(c) / total
	}
	return widths
}

func weightOf(n *vtree.Node) float64 {
	if n.Style.Weight > 0 {
		return n.Style.Weight
	}
	return 1
}

// measure returns the height in pixels the subtree occupies at width w.
func (r *renderer) measure(n *vtree.Node, w float64) float64 {
	pad := r.pad(n.Style)
	inner := w - 2*pad

	switch n.Kind {
	case vtree.KindGroup:
		h := 0.0
		for _, child := range n.Children {
			h += r.measure(child, inner)
		}
		return h + 2*pad

	case vtree.KindRow, vtree.KindTableRow:
		widths := columnWidths(n.Children, inner)
		h := 0.0
		for i, child := range n.Children {
			if ch := r.measure(child, widths[i]); ch > h {
				h = ch
			}
		}
		return h + 2*pad

	case vtree.KindTable:
		h := 0.0
		for _, row := range n.Children {
			h += r.measure(row, inner)
		}
		return h + 2*pad

	case vtree.KindText, vtree.KindCell, vtree.KindButton:
		lines := len(r.wrap(n, inner))
		if lines == 0 {
			lines = 1
		}
		h := float64(lines)*r.lineHeight(n.Style) + 2*pad
		for _, child := range n.Children {
			h += r.measure(child, inner)
		}
		return h

	case vtree.KindDivider:
		return 9 * r.scale

	case vtree.KindSpacer:
		height := n.Style.Height
		if height <= 0 {
			height = 8
		}
		return height * r.scale

	case vtree.KindBarcode:
		height := n.Style.Height
		if height <= 0 {
			height = 56
		}
		return height * r.scale

	default:
		return 0
	}
}

// draw renders the subtree at (x, y) with width w and returns its height.
// fg is the inherited foreground for nodes that do not set their own.
func (r *renderer) draw(n *vtree.Node, x, y, w float64, fg string) (err error) {
	h := r.measure(n, w)
	pad := r.pad(n.Style)
	inner := w - 2*pad

	if n.Style.Foreground != "" {
		fg = n.Style.Foreground
	}

	if c, ok := parseColor(n.Style.Background); ok {
		r.dc.SetColor(c)
		r.dc.DrawRectangle(x, y, w, h)
		r.dc.Fill()
	}
	if n.Style.Border {
		r.dc.SetColor(mustColor(fg))
		r.dc.SetLineWidth(r.scale)
		r.dc.DrawRectangle(x, y, w, h)
		r.dc.Stroke()
	}

	switch n.Kind {
	case vtree.KindGroup:
		cy := y + pad
		for _, child := range n.Children {
			if err = r.draw(child, x+pad, cy, inner, fg); err != nil {
				return err
			}
			cy += r.measure(child, inner)
		}

	case vtree.KindRow:
		widths := columnWidths(n.Children, inner)
		cx := x + pad
		for i, child := range n.Children {
			if err = r.draw(child, cx, y+pad, widths[i], fg); err != nil {
				return err
			}
			cx += widths[i]
		}

	case vtree.KindTable:
		cy := y + pad
		for _, row := range n.Children {
			rowH := r.measure(row, inner)
			if err = r.drawTableRow(row, x+pad, cy, inner, rowH, fg); err != nil {
				return err
			}
			cy += rowH
		}

	case vtree.KindText, vtree.KindCell, vtree.KindButton:
		r.drawText(n, x, y, w, fg)
		cy := y + pad + r.textHeight(n, inner)
		for _, child := range n.Children {
			if err = r.draw(child, x+pad, cy, inner, fg); err != nil {
				return err
			}
			cy += r.measure(child, inner)
		}

	case vtree.KindDivider:
		r.dc.SetColor(mustColor(fg))
		r.dc.SetLineWidth(r.scale)
		mid := y + h/2
		r.dc.DrawLine(x, mid, x+w, mid)
		r.dc.Stroke()

	case vtree.KindBarcode:
		err = r.drawBarcode(n, x, y, w, h)

	case vtree.KindSpacer:
		// nothing to draw
	}
	return err
}

// drawTableRow renders one table row with uniform cell borders, stretching
// every cell to the row height so the grid stays closed.
func (r *renderer) drawTableRow(row *vtree.Node, x, y, w, rowH float64, fg string) error {
	pad := r.pad(row.Style)
	widths := columnWidths(row.Children, w-2*pad)
	cx := x + pad
	for i, cell := range row.Children {
		if c, ok := parseColor(cell.Style.Background); ok {
			r.dc.SetColor(c)
			r.dc.DrawRectangle(cx, y, widths[i], rowH)
			r.dc.Fill()
		}
		r.dc.SetColor(mustColor("#333333"))
		r.dc.SetLineWidth(1)
		r.dc.DrawRectangle(cx, y, widths[i], rowH)
		r.dc.Stroke()

		cellFg := fg
		if cell.Style.Foreground != "" {
			cellFg = cell.Style.Foreground
		}
		r.drawText(cell, cx, y, widths[i], cellFg)
		for _, child := range cell.Children {
			if err := r.draw(child, cx, y, widths[i], cellFg); err != nil {
				return err
			}
		}
		cx += widths[i]
	}
	return nil
}

func (r *renderer) textHeight(n *vtree.Node, innerW float64) float64 {
	lines := len(r.wrap(n, innerW))
	if lines == 0 {
		lines = 1
	}
	return float64(lines) * r.lineHeight(n.Style)
}

func (r *renderer) drawText(n *vtree.Node, x, y, w float64, fg string) {
	pad := r.pad(n.Style)
	inner := w - 2*pad
	lines := r.wrap(n, inner)
	if len(lines) == 0 {
		return
	}

	r.dc.SetFontFace(r.faces.face(n.Style.Bold, r.fontSize(n.Style)))
	r.dc.SetColor(mustColor(fg))

	lineH := r.lineHeight(n.Style)
	for i, line := range lines {
		cy := y + pad + lineH*float64(i) + lineH/2
		switch n.Style.Align {
		case "C":
			r.dc.DrawStringAnchored(line, x+w/2, cy, 0.5, 0.35)
		case "R":
			r.dc.DrawStringAnchored(line, x+w-pad, cy, 1, 0.35)
		default:
			r.dc.DrawStringAnchored(line, x+pad, cy, 0, 0.35)
		}
	}
}

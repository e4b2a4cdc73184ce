package render

import (
	"fmt"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"

	"github.com/lvillar/receiptstudio/vtree"
)

// drawBarcode encodes the node's payload in its symbology and draws the
// result centered in the node's box. An empty payload leaves the box blank
// rather than failing the whole raster.
func (r *renderer) drawBarcode(n *vtree.Node, x, y, w, h float64) error {
	if n.Text == "" {
		return nil
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch n.Symbology {
	case vtree.BarcodePDF417:
		bc = pdf417.Encode(n.Text, 4, 2)
	case vtree.BarcodeQR, "":
		bc, err = qr.Encode(n.Text, qr.M, qr.Auto)
	default:
		return fmt.Errorf("render: unknown barcode symbology %q", n.Symbology)
	}
	if err != nil {
		return fmt.Errorf("render: encoding barcode: %w", err)
	}

	// Scale to the box height, preserving the module aspect ratio.
	bounds := bc.Bounds()
	side := int(math.Floor(h))
	targetW := side * bounds.Dx() / bounds.Dy()
	if targetW > int(w) {
		targetW = int(w)
	}
	if scaled, serr := barcode.Scale(bc, targetW, side); serr == nil {
		bc = scaled
	}

	bw := float64(bc.Bounds().Dx())
	r.dc.DrawImage(bc, int(x+(w-bw)/2), int(y))
	return nil
}

// Package export turns a prepared visual tree into a paginated PDF artifact.
//
// The pipeline mirrors what a careful operator would do by hand: clone the
// tree and strip editor chrome, wait for pending visual updates to settle,
// rasterize, verify the raster is not garbled, slice it into A4-sized bands,
// and embed each band as a JPEG page.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	receiptstudio "github.com/lvillar/receiptstudio"
	"github.com/lvillar/receiptstudio/render"
	"github.com/lvillar/receiptstudio/vtree"
)

// DefaultSettleDelay is how long the pipeline waits before rasterizing so
// in-flight debounced updates land in the tree first.
const DefaultSettleDelay = 500 * time.Millisecond

// Options control the export pipeline. The zero value selects the defaults.
type Options struct {
	PageWidthPx int           // raster width in pixels; 0 means render.DefaultWidth
	Scale       float64       // supersampling factor; 0 means render.DefaultScale
	SettleDelay time.Duration // pre-render settle wait; 0 means DefaultSettleDelay
	JPEGQuality int           // page image quality; 0 means 95
}

// Result describes a finished export.
type Result struct {
	Filename string
	Pages    int
}

// Export runs the full pipeline and writes the PDF to w. The tree is cloned
// before any mutation, so the live editor tree is untouched. A raster whose
// sample region is entirely dark is retried once with minimal render settings
// before the result is accepted.
func Export(ctx context.Context, w io.Writer, root *vtree.Node, doc *receiptstudio.Document, opts Options) (Result, error) {
	settle := opts.SettleDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}

	prepared := Prepare(root)

	select {
	case <-ctx.Done():
		return Result{}, receiptstudio.NewOpError("export", ctx.Err())
	case <-time.After(settle):
	}

	ropts := render.Options{Width: opts.PageWidthPx, Scale: opts.Scale}
	raster, err := render.Raster(prepared, ropts)
	if err != nil {
		return Result{}, receiptstudio.NewOpError("export", err)
	}

	// One retry with conservative settings when the sample region came out
	// solid dark; if the retry is dark too, ship it rather than loop.
	if allDark(raster) {
		ropts.Minimal = true
		retry, rerr := render.Raster(prepared, ropts)
		if rerr != nil {
			return Result{}, receiptstudio.NewOpError("export", fmt.Errorf("%w: %v", receiptstudio.ErrRendering, rerr))
		}
		raster = retry
	}

	if zeroSized(raster) {
		return Result{}, receiptstudio.NewOpError("export", receiptstudio.ErrEmptyRaster)
	}

	b := raster.Bounds()
	plan := PlanPages(b.Dx(), b.Dy())
	if err := assemble(w, raster, plan, doc, opts.JPEGQuality); err != nil {
		return Result{}, receiptstudio.NewOpError("export", err)
	}

	return Result{
		Filename: Filename(doc.Receipt.Number, time.Now()),
		Pages:    plan.PageCount(),
	}, nil
}

package export

import "math"

// Physical page geometry: ISO A4 portrait with a fixed margin, and the
// pixel density that maps raster pixels to millimeters (96 DPI).
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	MarginMM     = 10.0
	pxPerMM      = 3.78
)

// Band is one horizontal slice of the raster occupying a single page's
// content area. SrcY/SrcH address source raster pixels; HeightMM is the
// printed height of the slice.
type Band struct {
	SrcY     int
	SrcH     int
	HeightMM float64
}

// Plan is the deterministic layout of a raster across pages.
type Plan struct {
	Scale     float64 // uniform content scale, never above 1
	WidthMM   float64 // printed content width
	HeightMM  float64 // printed content height across all pages
	OffsetXMM float64 // left edge of the centered content
	Bands     []Band
}

// PlanPages computes the page layout for a raster of pxW by pxH pixels.
// Content is scaled uniformly by min(widthScale, heightScale, 1) — shrunk
// to fit, never enlarged. A raster that fits the content area yields one
// band; taller rasters are sliced into full-height bands with the remainder
// on the final page. The bands tile the raster exactly: no source row is
// skipped or repeated.
func PlanPages(pxW, pxH int) Plan {
	availW := PageWidthMM - 2*MarginMM
	availH := PageHeightMM - 2*MarginMM

	srcWMM := float64(pxW) / pxPerMM
	srcHMM := float64(pxH) / pxPerMM

	scale := math.Min(availW/srcWMM, availH/srcHMM)
	if scale > 1 {
		scale = 1
	}

	p := Plan{
		Scale:    scale,
		WidthMM:  srcWMM * scale,
		HeightMM: srcHMM * scale,
	}
	p.OffsetXMM = MarginMM + (availW-p.WidthMM)/2

	if p.HeightMM <= availH {
		p.Bands = []Band{{SrcY: 0, SrcH: pxH, HeightMM: p.HeightMM}}
		return p
	}

	// Band height in source pixels = (page content height / total printed
	// height) * raster height. Integer band bounds are carried forward so
	// rounding never opens a gap; the last band takes the remainder.
	srcY := 0
	remaining := p.HeightMM
	for remaining > 0 {
		hmm := math.Min(remaining, availH)
		srcH := int(math.Round(hmm / p.HeightMM * float64(pxH)))
		if srcY+srcH > pxH || remaining-hmm <= 0 {
			srcH = pxH - srcY
			hmm = float64(srcH) / float64(pxH) * p.HeightMM
		}
		p.Bands = append(p.Bands, Band{SrcY: srcY, SrcH: srcH, HeightMM: hmm})
		srcY += srcH
		remaining -= hmm
		if srcY >= pxH {
			break
		}
	}
	return p
}

// PageCount returns the number of pages the plan emits.
func (p Plan) PageCount() int { return len(p.Bands) }

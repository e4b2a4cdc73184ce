package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"time"

	gofpdf "github.com/lvillar/gofpdf"
	xdraw "golang.org/x/image/draw"

	receiptstudio "github.com/lvillar/receiptstudio"
)

const defaultJPEGQuality = 95

// bandImage copies one band of the source raster onto a white-filled canvas.
// The white fill guarantees JPEG encoding never inherits stray alpha.
func bandImage(src *image.RGBA, b Band) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), b.SrcH))
	xdraw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(out, out.Bounds(), src, image.Pt(bounds.Min.X, bounds.Min.Y+b.SrcY), xdraw.Over)
	return out
}

// assemble encodes each page band as JPEG and embeds it into an A4 portrait
// PDF with document metadata, writing the artifact to w.
func assemble(w io.Writer, raster *image.RGBA, plan Plan, doc *receiptstudio.Document, quality int) error {
	if quality <= 0 {
		quality = defaultJPEGQuality
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+doc.Receipt.Number, true)
	pdf.SetSubject("Receipt", true)
	pdf.SetAuthor(doc.Company.Name, true)
	pdf.SetCreator("receiptstudio", true)

	opt := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, band := range plan.Bands {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, bandImage(raster, band), &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("export: encoding page %d: %w", i+1, err)
		}

		pdf.AddPage()
		name := fmt.Sprintf("band-%03d", i+1)
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.ImageOptions(name, plan.OffsetXMM, MarginMM, plan.WidthMM, band.HeightMM, false, opt, 0, "")
	}

	if pdf.Err() {
		return fmt.Errorf("export: assembling document: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// Filename derives the deterministic artifact name from the receipt number
// and the current date and time: Receipt-<number>-<YYYYMMDD>-<HHMM>.pdf.
func Filename(number string, now time.Time) string {
	return fmt.Sprintf("Receipt-%s-%s-%s.pdf",
		receiptstudio.SanitizeNumber(number),
		now.Format("20060102"),
		now.Format("1504"))
}

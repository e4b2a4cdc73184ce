package export

import "image"

// Fidelity-check parameters: a fixed top-left sample region and a per-channel
// darkness threshold. A fully dark sample means the rasterizer dropped the
// white page background, which is the signature of a garbled render.
const (
	sampleSide    = 100
	darkThreshold = 10
)

// allDark reports whether every pixel in the top-left sample region has all
// three channels at or below the darkness threshold. An empty image is not
// considered dark; it fails the zero-size check instead.
func allDark(img *image.RGBA) bool {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return false
	}
	maxX := b.Min.X + sampleSide
	if maxX > b.Max.X {
		maxX = b.Max.X
	}
	maxY := b.Min.Y + sampleSide
	if maxY > b.Max.Y {
		maxY = b.Max.Y
	}
	for y := b.Min.Y; y < maxY; y++ {
		for x := b.Min.X; x < maxX; x++ {
			c := img.RGBAAt(x, y)
			if c.R > darkThreshold || c.G > darkThreshold || c.B > darkThreshold {
				return false
			}
		}
	}
	return true
}

func zeroSized(img *image.RGBA) bool {
	return img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0
}

package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *truetype.Font
	boldFont    *truetype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = truetype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("render: parsing regular font: %w", fontErr)
			return
		}
		boldFont, fontErr = truetype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("render: parsing bold font: %w", fontErr)
		}
	})
	return fontErr
}

type faceKey struct {
	bold bool
	size float64
}

// faceCache builds and reuses truetype faces for one rasterization pass.
type faceCache struct {
	hinting font.Hinting
	faces   map[faceKey]font.Face
}

func newFaceCache(hinting font.Hinting) *faceCache {
	return &faceCache{hinting: hinting, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f := truetype.NewFace(src, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: c.hinting,
	})
	c.faces[key] = f
	return f
}

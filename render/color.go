package render

import (
	"image/color"
	"strings"
)

// parseColor interprets a style color string. The second return is false
// for values the rasterizer cannot fill directly: empty (inherit),
// "transparent", and gradients. Export preparation resolves those to solid
// colors before rasterizing; unprepared trees simply skip the fill.
func parseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "transparent" || strings.Contains(s, "gradient") {
		return nil, false
	}
	if !strings.HasPrefix(s, "#") {
		return nil, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, ok1 := hexNibble(hex[0])
		g, ok2 := hexNibble(hex[1])
		b, ok3 := hexNibble(hex[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return nil, false
			}
			v[i] = hi<<4 | lo
		}
		return color.RGBA{R: v[0], G: v[1], B: v[2], A: 255}, true
	}
	return nil, false
}

// mustColor parses a foreground color, falling back to black.
func mustColor(s string) color.Color {
	if c, ok := parseColor(s); ok {
		return c
	}
	return color.Black
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

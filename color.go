package skydrift

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for values it cannot interpret.
var ErrInvalidColor = errors.New("skydrift: invalid color")

// ParseColor converts a CSS-style color value into a Color. Accepted forms
// are #rgb, #rrggbb, rgb(r, g, b), rgba(r, g, b, a) and CSS color names.
// Surrounding whitespace and a single pair of matching quotes are ignored.
// Empty values and "none" are rejected.
func ParseColor(s string) (Color, error) {
	v := unquote(strings.TrimSpace(s))
	if v == "" || strings.EqualFold(v, "none") {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}

	lower := strings.ToLower(v)
	switch {
	case strings.HasPrefix(lower, "#"):
		c, err := colorful.Hex(lower)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		c, ok := parseRGBFunc(lower)
		if !ok {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
		}
		return c, nil
	}

	if rgba, ok := colornames.Map[lower]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseRGBFunc parses the rgb()/rgba() functional notation. Channels are
// 0-255, alpha is 0-1.
func parseRGBFunc(v string) (Color, bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return Color{}, false
	}
	parts := strings.Split(v[open+1:len(v)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, false
		}
		ch[i] = f
	}
	return Color{
		R: clamp01(ch[0] / 255),
		G: clamp01(ch[1] / 255),
		B: clamp01(ch[2] / 255),
		A: clamp01(ch[3]),
	}, true
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}

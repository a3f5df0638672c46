package skydrift

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
)

// Color tokens looked up in a Palette at draw time.
const (
	TokenSkyStart      = "canvas-sky-gradient-start"
	TokenSkyEnd        = "canvas-sky-gradient-end"
	TokenNightSkyStart = "canvas-night-sky-gradient-start"
	TokenNightSkyMid   = "canvas-night-sky-gradient-mid"
	TokenNightSkyEnd   = "canvas-night-sky-gradient-end"
	TokenCloud         = "canvas-cloud-color"
	TokenBird          = "canvas-bird-color"
	TokenStar          = "canvas-star-color"
	TokenCometHead     = "canvas-comet-head-color"
	TokenCometTailMid  = "canvas-comet-tail-mid-color"
	TokenCometTailEnd  = "canvas-comet-tail-end-color"
)

// fallbacks holds the literal color used for each token when the palette
// has no usable value.
var fallbacks = map[string]Color{
	TokenSkyStart:      MustParseColor("#87CEEB"),
	TokenSkyEnd:        MustParseColor("#ADD8E6"),
	TokenNightSkyStart: MustParseColor("#000030"),
	TokenNightSkyMid:   MustParseColor("#101045"),
	TokenNightSkyEnd:   MustParseColor("#202055"),
	TokenCloud:         MustParseColor("rgba(255, 255, 255, 0.85)"),
	TokenBird:          MustParseColor("rgba(80, 80, 80, 0.75)"),
	TokenStar:          MustParseColor("rgba(255, 255, 224, 0.9)"),
	TokenCometHead:     MustParseColor("rgb(255, 255, 224)"),
	TokenCometTailMid:  MustParseColor("rgba(255, 255, 224, 0.5)"),
	TokenCometTailEnd:  MustParseColor("rgba(255, 255, 224, 0)"),
}

// Fallback returns the built-in color for token, or opaque white for
// unknown tokens.
func Fallback(token string) Color {
	if c, ok := fallbacks[token]; ok {
		return c
	}
	return ColorWhite
}

// Palette resolves color tokens. Implementations may change their answers at
// any time; the engine asks again on every draw.
type Palette interface {
	Color(token string) (Color, bool)
}

// PaletteFunc adapts a function to the Palette interface.
type PaletteFunc func(token string) (Color, bool)

// Color implements Palette.
func (f PaletteFunc) Color(token string) (Color, bool) { return f(token) }

// MapPalette is a Palette backed by parsed token values. Values that failed
// to parse are kept out of the map so they resolve to the fallback.
type MapPalette struct {
	colors map[string]Color
}

// NewMapPalette builds a palette from raw token/value pairs. Keys are
// normalized with NormalizeToken; values go through ParseColor. Invalid
// values are skipped and reported in the returned error list.
func NewMapPalette(values map[string]string) (*MapPalette, []error) {
	p := &MapPalette{colors: make(map[string]Color, len(values))}
	var errs []error
	for k, v := range values {
		token := NormalizeToken(k)
		if !strings.HasPrefix(token, "canvas-") {
			continue
		}
		c, err := ParseColor(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("token %s: %w", token, err))
			continue
		}
		p.colors[token] = c
	}
	return p, errs
}

// Color implements Palette.
func (p *MapPalette) Color(token string) (Color, bool) {
	if p == nil {
		return Color{}, false
	}
	c, ok := p.colors[token]
	return c, ok
}

// Set assigns a token directly.
func (p *MapPalette) Set(token string, c Color) {
	if p.colors == nil {
		p.colors = make(map[string]Color)
	}
	p.colors[NormalizeToken(token)] = c
}

// Len returns the number of resolved tokens.
func (p *MapPalette) Len() int {
	return len(p.colors)
}

// NormalizeToken maps the spellings "--canvas-sky-gradient-start",
// "CANVAS_SKY_GRADIENT_START" and "canvas-sky-gradient-start" to the same
// token name.
func NormalizeToken(key string) string {
	k := strings.TrimSpace(key)
	k = strings.TrimLeft(k, "-")
	k = strings.ToLower(k)
	return strings.ReplaceAll(k, "_", "-")
}

// ParsePalette reads dotenv-formatted token assignments from r. Keys that do
// not name a canvas token are ignored. Unparseable color values are logged
// and left to their fallback.
func ParsePalette(r io.Reader) (*MapPalette, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	return newLoggedPalette(values), nil
}

// LoadPalette reads a dotenv-formatted palette file.
func LoadPalette(path string) (*MapPalette, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("load palette %s: %w", path, err)
	}
	return newLoggedPalette(values), nil
}

func newLoggedPalette(values map[string]string) *MapPalette {
	p, errs := NewMapPalette(values)
	for _, err := range errs {
		Logger().Warn("palette value ignored", "err", err)
	}
	return p
}

// resolve returns the palette's color for token, or its fallback.
func resolve(p Palette, token string) Color {
	if p != nil {
		if c, ok := p.Color(token); ok {
			return c
		}
	}
	return Fallback(token)
}

package skydrift

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Fade returns c with its alpha multiplied by f.
func (c Color) Fade(f float64) Color {
	c.A *= f
	return c
}

// toRGBA converts a Color to a color.RGBA (premultiplied).
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// toNRGBA converts a Color to a color.NRGBA (straight alpha).
func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Range is a general-purpose min/max range used for randomized entity
// placement and kinematics.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Scale returns the range multiplied by f.
func (r Range) Scale(f float64) Range {
	return Range{r.Min * f, r.Max * f}
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min, Max int
}

// Random returns a random int in [Min, Max] drawn from rng.
func (r IntRange) Random(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// SceneID identifies which scene the engine is showing.
type SceneID uint8

const (
	SceneNone  SceneID = iota // no theme applied yet
	SceneLight                // daytime sky: clouds and birds
	SceneDark                 // night sky: stars and comets
)

// String returns the scene name.
func (s SceneID) String() string {
	switch s {
	case SceneLight:
		return "light"
	case SceneDark:
		return "dark"
	default:
		return "none"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

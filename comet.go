package skydrift

import (
	"math"
	"math/rand/v2"
)

var (
	cometSpawnY     = Range{-30, -5}
	cometTrail      = Range{80, 150}
	cometSpeed      = Range{1.5, 4}
	cometAngle      = Range{math.Pi * 0.3, math.Pi * 0.7}
	cometBrightness = Range{0.7, 1}
	cometWidth      = Range{0.5, 2.5}
)

// cometStops are the gradient offsets of head, mid tail and tail end.
var cometStops = [3]float64{0, 0.3, 1}

// comet streaks diagonally down from just above the top edge.
type comet struct {
	x, y       float64
	angle      float64
	speed      float64
	dx, dy     float64
	trail      float64
	brightness float64
}

func newComet(vp Viewport, rng *rand.Rand) *comet {
	c := &comet{
		x:          Range{0, vp.Width}.Random(rng),
		y:          cometSpawnY.Random(rng),
		angle:      cometAngle.Random(rng),
		speed:      cometSpeed.Random(rng),
		trail:      cometTrail.Random(rng),
		brightness: cometBrightness.Random(rng),
	}
	c.dx = math.Cos(c.angle) * c.speed
	c.dy = math.Sin(c.angle) * c.speed
	return c
}

func (c *comet) advance() {
	c.x += c.dx
	c.y += c.dy
}

// expired reports whether the comet has left the viewport by more than its
// trail length.
func (c *comet) expired(vp Viewport) bool {
	return vp.outside(c.x, c.y, c.dx, c.dy, c.trail)
}

// tail returns the end point of the trail, trail pixels behind the head.
func (c *comet) tail() Vec2 {
	k := c.trail / c.speed
	return Vec2{c.x - c.dx*k, c.y - c.dy*k}
}

// render strokes the trail. The stroke width is resampled every draw, which
// gives the streak a slight shimmer.
func (c *comet) render(s Surface, pal Palette, alpha float64, rng *rand.Rand, stops []GradientStop) []GradientStop {
	head := resolve(pal, TokenCometHead)
	mid := resolve(pal, TokenCometTailMid)
	end := resolve(pal, TokenCometTailEnd)
	stops = append(stops[:0],
		GradientStop{cometStops[0], head.Fade(c.brightness * alpha)},
		GradientStop{cometStops[1], mid.Fade(c.brightness * alpha)},
		GradientStop{cometStops[2], end.Fade(alpha)},
	)
	s.StrokeGradient(Vec2{c.x, c.y}, c.tail(), cometWidth.Random(rng), stops)
	return stops
}

package skydrift

import (
	"math"
	"math/rand/v2"
)

var (
	birdSpeedX    = Range{0.8, 2.2}
	birdSpeedY    = Range{-0.15, 0.15}
	birdSize      = Range{6, 12}
	birdWingSpeed = Range{0.2, 0.35}
	birdFlap      = Range{0.4, 0.6} // fraction of size

	flockStartX  = Range{50, 150}  // distance left of the viewport
	flockStartY  = Range{0.1, 0.5} // fraction of viewport height
	flockTrail   = Range{15, 40}
	flockScatter = Range{-30, 30}
)

// bird is a two-stroke silhouette flying at constant velocity.
type bird struct {
	x, y      float64
	vx, vy    float64
	size      float64
	wingPhase float64
	wingSpeed float64
	flap      float64
}

func newBird(x, y float64, rng *rand.Rand) *bird {
	b := &bird{
		x:         x,
		y:         y,
		vx:        birdSpeedX.Random(rng),
		vy:        birdSpeedY.Random(rng),
		size:      birdSize.Random(rng),
		wingPhase: Range{0, 2 * math.Pi}.Random(rng),
		wingSpeed: birdWingSpeed.Random(rng),
	}
	b.flap = b.size * birdFlap.Random(rng)
	return b
}

func (b *bird) advance() {
	b.x += b.vx
	b.y += b.vy
	b.wingPhase += b.wingSpeed
}

// expired reports whether the bird has flown out past a margin of twice its
// size.
func (b *bird) expired(vp Viewport) bool {
	return vp.outside(b.x, b.y, b.vx, b.vy, b.size*2)
}

func (b *bird) render(s Surface, pal Palette, alpha float64, buf []Vec2) []Vec2 {
	wing := math.Sin(b.wingPhase) * b.flap
	buf = append(buf[:0],
		Vec2{b.x - b.size, b.y + wing},
		Vec2{b.x, b.y},
		Vec2{b.x + b.size, b.y + wing},
	)
	s.StrokePolyline(buf, math.Max(1, b.size/5), resolve(pal, TokenBird).Fade(alpha))
	return buf
}

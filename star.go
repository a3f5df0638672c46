package skydrift

import (
	"math"
	"math/rand/v2"
	"time"
)

var (
	starSpawnY  = Range{0, 0.85} // fraction of viewport height
	starRadius  = Range{0.6, 2.0}
	starOpacity = Range{0.7, 1.0}
)

// star is a fixed point of light. opacity is written only by blinkCursor.
type star struct {
	x, y    float64
	radius  float64
	base    float64
	opacity float64
}

func newStar(vp Viewport, dim float64, rng *rand.Rand) *star {
	s := &star{
		x:      Range{0, vp.Width}.Random(rng),
		y:      starSpawnY.Scale(vp.Height).Random(rng),
		radius: starRadius.Random(rng),
		base:   starOpacity.Random(rng),
	}
	s.opacity = s.resting(dim)
	return s
}

// resting returns the dimmed opacity the star sits at between blinks.
func (s *star) resting(dim float64) float64 {
	return s.base * dim
}

func (s *star) render(surf Surface, pal Palette, alpha float64) {
	c := resolve(pal, TokenStar).WithAlpha(clamp01(s.opacity) * alpha)
	surf.FillEllipse(s.x, s.y, s.radius, s.radius, c)
}

// blinkCursor animates at most one star at a time. index is -1 while idle.
type blinkCursor struct {
	index    int
	start    time.Duration
	duration time.Duration
	delay    time.Duration
	dim      float64
}

func newBlinkCursor(now, duration, delay time.Duration, dim float64) blinkCursor {
	return blinkCursor{index: -1, start: now, duration: duration, delay: delay, dim: dim}
}

// active reports whether a star is mid-blink.
func (b *blinkCursor) active() bool {
	return b.index >= 0
}

// step advances the blink state machine to now.
func (b *blinkCursor) step(now time.Duration, stars []*star, rng *rand.Rand) {
	if len(stars) == 0 {
		return
	}
	if b.index >= len(stars) {
		b.index = -1
	}

	if b.active() {
		s := stars[b.index]
		progress := float64(now-b.start) / float64(b.duration)
		if progress < 1 {
			rest := s.resting(b.dim)
			amp := s.base * (1 - b.dim)
			s.opacity = rest + amp*math.Sin(progress*math.Pi)*2
			return
		}
		s.opacity = s.resting(b.dim)
		b.index = -1
		b.start = now
		return
	}

	if now-b.start > b.delay {
		for _, s := range stars {
			s.opacity = s.resting(b.dim)
		}
		b.index = rng.IntN(len(stars))
		b.start = now
	}
}

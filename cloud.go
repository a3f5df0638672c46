package skydrift

import (
	"math"
	"math/rand/v2"
)

// Cloud placement and shape ranges.
var (
	cloudSpawnX      = Range{-0.7, 1.2}  // fraction of viewport width
	cloudSpawnY      = Range{0.05, 0.35} // fraction of viewport height
	cloudSpeed       = Range{0.01, 0.04}
	cloudBaseWidth   = Range{180, 400}
	cloudBaseHeight  = Range{60, 120}
	cloudCorePuffs   = IntRange{5, 7}
	cloudDetailPuffs = IntRange{4, 6}
	cloudRecycleGap  = Range{50, 200}
)

// puff is one ellipse of a cloud silhouette, relative to the cloud origin.
type puff struct {
	dx, dy float64
	rx, ry float64
}

// cloud drifts right across the light sky. Its puffs never change after
// construction; left and right hold the silhouette extents relative to x.
type cloud struct {
	x, y    float64
	speed   float64
	opacity float64
	puffs   []puff
	left    float64
	right   float64
}

func newCloud(vp Viewport, rng *rand.Rand) *cloud {
	c := &cloud{
		x:       cloudSpawnX.Scale(vp.Width).Random(rng),
		y:       cloudSpawnY.Scale(vp.Height).Random(rng),
		speed:   cloudSpeed.Random(rng),
		opacity: 1,
	}
	bw := cloudBaseWidth.Random(rng)
	bh := cloudBaseHeight.Random(rng)

	cores := cloudCorePuffs.Random(rng)
	c.puffs = make([]puff, 0, cores+cloudDetailPuffs.Max)
	for range cores {
		c.puffs = append(c.puffs, puff{
			dx: Range{-bw * 0.45, bw * 0.45}.Random(rng),
			dy: Range{-bh * 0.35, bh * 0.35}.Random(rng),
			rx: Range{bw * 0.2, bw * 0.4}.Random(rng),
			ry: Range{bh * 0.25, bh * 0.55}.Random(rng),
		})
	}

	// Detail puffs sit on the rim of a core puff, pushed out along one axis.
	details := cloudDetailPuffs.Random(rng)
	for range details {
		core := c.puffs[rng.IntN(cores)]
		side := 1.0
		if rng.IntN(2) == 0 {
			side = -1
		}
		push := Range{0.4, 0.8}.Random(rng) * side
		dx, dy := core.dx, core.dy
		if rng.IntN(2) == 0 {
			dx += core.rx * push
		} else {
			dy += core.ry * push
		}
		dy -= Range{5, 15}.Random(rng)
		r := Range{bw * 0.05, bw * 0.15}.Random(rng)
		c.puffs = append(c.puffs, puff{dx: dx, dy: dy, rx: r, ry: r * Range{0.7, 1.1}.Random(rng)})
	}

	c.left, c.right = math.Inf(1), math.Inf(-1)
	for _, p := range c.puffs {
		c.left = math.Min(c.left, p.dx-p.rx)
		c.right = math.Max(c.right, p.dx+p.rx)
	}
	return c
}

// advance drifts the cloud one frame. Once its left edge passes the right
// side of the viewport it is moved fully off-screen left at a new height.
func (c *cloud) advance(vp Viewport, rng *rand.Rand) {
	c.x += c.speed
	if c.x+c.left > vp.Width {
		c.x = -c.right - cloudRecycleGap.Random(rng)
		c.y = cloudSpawnY.Scale(vp.Height).Random(rng)
	}
}

func (c *cloud) render(s Surface, pal Palette, alpha float64) {
	fill := resolve(pal, TokenCloud).WithAlpha(c.opacity * alpha)
	for _, p := range c.puffs {
		s.FillEllipse(c.x+p.dx, c.y+p.dy, p.rx, p.ry, fill)
	}
}

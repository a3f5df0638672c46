package skydrift

import (
	"math/rand/v2"
	"time"
)

// frameStats collects per-frame counters for debug logging.
type frameStats struct {
	entities int
	spawned  int
	culled   int
}

// sceneEnv is the read-only context a scene frame runs against.
type sceneEnv struct {
	vp    Viewport
	pal   Palette
	rng   *rand.Rand
	now   time.Duration
	alpha float64 // scene fade multiplier
}

// lightScene is the daytime pool: fixed clouds plus bird flocks.
type lightScene struct {
	cfg       *Config
	clouds    []*cloud
	birds     []*bird
	lastFlock time.Duration
	lineBuf   []Vec2
	stopBuf   []GradientStop
}

func newLightScene(cfg *Config, vp Viewport, rng *rand.Rand, now time.Duration) *lightScene {
	s := &lightScene{
		cfg:    cfg,
		clouds: make([]*cloud, 0, cfg.Clouds),
		birds:  make([]*bird, 0, cfg.MaxBirds),
	}
	for range cfg.Clouds {
		s.clouds = append(s.clouds, newCloud(vp, rng))
	}
	s.spawnFlock(vp, rng, now)
	return s
}

// spawnFlock appends a trailing cluster of birds just off the left edge,
// never exceeding MaxBirds, and restarts the flock timer.
func (s *lightScene) spawnFlock(vp Viewport, rng *rand.Rand, now time.Duration) int {
	n := s.cfg.FlockSize.Random(rng)
	startX := -flockStartX.Random(rng)
	startY := flockStartY.Scale(vp.Height).Random(rng)
	spawned := 0
	for i := range n {
		if len(s.birds) >= s.cfg.MaxBirds {
			break
		}
		x := startX - float64(i)*flockTrail.Random(rng)
		y := startY + flockScatter.Random(rng)
		s.birds = append(s.birds, newBird(x, y, rng))
		spawned++
	}
	s.lastFlock = now
	return spawned
}

func (s *lightScene) frame(surf Surface, env sceneEnv) frameStats {
	s.stopBuf = append(s.stopBuf[:0],
		GradientStop{0, resolve(env.pal, TokenSkyStart)},
		GradientStop{1, resolve(env.pal, TokenSkyEnd)},
	)
	surf.FillGradient(env.vp.Bounds(), s.stopBuf)

	for _, c := range s.clouds {
		c.advance(env.vp, env.rng)
		c.render(surf, env.pal, env.alpha)
	}
	for _, b := range s.birds {
		b.advance()
		s.lineBuf = b.render(surf, env.pal, env.alpha, s.lineBuf)
	}

	var st frameStats
	st.culled = s.cull(env.vp)
	if env.now-s.lastFlock > s.cfg.FlockInterval &&
		len(s.birds) < s.cfg.FlockSize.Min &&
		len(s.birds) < s.cfg.MaxBirds {
		st.spawned = s.spawnFlock(env.vp, env.rng, env.now)
	}
	st.entities = len(s.clouds) + len(s.birds)
	return st
}

// cull drops expired birds in place, keeping draw order.
func (s *lightScene) cull(vp Viewport) int {
	write := 0
	for _, b := range s.birds {
		if !b.expired(vp) {
			s.birds[write] = b
			write++
		}
	}
	clear(s.birds[write:])
	n := len(s.birds) - write
	s.birds = s.birds[:write]
	return n
}

// darkScene is the night pool: fixed stars, one blink cursor and comets.
type darkScene struct {
	cfg       *Config
	stars     []*star
	comets    []*comet
	blink     blinkCursor
	lastComet time.Duration
	stopBuf   []GradientStop
	trailBuf  []GradientStop
}

func newDarkScene(cfg *Config, vp Viewport, rng *rand.Rand, now time.Duration) *darkScene {
	s := &darkScene{
		cfg:       cfg,
		stars:     make([]*star, 0, cfg.Stars),
		comets:    make([]*comet, 0, cfg.MaxComets),
		blink:     newBlinkCursor(now, cfg.BlinkDuration, cfg.BlinkDelay, cfg.StarDim),
		lastComet: now,
	}
	for range cfg.Stars {
		s.stars = append(s.stars, newStar(vp, cfg.StarDim, rng))
	}
	return s
}

func (s *darkScene) frame(surf Surface, env sceneEnv) frameStats {
	s.stopBuf = append(s.stopBuf[:0],
		GradientStop{0, resolve(env.pal, TokenNightSkyStart)},
		GradientStop{0.7, resolve(env.pal, TokenNightSkyMid)},
		GradientStop{1, resolve(env.pal, TokenNightSkyEnd)},
	)
	surf.FillGradient(env.vp.Bounds(), s.stopBuf)

	s.blink.step(env.now, s.stars, env.rng)
	for _, sr := range s.stars {
		sr.render(surf, env.pal, env.alpha)
	}
	for _, c := range s.comets {
		c.advance()
		s.trailBuf = c.render(surf, env.pal, env.alpha, env.rng, s.trailBuf)
	}

	var st frameStats
	st.culled = s.cull(env.vp)
	if env.now-s.lastComet > s.cfg.CometInterval && len(s.comets) < s.cfg.MaxComets {
		s.spawnComet(env.vp, env.rng, env.now)
		st.spawned = 1
	}
	st.entities = len(s.stars) + len(s.comets)
	return st
}

// spawnComet launches one comet from above the top edge and restarts the
// comet timer.
func (s *darkScene) spawnComet(vp Viewport, rng *rand.Rand, now time.Duration) {
	s.comets = append(s.comets, newComet(vp, rng))
	s.lastComet = now
}

// cull drops expired comets in place, keeping draw order.
func (s *darkScene) cull(vp Viewport) int {
	write := 0
	for _, c := range s.comets {
		if !c.expired(vp) {
			s.comets[write] = c
			write++
		}
	}
	clear(s.comets[write:])
	n := len(s.comets) - write
	s.comets = s.comets[:write]
	return n
}

package skydrift

import (
	"math/rand/v2"
	"time"
)

// Config controls population sizes, spawn timing and the collaborators the
// engine draws on. Zero numeric fields take the DefaultConfig value when
// passed to New.
type Config struct {
	// Clouds is the fixed number of clouds in the light scene.
	Clouds int
	// MaxBirds caps the birds alive at once.
	MaxBirds int
	// FlockSize is the inclusive range of birds per flock. FlockSize.Min is
	// also the visible-bird threshold below which a new flock may spawn.
	FlockSize IntRange
	// FlockInterval is the minimum time between flocks.
	FlockInterval time.Duration

	// Stars is the fixed number of stars in the dark scene.
	Stars int
	// StarDim is the resting opacity as a fraction of a star's base opacity.
	StarDim float64
	// BlinkDuration is how long one star takes to brighten and fade.
	BlinkDuration time.Duration
	// BlinkDelay is the idle gap between two blinks.
	BlinkDelay time.Duration
	// MaxComets caps the comets alive at once.
	MaxComets int
	// CometInterval is the minimum time between comets.
	CometInterval time.Duration

	// FadeIn is how long a freshly activated scene takes to fade in over
	// its backdrop. Zero disables the fade.
	FadeIn time.Duration

	// DarkThemes lists theme names (case-insensitive) that select the dark
	// scene. Every other name selects the light scene.
	DarkThemes []string

	// Palette resolves color tokens. Nil uses the built-in fallbacks.
	Palette Palette
	// Scheduler drives frames. Nil creates a RefreshScheduler, available
	// through Engine.Scheduler.
	Scheduler Scheduler
	// Rand is the random source for entity generation. Nil seeds a new
	// source from the runtime.
	Rand *rand.Rand
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Clouds:        8,
		MaxBirds:      5,
		FlockSize:     IntRange{Min: 2, Max: 4},
		FlockInterval: 10 * time.Second,
		Stars:         150,
		StarDim:       0.3,
		BlinkDuration: 1200 * time.Millisecond,
		BlinkDelay:    150 * time.Millisecond,
		MaxComets:     4,
		CometInterval: 2500 * time.Millisecond,
		FadeIn:        600 * time.Millisecond,
		DarkThemes:    []string{"theme-deep", "deep"},
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Clouds <= 0 {
		c.Clouds = d.Clouds
	}
	if c.MaxBirds <= 0 {
		c.MaxBirds = d.MaxBirds
	}
	if c.FlockSize.Min <= 0 || c.FlockSize.Max < c.FlockSize.Min {
		c.FlockSize = d.FlockSize
	}
	if c.FlockInterval <= 0 {
		c.FlockInterval = d.FlockInterval
	}
	if c.Stars <= 0 {
		c.Stars = d.Stars
	}
	if c.StarDim <= 0 || c.StarDim > 1 {
		c.StarDim = d.StarDim
	}
	if c.BlinkDuration <= 0 {
		c.BlinkDuration = d.BlinkDuration
	}
	if c.BlinkDelay <= 0 {
		c.BlinkDelay = d.BlinkDelay
	}
	if c.MaxComets <= 0 {
		c.MaxComets = d.MaxComets
	}
	if c.CometInterval <= 0 {
		c.CometInterval = d.CometInterval
	}
	if c.FadeIn < 0 {
		c.FadeIn = 0
	}
	if len(c.DarkThemes) == 0 {
		c.DarkThemes = d.DarkThemes
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

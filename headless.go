package skydrift

import "time"

// DefaultFrameStep is the simulated refresh interval for headless runs.
const DefaultFrameStep = time.Second / 60

// Headless runs an Engine without a window. Frames are rendered in software
// onto an ImageSurface and the clock advances by a fixed step per frame.
type Headless struct {
	engine  *Engine
	surface *ImageSurface
	sched   *RefreshScheduler
	now     time.Duration

	// Step is the simulated time between frames.
	Step time.Duration
}

// NewHeadless creates a headless engine with a width x height viewport.
// Any Config.Scheduler is replaced by one driven from Advance.
func NewHeadless(width, height int, cfg Config) *Headless {
	surf := NewImageSurface(width, height)
	sched := NewRefreshScheduler()
	cfg.Scheduler = sched
	h := &Headless{
		engine:  New(surf, cfg),
		surface: surf,
		sched:   sched,
		Step:    DefaultFrameStep,
	}
	h.engine.Resize(width, height)
	return h
}

// Engine returns the hosted engine.
func (h *Headless) Engine() *Engine {
	return h.engine
}

// Surface returns the surface frames are rendered onto.
func (h *Headless) Surface() *ImageSurface {
	return h.surface
}

// Now returns the simulated clock.
func (h *Headless) Now() time.Duration {
	return h.now
}

// Advance simulates frames display refreshes and returns how many of them
// rendered a frame. Refreshes with nothing scheduled still move the clock.
func (h *Headless) Advance(frames int) int {
	rendered := 0
	for range frames {
		h.now += h.Step
		if h.sched.Refresh(h.now) {
			rendered++
		}
	}
	return rendered
}

package skydrift

import (
	"reflect"
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Engine runs the animated sky. It owns the active scene's entity pool, the
// viewport and the frame loop. SetTheme is the single entry point a theme
// switcher needs; Resize keeps the viewport in step with the window.
//
// Engine is not safe for concurrent use. Call it from the goroutine that
// drives the Scheduler (for Ebitengine, the game loop).
type Engine struct {
	surface Surface
	cfg     Config
	sched   Scheduler
	refresh *RefreshScheduler

	vp         Viewport
	scene      SceneID
	light      *lightScene
	dark       *darkScene
	degenerate bool // pool was built against an empty viewport

	tick    FrameFunc
	handle  FrameHandle
	wantRun bool
	now     time.Duration
	frames  uint64
	// stale is set while e.now lags the host clock: before the first
	// frame, after a suspension and after a rebuild.
	stale bool

	fade *gween.Tween

	debug bool
}

// New creates an engine that paints onto surface. A nil surface, including
// a typed nil pointer, yields a disabled engine whose methods do nothing, so a host without a drawing
// target keeps working.
func New(surface Surface, cfg Config) *Engine {
	if isNilSurface(surface) {
		Logger().Warn("skydrift: no drawing surface, engine disabled")
		return &Engine{}
	}
	e := &Engine{
		surface: surface,
		cfg:     cfg.withDefaults(),
	}
	e.sched = e.cfg.Scheduler
	if e.sched == nil {
		e.refresh = NewRefreshScheduler()
		e.sched = e.refresh
	}
	e.tick = e.frame
	return e
}

// Enabled reports whether the engine has a surface to draw on.
func (e *Engine) Enabled() bool {
	return e.surface != nil
}

// Scheduler returns the RefreshScheduler the engine created for itself, or
// nil when Config.Scheduler was supplied.
func (e *Engine) Scheduler() *RefreshScheduler {
	return e.refresh
}

// Scene returns the active scene.
func (e *Engine) Scene() SceneID {
	return e.scene
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() Viewport {
	return e.vp
}

// Running reports whether a frame is scheduled.
func (e *Engine) Running() bool {
	return e.handle != 0
}

// Population returns the number of background entities (clouds or stars)
// and transient entities (birds or comets) in the active pool.
func (e *Engine) Population() (background, transient int) {
	switch e.scene {
	case SceneLight:
		return len(e.light.clouds), len(e.light.birds)
	case SceneDark:
		return len(e.dark.stars), len(e.dark.comets)
	}
	return 0, 0
}

// ResolveScene maps a theme name to a scene. Names listed in
// Config.DarkThemes select the dark scene; anything else is light.
func (e *Engine) ResolveScene(theme string) SceneID {
	name := strings.TrimSpace(theme)
	for _, d := range e.cfg.DarkThemes {
		if strings.EqualFold(name, d) {
			return SceneDark
		}
	}
	return SceneLight
}

// SetTheme switches to the scene for theme. When the scene changes, its pool
// is rebuilt from scratch and the previous pool is discarded. Calling it
// again with a theme of the same scene leaves the pool untouched. The frame
// loop is started if it is not already running.
func (e *Engine) SetTheme(theme string) {
	if !e.Enabled() {
		return
	}
	id := e.ResolveScene(theme)
	if id != e.scene {
		Logger().Info("skydrift: scene change", "theme", theme, "from", e.scene, "to", id)
		e.scene = id
		e.rebuild()
	}
	e.wantRun = true
	e.Start()
}

// Resize sets the viewport and the surface to width x height pixels. The
// active pool keeps its entities; only entities placed from now on see the
// new size. A pool built while the viewport was empty is rebuilt once the
// viewport has area, and a loop that was waiting on a valid viewport
// resumes.
func (e *Engine) Resize(width, height int) {
	if !e.Enabled() {
		return
	}
	width, height = max(width, 0), max(height, 0)
	vp := Viewport{Width: float64(width), Height: float64(height)}
	if vp != e.vp {
		e.vp = vp
		e.surface.Resize(width, height)
	}
	if e.degenerate && !e.vp.Empty() {
		e.rebuild()
	}
	if e.wantRun {
		e.Start()
	}
}

// Start schedules the frame loop. It is a no-op while a frame is already
// scheduled, before any theme is set, or while the viewport is empty.
func (e *Engine) Start() {
	if !e.Enabled() || e.handle != 0 || e.scene == SceneNone {
		return
	}
	e.wantRun = true
	if e.vp.Empty() {
		Logger().Debug("skydrift: viewport empty, waiting for resize")
		return
	}
	e.stale = true
	e.handle = e.sched.RequestFrame(e.tick)
	Logger().Info("skydrift: frame loop started", "scene", e.scene)
}

// Stop cancels the pending frame. The pool is kept; Start or SetTheme
// resumes from where it left off.
func (e *Engine) Stop() {
	if !e.Enabled() {
		return
	}
	e.wantRun = false
	if e.handle == 0 {
		return
	}
	e.sched.CancelFrame(e.handle)
	e.handle = 0
	Logger().Info("skydrift: frame loop stopped")
}

// rebuild discards both pools and creates a fresh one for the active scene.
func (e *Engine) rebuild() {
	e.light, e.dark = nil, nil
	switch e.scene {
	case SceneLight:
		e.light = newLightScene(&e.cfg, e.vp, e.cfg.Rand, e.now)
	case SceneDark:
		e.dark = newDarkScene(&e.cfg, e.vp, e.cfg.Rand, e.now)
	}
	e.degenerate = e.vp.Empty()
	e.stale = true
	e.fade = nil
	if e.cfg.FadeIn > 0 {
		e.fade = gween.New(0, 1, float32(e.cfg.FadeIn.Seconds()), ease.OutQuad)
	}
	bg, tr := e.Population()
	Logger().Debug("skydrift: pool rebuilt", "scene", e.scene,
		"width", e.vp.Width, "height", e.vp.Height, "background", bg, "transient", tr)
}

// frame renders one tick and requests the next.
func (e *Engine) frame(now time.Duration) {
	e.handle = 0
	if e.stale {
		// No frame ran for a while. Shift the pool's timers onto the
		// host's timeline so the gap neither spawns nor advances the fade.
		e.rebase(now)
		e.stale = false
	}
	dt := max(now-e.now, 0)
	e.now = now
	e.frames++

	if e.vp.Empty() {
		e.stale = true
		return
	}

	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.surface.Clear()
	env := sceneEnv{
		vp:    e.vp,
		pal:   e.cfg.Palette,
		rng:   e.cfg.Rand,
		now:   now,
		alpha: e.stepFade(dt),
	}
	var st frameStats
	switch e.scene {
	case SceneLight:
		st = e.light.frame(e.surface, env)
	case SceneDark:
		st = e.dark.frame(e.surface, env)
	}

	if e.debug {
		e.debugLog(st, time.Since(t0))
	}

	if e.wantRun {
		e.handle = e.sched.RequestFrame(e.tick)
	}
}

// rebase shifts every pool timer by the time that passed without frames,
// so spawn and blink timers keep the progress they had when the loop paused
// and a pool built during the pause starts counting at now.
func (e *Engine) rebase(now time.Duration) {
	gap := now - e.now
	e.now = now
	if e.light != nil {
		e.light.lastFlock += gap
	}
	if e.dark != nil {
		e.dark.lastComet += gap
		e.dark.blink.start += gap
	}
}

// stepFade advances the activation fade and returns the scene alpha.
func (e *Engine) stepFade(dt time.Duration) float64 {
	if e.fade == nil {
		return 1
	}
	v, done := e.fade.Update(float32(dt.Seconds()))
	if done {
		e.fade = nil
		return 1
	}
	return clamp01(float64(v))
}

// isNilSurface reports whether s is nil or wraps a nil pointer.
func isNilSurface(s Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

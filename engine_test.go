package skydrift

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, width, height int) (*Engine, *recordSurface) {
	t.Helper()
	surf := &recordSurface{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.FadeIn = 0
	e := New(surf, cfg)
	e.Resize(width, height)
	return e, surf
}

func TestEngineStartsIdle(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	if !e.Enabled() {
		t.Fatal("engine with a surface should be enabled")
	}
	if e.Scene() != SceneNone {
		t.Errorf("Scene = %v, want none", e.Scene())
	}
	if e.Running() || e.Scheduler().Pending() {
		t.Error("loop must not run before a theme is set")
	}
	e.Start()
	if e.Running() {
		t.Error("Start before SetTheme must be a no-op")
	}
}

func TestEngineLightTheme(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")

	if e.Scene() != SceneLight {
		t.Fatalf("Scene = %v, want light", e.Scene())
	}
	bg, tr := e.Population()
	if bg != 8 {
		t.Errorf("clouds = %d, want 8", bg)
	}
	if tr < 2 || tr > 4 {
		t.Errorf("birds = %d, want 2..4", tr)
	}
	if !e.Running() {
		t.Error("SetTheme should start the loop")
	}
}

func TestEngineDarkTheme(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-deep")

	if e.Scene() != SceneDark {
		t.Fatalf("Scene = %v, want dark", e.Scene())
	}
	if bg, tr := e.Population(); bg != 150 || tr != 0 {
		t.Errorf("population = %d/%d, want 150/0", bg, tr)
	}
}

func TestEngineResolveScene(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	tests := []struct {
		theme string
		want  SceneID
	}{
		{"theme-deep", SceneDark},
		{"THEME-DEEP", SceneDark},
		{"  deep ", SceneDark},
		{"theme-sky", SceneLight},
		{"theme-light", SceneLight},
		{"", SceneLight},
	}
	for _, tt := range tests {
		if got := e.ResolveScene(tt.theme); got != tt.want {
			t.Errorf("ResolveScene(%q) = %v, want %v", tt.theme, got, tt.want)
		}
	}
}

func TestEngineSameSceneKeepsPool(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	pool := e.light
	e.SetTheme("theme-light")
	if e.light != pool {
		t.Error("switching between light themes rebuilt the pool")
	}
}

func TestEngineSwitchDiscardsPool(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	old := e.light
	e.SetTheme("theme-deep")
	if e.light != nil {
		t.Error("light pool kept after switching to dark")
	}
	e.SetTheme("theme-sky")
	if e.light == old || e.light == nil {
		t.Error("switching back must build a fresh light pool")
	}
	if e.dark != nil {
		t.Error("dark pool kept after switching to light")
	}
}

func TestEngineResizeKeepsPool(t *testing.T) {
	e, surf := newTestEngine(t, 800, 600)
	e.SetTheme("theme-deep")
	pool := e.dark
	resizes := surf.resizes

	e.Resize(800, 600)
	if surf.resizes != resizes {
		t.Error("same-size Resize touched the surface")
	}
	e.Resize(1280, 720)
	if surf.resizes != resizes+1 || surf.width != 1280 || surf.height != 720 {
		t.Errorf("surface = %dx%d after %d resizes", surf.width, surf.height, surf.resizes)
	}
	if e.dark != pool {
		t.Error("Resize rebuilt a healthy pool")
	}
	if e.Viewport() != (Viewport{1280, 720}) {
		t.Errorf("Viewport = %+v", e.Viewport())
	}
}

func TestEngineEmptyViewportDefersStart(t *testing.T) {
	e, _ := newTestEngine(t, 0, 0)
	e.SetTheme("theme-deep")
	if e.Running() {
		t.Fatal("loop started with an empty viewport")
	}
	if e.Scheduler().Refresh(time.Second) {
		t.Fatal("frame ran with an empty viewport")
	}

	e.Resize(800, 600)
	if !e.Running() {
		t.Fatal("loop did not start once the viewport had area")
	}
	xs := map[float64]bool{}
	for _, s := range e.dark.stars {
		xs[s.x] = true
	}
	if len(xs) < 2 {
		t.Error("pool built against the empty viewport was not rebuilt")
	}
}

func TestEngineViewportCollapseSuspendsLoop(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()
	sched.Refresh(time.Second)

	e.Resize(0, 0)
	if !sched.Refresh(time.Second + 16*time.Millisecond) {
		t.Fatal("pending frame should still fire")
	}
	if e.Running() || sched.Pending() {
		t.Fatal("loop kept running on an empty viewport")
	}
	pool := e.light
	e.Resize(640, 480)
	if !e.Running() {
		t.Error("loop did not resume after the viewport regained area")
	}
	if e.light != pool {
		t.Error("resume rebuilt a healthy pool")
	}
}

func TestEngineNilSurface(t *testing.T) {
	e := New(nil, DefaultConfig())
	if e.Enabled() {
		t.Fatal("nil surface should disable the engine")
	}
	e.Resize(800, 600)
	e.SetTheme("theme-deep")
	e.Start()
	e.Stop()
	e.SetDebugMode(true)
	if e.Scene() != SceneNone || e.Running() {
		t.Error("disabled engine changed state")
	}
	if bg, tr := e.Population(); bg != 0 || tr != 0 {
		t.Errorf("population = %d/%d, want 0/0", bg, tr)
	}
	if e.Scheduler() != nil {
		t.Error("disabled engine should have no scheduler")
	}
}

func TestEngineSingleFrameRequest(t *testing.T) {
	sched := &countingScheduler{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.Scheduler = sched
	e := New(&recordSurface{}, cfg)
	e.Resize(800, 600)

	e.SetTheme("theme-sky")
	e.SetTheme("theme-sky")
	e.SetTheme("theme-deep")
	e.Start()
	e.Resize(1024, 768)
	if sched.requests != 1 {
		t.Errorf("requests = %d, want 1", sched.requests)
	}
	if e.Scheduler() != nil {
		t.Error("Scheduler() should be nil with a caller-supplied scheduler")
	}

	sched.fire(time.Second)
	if sched.requests != 2 {
		t.Errorf("requests after a frame = %d, want 2", sched.requests)
	}
}

func TestEngineStop(t *testing.T) {
	sched := &countingScheduler{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.Scheduler = sched
	e := New(&recordSurface{}, cfg)
	e.Resize(800, 600)
	e.SetTheme("theme-sky")

	e.Stop()
	if e.Running() || sched.cancels != 1 {
		t.Fatalf("running = %v, cancels = %d", e.Running(), sched.cancels)
	}
	e.Stop()
	if sched.cancels != 1 {
		t.Error("second Stop cancelled again")
	}
	e.Resize(640, 480)
	if e.Running() {
		t.Error("Resize restarted a stopped loop")
	}
	e.Start()
	if !e.Running() || sched.requests != 2 {
		t.Errorf("Start did not resume: running = %v, requests = %d", e.Running(), sched.requests)
	}
}

func TestEngineFrameLoop(t *testing.T) {
	e, surf := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()

	for i := range 10 {
		if !sched.Refresh(time.Second + time.Duration(i)*16*time.Millisecond) {
			t.Fatalf("frame %d did not run", i)
		}
	}
	if surf.ops[0].kind != "clear" || surf.ops[1].kind != "gradient" {
		t.Errorf("frame starts with %s, %s; want clear, gradient", surf.ops[0].kind, surf.ops[1].kind)
	}
	if !sched.Pending() {
		t.Error("loop should keep requesting frames")
	}
}

func TestEngineCometAfterInterval(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-deep")
	sched := e.Scheduler()

	start := 5 * time.Second
	sched.Refresh(start)
	sched.Refresh(start + e.cfg.CometInterval)
	if _, tr := e.Population(); tr != 0 {
		t.Fatalf("comets = %d before the interval elapsed", tr)
	}
	sched.Refresh(start + e.cfg.CometInterval + time.Millisecond)
	if _, tr := e.Population(); tr != 1 {
		t.Errorf("comets = %d, want 1", tr)
	}
}

func TestEngineFadeIn(t *testing.T) {
	surf := &recordSurface{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.FadeIn = time.Second
	e := New(surf, cfg)
	e.Resize(800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()

	cloudAlpha := func() float64 {
		for _, op := range surf.ops {
			if op.kind == "ellipse" {
				return op.color.A
			}
		}
		t.Fatal("no cloud drawn")
		return 0
	}

	sched.Refresh(time.Second)
	if a := cloudAlpha(); a != 0 {
		t.Errorf("first frame alpha = %v, want 0", a)
	}
	sched.Refresh(1500 * time.Millisecond)
	if a := cloudAlpha(); a <= 0 || a >= 1 {
		t.Errorf("mid-fade alpha = %v", a)
	}
	sched.Refresh(3 * time.Second)
	if a := cloudAlpha(); a != 1 {
		t.Errorf("alpha after fade = %v, want cloud opacity 1", a)
	}
	if surf.ops[1].stops[0].Color.A != 1 {
		t.Error("sky gradient must not fade")
	}
}

func TestEngineResolvesColorsEachFrame(t *testing.T) {
	sky := Color{1, 0, 0, 1}
	surf := &recordSurface{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.FadeIn = 0
	cfg.Palette = PaletteFunc(func(token string) (Color, bool) {
		return sky, token == TokenSkyStart
	})
	e := New(surf, cfg)
	e.Resize(800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()

	sched.Refresh(time.Second)
	if got := surf.ops[1].stops[0].Color; got != sky {
		t.Fatalf("sky start = %+v, want %+v", got, sky)
	}
	sky = Color{0, 0, 1, 1}
	sched.Refresh(time.Second + 16*time.Millisecond)
	if got := surf.ops[1].stops[0].Color; got != sky {
		t.Errorf("sky start after palette change = %+v, want %+v", got, sky)
	}
	if got := surf.ops[1].stops[1].Color; got != Fallback(TokenSkyEnd) {
		t.Errorf("sky end = %+v, want fallback", got)
	}
}

func TestEngineFirstFrameRebasesTimers(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	flock := len(e.light.birds)
	e.light.birds = e.light.birds[:0]

	// A host clock far past the flock interval must not spawn on frame one.
	e.Scheduler().Refresh(time.Hour)
	if len(e.light.birds) != 0 {
		t.Errorf("first frame spawned %d birds (initial flock was %d)", len(e.light.birds), flock)
	}
	if e.light.lastFlock != time.Hour {
		t.Errorf("lastFlock = %v, want 1h", e.light.lastFlock)
	}
}

func TestEngineDebugLog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	e, _ := newTestEngine(t, 800, 600)
	e.SetDebugMode(true)
	e.SetTheme("theme-deep")
	e.Scheduler().Refresh(time.Second)

	out := buf.String()
	for _, want := range []string{"skydrift: scene change", `msg="skydrift: frame"`, "scene=dark", "entities=150"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestEngineThemeChangeWhileStopped(t *testing.T) {
	surf := &recordSurface{}
	cfg := DefaultConfig()
	cfg.Rand = testRand()
	cfg.FadeIn = time.Second
	e := New(surf, cfg)
	e.Resize(800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()
	for i := range 10 {
		sched.Refresh(time.Duration(i) * 16 * time.Millisecond)
	}

	e.Stop()
	e.SetTheme("theme-deep")
	resume := 10 * time.Second
	sched.Refresh(resume)

	if _, tr := e.Population(); tr != 0 {
		t.Fatalf("comets = %d on the first frame after the switch, want 0", tr)
	}
	if e.dark.lastComet != resume || e.dark.blink.start != resume {
		t.Errorf("timers = %v/%v, want %v", e.dark.lastComet, e.dark.blink.start, resume)
	}
	for _, op := range surf.ops {
		if op.kind == "ellipse" && op.color.A != 0 {
			t.Fatalf("star alpha = %v on the first frame, want the fade to start at 0", op.color.A)
		}
	}
	if e.fade == nil {
		t.Error("fade-in finished on the first frame")
	}

	sched.Refresh(resume + cfg.CometInterval)
	if _, tr := e.Population(); tr != 0 {
		t.Fatalf("comets = %d before the interval elapsed", tr)
	}
	sched.Refresh(resume + cfg.CometInterval + time.Millisecond)
	if _, tr := e.Population(); tr != 1 {
		t.Errorf("comets = %d, want 1 after the interval", tr)
	}
}

func TestEngineThemeChangeWhileMinimized(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-sky")
	sched := e.Scheduler()
	sched.Refresh(time.Second)

	e.Resize(0, 0)
	sched.Refresh(time.Second + 16*time.Millisecond)
	e.SetTheme("theme-deep")
	e.Resize(800, 600)

	resume := time.Minute
	sched.Refresh(resume)
	if _, tr := e.Population(); tr != 0 {
		t.Fatalf("comets = %d on the first frame after restore, want 0", tr)
	}
	if e.dark.lastComet != resume {
		t.Errorf("lastComet = %v, want %v", e.dark.lastComet, resume)
	}
	sched.Refresh(resume + e.cfg.CometInterval)
	if _, tr := e.Population(); tr != 0 {
		t.Errorf("comets = %d before the interval elapsed", tr)
	}
}

func TestEngineResumeKeepsTimerProgress(t *testing.T) {
	e, _ := newTestEngine(t, 800, 600)
	e.SetTheme("theme-deep")
	sched := e.Scheduler()
	sched.Refresh(time.Second)
	sched.Refresh(2 * time.Second)

	e.Stop()
	e.Start()
	sched.Refresh(time.Minute)
	if want := time.Minute - time.Second; e.dark.lastComet != want {
		t.Fatalf("lastComet = %v, want %v", e.dark.lastComet, want)
	}
	if _, tr := e.Population(); tr != 0 {
		t.Fatalf("comets = %d right after resuming", tr)
	}
	sched.Refresh(time.Minute + 1501*time.Millisecond)
	if _, tr := e.Population(); tr != 1 {
		t.Errorf("comets = %d, want 1 once the remaining interval elapsed", tr)
	}
}

func TestEngineTypedNilSurface(t *testing.T) {
	for _, surf := range []Surface{(*ImageSurface)(nil), (*ScreenSurface)(nil)} {
		e := New(surf, DefaultConfig())
		if e.Enabled() {
			t.Fatalf("New(%T(nil)) is enabled", surf)
		}
		e.Resize(800, 600)
		e.SetTheme("theme-deep")
		if e.Running() {
			t.Errorf("%T(nil): loop started", surf)
		}
	}
}

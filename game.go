package skydrift

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game hosts an Engine inside Ebitengine's game loop. Every Draw is one
// display refresh: it binds the screen, pumps the engine's scheduler and
// flushes the batched geometry. Layout feeds window size changes to
// Engine.Resize.
type Game struct {
	engine  *Engine
	surface *ScreenSurface
	sched   *RefreshScheduler
	start   time.Time

	// ShowFPS overlays FPS, TPS and the pool population.
	ShowFPS bool
	// OnUpdate, if set, is called from Update each tick. Use it for input
	// such as theme toggles.
	OnUpdate func(e *Engine) error
}

// NewGame creates an engine drawing to the Ebitengine screen. Any
// Config.Scheduler is replaced: the game loop is the scheduler.
func NewGame(cfg Config) *Game {
	surf := NewScreenSurface()
	sched := NewRefreshScheduler()
	cfg.Scheduler = sched
	return &Game{
		engine:  New(surf, cfg),
		surface: surf,
		sched:   sched,
		start:   time.Now(),
	}
}

// Engine returns the hosted engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.OnUpdate != nil {
		return g.OnUpdate(g.engine)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	g.sched.Refresh(time.Since(g.start))
	g.surface.Flush()

	if g.ShowFPS {
		bg, tr := g.engine.Population()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s %d/%d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.engine.Scene(), bg, tr))
	}
}

// Layout implements ebiten.Game. The canvas always matches the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if vp := g.engine.Viewport(); int(vp.Width) != outsideWidth || int(vp.Height) != outsideHeight {
		g.engine.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Theme         string
	ShowFPS       bool
	Engine        Config
	OnUpdate      func(e *Engine) error
}

// Run opens a resizable window and runs the sky until it is closed.
func Run(cfg RunConfig) error {
	g := NewGame(cfg.Engine)
	g.ShowFPS = cfg.ShowFPS
	g.OnUpdate = cfg.OnUpdate

	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.engine.Resize(cfg.Width, cfg.Height)
	g.engine.SetTheme(cfg.Theme)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

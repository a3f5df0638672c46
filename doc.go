// Package skydrift is an ambient animated sky for application backgrounds,
// rendered with [Ebitengine] or in software.
//
// An [Engine] shows one of two scenes. The light scene is a daytime
// gradient with drifting clouds and passing flocks of birds; the dark scene
// is a night gradient with twinkling stars and the occasional comet. Each
// theme switch rebuilds the scene's entities from scratch.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a resizable window:
//
//	skydrift.Run(skydrift.RunConfig{
//		Title: "Sky", Width: 800, Height: 600, Theme: "theme-sky",
//	})
//
// To put the sky behind your own Ebitengine game, create a [Game] with
// [NewGame] and forward Draw and Layout, or drive an [Engine] yourself with
// any [Surface] and [Scheduler]:
//
//	eng := skydrift.New(surface, skydrift.DefaultConfig())
//	eng.Resize(w, h)
//	eng.SetTheme("theme-deep")
//	// once per display refresh:
//	eng.Scheduler().Refresh(now)
//
// # Colors
//
// Every color comes from a [Palette] lookup at draw time, with a built-in
// fallback per token. [LoadPalette] reads dotenv-style files:
//
//	CANVAS_SKY_GRADIENT_START="#87CEEB"
//	CANVAS_STAR_COLOR="rgba(255, 255, 224, 0.9)"
//
// # Headless rendering
//
// [Headless] renders frames in software through [ImageSurface]
// (fogleman/gg), and [Script] drives it from a JSON file for screenshots.
//
// [Ebitengine]: https://ebitengine.org
package skydrift

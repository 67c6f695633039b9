// Package ebitenhost shows one amino surface in an Ebitengine window.
//
// The game loop drives the engine's ManualScheduler once per tick, so all
// engine work happens on the Ebitengine update goroutine:
//
//	sched := amino.NewManualScheduler()
//	engine := amino.NewEngine(amino.Options{Scheduler: sched, AutoPaint: true})
//	surface := engine.AddSurface("main", 640, 480)
//	// ... add nodes ...
//	ebitenhost.Run(engine, sched, surface, ebitenhost.RunConfig{Title: "demo"})
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/amino"
)

// RunConfig holds the window settings for Run.
type RunConfig struct {
	Title string
	// Width and Height size the window. Zero uses the surface raster size.
	Width, Height int
	// TPS is the tick rate. Zero keeps the Ebitengine default of 60.
	TPS int
	// Resizable lets the user resize the window. The surface follows the
	// window width when it has auto-size enabled.
	Resizable bool
}

// Game adapts a surface to ebiten.Game.
type Game struct {
	engine  *amino.Engine
	sched   *amino.ManualScheduler
	surface *amino.Surface

	mouse pointerTracker
	touch pointerTracker

	touchID  ebiten.TouchID
	touchIDs []ebiten.TouchID

	clientWidth int
	screen      *ebiten.Image
	drawn       uint64
}

// NewGame returns a game that feeds window input into surface and runs one
// scheduler frame per tick.
func NewGame(engine *amino.Engine, sched *amino.ManualScheduler, surface *amino.Surface) *Game {
	return &Game{engine: engine, sched: sched, surface: surface}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	g.mouse.update(g.surface, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	g.updateTouch()
	g.sched.RunFrame()
	return nil
}

// updateTouch follows the first finger down until it lifts.
func (g *Game) updateTouch() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if !g.touch.down {
		if len(g.touchIDs) == 0 {
			return
		}
		g.touchID = g.touchIDs[0]
	}
	for _, id := range g.touchIDs {
		if id == g.touchID {
			tx, ty := ebiten.TouchPosition(id)
			g.touch.update(g.surface, float64(tx), float64(ty), true)
			return
		}
	}
	g.touch.update(g.surface, g.touch.x, g.touch.y, false)
}

// Draw implements ebiten.Game. The surface raster is uploaded only when the
// surface painted since the last upload. Surface images are premultiplied,
// the layout WritePixels takes.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.surface.RasterSize()
	if g.screen == nil || g.screen.Bounds().Dx() != w || g.screen.Bounds().Dy() != h {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(w, h)
		g.drawn = 0
	}
	if g.drawn == 0 || g.drawn != g.surface.Frame() {
		g.screen.WritePixels(g.surface.Image().Pix)
		g.drawn = g.surface.Frame()
	}
	screen.DrawImage(g.screen, nil)
}

// Layout implements ebiten.Game. The screen is the surface raster; the
// window scales it to fit.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.clientWidth {
		g.clientWidth = outsideWidth
		g.surface.SetClientWidth(outsideWidth)
	}
	return g.surface.RasterSize()
}

// Run opens a window for surface, starts the engine and blocks until the
// window closes.
func Run(engine *amino.Engine, sched *amino.ManualScheduler, surface *amino.Surface, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = surface.RasterSize()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	engine.Start()
	defer engine.Stop()
	return ebiten.RunGame(NewGame(engine, sched, surface))
}

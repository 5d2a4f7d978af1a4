package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Undecorated hides the native titlebar; the window panel draws its own
	// titlebar with minimize, maximize and close buttons.
	Undecorated bool
	// Config is the layout configuration. Nil uses DefaultConfig.
	Config *Config
}

// Run opens a window and calls ui between BeginFrame and EndFrame every
// tick until the window is closed or the window panel's close button is
// clicked.
func Run(cfg RunConfig, ui func(ctx *Context)) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	layoutCfg := DefaultConfig()
	if cfg.Config != nil {
		layoutCfg = *cfg.Config
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowDecorated(!cfg.Undecorated)

	win := NewEbitenWindow(cfg.Width, cfg.Height)
	g := &game{
		ctx: NewContext(layoutCfg, win),
		win: win,
		ui:  ui,
	}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}

// game adapts a Context to ebiten.Game.
type game struct {
	ctx *Context
	win *EbitenWindow
	ui  func(*Context)
	fps *fpsOverlay
}

func (g *game) Update() error {
	g.win.update()
	g.ctx.ProcessEbitenInput()

	g.ctx.BeginFrame()
	g.ui(g.ctx)
	g.ctx.EndFrame()

	ebiten.SetCursorShape(ebitenCursor(g.ctx.CursorIcon()))
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	if g.ctx.CloseRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.ctx.Style().WindowBg.toRGBA())
	g.ctx.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.ctx.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.win.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

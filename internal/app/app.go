//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"sprout/internal/render"
	"sprout/internal/sims/plant"
	"sprout/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts the plant scene to the ebiten.Game interface.
type Game struct {
	scene   *render.Scene
	painter *render.TreePainter
	overlay *ui.Overlay
	hud     *ui.HUD
	sound   Sound
	logger  *slog.Logger

	pointer  plant.Point
	showHUD  bool
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided plant. sound may be nil.
func New(p *plant.Plant, cfg *Config, sound Sound, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	size := p.Size()
	return &Game{
		scene:   render.NewScene(p, cfg.Sway),
		painter: render.NewTreePainter(),
		overlay: ui.NewOverlay(cfg.Guide),
		hud:     ui.NewHUD(p, hudWidth),
		sound:   sound,
		logger:  logger,
		pointer: plant.Point{X: float64(size.W) / 2},
		showHUD: cfg.HUD,
		seed:    p.Config().Seed,
	}
}

// Reset regrows the plant with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
	g.tickOnce = false
	g.logger.Info("reset", "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	g.overlay.Update()
	view := g.scene.Plant().Size()
	if g.showHUD {
		g.hud.Update(view.W)
	}

	mx, my := ebiten.CursorPosition()
	if mx >= 0 && mx < view.W && my >= 0 && my < view.H {
		g.pointer = plant.Point{X: float64(mx), Y: float64(my)}
	}

	g.scene.Frame(1 / float64(ebiten.TPS()))
	if !g.paused || g.tickOnce {
		events := g.scene.Step(g.pointer.X)
		if g.sound != nil {
			g.sound.Play(events)
		}
		for _, ev := range events {
			if ev.Outcome == plant.OutcomeSplit {
				g.logger.Debug("split", "tick", ev.Tick, "segment", ev.Segment, "depth", ev.Depth, "tip", ev.WasTip)
			}
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current plant.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.BackgroundColor)
	layout := g.scene.Layout()
	p := g.scene.Plant()
	g.painter.Draw(screen, p, layout)
	g.overlay.Draw(screen, p, layout, g.pointer)
	if g.showHUD {
		g.hud.Draw(screen, p.Size().W)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scene.Plant().Size()
	if g.showHUD {
		return s.W + g.hud.Width(), s.H
	}
	return s.W, s.H
}

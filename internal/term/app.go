// Package term renders the plant in a terminal with half-block cells.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"sprout/internal/core"
	"sprout/internal/render"
	"sprout/internal/sims/plant"
)

const frameInterval = 33 * time.Millisecond

// Options configures the terminal frontend.
type Options struct {
	TPS   int
	Sway  float64
	Guide bool
}

// App drives a plant inside a tcell screen. Input is read on its own
// goroutine; only the loop goroutine touches the plant.
type App struct {
	screen tcell.Screen
	scene  *render.Scene
	grid   *core.ByteGrid
	step   *core.FixedStep
	sound  Sound
	logger *slog.Logger
	colors []tcell.Color

	pointer   plant.Point
	transform render.Transform
	seed      int64
	paused    bool
	tickOnce  bool
	guide     bool
	lastFrame time.Time
}

// Sound receives the events of every tick.
type Sound interface {
	Play(events []plant.Event)
}

// New wires an App. sound may be nil.
func New(screen tcell.Screen, p *plant.Plant, opts Options, sound Sound, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := p.Config()
	a := &App{
		screen:  screen,
		scene:   render.NewScene(p, opts.Sway),
		grid:    core.NewByteGrid(1, 1),
		step:    core.NewFixedStep(opts.TPS),
		sound:   sound,
		logger:  logger,
		seed:    cfg.Seed,
		guide:   opts.Guide,
		pointer: plant.Point{X: float64(cfg.Width) / 2},
	}
	for _, c := range render.Palette() {
		a.colors = append(a.colors, tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	a.resize()
	return a
}

// Run processes input and ticks until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Update(now)
			a.Draw()
			a.screen.Show()
		}
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
			case 'n':
				a.tickOnce = true
			case 'r':
				a.reset(a.seed)
			case 's':
				a.reset(time.Now().UnixNano())
			case 'g':
				a.guide = !a.guide
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.pointer = plant.Point{
			X: (float64(x) + 0.5) / a.transform.ScaleX,
			Y: (float64(2*y) + 1) / a.transform.ScaleY,
		}
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}
	return true
}

// Update advances the scene to now, running the ticks the fixed step owes.
func (a *App) Update(now time.Time) {
	dt := frameInterval.Seconds()
	if !a.lastFrame.IsZero() {
		dt = now.Sub(a.lastFrame).Seconds()
	}
	a.lastFrame = now
	a.scene.Frame(dt)

	due := a.step.Due(now)
	if a.paused {
		due = 0
	}
	if a.tickOnce {
		if a.paused {
			due = 1
		}
		a.tickOnce = false
	}
	for i := 0; i < due; i++ {
		a.tick()
	}
}

func (a *App) tick() {
	events := a.scene.Step(a.pointer.X)
	if a.sound != nil {
		a.sound.Play(events)
	}
	for _, ev := range events {
		if ev.Outcome == plant.OutcomeSplit {
			a.logger.Debug("split", "tick", ev.Tick, "segment", ev.Segment, "depth", ev.Depth, "tip", ev.WasTip)
		}
	}
}

// Draw rasterizes the scene and writes it to the screen without showing it.
func (a *App) Draw() {
	a.grid.Clear()
	layout := a.scene.Layout()
	if a.guide {
		if tip, ok := a.scene.Tip(); ok {
			render.RasterizeGuide(a.grid, tip, a.pointer, a.transform, 5, 15)
		}
	}
	render.Rasterize(a.grid, a.scene.Plant(), layout, a.transform)

	cols, rows := a.screen.Size()
	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			top := a.colors[a.grid.At(x, 2*y)]
			bottom := a.colors[a.grid.At(x, 2*y+1)]
			a.screen.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	if rows > 0 {
		a.drawStatus(rows-1, cols)
	}
}

// Status is the text shown on the bottom row.
func (a *App) Status() string {
	p := a.scene.Plant()
	st := p.Stats()
	state := "growing"
	if a.paused {
		state = "paused"
	}
	return fmt.Sprintf(" %s  seed %d  tick %s  segments %s  splits %s  split %.3g  [space]pause [n]step [r]eset [s]eed [g]uide [q]uit",
		state, a.seed, humanize.Comma(int64(st.Ticks)), humanize.Comma(int64(st.Segments)),
		humanize.Comma(int64(st.Splits)), p.SplitThreshold())
}

func (a *App) drawStatus(row, cols int) {
	style := tcell.StyleDefault.Foreground(a.colors[render.CellStem]).Background(a.colors[render.CellEmpty])
	x := 0
	for _, r := range a.Status() {
		if x >= cols {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}
}

func (a *App) reset(seed int64) {
	a.seed = seed
	a.scene.Reset(seed)
	a.tickOnce = false
	a.logger.Info("reset", "seed", seed)
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	if rows > 1 {
		rows--
	}
	a.grid.Resize(cols, 2*rows)
	a.transform = render.Scale(a.scene.Plant().Size(), a.grid.W, a.grid.H)
}

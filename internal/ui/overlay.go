//go:build ebiten

package ui

import (
	"sprout/internal/render"
	"sprout/internal/sims/plant"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional visuals on top of the plant: the dashed guide toward
// the pointer and a minimap of the whole tree.
type Overlay struct {
	showGuide   bool
	showMinimap bool

	minimap *render.MinimapPainter
}

// NewOverlay constructs an overlay; showGuide sets the initial guide state.
func NewOverlay(showGuide bool) *Overlay {
	o := &Overlay{showGuide: showGuide, showMinimap: true}
	o.minimap = render.NewMinimapPainter(minimapW, minimapH)
	return o
}

// Update toggles overlays from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGuide = !o.showGuide
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMinimap = !o.showMinimap
	}
}

// Draw renders the enabled overlays. pointer is in screen coordinates and l
// is the layout used for the plant this frame.
func (o *Overlay) Draw(screen *ebiten.Image, p *plant.Plant, l plant.Layout, pointer plant.Point) {
	if o.showGuide {
		if tip, ok := p.Tip(); ok && int(tip) < len(l.End) {
			render.DrawGuide(screen, l.End[tip], pointer)
		}
	}
	if o.showMinimap && o.minimap != nil {
		w, _ := o.minimap.Size()
		x := float64(screen.Bounds().Dx() - w*minimapScale - minimapMargin)
		o.minimap.Blit(screen, p, l, x, minimapMargin, minimapScale)
	}
}

const (
	minimapW      = 64
	minimapH      = 80
	minimapScale  = 1
	minimapMargin = 8
)

//go:build ebiten

package render

import (
	"image/color"

	"sprout/internal/core"
	"sprout/internal/sims/plant"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TreePainter strokes the plant onto an ebiten image.
type TreePainter struct {
	StemWidth  float32
	LeafRadius float32
	KnotRadius float32
}

// NewTreePainter returns a painter with the default stroke sizes.
func NewTreePainter() *TreePainter {
	return &TreePainter{StemWidth: 3, LeafRadius: 5, KnotRadius: 1.3}
}

// Draw renders every segment of p using the positions in l.
func (tp *TreePainter) Draw(dst *ebiten.Image, p *plant.Plant, l plant.Layout) {
	segments := p.Segments()
	if len(l.End) < len(segments) {
		return
	}
	tip, hasTip := p.Tip()
	for i, seg := range segments {
		s, e := l.Start[i], l.End[i]
		vector.StrokeLine(dst, float32(s.X), float32(s.Y), float32(e.X), float32(e.Y), tp.StemWidth, StemColor, true)
		var fill color.Color = StemColor
		radius := tp.KnotRadius
		if seg.Leaf() {
			fill, radius = LeafColor, tp.LeafRadius
			if hasTip && plant.SegmentID(i) == tip {
				fill = TipColor
			}
		}
		vector.DrawFilledCircle(dst, float32(e.X), float32(e.Y), radius, fill, true)
	}
}

// DrawGuide draws the dashed line from the tip toward the pointer.
func DrawGuide(dst *ebiten.Image, from, to plant.Point) {
	for _, d := range Dashes(from, to, 5, 15) {
		vector.StrokeLine(dst, float32(d[0].X), float32(d[0].Y), float32(d[1].X), float32(d[1].Y), 1, GuideColor, true)
	}
}

// MinimapPainter rasterizes the whole plant into a small image so parts that
// scrolled out of view stay visible.
type MinimapPainter struct {
	grid *core.ByteGrid
	img  *ebiten.Image
	buf  []byte
}

// NewMinimapPainter allocates a painter for a w*h minimap.
func NewMinimapPainter(w, h int) *MinimapPainter {
	mp := &MinimapPainter{grid: core.NewByteGrid(w, h)}
	mp.buf = make([]byte, 4*mp.grid.W*mp.grid.H)
	mp.img = ebiten.NewImage(mp.grid.W, mp.grid.H)
	return mp
}

// Blit redraws the minimap and draws it at (x, y) scaled by scale.
func (mp *MinimapPainter) Blit(dst *ebiten.Image, p *plant.Plant, l plant.Layout, x, y float64, scale int) {
	mp.grid.Clear()
	Rasterize(mp.grid, p, l, Fit(l, mp.grid.W, mp.grid.H))
	FillRGBA(mp.buf, mp.grid)
	mp.img.WritePixels(mp.buf)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(x, y)
	dst.DrawImage(mp.img, op)
}

// Size returns the minimap dimensions in cells.
func (mp *MinimapPainter) Size() (int, int) { return mp.grid.W, mp.grid.H }

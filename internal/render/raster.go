package render

import (
	"math"

	"sprout/internal/core"
	"sprout/internal/sims/plant"
)

// Transform maps view coordinates onto grid cells.
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Apply converts a view point into cell coordinates.
func (t Transform) Apply(pt plant.Point) (int, int) {
	m := t.Map(pt)
	return int(math.Floor(m.X)), int(math.Floor(m.Y))
}

// Map converts a view point into continuous target coordinates.
func (t Transform) Map(pt plant.Point) plant.Point {
	return plant.Point{X: (pt.X - t.OffsetX) * t.ScaleX, Y: (pt.Y - t.OffsetY) * t.ScaleY}
}

// Scale returns a transform that maps a view of size view onto a w*h grid.
func Scale(view core.Size, w, h int) Transform {
	t := Transform{ScaleX: 1, ScaleY: 1}
	if view.W > 0 {
		t.ScaleX = float64(w) / float64(view.W)
	}
	if view.H > 0 {
		t.ScaleY = float64(h) / float64(view.H)
	}
	return t
}

// Fit returns a transform that maps the layout's bounding box into a w*h grid,
// preserving aspect ratio and leaving a one-cell margin.
func Fit(l plant.Layout, w, h int) Transform {
	minX, minY, maxX, maxY := l.Bounds()
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)
	usableW := math.Max(float64(w-2), 1)
	usableH := math.Max(float64(h-2), 1)
	s := math.Min(usableW/spanX, usableH/spanY)
	return Transform{
		ScaleX:  s,
		ScaleY:  s,
		OffsetX: minX - 1/s,
		OffsetY: minY - 1/s,
	}
}

// Rasterize draws the plant's stems, leaves and active tip into g.
func Rasterize(g *core.ByteGrid, p *plant.Plant, l plant.Layout, t Transform) {
	segments := p.Segments()
	if len(l.End) < len(segments) {
		return
	}
	tip, hasTip := p.Tip()
	for i, seg := range segments {
		x0, y0 := t.Apply(l.Start[i])
		x1, y1 := t.Apply(l.End[i])
		line(g, x0, y0, x1, y1, CellStem)
		switch {
		case hasTip && plant.SegmentID(i) == tip:
			g.Set(x1, y1, CellTip)
		case seg.Leaf():
			g.Set(x1, y1, CellLeaf)
		}
	}
}

// RasterizeGuide draws a dashed line between two view points.
func RasterizeGuide(g *core.ByteGrid, from, to plant.Point, t Transform, on, off float64) {
	for _, d := range Dashes(from, to, on, off) {
		x0, y0 := t.Apply(d[0])
		x1, y1 := t.Apply(d[1])
		line(g, x0, y0, x1, y1, CellGuide)
	}
}

// FillRGBA converts the grid into RGBA pixels in buf using Palette.
func FillRGBA(buf []byte, g *core.ByteGrid) {
	fillPaletteRGBA(buf, g.Cells(), Palette())
}

// line rasterizes with Bresenham's algorithm.
func line(g *core.ByteGrid, x0, y0, x1, y1 int, v uint8) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.Set(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Dashes splits the segment from->to into dashes of length on separated by
// gaps of length off. Non-positive lengths yield a single solid dash.
func Dashes(from, to plant.Point, on, off float64) [][2]plant.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	total := math.Hypot(dx, dy)
	if total == 0 {
		return nil
	}
	if on <= 0 || off < 0 {
		return [][2]plant.Point{{from, to}}
	}
	ux, uy := dx/total, dy/total
	var out [][2]plant.Point
	for start := 0.0; start < total; start += on + off {
		end := math.Min(start+on, total)
		out = append(out, [2]plant.Point{
			{X: from.X + ux*start, Y: from.Y + uy*start},
			{X: from.X + ux*end, Y: from.Y + uy*end},
		})
	}
	return out
}

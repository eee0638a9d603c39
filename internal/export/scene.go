// Package export writes still images of a plant.
package export

import (
	"errors"

	"sprout/internal/render"
	"sprout/internal/sims/plant"
)

// ErrEmptyImage is returned when the requested image has no area.
var ErrEmptyImage = errors.New("image size must be positive")

// Options controls snapshot framing.
type Options struct {
	Width  int
	Height int
	// Fit scales the whole tree into the image instead of drawing the view.
	Fit bool
	// Pointer, when set, draws the dashed guide from the tip to it.
	Pointer *plant.Point

	StemWidth  float64
	LeafRadius float64
	KnotRadius float64
}

// DefaultOptions frames the plant's own view at its native size.
func DefaultOptions(p *plant.Plant) Options {
	size := p.Size()
	return Options{
		Width:      size.W,
		Height:     size.H,
		StemWidth:  3,
		LeafRadius: 5,
		KnotRadius: 1.3,
	}
}

type stroke struct {
	from, to plant.Point
}

type dot struct {
	at     plant.Point
	radius float64
	kind   uint8
}

// drawing is the plant reduced to image-space primitives, shared by every
// output format.
type drawing struct {
	stems  []stroke
	guide  []stroke
	dots   []dot
	width  float64
	height float64
}

func build(p *plant.Plant, l plant.Layout, opts Options) (drawing, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return drawing{}, ErrEmptyImage
	}
	t := render.Scale(p.Size(), opts.Width, opts.Height)
	if opts.Fit {
		t = render.Fit(l, opts.Width, opts.Height)
	}
	d := drawing{width: float64(opts.Width), height: float64(opts.Height)}
	segments := p.Segments()
	if len(l.End) < len(segments) {
		return d, nil
	}
	tip, hasTip := p.Tip()
	for i, seg := range segments {
		end := t.Map(l.End[i])
		d.stems = append(d.stems, stroke{from: t.Map(l.Start[i]), to: end})
		switch {
		case hasTip && plant.SegmentID(i) == tip:
			d.dots = append(d.dots, dot{at: end, radius: opts.LeafRadius, kind: render.CellTip})
		case seg.Leaf():
			d.dots = append(d.dots, dot{at: end, radius: opts.LeafRadius, kind: render.CellLeaf})
		default:
			d.dots = append(d.dots, dot{at: end, radius: opts.KnotRadius, kind: render.CellStem})
		}
	}
	if opts.Pointer != nil && hasTip {
		for _, dash := range render.Dashes(l.End[tip], *opts.Pointer, 5, 15) {
			d.guide = append(d.guide, stroke{from: t.Map(dash[0]), to: t.Map(dash[1])})
		}
	}
	return d, nil
}

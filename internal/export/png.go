package export

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"sprout/internal/render"
	"sprout/internal/sims/plant"
)

// WritePNG renders p with layout l as an antialiased PNG.
func WritePNG(w io.Writer, p *plant.Plant, l plant.Layout, opts Options) error {
	d, err := build(p, l, opts)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	ctx := gg.NewContext(opts.Width, opts.Height)
	ctx.SetColor(render.BackgroundColor)
	ctx.Clear()

	if len(d.guide) > 0 {
		ctx.SetColor(render.GuideColor)
		ctx.SetLineWidth(1)
		for _, s := range d.guide {
			ctx.DrawLine(s.from.X, s.from.Y, s.to.X, s.to.Y)
		}
		ctx.Stroke()
	}

	ctx.SetColor(render.StemColor)
	ctx.SetLineWidth(opts.StemWidth)
	ctx.SetLineCapRound()
	for _, s := range d.stems {
		ctx.DrawLine(s.from.X, s.from.Y, s.to.X, s.to.Y)
		ctx.Stroke()
	}

	palette := render.Palette()
	for _, dt := range d.dots {
		ctx.SetColor(palette[dt.kind])
		ctx.DrawCircle(dt.at.X, dt.at.Y, dt.radius)
		ctx.Fill()
	}

	if err := ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

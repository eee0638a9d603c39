package export

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"sprout/internal/render"
	"sprout/internal/sims/plant"
)

// WriteSVG renders p with layout l as an SVG document.
func WriteSVG(w io.Writer, p *plant.Plant, l plant.Layout, opts Options) error {
	d, err := build(p, l, opts)
	if err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(d.width, d.height)
	canvas.Title(fmt.Sprintf("%s, %d segments", p.Name(), p.Len()))
	canvas.Rect(0, 0, d.width, d.height, "fill:"+hex(render.BackgroundColor))

	if len(d.guide) > 0 {
		canvas.Group(`id="guide"`, fmt.Sprintf("style=\"stroke:%s;stroke-opacity:%.2f;stroke-width:1\"",
			hex(render.GuideColor), float64(render.GuideColor.A)/255))
		for _, s := range d.guide {
			canvas.Line(s.from.X, s.from.Y, s.to.X, s.to.Y)
		}
		canvas.Gend()
	}

	canvas.Group(`id="stems"`, fmt.Sprintf("style=\"stroke:%s;stroke-width:%g;stroke-linecap:round\"",
		hex(render.StemColor), opts.StemWidth))
	for _, s := range d.stems {
		canvas.Line(s.from.X, s.from.Y, s.to.X, s.to.Y)
	}
	canvas.Gend()

	palette := render.Palette()
	canvas.Group(`id="nodes"`)
	for _, dt := range d.dots {
		canvas.Circle(dt.at.X, dt.at.Y, dt.radius, "fill:"+hex(palette[dt.kind]))
	}
	canvas.Gend()
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error; the canvas API does not return one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

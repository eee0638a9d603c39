package render

import "image/color"

// Cell values written by Rasterize. Higher values win when marks overlap.
const (
	CellEmpty uint8 = iota
	CellGuide
	CellStem
	CellLeaf
	CellTip
)

var (
	BackgroundColor = color.RGBA{R: 212, G: 206, B: 201, A: 255}
	LeafColor       = color.RGBA{R: 255, G: 201, B: 181, A: 255}
	TipColor        = color.RGBA{R: 236, G: 140, B: 112, A: 255}
	StemColor       = color.RGBA{R: 109, G: 100, B: 102, A: 255}
	GuideColor      = color.RGBA{R: 179, G: 170, B: 172, A: 100}
)

// Palette maps cell values to colors.
func Palette() []color.RGBA {
	return []color.RGBA{
		CellEmpty: BackgroundColor,
		CellGuide: GuideColor,
		CellStem:  StemColor,
		CellLeaf:  LeafColor,
		CellTip:   TipColor,
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

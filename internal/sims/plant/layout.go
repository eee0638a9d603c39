package plant

import "math"

// Point is a position in view coordinates; Y grows downward.
type Point struct {
	X, Y float64
}

// SwayFunc returns an extra angle applied to a segment when it is laid out.
// It never changes the stored tree.
type SwayFunc func(seg Segment) float64

// Layout holds the start and end point of every segment, indexed by SegmentID.
type Layout struct {
	Start []Point
	End   []Point
}

// Layout computes segment positions with the root anchored at anchor.
func (p *Plant) Layout(anchor Point, sway SwayFunc) Layout {
	var l Layout
	p.LayoutInto(&l, anchor, sway)
	return l
}

// LayoutInto is Layout reusing the buffers in dst. Each segment ends at
//
//	start - (Length*sin(angle), Length*cos(angle))
//
// where start is the parent's end, or anchor for the root.
func (p *Plant) LayoutInto(dst *Layout, anchor Point, sway SwayFunc) {
	n := len(p.segments)
	if cap(dst.Start) < n {
		dst.Start = make([]Point, n)
		dst.End = make([]Point, n)
	}
	dst.Start = dst.Start[:n]
	dst.End = dst.End[:n]
	for i := range p.segments {
		seg := &p.segments[i]
		start := anchor
		if seg.Parent != NoSegment {
			start = dst.End[seg.Parent]
		}
		angle := seg.Angle
		if sway != nil {
			angle += sway(*seg)
		}
		dst.Start[i] = start
		dst.End[i] = Point{
			X: start.X - seg.Length*math.Sin(angle),
			Y: start.Y - seg.Length*math.Cos(angle),
		}
	}
}

// Bearing is the angle, measured like segment angles, that points from the
// tip at (tipX, tipY) toward a target at targetX. The target's Y is pinned to
// the top of the view so the plant always reaches upward.
func Bearing(tipX, tipY, targetX float64) float64 {
	return math.Atan2(tipX-targetX, tipY-0)
}

// TipBearing returns the bearing from the active tip's end in l toward
// targetX. It reports false when there is no tip or l is stale.
func (p *Plant) TipBearing(l Layout, targetX float64) (float64, bool) {
	if p.tip == NoSegment || int(p.tip) >= len(l.End) {
		return 0, false
	}
	end := l.End[p.tip]
	return Bearing(end.X, end.Y, targetX), true
}

// Bounds returns the bounding box of every segment endpoint, including the
// anchor. An empty layout yields zeros.
func (l Layout) Bounds() (minX, minY, maxX, maxY float64) {
	if len(l.Start) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = l.Start[0].X, l.Start[0].Y
	maxX, maxY = minX, minY
	for _, pt := range l.End {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

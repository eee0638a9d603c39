package plant

import (
	"math"

	"sprout/internal/core"
)

// Plant grows a tree of segments, one tick at a time. The zero value is not
// usable; construct plants with New or NewWithSource.
type Plant struct {
	cfg Config

	segments []Segment
	root     SegmentID
	tip      SegmentID

	liveThreshold  float64
	splitThreshold float64

	src    core.Source
	stats  Stats
	events []Event
	stack  []SegmentID
}

// New returns a plant seeded from cfg.Seed.
func New(cfg Config) *Plant {
	cfg.normalize()
	return NewWithSource(cfg, core.NewRNG(cfg.Seed))
}

// NewWithSource returns a plant that draws all randomness from src.
func NewWithSource(cfg Config, src core.Source) *Plant {
	cfg.normalize()
	p := &Plant{cfg: cfg, src: src}
	p.plant()
	return p
}

// Name returns the simulation identifier.
func (p *Plant) Name() string { return "plant" }

// Size reports the view dimensions the plant is scaled for.
func (p *Plant) Size() core.Size { return core.Size{W: p.cfg.Width, H: p.cfg.Height} }

// Config returns the active configuration.
func (p *Plant) Config() Config { return p.cfg }

// Reset discards the tree and grows a fresh root from seed. A zero seed falls
// back to the configured seed.
func (p *Plant) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = p.cfg.Seed
	}
	p.src = core.NewRNG(effective)
	p.plant()
}

func (p *Plant) plant() {
	params := p.cfg.Params
	p.segments = p.segments[:0]
	p.events = p.events[:0]
	p.stats = Stats{}
	p.liveThreshold = p.clampThreshold(params.LiveThreshold)
	p.splitThreshold = p.clampThreshold(params.SplitThreshold)
	p.root = p.add(Segment{
		MaxLength:  params.RootMaxLength,
		GrowthRate: core.Range(p.src, params.RootGrowthRateMin, params.RootGrowthRateMax),
		Parent:     NoSegment,
	})
	p.tip = p.root
}

// Root returns the id of the first segment.
func (p *Plant) Root() SegmentID { return p.root }

// Tip returns the active tip, or false once growth has completed.
func (p *Plant) Tip() (SegmentID, bool) { return p.tip, p.tip != NoSegment }

// Segment returns a copy of the segment with the given id.
func (p *Plant) Segment(id SegmentID) Segment { return p.segments[id] }

// Segments exposes the arena. Index i holds SegmentID(i); parents always
// precede their children. Callers must treat it as read-only.
func (p *Plant) Segments() []Segment { return p.segments }

// Len reports the number of segments in the tree.
func (p *Plant) Len() int { return len(p.segments) }

// LiveThreshold reports the current live threshold.
func (p *Plant) LiveThreshold() float64 { return p.liveThreshold }

// SplitThreshold reports the current split threshold.
func (p *Plant) SplitThreshold() float64 { return p.splitThreshold }

// Stats returns lifetime counters.
func (p *Plant) Stats() Stats { return p.stats }

// Events lists the resolution draws made by the most recent Advance call.
func (p *Plant) Events() []Event { return p.events }

// Advance runs one tick: every growing segment extends, segments that reach
// their maximum length resolve, and the active tip turns toward bearing.
// Segments created during the tick start growing on the next one.
func (p *Plant) Advance(bearing float64) {
	p.events = p.events[:0]
	p.stats.Ticks++

	stack := append(p.stack[:0], p.root)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		seg := &p.segments[id]
		if seg.Fate == Growing {
			p.grow(id)
			continue
		}
		for i := len(seg.Children) - 1; i >= 0; i-- {
			stack = append(stack, seg.Children[i])
		}
	}
	p.stack = stack

	p.steer(bearing)
}

func (p *Plant) grow(id SegmentID) {
	seg := &p.segments[id]
	seg.Length += seg.GrowthRate
	if seg.Length < seg.MaxLength {
		return
	}

	isTip := id == p.tip
	depth := seg.Depth
	r := p.src.Float64()
	switch {
	case r > 1-p.splitThreshold:
		angle := seg.Angle
		first := p.spawn(id)
		second := p.spawn(id)
		p.segments[first].Angle = angle
		p.resolve(id, Split, first, second)
		if isTip {
			p.tip = first
		}
		p.adjustThresholds(OutcomeSplit)
		p.emit(id, OutcomeSplit, depth, isTip)
	case r > p.liveThreshold:
		child := p.spawn(id)
		p.resolve(id, Extended, child)
		if isTip {
			p.tip = child
		}
		p.adjustThresholds(OutcomeExtend)
		p.emit(id, OutcomeExtend, depth, isTip)
	case isTip:
		p.adjustThresholds(OutcomeReroll)
		p.emit(id, OutcomeReroll, depth, true)
	default:
		p.resolve(id, Terminal)
		p.adjustThresholds(OutcomeTerminate)
		p.emit(id, OutcomeTerminate, depth, false)
	}
}

// spawn appends a randomized child of parent. It may reallocate the arena, so
// callers must not hold segment pointers across it.
func (p *Plant) spawn(parent SegmentID) SegmentID {
	params := p.cfg.Params
	base := float64(p.cfg.Height) * params.LengthScale
	maxLength := core.Range(p.src, base, 2*base)
	sign := core.Sign(p.src)
	angle := sign * core.Range(p.src, params.AngleMin, params.AngleMax)
	rate := core.Range(p.src, params.GrowthRateMin, params.GrowthRateMax)
	return p.add(Segment{
		MaxLength:  maxLength,
		Angle:      angle,
		GrowthRate: rate,
		Parent:     parent,
		Depth:      p.segments[parent].Depth + 1,
	})
}

func (p *Plant) add(seg Segment) SegmentID {
	id := SegmentID(len(p.segments))
	p.segments = append(p.segments, seg)
	p.stats.Segments++
	p.stats.Growing++
	if seg.Depth > p.stats.MaxDepth {
		p.stats.MaxDepth = seg.Depth
	}
	return id
}

func (p *Plant) resolve(id SegmentID, fate Fate, children ...SegmentID) {
	seg := &p.segments[id]
	if seg.Fate != Growing {
		return
	}
	seg.Fate = fate
	if len(children) > 0 {
		seg.Children = children
	}
	p.stats.Growing--
}

func (p *Plant) emit(id SegmentID, outcome Outcome, depth int, wasTip bool) {
	p.events = append(p.events, Event{
		Tick:    p.stats.Ticks,
		Segment: id,
		Outcome: outcome,
		Depth:   depth,
		WasTip:  wasTip,
	})
}

func (p *Plant) steer(bearing float64) {
	if p.tip == NoSegment {
		return
	}
	tip := &p.segments[p.tip]
	tip.Angle += p.cfg.Params.SteerFactor * (bearing - tip.Angle)
}

// adjustThresholds applies the feedback for one outcome: splits make further
// splits rarer, terminal leaves make them likelier again.
func (p *Plant) adjustThresholds(outcome Outcome) {
	params := p.cfg.Params
	switch outcome {
	case OutcomeSplit:
		p.splitThreshold = p.clampThreshold(p.splitThreshold / params.SplitDecay)
		p.stats.Splits++
	case OutcomeExtend:
		p.liveThreshold = p.clampThreshold(p.liveThreshold * params.LiveDecay)
		p.stats.Extends++
	case OutcomeTerminate:
		p.splitThreshold = p.clampThreshold(p.splitThreshold * params.TerminateBoost)
		p.stats.Terminations++
	case OutcomeReroll:
		p.stats.Rerolls++
	}
}

// clampThreshold floors v at MinThreshold. A terminate draw needs
// splitThreshold <= 1, so TerminateBoost alone cannot run it to infinity.
func (p *Plant) clampThreshold(v float64) float64 {
	if math.IsNaN(v) || v < p.cfg.Params.MinThreshold {
		return p.cfg.Params.MinThreshold
	}
	return v
}

package plant

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"sprout/internal/core"
)

func TestRootResolvesAfterExactTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.RootMaxLength = 1.0
	cfg.Params.RootGrowthRateMin = 0.3
	cfg.Params.RootGrowthRateMax = 0.3

	// 0.5 sits between the live threshold and the split cutoff: extend.
	p := NewWithSource(cfg, core.NewSequence(0.5))
	root := p.Root()

	for tick := 1; tick <= 3; tick++ {
		p.Advance(0)
		if seg := p.Segment(root); seg.Resolved() {
			t.Fatalf("root resolved after %d ticks, length %.3f", tick, seg.Length)
		}
	}
	p.Advance(0)
	seg := p.Segment(root)
	if seg.Fate != Extended {
		t.Fatalf("expected root to extend on tick 4, got %s", seg.Fate)
	}
	if len(seg.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(seg.Children))
	}
	if math.Abs(seg.Length-1.2) > 1e-9 {
		t.Fatalf("expected root length 1.2, got %f", seg.Length)
	}
	if tip, _ := p.Tip(); tip != seg.Children[0] {
		t.Fatalf("expected tip to move to the child, got %d", tip)
	}
}

func TestSplitScenario(t *testing.T) {
	cfg := DefaultConfig()
	p := NewWithSource(cfg, core.NewSequence(0.9, 0.05, 0.95, 0.3, 0.6, 0.2, 0.7, 0.4, 0.1))
	root := p.Root()
	p.segments[root].Angle = 0.3

	// Root grows 1 per tick toward a max length of 10.
	for i := 0; i < 9; i++ {
		p.Advance(0.3)
	}
	if p.Segment(root).Resolved() {
		t.Fatal("root resolved early")
	}
	p.Advance(0.3)

	seg := p.Segment(root)
	if seg.Fate != Split || len(seg.Children) != 2 {
		t.Fatalf("expected split into two children, got %s with %d", seg.Fate, len(seg.Children))
	}
	if got, want := p.SplitThreshold(), 0.4/1.5; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected split threshold %f, got %f", want, got)
	}
	tip, ok := p.Tip()
	if !ok || tip != seg.Children[0] {
		t.Fatalf("expected tip to be first child %d, got %d", seg.Children[0], tip)
	}
	if got := p.Segment(tip).Angle; got != 0.3 {
		t.Fatalf("expected first child to continue at 0.3, got %f", got)
	}
	second := p.Segment(seg.Children[1])
	if mag := math.Abs(second.Angle); mag < cfg.Params.AngleMin || mag >= cfg.Params.AngleMax {
		t.Fatalf("second child angle %f outside [%f, %f)", second.Angle, cfg.Params.AngleMin, cfg.Params.AngleMax)
	}

	events := p.Events()
	if len(events) != 1 || events[0].Outcome != OutcomeSplit || !events[0].WasTip {
		t.Fatalf("expected one tip split event, got %+v", events)
	}
}

func TestSteerInterpolatesTowardBearing(t *testing.T) {
	p := New(DefaultConfig())
	p.segments[p.Root()].Angle = 1.0
	p.Advance(0)
	if got := p.Segment(p.Root()).Angle; math.Abs(got-0.95) > 1e-12 {
		t.Fatalf("expected angle 0.95, got %f", got)
	}
}

func TestActiveTipNeverTerminates(t *testing.T) {
	cfg := DefaultConfig()
	p := NewWithSource(cfg, core.NewSequence(0.1))
	for i := 0; i < 200; i++ {
		p.Advance(0)
	}
	root := p.Segment(p.Root())
	if root.Resolved() {
		t.Fatalf("tip resolved to %s despite terminate draws", root.Fate)
	}
	if root.Length <= cfg.Params.RootMaxLength {
		t.Fatalf("expected tip to keep growing while rerolling, length %f", root.Length)
	}
	stats := p.Stats()
	if stats.Rerolls != 200-9 {
		t.Fatalf("expected %d rerolls, got %d", 200-9, stats.Rerolls)
	}
	if stats.Terminations != 0 {
		t.Fatalf("expected no terminations, got %d", stats.Terminations)
	}
}

func TestTipInvariantsAcrossLongRun(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 5000; i++ {
		p.Advance(0.2)
		tip, ok := p.Tip()
		if !ok {
			continue
		}
		seg := p.Segment(tip)
		if seg.Fate == Terminal {
			t.Fatalf("tick %d: active tip %d is terminal", i, tip)
		}
		if seg.Fate != Growing {
			t.Fatalf("tick %d: active tip %d should still be growing, got %s", i, tip, seg.Fate)
		}
	}
}

func TestGrowthIsMonotonicAndResolvesOnce(t *testing.T) {
	p := New(DefaultConfig())
	type resolved struct {
		fate     Fate
		children []SegmentID
	}
	seen := map[SegmentID]resolved{}
	prevLength := map[SegmentID]float64{}

	for tick := 0; tick < 4000; tick++ {
		p.Advance(-0.1)
		for i, seg := range p.Segments() {
			id := SegmentID(i)
			if r, ok := seen[id]; ok {
				if seg.Fate != r.fate || !slices.Equal(seg.Children, r.children) {
					t.Fatalf("tick %d: segment %d changed after resolution: %s %v -> %s %v", tick, id, r.fate, r.children, seg.Fate, seg.Children)
				}
				continue
			}
			if prev, ok := prevLength[id]; ok && seg.Length <= prev {
				t.Fatalf("tick %d: segment %d length did not grow: %f -> %f", tick, id, prev, seg.Length)
			}
			prevLength[id] = seg.Length
			if seg.Resolved() {
				if seg.Length < seg.MaxLength {
					t.Fatalf("segment %d resolved short of max length", id)
				}
				seen[id] = resolved{fate: seg.Fate, children: slices.Clone(seg.Children)}
			}
		}
	}
	if len(seen) == 0 {
		t.Fatal("expected some segments to resolve")
	}
}

func TestTreeStructure(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 3000; i++ {
		p.Advance(0)
	}
	roots := 0
	for i, seg := range p.Segments() {
		if seg.Parent == NoSegment {
			roots++
			continue
		}
		if int(seg.Parent) >= i {
			t.Fatalf("segment %d stored before its parent %d", i, seg.Parent)
		}
		parent := p.Segment(seg.Parent)
		if !slices.Contains(parent.Children, SegmentID(i)) {
			t.Fatalf("segment %d missing from parent %d children", i, seg.Parent)
		}
		if seg.Depth != parent.Depth+1 {
			t.Fatalf("segment %d depth %d, parent depth %d", i, seg.Depth, parent.Depth)
		}
	}
	if roots != 1 {
		t.Fatalf("expected exactly one root, got %d", roots)
	}
	for i, seg := range p.Segments() {
		want := map[Fate]int{Growing: 0, Terminal: 0, Extended: 1, Split: 2}[seg.Fate]
		if len(seg.Children) != want {
			t.Fatalf("segment %d is %s with %d children", i, seg.Fate, len(seg.Children))
		}
	}
}

func TestSplitAngleInheritance(t *testing.T) {
	const bearing = 0.25
	cfg := DefaultConfig()
	p := New(cfg)
	splits := 0
	for tick := 0; tick < 6000; tick++ {
		p.Advance(bearing)
		for _, ev := range p.Events() {
			if ev.Outcome != OutcomeSplit {
				continue
			}
			splits++
			parent := p.Segment(ev.Segment)
			want := parent.Angle
			if ev.WasTip {
				want += cfg.Params.SteerFactor * (bearing - want)
			}
			if got := p.Segment(parent.Children[0]).Angle; got != want {
				t.Fatalf("tick %d: first child angle %f, want %f", tick, got, want)
			}
		}
	}
	if splits == 0 {
		t.Fatal("expected at least one split")
	}
}

func TestThresholdsStayPositiveUnderForcedOutcomes(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 10000; i++ {
		p.adjustThresholds(OutcomeSplit)
		if p.SplitThreshold() <= 0 {
			t.Fatalf("split threshold reached %g after %d splits", p.SplitThreshold(), i+1)
		}
	}
	for i := 0; i < 10000; i++ {
		p.adjustThresholds(OutcomeExtend)
		if p.LiveThreshold() <= 0 {
			t.Fatalf("live threshold reached %g", p.LiveThreshold())
		}
	}
}

func TestSplitThresholdHasNoCeiling(t *testing.T) {
	p := New(DefaultConfig())
	p.adjustThresholds(OutcomeTerminate)
	p.adjustThresholds(OutcomeTerminate)
	if got, want := p.SplitThreshold(), 0.4*1.7*1.7; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected split threshold %f after two terminations, got %f", want, got)
	}
	p.adjustThresholds(OutcomeSplit)
	if got, want := p.SplitThreshold(), 0.4*1.7*1.7/1.5; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected split threshold %f, got %f", want, got)
	}
}

func TestSplitThresholdFollowsOutcomes(t *testing.T) {
	cfg := DefaultConfig()
	p := New(cfg)
	want := cfg.Params.SplitThreshold
	peak := want
	for tick := 0; tick < 8000; tick++ {
		p.Advance(0.1)
		for _, ev := range p.Events() {
			switch ev.Outcome {
			case OutcomeSplit:
				want /= cfg.Params.SplitDecay
			case OutcomeTerminate:
				want *= cfg.Params.TerminateBoost
			}
		}
		got := p.SplitThreshold()
		if math.Abs(got-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("tick %d: split threshold %g, outcomes give %g", tick, got, want)
		}
		peak = math.Max(peak, got)
	}
	if peak > cfg.Params.TerminateBoost {
		t.Fatalf("split threshold peaked at %g, above one termination from 1", peak)
	}
}

func TestNonTipLeafTerminates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height = 100
	cfg.Params.AngleMin = 0.3
	cfg.Params.AngleMax = 0.3
	cfg.Params.GrowthRateMin = 1
	cfg.Params.GrowthRateMax = 1
	// Root draw splits. The first child gets length 19, the second 10. The
	// second child's draw then falls under the live threshold.
	p := NewWithSource(cfg, core.NewSequence(0.9, 0.9, 0.9, 0, 0.9, 0.1))
	root := p.Root()
	for i := 0; i < 10; i++ {
		p.Advance(0)
	}
	seg := p.Segment(root)
	if seg.Fate != Split {
		t.Fatalf("expected root to split, got %s", seg.Fate)
	}
	tip, second := seg.Children[0], seg.Children[1]
	if got, _ := p.Tip(); got != tip {
		t.Fatalf("expected tip %d, got %d", tip, got)
	}

	before := p.SplitThreshold()
	resolved := false
	for i := 0; i < 15 && !resolved; i++ {
		p.Advance(0)
		resolved = p.Segment(second).Resolved()
	}
	if !resolved {
		t.Fatal("second child never resolved")
	}
	leaf := p.Segment(second)
	if leaf.Fate != Terminal || len(leaf.Children) != 0 {
		t.Fatalf("expected terminal leaf, got %s with %d children", leaf.Fate, len(leaf.Children))
	}
	if got, want := p.SplitThreshold(), before*1.7; got != want {
		t.Fatalf("expected split threshold %v, got %v", want, got)
	}
	if got, ok := p.Tip(); !ok || got != tip {
		t.Fatalf("expected tip to stay at %d, got %d", tip, got)
	}
	if p.Segment(tip).Resolved() {
		t.Fatal("tip resolved before its max length")
	}
	events := p.Events()
	if len(events) != 1 || events[0].Outcome != OutcomeTerminate || events[0].WasTip || events[0].Segment != second {
		t.Fatalf("expected one non-tip termination event, got %+v", events)
	}
	if stats := p.Stats(); stats.Terminations != 1 || p.Len() != 3 {
		t.Fatalf("expected 1 termination over 3 segments, got %d over %d", stats.Terminations, p.Len())
	}
}

func TestThresholdsStayPositiveOverLongRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.LiveDecay = 0.9
	p := New(cfg)
	for i := 0; i < 10000; i++ {
		p.Advance(0)
		if p.LiveThreshold() <= 0 || p.SplitThreshold() <= 0 {
			t.Fatalf("tick %d: thresholds live=%g split=%g", i, p.LiveThreshold(), p.SplitThreshold())
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	p := New(DefaultConfig())
	grow := func() []Segment {
		for i := 0; i < 2500; i++ {
			p.Advance(0.1)
		}
		out := make([]Segment, len(p.Segments()))
		copy(out, p.Segments())
		return out
	}

	p.Reset(0)
	first := grow()
	p.Reset(0)
	second := grow()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Reset with config seed not deterministic")
	}

	p.Reset(777)
	third := grow()
	if reflect.DeepEqual(first, third) {
		t.Fatal("different seeds should produce different trees")
	}
	if got := p.LiveThreshold(); got != p.cfg.Params.LiveThreshold {
		t.Fatalf("expected live threshold restored by reset, got %f", got)
	}
}

func TestNaNBearingPropagates(t *testing.T) {
	p := New(DefaultConfig())
	p.Advance(math.NaN())
	if !math.IsNaN(p.Segment(p.Root()).Angle) {
		t.Fatal("expected NaN bearing to propagate into the tip angle")
	}
}

func TestStatsTrackGrowingSegments(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 3000; i++ {
		p.Advance(0)
	}
	growing := 0
	for _, seg := range p.Segments() {
		if !seg.Resolved() {
			growing++
		}
	}
	stats := p.Stats()
	if stats.Growing != growing {
		t.Fatalf("stats report %d growing, counted %d", stats.Growing, growing)
	}
	if stats.Segments != p.Len() {
		t.Fatalf("stats report %d segments, tree has %d", stats.Segments, p.Len())
	}
	if want := 1 + 2*stats.Splits + stats.Extends; want != p.Len() {
		t.Fatalf("expected %d segments from outcomes, got %d", want, p.Len())
	}
}

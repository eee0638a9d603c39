package plant

// SegmentID addresses a segment inside a Plant's arena.
type SegmentID int

// NoSegment marks the absence of a segment, e.g. the root's parent.
const NoSegment SegmentID = -1

// Fate records how a segment resolved once it reached its maximum length.
type Fate uint8

const (
	// Growing segments are still extending and have not resolved yet.
	Growing Fate = iota
	// Terminal segments resolved into a leaf with no children.
	Terminal
	// Extended segments resolved into exactly one child.
	Extended
	// Split segments resolved into two children.
	Split
)

func (f Fate) String() string {
	switch f {
	case Growing:
		return "growing"
	case Terminal:
		return "terminal"
	case Extended:
		return "extended"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Segment is one growth unit of the plant.
type Segment struct {
	Length     float64
	MaxLength  float64
	Angle      float64 // radians from vertical; positive leans left
	GrowthRate float64

	Fate     Fate
	Children []SegmentID
	Parent   SegmentID
	Depth    int
}

// Resolved reports whether the segment has made its one-time decision.
func (s Segment) Resolved() bool { return s.Fate != Growing }

// Leaf reports whether the segment has no children, growing or terminal.
func (s Segment) Leaf() bool { return len(s.Children) == 0 }

// Outcome describes what happened to a segment that reached its maximum length.
type Outcome uint8

const (
	OutcomeSplit Outcome = iota
	OutcomeExtend
	OutcomeTerminate
	// OutcomeReroll is a terminate draw on the active tip; the tip keeps growing
	// and rolls again next tick.
	OutcomeReroll
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSplit:
		return "split"
	case OutcomeExtend:
		return "extend"
	case OutcomeTerminate:
		return "terminate"
	case OutcomeReroll:
		return "reroll"
	default:
		return "unknown"
	}
}

// Event is emitted once per resolution draw during Advance.
type Event struct {
	Tick    uint64
	Segment SegmentID
	Outcome Outcome
	Depth   int
	// WasTip is true when the segment was the active tip at the time of the draw.
	WasTip bool
}

// Stats aggregates counters over the plant's lifetime.
type Stats struct {
	Ticks        uint64
	Segments     int
	Growing      int
	Splits       int
	Extends      int
	Terminations int
	Rerolls      int
	MaxDepth     int
}

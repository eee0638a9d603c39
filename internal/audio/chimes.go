package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"sprout/internal/sims/plant"
)

const (
	sampleRate = beep.SampleRate(44100)

	// maxPerTick caps how many chimes one tick may start; a wide plant can
	// resolve dozens of segments at once.
	maxPerTick = 3

	splitBase = 660.0
	extendHz  = 440.0
	leafHz    = 196.0
)

// Chimes turns growth events into short sine tones.
type Chimes struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewChimes creates an idle chime player. Call Initialize before Play.
func NewChimes() *Chimes {
	return &Chimes{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device and starts the mixer.
func (c *Chimes) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues a chime for each audible event, up to maxPerTick.
func (c *Chimes) Play(events []plant.Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	queued := 0
	for _, ev := range events {
		if queued == maxPerTick {
			break
		}
		s, ok := Tone(ev)
		if !ok {
			continue
		}
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
		queued++
	}
}

// Close silences every pending chime.
func (c *Chimes) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// ToneFor maps an event to a pitch and duration. Split pitch rises a whole
// tone per level of depth, capped at eight levels. Only the tip's extensions
// and rerolls are considered; rerolls stay silent.
func ToneFor(ev plant.Event) (freq float64, dur time.Duration, ok bool) {
	switch ev.Outcome {
	case plant.OutcomeSplit:
		depth := ev.Depth
		if depth > 8 {
			depth = 8
		}
		freq = splitBase
		for i := 0; i < depth; i++ {
			freq *= 9.0 / 8
		}
		return freq, 120 * time.Millisecond, true
	case plant.OutcomeExtend:
		if !ev.WasTip {
			return 0, 0, false
		}
		return extendHz, 40 * time.Millisecond, true
	case plant.OutcomeTerminate:
		return leafHz, 90 * time.Millisecond, true
	default:
		return 0, 0, false
	}
}

// Tone builds the finite, attenuated streamer for ev.
func Tone(ev plant.Event) (beep.Streamer, bool) {
	freq, dur, ok := ToneFor(ev)
	if !ok {
		return nil, false
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, false
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(dur), sine),
		Base:     2,
		Volume:   -3,
	}, true
}

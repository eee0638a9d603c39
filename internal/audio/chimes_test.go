package audio

import (
	"testing"
	"time"

	"sprout/internal/sims/plant"
)

func TestToneForOutcomes(t *testing.T) {
	if _, _, ok := ToneFor(plant.Event{Outcome: plant.OutcomeReroll, WasTip: true}); ok {
		t.Fatal("rerolls should be silent")
	}
	if _, _, ok := ToneFor(plant.Event{Outcome: plant.OutcomeExtend}); ok {
		t.Fatal("extensions off the tip should be silent")
	}
	freq, dur, ok := ToneFor(plant.Event{Outcome: plant.OutcomeExtend, WasTip: true})
	if !ok || freq != extendHz || dur != 40*time.Millisecond {
		t.Fatalf("unexpected tip extend tone: %v %v %v", freq, dur, ok)
	}
	freq, _, ok = ToneFor(plant.Event{Outcome: plant.OutcomeTerminate})
	if !ok || freq != leafHz {
		t.Fatalf("unexpected terminate tone: %v %v", freq, ok)
	}
}

func TestSplitPitchRisesWithDepthAndSaturates(t *testing.T) {
	prev := 0.0
	for depth := 0; depth <= 8; depth++ {
		freq, _, ok := ToneFor(plant.Event{Outcome: plant.OutcomeSplit, Depth: depth})
		if !ok {
			t.Fatalf("depth %d: split should be audible", depth)
		}
		if freq <= prev {
			t.Fatalf("depth %d: pitch %v did not rise above %v", depth, freq, prev)
		}
		prev = freq
	}
	deep, _, _ := ToneFor(plant.Event{Outcome: plant.OutcomeSplit, Depth: 40})
	if deep != prev {
		t.Fatalf("pitch should saturate at depth 8: got %v want %v", deep, prev)
	}
}

func TestToneStreamsFiniteSamples(t *testing.T) {
	s, ok := Tone(plant.Event{Outcome: plant.OutcomeTerminate})
	if !ok {
		t.Fatal("expected a streamer")
	}
	want := sampleRate.N(90 * time.Millisecond)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, more := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %v", total-n+i, buf[i][0])
			}
		}
		if !more {
			break
		}
		if total > want*2 {
			t.Fatal("tone did not end")
		}
	}
	if total != want {
		t.Fatalf("expected %d samples, got %d", want, total)
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
}

func TestPlayWithoutInitializeIsNoop(t *testing.T) {
	c := NewChimes()
	c.Play([]plant.Event{{Outcome: plant.OutcomeSplit}})
	c.Close()

	var nilChimes *Chimes
	nilChimes.Play(nil)
	nilChimes.Close()
}
